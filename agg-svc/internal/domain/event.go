package domain

import (
	"errors"
	"time"
)

const (
	EventReviewCreated = "review_created"
	EventReviewUpdated = "review_updated"
	EventReviewDeleted = "review_deleted"
)

var ErrUnsupportedEvent = errors.New("unsupported review event")

// ReviewEvent mirrors the payload review-svc publishes on the reviews topic.
type ReviewEvent struct {
	ID             string    `json:"id"`
	Type           string    `json:"type"`
	ReviewID       string    `json:"review_id"`
	AppointmentID  string    `json:"appointment_id"`
	DoctorID       string    `json:"doctor_id"`
	PatientID      string    `json:"patient_id"`
	Rating         int       `json:"rating"`
	PreviousRating int       `json:"previous_rating,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// RatingChange is the effect of one event on a doctor's rating totals.
// Added and Removed are star values; zero means nothing was added or removed.
type RatingChange struct {
	DoctorID string
	Added    int
	Removed  int
	At       time.Time
}

// Change converts the event into the rating delta it implies.
func (e ReviewEvent) Change() (RatingChange, error) {
	if e.DoctorID == "" || !validStars(e.Rating) {
		return RatingChange{}, ErrUnsupportedEvent
	}

	change := RatingChange{DoctorID: e.DoctorID, At: e.Timestamp.UTC()}
	switch e.Type {
	case EventReviewCreated:
		change.Added = e.Rating
	case EventReviewDeleted:
		change.Removed = e.Rating
	case EventReviewUpdated:
		if !validStars(e.PreviousRating) {
			return RatingChange{}, ErrUnsupportedEvent
		}
		change.Added = e.Rating
		change.Removed = e.PreviousRating
	default:
		return RatingChange{}, ErrUnsupportedEvent
	}
	return change, nil
}

func validStars(r int) bool {
	return r >= 1 && r <= 5
}
