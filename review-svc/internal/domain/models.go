package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// EditWindow is how long after creation a review may be updated or deleted.
const EditWindow = 24 * time.Hour

// RecentReviewsLimit caps DoctorStats.RecentReviews.
const RecentReviewsLimit = 5

type Review struct {
	ID              string    `json:"id"`
	AppointmentID   string    `json:"appointmentId"`
	PatientID       string    `json:"patientId"`
	DoctorID        string    `json:"doctorId"`
	PatientName     string    `json:"patientName"`
	DoctorName      string    `json:"doctorName"`
	Rating          int       `json:"rating"`
	ReviewText      string    `json:"reviewText"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
	AppointmentDate time.Time `json:"appointmentDate"`
	CanEdit         bool      `json:"canEdit"`
}

// CanEdit reports whether a review created at createdAt is still inside the
// edit window at now.
func CanEdit(createdAt, now time.Time) bool {
	return now.Sub(createdAt) <= EditWindow
}

// WithCanEdit returns a copy of r with CanEdit derived for now.
func (r Review) WithCanEdit(now time.Time) Review {
	r.CanEdit = CanEdit(r.CreatedAt, now)
	return r
}

// ReviewFilter narrows List by exact match; empty fields match everything.
type ReviewFilter struct {
	DoctorID      string
	PatientID     string
	AppointmentID string
}

func (f ReviewFilter) Matches(r *Review) bool {
	if f.DoctorID != "" && r.DoctorID != f.DoctorID {
		return false
	}
	if f.PatientID != "" && r.PatientID != f.PatientID {
		return false
	}
	if f.AppointmentID != "" && r.AppointmentID != f.AppointmentID {
		return false
	}
	return true
}

type CreateReviewInput struct {
	AppointmentID   string     `json:"appointmentId" validate:"required"`
	PatientID       string     `json:"patientId" validate:"required"`
	DoctorID        string     `json:"doctorId" validate:"required"`
	PatientName     string     `json:"patientName"`
	DoctorName      string     `json:"doctorName"`
	Rating          Rating     `json:"rating" validate:"required,min=1,max=5"`
	ReviewText      string     `json:"reviewText" validate:"required"`
	AppointmentDate AppointmentDate `json:"appointmentDate"`
}

// UpdateReviewInput carries optional replacements; zero values keep the
// stored value.
type UpdateReviewInput struct {
	ReviewID   string `json:"reviewId" validate:"required"`
	Rating     Rating `json:"rating" validate:"omitempty,min=1,max=5"`
	ReviewText string `json:"reviewText"`
}

// Rating is a star rating that decodes from a JSON number or a numeric
// string. Absent, null and "" decode to 0; anything that is not a whole
// number decodes to InvalidRating so validation rejects it.
type Rating int

const InvalidRating Rating = -1

func (r *Rating) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*r = 0
		return nil
	}

	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			*r = InvalidRating
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			*r = 0
			return nil
		}
	}

	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		*r = InvalidRating
		return nil
	}
	if f < math.MinInt32 || f > math.MaxInt32 {
		*r = InvalidRating
		return nil
	}
	*r = Rating(int(f))
	return nil
}

// AppointmentDate decodes an RFC 3339 timestamp or a plain YYYY-MM-DD date.
// Absent, null and "" leave it zero; any other value sets Invalid.
type AppointmentDate struct {
	Time    time.Time
	Invalid bool
}

var appointmentDateLayouts = []string{time.RFC3339Nano, time.DateOnly}

func (d *AppointmentDate) UnmarshalJSON(data []byte) error {
	*d = AppointmentDate{}
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		d.Invalid = true
		return nil
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, layout := range appointmentDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d.Time = t
			return nil
		}
	}
	d.Invalid = true
	return nil
}

// DoctorStats summarizes one doctor's reviews.
type DoctorStats struct {
	DoctorID           string      `json:"doctorId"`
	TotalReviews       int         `json:"totalReviews"`
	AverageRating      float64     `json:"averageRating"`
	RatingDistribution map[int]int `json:"ratingDistribution"`
	RatingPercentages  map[int]int `json:"ratingPercentages"`
	RecentReviews      []Review    `json:"recentReviews"`
}

const (
	EventReviewCreated = "review_created"
	EventReviewUpdated = "review_updated"
	EventReviewDeleted = "review_deleted"
)

// ReviewEvent is published to Kafka after every successful mutation.
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
