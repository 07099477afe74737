package domain

import "time"

// DoctorRating is the projected rating snapshot kept per doctor.
type DoctorRating struct {
	DoctorID     string
	ReviewCount  int64
	RatingSum    int64
	Distribution map[int]int64
	AvgRating    float64
	LastUpdated  time.Time
}
