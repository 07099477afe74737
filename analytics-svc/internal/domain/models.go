package domain

import (
	"errors"
	"time"
)

var ErrRatingNotFound = errors.New("doctor rating not found")

// DoctorRating is the projected rating snapshot for one doctor.
type DoctorRating struct {
	DoctorID           string        `json:"doctorId"`
	AverageRating      float64       `json:"averageRating"`
	TotalReviews       int64         `json:"totalReviews"`
	RatingDistribution map[int]int64 `json:"ratingDistribution"`
	LastUpdated        time.Time     `json:"lastUpdated"`
}

type LeaderboardEntry struct {
	DoctorID string  `json:"doctorId"`
	Score    float64 `json:"score"`
}
