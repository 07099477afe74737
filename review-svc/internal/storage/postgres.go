package storage

import (
	"context"
	"database/sql"
	"fmt"

	"medibook/review-svc/internal/domain"
)

// PostgresSeedSource reads fixture reviews from a `reviews` table so a fresh
// process can start with known data. It is only read at startup.
type PostgresSeedSource struct {
	DB *sql.DB
}

func NewPostgresSeedSource(db *sql.DB) *PostgresSeedSource {
	return &PostgresSeedSource{DB: db}
}

func (s *PostgresSeedSource) LoadReviews(ctx context.Context) ([]domain.Review, error) {
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, appointment_id, patient_id, doctor_id,
		       COALESCE(patient_name, ''), COALESCE(doctor_name, ''),
		       rating, review_text, created_at, updated_at,
		       COALESCE(appointment_date, created_at)
		FROM reviews
		WHERE rating BETWEEN 1 AND 5
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query seed reviews: %w", err)
	}
	defer rows.Close()

	var reviews []domain.Review
	for rows.Next() {
		var rev domain.Review
		if err := rows.Scan(
			&rev.ID, &rev.AppointmentID, &rev.PatientID, &rev.DoctorID,
			&rev.PatientName, &rev.DoctorName,
			&rev.Rating, &rev.ReviewText, &rev.CreatedAt, &rev.UpdatedAt,
			&rev.AppointmentDate,
		); err != nil {
			return nil, fmt.Errorf("scan seed review: %w", err)
		}
		reviews = append(reviews, rev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate seed reviews: %w", err)
	}
	return reviews, nil
}
