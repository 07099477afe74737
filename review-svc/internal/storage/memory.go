package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"medibook/review-svc/internal/domain"
)

type record struct {
	review domain.Review
	seq    uint64
}

// MemoryRepository holds reviews for the lifetime of the process. It keeps
// the primary map by id plus exact-match indexes for the list filters.
type MemoryRepository struct {
	mu            sync.RWMutex
	reviews       map[string]*record
	byAppointment map[string]string
	byDoctor      map[string]map[string]struct{}
	byPatient     map[string]map[string]struct{}
	seq           uint64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		reviews:       make(map[string]*record),
		byAppointment: make(map[string]string),
		byDoctor:      make(map[string]map[string]struct{}),
		byPatient:     make(map[string]map[string]struct{}),
	}
}

func (r *MemoryRepository) Insert(_ context.Context, review domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byAppointment[review.AppointmentID]; ok {
		return domain.ErrDuplicateReview
	}
	if _, ok := r.reviews[review.ID]; ok {
		return fmt.Errorf("review id %s already in use", review.ID)
	}

	r.seq++
	review.CanEdit = false
	r.reviews[review.ID] = &record{review: review, seq: r.seq}
	r.byAppointment[review.AppointmentID] = review.ID
	addToIndex(r.byDoctor, review.DoctorID, review.ID)
	addToIndex(r.byPatient, review.PatientID, review.ID)
	return nil
}

// Update applies fn to a copy of the stored review and saves the copy only
// if fn returns nil. Identifier fields are not changeable through Update.
func (r *MemoryRepository) Update(_ context.Context, id string, apply func(*domain.Review) error) (domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}

	updated := rec.review
	if err := apply(&updated); err != nil {
		return domain.Review{}, err
	}
	updated.ID = rec.review.ID
	updated.AppointmentID = rec.review.AppointmentID
	updated.DoctorID = rec.review.DoctorID
	updated.PatientID = rec.review.PatientID
	updated.CanEdit = false

	rec.review = updated
	return updated, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string, check func(domain.Review) error) (domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.reviews[id]
	if !ok {
		return domain.Review{}, domain.ErrReviewNotFound
	}
	if check != nil {
		if err := check(rec.review); err != nil {
			return domain.Review{}, err
		}
	}

	delete(r.reviews, id)
	delete(r.byAppointment, rec.review.AppointmentID)
	removeFromIndex(r.byDoctor, rec.review.DoctorID, id)
	removeFromIndex(r.byPatient, rec.review.PatientID, id)
	return rec.review, nil
}

// List returns matching reviews newest first; equal timestamps keep
// insertion order.
func (r *MemoryRepository) List(_ context.Context, filter domain.ReviewFilter) ([]domain.Review, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	matched := make([]*record, 0)
	for _, id := range r.candidates(filter) {
		rec := r.reviews[id]
		if rec != nil && filter.Matches(&rec.review) {
			matched = append(matched, rec)
		}
	}

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.review.CreatedAt.Equal(b.review.CreatedAt) {
			return a.review.CreatedAt.After(b.review.CreatedAt)
		}
		return a.seq < b.seq
	})

	reviews := make([]domain.Review, len(matched))
	for i, rec := range matched {
		reviews[i] = rec.review
	}
	return reviews, nil
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.reviews)
}

// candidates picks the narrowest index for filter. Callers hold r.mu.
func (r *MemoryRepository) candidates(filter domain.ReviewFilter) []string {
	switch {
	case filter.AppointmentID != "":
		if id, ok := r.byAppointment[filter.AppointmentID]; ok {
			return []string{id}
		}
		return nil
	case filter.DoctorID != "":
		return keys(r.byDoctor[filter.DoctorID])
	case filter.PatientID != "":
		return keys(r.byPatient[filter.PatientID])
	}

	ids := make([]string, 0, len(r.reviews))
	for id := range r.reviews {
		ids = append(ids, id)
	}
	return ids
}

func addToIndex(index map[string]map[string]struct{}, key, id string) {
	set, ok := index[key]
	if !ok {
		set = make(map[string]struct{})
		index[key] = set
	}
	set[id] = struct{}{}
}

func removeFromIndex(index map[string]map[string]struct{}, key, id string) {
	set, ok := index[key]
	if !ok {
		return
	}
	delete(set, id)
	if len(set) == 0 {
		delete(index, key)
	}
}

func keys(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
