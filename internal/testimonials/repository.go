package testimonials

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for testimonial storage.
type Repository interface {
	Create(ctx context.Context, req *CreateTestimonialRequest) (*Testimonial, error)
	ListApproved(ctx context.Context) ([]*Testimonial, error)
	ListAll(ctx context.Context) ([]*Testimonial, error)
	Approve(ctx context.Context, id string) (*Testimonial, error)
}

// InMemoryRepository keeps testimonials in memory. Used when no database is
// configured and in handler tests.
type InMemoryRepository struct {
	mu           sync.RWMutex
	testimonials map[string]*Testimonial
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		testimonials: make(map[string]*Testimonial),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *CreateTestimonialRequest) (*Testimonial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	t := &Testimonial{
		ID:          uuid.New().String(),
		PatientName: req.PatientName,
		Rating:      req.Rating,
		Content:     req.Content,
		Service:     req.Service,
		IsApproved:  false,
		CreatedAt:   time.Now().UTC(),
	}

	r.mu.Lock()
	r.testimonials[t.ID] = t
	r.mu.Unlock()

	return t, nil
}

func (r *InMemoryRepository) ListApproved(ctx context.Context) ([]*Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Testimonial, 0)
	for _, t := range r.testimonials {
		if t.IsApproved {
			copied := *t
			out = append(out, &copied)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *InMemoryRepository) ListAll(ctx context.Context) ([]*Testimonial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Testimonial, 0, len(r.testimonials))
	for _, t := range r.testimonials {
		copied := *t
		out = append(out, &copied)
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *InMemoryRepository) Approve(ctx context.Context, id string) (*Testimonial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.testimonials[id]
	if !ok {
		return nil, ErrNotFound
	}
	t.IsApproved = true
	copied := *t
	return &copied, nil
}

func sortNewestFirst(list []*Testimonial) {
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
}
