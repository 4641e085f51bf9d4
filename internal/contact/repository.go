package contact

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for contact submission storage.
type Repository interface {
	Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error)
	List(ctx context.Context) ([]*Submission, error)
	MarkRead(ctx context.Context, id string) (*Submission, error)
}

// InMemoryRepository keeps submissions in memory. Used when no database is
// configured and in handler tests.
type InMemoryRepository struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{
		submissions: make(map[string]*Submission),
	}
}

func (r *InMemoryRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s := &Submission{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		IsRead:    false,
		CreatedAt: time.Now().UTC(),
	}

	r.mu.Lock()
	r.submissions[s.ID] = s
	r.mu.Unlock()

	return s, nil
}

func (r *InMemoryRepository) List(ctx context.Context) ([]*Submission, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Submission, 0, len(r.submissions))
	for _, s := range r.submissions {
		copied := *s
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *InMemoryRepository) MarkRead(ctx context.Context, id string) (*Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.submissions[id]
	if !ok {
		return nil, ErrNotFound
	}
	s.IsRead = true
	copied := *s
	return &copied, nil
}
