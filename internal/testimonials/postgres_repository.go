package testimonials

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the repository needs.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresRepository stores testimonials in the relational database.
type PostgresRepository struct {
	pool Querier
}

func NewPostgresRepository(pool Querier) *PostgresRepository {
	if pool == nil {
		panic("testimonials: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, req *CreateTestimonialRequest) (*Testimonial, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO testimonials (id, patient_name, rating, content, service, is_approved)
		VALUES ($1, $2, $3, $4, $5, false)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.PatientName,
		req.Rating,
		req.Content,
		req.Service,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("testimonials: insert failed: %w", err)
	}

	return &Testimonial{
		ID:          id.String(),
		PatientName: req.PatientName,
		Rating:      req.Rating,
		Content:     req.Content,
		Service:     req.Service,
		IsApproved:  false,
		CreatedAt:   createdAt,
	}, nil
}

func (r *PostgresRepository) ListApproved(ctx context.Context) ([]*Testimonial, error) {
	query := `
		SELECT id, patient_name, rating, content, service, is_approved, created_at
		FROM testimonials
		WHERE is_approved = true
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *PostgresRepository) ListAll(ctx context.Context) ([]*Testimonial, error) {
	query := `
		SELECT id, patient_name, rating, content, service, is_approved, created_at
		FROM testimonials
		ORDER BY created_at DESC
	`
	return r.list(ctx, query)
}

func (r *PostgresRepository) list(ctx context.Context, query string) ([]*Testimonial, error) {
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("testimonials: select failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Testimonial, 0)
	for rows.Next() {
		var t Testimonial
		if err := rows.Scan(&t.ID, &t.PatientName, &t.Rating, &t.Content, &t.Service, &t.IsApproved, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("testimonials: scan failed: %w", err)
		}
		out = append(out, &t)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Approve(ctx context.Context, id string) (*Testimonial, error) {
	query := `
		UPDATE testimonials
		SET is_approved = true
		WHERE id = $1
		RETURNING id, patient_name, rating, content, service, is_approved, created_at
	`
	var t Testimonial
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.PatientName,
		&t.Rating,
		&t.Content,
		&t.Service,
		&t.IsApproved,
		&t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("testimonials: approve failed: %w", err)
	}
	return &t, nil
}

var _ Repository = (*PostgresRepository)(nil)
