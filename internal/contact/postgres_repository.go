package contact

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

// PostgresRepository stores contact submissions in the relational database.
type PostgresRepository struct {
	pool Querier
}

func NewPostgresRepository(pool Querier) *PostgresRepository {
	if pool == nil {
		panic("contact: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

func (r *PostgresRepository) Create(ctx context.Context, req *CreateSubmissionRequest) (*Submission, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	id := uuid.New()
	query := `
		INSERT INTO contact_submissions (id, name, email, phone, subject, message, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, false)
		RETURNING created_at
	`
	var createdAt time.Time
	if err := r.pool.QueryRow(ctx, query,
		id,
		req.Name,
		req.Email,
		req.Phone,
		req.Subject,
		req.Message,
	).Scan(&createdAt); err != nil {
		return nil, fmt.Errorf("contact: insert failed: %w", err)
	}

	return &Submission{
		ID:        id.String(),
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		Subject:   req.Subject,
		Message:   req.Message,
		IsRead:    false,
		CreatedAt: createdAt,
	}, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*Submission, error) {
	query := `
		SELECT id, name, email, phone, subject, message, is_read, created_at
		FROM contact_submissions
		ORDER BY created_at DESC
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contact: select failed: %w", err)
	}
	defer rows.Close()

	out := make([]*Submission, 0)
	for rows.Next() {
		var s Submission
		if err := rows.Scan(&s.ID, &s.Name, &s.Email, &s.Phone, &s.Subject, &s.Message, &s.IsRead, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("contact: scan failed: %w", err)
		}
		out = append(out, &s)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) MarkRead(ctx context.Context, id string) (*Submission, error) {
	query := `
		UPDATE contact_submissions
		SET is_read = true
		WHERE id = $1
		RETURNING id, name, email, phone, subject, message, is_read, created_at
	`
	var s Submission
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&s.ID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Subject,
		&s.Message,
		&s.IsRead,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("contact: mark read failed: %w", err)
	}
	return &s, nil
}

var _ Repository = (*PostgresRepository)(nil)
