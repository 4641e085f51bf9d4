package testimonials

import (
	"context"
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("INSERT INTO testimonials").
		WithArgs(pgxmock.AnyArg(), "Marie D.", 5, "Très satisfaite.", "blanchiment").
		WillReturnRows(pgxmock.NewRows([]string{"created_at"}).AddRow(now))

	created, err := repo.Create(context.Background(), &CreateTestimonialRequest{
		PatientName: "Marie D.",
		Rating:      5,
		Content:     "Très satisfaite.",
		Service:     "blanchiment",
	})
	require.NoError(t, err)
	assert.Equal(t, now, created.CreatedAt)
	assert.False(t, created.IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateRejectsInvalidRating(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	_, err = repo.Create(context.Background(), &CreateTestimonialRequest{Rating: 6, Content: "x"})
	assert.ErrorIs(t, err, ErrInvalidRating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresListApproved(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)
	now := time.Now().UTC()

	mock.ExpectQuery("SELECT (.+) FROM testimonials").
		WillReturnRows(pgxmock.NewRows([]string{"id", "patient_name", "rating", "content", "service", "is_approved", "created_at"}).
			AddRow("t-1", "Patient anonyme", 5, "Super.", "implant", true, now))

	list, err := repo.ListApproved(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "t-1", list[0].ID)
	assert.True(t, list[0].IsApproved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresApproveNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPostgresRepository(mock)

	mock.ExpectQuery("UPDATE testimonials").
		WithArgs("missing").
		WillReturnRows(pgxmock.NewRows([]string{"id", "patient_name", "rating", "content", "service", "is_approved", "created_at"}))

	_, err = repo.Approve(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
