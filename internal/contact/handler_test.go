package contact

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumident/dental-clinic-platform/internal/notify"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

type recordingSender struct {
	sent []notify.EmailMessage
	err  error
}

func (r *recordingSender) Send(_ context.Context, msg notify.EmailMessage) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, msg)
	return nil
}

func testLogger() *logging.Logger {
	return logging.NewWithWriter("error", io.Discard)
}

const validBody = `{"name":"Paul Martin","email":"paul@example.com","phone":"0612345678","subject":"Question implant","message":"Bonjour, je souhaite des informations."}`

func postContact(t *testing.T, h *Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Create(rec, req)
	return rec
}

func TestCreateSubmission(t *testing.T) {
	repo := NewInMemoryRepository()
	sender := &recordingSender{}
	h := NewHandler(repo, sender, []string{"contact@lumident.fr"}, testLogger())

	rec := postContact(t, h, validBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp["id"])

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.False(t, stored[0].IsRead)
	assert.Equal(t, "Question implant", stored[0].Subject)

	require.Len(t, sender.sent, 1)
	assert.Equal(t, "📬 Formulaire de contact : Question implant", sender.sent[0].Subject)
	assert.Contains(t, sender.sent[0].Body, "Téléphone : 0612345678")
}

func TestCreateSubmissionValidation(t *testing.T) {
	h := NewHandler(NewInMemoryRepository(), nil, nil, testLogger())

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"email":"a@b.fr","subject":"s","message":"m"}`},
		{"missing email", `{"name":"Paul","subject":"s","message":"m"}`},
		{"missing subject", `{"name":"Paul","email":"a@b.fr","message":"m"}`},
		{"missing message", `{"name":"Paul","email":"a@b.fr","subject":"s"}`},
		{"malformed json", `{`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postContact(t, h, tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateSubmissionNotificationFailureStillSucceeds(t *testing.T) {
	repo := NewInMemoryRepository()
	sender := &recordingSender{err: errors.New("provider down")}
	h := NewHandler(repo, sender, []string{"contact@lumident.fr"}, testLogger())

	rec := postContact(t, h, validBody)
	assert.Equal(t, http.StatusCreated, rec.Code)

	stored, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestAdminListAndMarkRead(t *testing.T) {
	repo := NewInMemoryRepository()
	h := NewHandler(repo, nil, nil, testLogger())

	created, err := repo.Create(context.Background(), &CreateSubmissionRequest{
		Name: "Paul Martin", Email: "paul@example.com", Subject: "s", Message: "m",
	})
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Get("/admin/contact", h.AdminList)
	r.Post("/admin/contact/{id}/read", h.MarkRead)

	req := httptest.NewRequest(http.MethodGet, "/admin/contact", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var list []*Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.False(t, list[0].IsRead)

	req = httptest.NewRequest(http.MethodPost, "/admin/contact/"+created.ID+"/read", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var got Submission
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.IsRead)

	req = httptest.NewRequest(http.MethodPost, "/admin/contact/absent/read", nil)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
