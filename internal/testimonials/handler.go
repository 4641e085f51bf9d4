package testimonials

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for testimonials.
type Handler struct {
	repo   Repository
	logger *logging.Logger
}

func NewHandler(repo Repository, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{repo: repo, logger: logger}
}

// List handles GET /api/testimonials. Only approved testimonials are
// exposed publicly, newest first.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListApproved(r.Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", "error", err)
		http.Error(w, "failed to list testimonials", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Create handles POST /api/testimonials.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateTestimonialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	t, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrInvalidRating) || errors.Is(err, ErrMissingContent) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to create testimonial", "error", err)
		http.Error(w, "failed to create testimonial", http.StatusInternalServerError)
		return
	}

	h.logger.Info("testimonial submitted", "id", t.ID, "rating", t.Rating)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Merci pour votre avis ! Il sera publié après validation.",
		"id":      t.ID,
	})
}

// AdminList handles GET /admin/testimonials and includes unapproved rows.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.ListAll(r.Context())
	if err != nil {
		h.logger.Error("failed to list testimonials", "error", err)
		http.Error(w, "failed to list testimonials", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// Approve handles POST /admin/testimonials/{id}/approve.
func (h *Handler) Approve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	t, err := h.repo.Approve(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to approve testimonial", "error", err, "id", id)
		http.Error(w, "failed to approve testimonial", http.StatusInternalServerError)
		return
	}

	h.logger.Info("testimonial approved", "id", t.ID)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(t)
}
