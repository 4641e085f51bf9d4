package contact

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lumident/dental-clinic-platform/internal/notify"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

// Handler handles HTTP requests for the contact form.
type Handler struct {
	repo       Repository
	sender     notify.EmailSender
	recipients []string
	logger     *logging.Logger
}

// NewHandler creates a contact handler. sender may be nil; submissions are
// then stored without a staff notification.
func NewHandler(repo Repository, sender notify.EmailSender, recipients []string, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		repo:       repo,
		sender:     sender,
		recipients: recipients,
		logger:     logger,
	}
}

// Create handles POST /api/contact.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateSubmissionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	s, err := h.repo.Create(r.Context(), &req)
	if err != nil {
		if isValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to store contact submission", "error", err)
		http.Error(w, "failed to store submission", http.StatusInternalServerError)
		return
	}

	h.logger.Info("contact submission received", "id", s.ID, "subject", s.Subject)
	h.notifyStaff(r, s)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]string{
		"message": "Votre message a bien été envoyé. Nous vous répondrons au plus vite.",
		"id":      s.ID,
	})
}

// notifyStaff forwards the submission by email. Best effort: a delivery
// failure is logged but the submission is already stored, so the request
// still succeeds.
func (h *Handler) notifyStaff(r *http.Request, s *Submission) {
	if h.sender == nil || len(h.recipients) == 0 {
		return
	}

	body := fmt.Sprintf("Nouveau message via le formulaire de contact :\n\nNom : %s\nEmail : %s\n", s.Name, s.Email)
	if s.Phone != "" {
		body += fmt.Sprintf("Téléphone : %s\n", s.Phone)
	}
	body += fmt.Sprintf("\nSujet : %s\n\n%s\n", s.Subject, s.Message)

	for _, to := range h.recipients {
		err := h.sender.Send(r.Context(), notify.EmailMessage{
			To:      to,
			Subject: "📬 Formulaire de contact : " + s.Subject,
			Body:    body,
		})
		if err != nil {
			h.logger.Error("contact notification delivery failed", "to", to, "error", err)
		}
	}
}

// AdminList handles GET /admin/contact.
func (h *Handler) AdminList(w http.ResponseWriter, r *http.Request) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("failed to list contact submissions", "error", err)
		http.Error(w, "failed to list submissions", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(list)
}

// MarkRead handles POST /admin/contact/{id}/read.
func (h *Handler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	s, err := h.repo.MarkRead(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		h.logger.Error("failed to mark submission read", "error", err, "id", id)
		http.Error(w, "failed to mark submission read", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(s)
}

func isValidationError(err error) bool {
	return errors.Is(err, ErrMissingName) ||
		errors.Is(err, ErrMissingEmail) ||
		errors.Is(err, ErrMissingSubject) ||
		errors.Is(err, ErrMissingMessage)
}
