package leads

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/lumident/dental-clinic-platform/internal/intake"
	"github.com/lumident/dental-clinic-platform/internal/notify"
	"github.com/lumident/dental-clinic-platform/internal/observability/metrics"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

const summaryPreviewLimit = 200

// Summarizer condenses a conversation for the notification email.
type Summarizer interface {
	Summarize(ctx context.Context, conv intake.Conversation) string
}

// Dispatcher delivers a qualified lead to the clinic staff.
type Dispatcher interface {
	Dispatch(ctx context.Context, lead notify.LeadNotification) error
}

// IntakeRequest is the POST /api/leads/intake body. Intent and patient info
// are optional: when the caller already analyzed the conversation, its
// values win field by field over the server-side analysis.
type IntakeRequest struct {
	Messages    []intake.Message    `json:"messages"`
	Intent      string              `json:"intent,omitempty"`
	PatientInfo *intake.ContactInfo `json:"patient_info,omitempty"`
}

// IntakeResponse is the success body.
type IntakeResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Summary string `json:"summary"`
}

// Handler runs the lead intake pipeline: classify, extract, gate,
// summarize, dispatch. Everything happens synchronously within the
// request; the email send is the only external side effect and runs last.
type Handler struct {
	extractor  *intake.Extractor
	urgency    *intake.UrgencyDetector
	summarizer Summarizer
	dispatcher Dispatcher
	metrics    *metrics.PlatformMetrics
	logger     *logging.Logger
}

func NewHandler(
	extractor *intake.Extractor,
	urgency *intake.UrgencyDetector,
	summarizer Summarizer,
	dispatcher Dispatcher,
	m *metrics.PlatformMetrics,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		extractor:  extractor,
		urgency:    urgency,
		summarizer: summarizer,
		dispatcher: dispatcher,
		metrics:    m,
		logger:     logger,
	}
}

// Intake handles POST /api/leads/intake.
func (h *Handler) Intake(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req IntakeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		http.Error(w, "messages is required", http.StatusBadRequest)
		return
	}

	conv := intake.Conversation(req.Messages)

	// A caller naming a known intent wins outright, including an explicit
	// "other" that blocks dispatch. Unknown values fall back to the
	// server-side classification.
	intent := intake.Classify(conv)
	if override, ok := intake.ParseIntent(req.Intent); ok {
		intent = override
	}

	contact := h.extractor.Extract(conv)
	if req.PatientInfo != nil {
		// Caller-supplied values win field by field.
		contact = req.PatientInfo.Merge(contact)
	}

	if !intent.Actionable() {
		h.metrics.ObserveIntake(string(intent), "not_actionable", time.Since(start).Seconds())
		http.Error(w, "no actionable request detected in conversation", http.StatusBadRequest)
		return
	}
	if contact.Name == "" {
		h.metrics.ObserveIntake(string(intent), "missing_name", time.Since(start).Seconds())
		http.Error(w, "patient name could not be determined", http.StatusBadRequest)
		return
	}
	if contact.Email == "" && contact.Phone == "" {
		h.metrics.ObserveIntake(string(intent), "missing_contact", time.Since(start).Seconds())
		http.Error(w, "an email address or phone number is required", http.StatusBadRequest)
		return
	}

	summary := h.summarizer.Summarize(r.Context(), conv)
	urgent := h.urgency.Detect(conv.FullText())

	err := h.dispatcher.Dispatch(r.Context(), notify.LeadNotification{
		Intent:     intent,
		Contact:    contact,
		Summary:    summary,
		Transcript: conv.Transcript(),
		Urgent:     urgent,
	})
	if err != nil {
		h.logger.Error("lead dispatch failed", "error", err, "intent", string(intent))
		h.metrics.ObserveIntake(string(intent), "dispatch_failed", time.Since(start).Seconds())
		http.Error(w, "failed to process the request", http.StatusInternalServerError)
		return
	}

	h.logger.Info("lead dispatched",
		"intent", string(intent),
		"name", contact.Name,
		"urgent", urgent,
	)
	h.metrics.ObserveIntake(string(intent), "dispatched", time.Since(start).Seconds())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(IntakeResponse{
		Success: true,
		Message: "Votre demande a bien été transmise au cabinet.",
		Summary: previewSummary(summary),
	})
}

// previewSummary truncates the summary returned to the caller. The full
// text still goes out in the notification email.
func previewSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= summaryPreviewLimit {
		return s
	}
	return string(runes[:summaryPreviewLimit]) + "…"
}
