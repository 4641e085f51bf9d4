package chat

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lumident/dental-clinic-platform/internal/assistant"
	"github.com/lumident/dental-clinic-platform/internal/intake"
	"github.com/lumident/dental-clinic-platform/internal/observability/metrics"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

// ChatRequest is the POST /api/chat body.
type ChatRequest struct {
	SessionID string           `json:"session_id"`
	Messages  []intake.Message `json:"messages"`
}

// Handler relays patient conversations to the language model and streams
// the reply back as plain text.
type Handler struct {
	llm         assistant.StreamingLLMClient
	persona     string
	modelID     string
	urgency     *intake.UrgencyDetector
	store       *TranscriptStore
	clinicPhone string
	metrics     *metrics.PlatformMetrics
	logger      *logging.Logger
}

func NewHandler(
	llm assistant.StreamingLLMClient,
	persona string,
	modelID string,
	urgency *intake.UrgencyDetector,
	store *TranscriptStore,
	clinicPhone string,
	m *metrics.PlatformMetrics,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		llm:         llm,
		persona:     persona,
		modelID:     modelID,
		urgency:     urgency,
		store:       store,
		clinicPhone: clinicPhone,
		metrics:     m,
		logger:      logger,
	}
}

// Relay handles POST /api/chat. The reply is streamed as chunked plain
// text; headers are only committed once the first token arrives, so a
// provider failure before that point still yields a proper error status.
func (h *Handler) Relay(w http.ResponseWriter, r *http.Request) {
	if h.llm == nil {
		h.metrics.ObserveChat("unavailable")
		http.Error(w, "chat assistant is not configured", http.StatusServiceUnavailable)
		return
	}

	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveChat("rejected")
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if len(req.Messages) == 0 {
		h.metrics.ObserveChat("rejected")
		http.Error(w, "messages is required", http.StatusBadRequest)
		return
	}
	if req.SessionID == "" {
		req.SessionID = uuid.NewString()
	}

	ctx := r.Context()
	lastPatient := lastPatientMessage(req.Messages)
	h.appendTranscript(r, req.SessionID, intake.RolePatient, lastPatient)

	llmReq := assistant.LLMRequest{
		Model:    h.modelID,
		System:   []string{h.persona},
		Messages: toChatMessages(req.Messages),
	}

	flusher, _ := w.(http.Flusher)
	started := false
	var reply strings.Builder

	emit := func(chunk string) error {
		if !started {
			started = true
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.Header().Set("X-Session-Id", req.SessionID)
			w.WriteHeader(http.StatusOK)

			if h.urgency.Detect(lastPatient) {
				notice := h.urgencyNotice()
				if _, err := fmt.Fprint(w, notice); err != nil {
					return err
				}
				reply.WriteString(notice)
			}
		}
		if _, err := fmt.Fprint(w, chunk); err != nil {
			return err
		}
		reply.WriteString(chunk)
		if flusher != nil {
			flusher.Flush()
		}
		return nil
	}

	if err := h.llm.Stream(ctx, llmReq, emit); err != nil {
		h.metrics.ObserveChat("error")
		h.logger.Error("chat relay failed", "error", err, "session_id", req.SessionID, "started", started)
		if !started {
			http.Error(w, "assistant is temporarily unavailable", http.StatusInternalServerError)
		}
		return
	}

	h.metrics.ObserveChat("ok")
	h.appendTranscript(r, req.SessionID, intake.RoleAssistant, reply.String())
}

// History handles GET /api/chat/history. Without redis the history is
// always empty.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		http.Error(w, "session_id is required", http.StatusBadRequest)
		return
	}

	msgs, err := h.store.List(r.Context(), sessionID, 0)
	if err != nil {
		h.logger.Error("failed to load chat history", "error", err, "session_id", sessionID)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	if msgs == nil {
		msgs = []TranscriptMessage{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{
		"session_id": sessionID,
		"messages":   msgs,
	})
}

func (h *Handler) appendTranscript(r *http.Request, sessionID, role, content string) {
	if content == "" {
		return
	}
	if err := h.store.Append(r.Context(), sessionID, TranscriptMessage{Role: role, Content: content}); err != nil {
		h.logger.Warn("failed to persist chat transcript", "error", err, "session_id", sessionID)
	}
}

func (h *Handler) urgencyNotice() string {
	return fmt.Sprintf("⚠️ Si vous êtes en situation d'urgence dentaire, appelez-nous directement au %s.\n\n", h.clinicPhone)
}

func lastPatientMessage(msgs []intake.Message) string {
	for i := len(msgs) - 1; i >= 0; i-- {
		if msgs[i].Role == intake.RolePatient {
			return msgs[i].Content
		}
	}
	return ""
}

func toChatMessages(msgs []intake.Message) []assistant.ChatMessage {
	out := make([]assistant.ChatMessage, 0, len(msgs))
	for _, m := range msgs {
		role := assistant.ChatRoleUser
		if m.Role == intake.RoleAssistant {
			role = assistant.ChatRoleAssistant
		}
		out = append(out, assistant.ChatMessage{Role: role, Content: m.Content})
	}
	return out
}
