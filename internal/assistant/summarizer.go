package assistant

import (
	"context"
	"strings"

	"github.com/lumident/dental-clinic-platform/internal/intake"
	"github.com/lumident/dental-clinic-platform/internal/observability/metrics"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

const summarizerMaxTokens = 512

// Summarizer condenses a conversation into a short plain-text summary for
// notification emails. It never fails: when no model is configured or the
// provider errors, the raw transcript stands in for the summary so the
// clinic still receives the full exchange.
type Summarizer struct {
	client  LLMClient
	model   string
	metrics *metrics.PlatformMetrics
	logger  *logging.Logger
}

func NewSummarizer(client LLMClient, model string, m *metrics.PlatformMetrics, logger *logging.Logger) *Summarizer {
	if logger == nil {
		logger = logging.Default()
	}
	return &Summarizer{client: client, model: model, metrics: m, logger: logger}
}

// Summarize returns a summary of conv, or the raw transcript when the model
// is unavailable.
func (s *Summarizer) Summarize(ctx context.Context, conv intake.Conversation) string {
	transcript := conv.Transcript()
	if s == nil || s.client == nil {
		return transcript
	}

	resp, err := s.client.Complete(ctx, LLMRequest{
		Model:     s.model,
		System:    []string{summaryPersona},
		MaxTokens: summarizerMaxTokens,
		Messages: []ChatMessage{
			{Role: ChatRoleUser, Content: "Conversation à résumer :\n\n" + transcript},
		},
	})
	if err != nil {
		s.logger.Error("conversation summary failed, falling back to raw transcript", "error", err)
		s.metrics.ObserveSummaryFallback()
		return transcript
	}

	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		s.logger.Warn("summarizer returned an empty response, falling back to raw transcript")
		s.metrics.ObserveSummaryFallback()
		return transcript
	}
	return summary
}
