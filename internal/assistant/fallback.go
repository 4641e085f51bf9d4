package assistant

import (
	"context"

	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

// FallbackClient wraps a primary LLM client with a fallback provider.
// If the primary fails, it automatically retries with the fallback.
type FallbackClient struct {
	primary  LLMClient
	fallback LLMClient
	logger   *logging.Logger
}

// NewFallbackClient creates a fallback-enabled LLM client. If fallback is
// nil, only the primary provider is used.
func NewFallbackClient(primary, fallback LLMClient, logger *logging.Logger) *FallbackClient {
	if logger == nil {
		logger = logging.Default()
	}
	return &FallbackClient{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
	}
}

// Complete sends a completion request to the primary LLM and retries with
// the fallback on failure.
func (c *FallbackClient) Complete(ctx context.Context, req LLMRequest) (LLMResponse, error) {
	resp, err := c.primary.Complete(ctx, req)
	if err == nil {
		return resp, nil
	}

	c.logger.Warn("primary LLM failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", c.fallback != nil,
	)

	if c.fallback == nil {
		return LLMResponse{}, err
	}

	fallbackResp, fallbackErr := c.fallback.Complete(ctx, req)
	if fallbackErr != nil {
		c.logger.Error("fallback LLM also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return LLMResponse{}, fallbackErr
	}

	c.logger.Info("fallback LLM succeeded after primary failure")
	return fallbackResp, nil
}

// Stream streams from the primary when it supports streaming. If the
// primary fails before emitting anything, the fallback's complete reply is
// emitted as a single chunk.
func (c *FallbackClient) Stream(ctx context.Context, req LLMRequest, emit func(chunk string) error) error {
	emitted := false
	wrapped := func(chunk string) error {
		emitted = true
		return emit(chunk)
	}

	var err error
	if streamer, ok := c.primary.(StreamingLLMClient); ok {
		err = streamer.Stream(ctx, req, wrapped)
	} else {
		var resp LLMResponse
		resp, err = c.primary.Complete(ctx, req)
		if err == nil {
			err = wrapped(resp.Text)
		}
	}
	if err == nil {
		return nil
	}

	// Once tokens have reached the caller the reply cannot be restarted.
	if emitted {
		return err
	}

	c.logger.Warn("primary LLM stream failed, attempting fallback",
		"error", err.Error(),
		"fallback_available", c.fallback != nil,
	)
	if c.fallback == nil {
		return err
	}

	resp, fallbackErr := c.fallback.Complete(ctx, req)
	if fallbackErr != nil {
		c.logger.Error("fallback LLM also failed",
			"primary_error", err.Error(),
			"fallback_error", fallbackErr.Error(),
		)
		return fallbackErr
	}
	return emit(resp.Text)
}

var _ StreamingLLMClient = (*FallbackClient)(nil)
