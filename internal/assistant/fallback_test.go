package assistant

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

type stubClient struct {
	text  string
	err   error
	calls int
}

func (s *stubClient) Complete(_ context.Context, _ LLMRequest) (LLMResponse, error) {
	s.calls++
	if s.err != nil {
		return LLMResponse{}, s.err
	}
	return LLMResponse{Text: s.text}, nil
}

type stubStreamingClient struct {
	stubClient
	chunks      []string
	streamErr   error
	errAfter    int // emit this many chunks before failing; 0 fails immediately
	streamCalls int
}

func (s *stubStreamingClient) Stream(_ context.Context, _ LLMRequest, emit func(string) error) error {
	s.streamCalls++
	if s.streamErr != nil && s.errAfter == 0 {
		return s.streamErr
	}
	for i, c := range s.chunks {
		if err := emit(c); err != nil {
			return err
		}
		if s.streamErr != nil && i+1 >= s.errAfter {
			return s.streamErr
		}
	}
	return nil
}

func testLogger() *logging.Logger {
	return logging.NewWithWriter("error", io.Discard)
}

func TestFallbackCompleteUsesPrimary(t *testing.T) {
	primary := &stubClient{text: "primary"}
	fallback := &stubClient{text: "fallback"}
	client := NewFallbackClient(primary, fallback, testLogger())

	resp, err := client.Complete(context.Background(), LLMRequest{})
	require.NoError(t, err)
	assert.Equal(t, "primary", resp.Text)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackCompleteFallsBackOnError(t *testing.T) {
	primary := &stubClient{err: errors.New("quota exceeded")}
	fallback := &stubClient{text: "fallback"}
	client := NewFallbackClient(primary, fallback, testLogger())

	resp, err := client.Complete(context.Background(), LLMRequest{})
	require.NoError(t, err)
	assert.Equal(t, "fallback", resp.Text)
	assert.Equal(t, 1, primary.calls)
}

func TestFallbackCompleteBothFail(t *testing.T) {
	primary := &stubClient{err: errors.New("primary down")}
	fallback := &stubClient{err: errors.New("fallback down")}
	client := NewFallbackClient(primary, fallback, testLogger())

	_, err := client.Complete(context.Background(), LLMRequest{})
	assert.ErrorContains(t, err, "fallback down")
}

func TestFallbackCompleteNoFallbackConfigured(t *testing.T) {
	primary := &stubClient{err: errors.New("primary down")}
	client := NewFallbackClient(primary, nil, testLogger())

	_, err := client.Complete(context.Background(), LLMRequest{})
	assert.ErrorContains(t, err, "primary down")
}

func TestFallbackStreamUsesPrimaryChunks(t *testing.T) {
	primary := &stubStreamingClient{chunks: []string{"Bon", "jour"}}
	fallback := &stubClient{text: "fallback"}
	client := NewFallbackClient(primary, fallback, testLogger())

	var got []string
	err := client.Stream(context.Background(), LLMRequest{}, func(c string) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"Bon", "jour"}, got)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackStreamFallsBackBeforeFirstChunk(t *testing.T) {
	primary := &stubStreamingClient{streamErr: errors.New("unavailable")}
	fallback := &stubClient{text: "réponse de secours"}
	client := NewFallbackClient(primary, fallback, testLogger())

	var got []string
	err := client.Stream(context.Background(), LLMRequest{}, func(c string) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"réponse de secours"}, got)
}

func TestFallbackStreamNoRestartAfterEmission(t *testing.T) {
	primary := &stubStreamingClient{chunks: []string{"Bon"}, streamErr: errors.New("cut off"), errAfter: 1}
	fallback := &stubClient{text: "fallback"}
	client := NewFallbackClient(primary, fallback, testLogger())

	var got []string
	err := client.Stream(context.Background(), LLMRequest{}, func(c string) error {
		got = append(got, c)
		return nil
	})
	assert.ErrorContains(t, err, "cut off")
	assert.Equal(t, []string{"Bon"}, got)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackStreamNonStreamingPrimary(t *testing.T) {
	primary := &stubClient{text: "tout en une fois"}
	client := NewFallbackClient(primary, nil, testLogger())

	var got []string
	err := client.Stream(context.Background(), LLMRequest{}, func(c string) error {
		got = append(got, c)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"tout en une fois"}, got)
}
