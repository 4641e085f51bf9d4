package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSES struct {
	input *sesv2.SendEmailInput
	err   error
}

func (f *fakeSES) SendEmail(_ context.Context, params *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSenderBuildsRequest(t *testing.T) {
	api := &fakeSES{}
	s := newSESSender(api, SESConfig{FromEmail: "no-reply@lumident.fr"}, testLogger())

	err := s.Send(context.Background(), EmailMessage{
		To:      "contact@lumident.fr",
		Subject: "🦷 Nouvelle demande de rendez-vous",
		Body:    "corps du message",
		HTML:    "<p>corps du message</p>",
	})
	require.NoError(t, err)
	require.NotNil(t, api.input)

	assert.Equal(t, "Cabinet Dentaire Lumident <no-reply@lumident.fr>", aws.ToString(api.input.FromEmailAddress))
	assert.Equal(t, []string{"contact@lumident.fr"}, api.input.Destination.ToAddresses)
	assert.Equal(t, "🦷 Nouvelle demande de rendez-vous", aws.ToString(api.input.Content.Simple.Subject.Data))
	assert.Equal(t, "corps du message", aws.ToString(api.input.Content.Simple.Body.Text.Data))
	assert.Equal(t, "<p>corps du message</p>", aws.ToString(api.input.Content.Simple.Body.Html.Data))
}

func TestSESSenderPropagatesError(t *testing.T) {
	api := &fakeSES{err: errors.New("throttled")}
	s := newSESSender(api, SESConfig{FromEmail: "no-reply@lumident.fr"}, testLogger())

	err := s.Send(context.Background(), EmailMessage{To: "contact@lumident.fr", Subject: "test", Body: "x"})
	assert.ErrorContains(t, err, "throttled")
}

func TestNewSESSenderNilClient(t *testing.T) {
	assert.Nil(t, NewSESSender(nil, SESConfig{}, testLogger()))
}
