package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/lumident/dental-clinic-platform/internal/intake"
	"github.com/lumident/dental-clinic-platform/internal/observability/metrics"
	"github.com/lumident/dental-clinic-platform/pkg/logging"
)

// LeadNotification is the payload handed to the dispatcher once the intake
// endpoint has gated the conversation.
type LeadNotification struct {
	Intent     intake.Intent
	Contact    intake.ContactInfo
	Summary    string
	Transcript string
	Urgent     bool
}

// Dispatcher formats qualifying leads into notification emails and hands
// them to the configured sender. Recipients are injected so deployments can
// route leads without code changes.
type Dispatcher struct {
	sender     EmailSender
	recipients []string
	clinicName string
	metrics    *metrics.PlatformMetrics
	logger     *logging.Logger
}

func NewDispatcher(sender EmailSender, recipients []string, clinicName string, m *metrics.PlatformMetrics, logger *logging.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Default()
	}
	return &Dispatcher{
		sender:     sender,
		recipients: recipients,
		clinicName: clinicName,
		metrics:    m,
		logger:     logger,
	}
}

// Dispatch sends the lead notification to every configured recipient. The
// first delivery failure aborts and is returned to the caller; there is no
// retry or queue.
func (d *Dispatcher) Dispatch(ctx context.Context, lead LeadNotification) error {
	if d.sender == nil {
		return fmt.Errorf("notify: no email sender configured")
	}
	if len(d.recipients) == 0 {
		return fmt.Errorf("notify: no recipients configured")
	}

	subject := d.subject(lead)
	body := d.body(lead)

	for _, to := range d.recipients {
		err := d.sender.Send(ctx, EmailMessage{
			To:      to,
			ToName:  d.clinicName,
			Subject: subject,
			Body:    body,
		})
		if err != nil {
			d.logger.Error("lead notification delivery failed", "to", to, "intent", string(lead.Intent), "error", err)
			d.metrics.ObserveEmail("failed")
			return fmt.Errorf("notify: lead notification to %s failed: %w", to, err)
		}
		d.metrics.ObserveEmail("sent")
	}

	d.logger.Info("lead notification dispatched",
		"intent", string(lead.Intent),
		"recipients", len(d.recipients),
		"urgent", lead.Urgent,
	)
	return nil
}

func (d *Dispatcher) subject(lead LeadNotification) string {
	var subject string
	switch lead.Intent {
	case intake.IntentAppointment:
		subject = "🦷 Nouvelle demande de rendez-vous"
	case intake.IntentQuote:
		subject = "💶 Nouvelle demande de devis"
	default:
		subject = "📩 Nouvelle demande patient"
	}
	if name := lead.Contact.Name; name != "" {
		subject += " - " + name
	}
	if lead.Urgent {
		subject = "🚨 URGENT " + subject
	}
	return subject
}

func (d *Dispatcher) body(lead LeadNotification) string {
	var b strings.Builder

	b.WriteString("Résumé de la conversation :\n")
	b.WriteString(lead.Summary)
	b.WriteString("\n\n")

	fields := []struct {
		label string
		value string
	}{
		{"Nom", lead.Contact.Name},
		{"Email", lead.Contact.Email},
		{"Téléphone", lead.Contact.Phone},
		{"Service", lead.Contact.Service},
		{"Praticien souhaité", lead.Contact.Practitioner},
		{"Disponibilités", lead.Contact.Availability},
	}
	b.WriteString("Informations patient :\n")
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		b.WriteString(fmt.Sprintf("- %s : %s\n", f.label, f.value))
	}

	if lead.Transcript != "" {
		b.WriteString("\nConversation complète :\n")
		b.WriteString(lead.Transcript)
		b.WriteString("\n")
	}

	b.WriteString("\n--\n")
	b.WriteString(d.clinicName)
	b.WriteString("\n")

	return b.String()
}
