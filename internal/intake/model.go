package intake

import "strings"

const (
	RolePatient   = "patient"
	RoleAssistant = "assistant"
)

// Message is one turn of a chat widget conversation.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Conversation is an ordered, chronological message sequence.
type Conversation []Message

// FullText joins the content of every message, all roles, with single
// spaces. This is the classifier input.
func (c Conversation) FullText() string {
	parts := make([]string, 0, len(c))
	for _, msg := range c {
		if strings.TrimSpace(msg.Content) != "" {
			parts = append(parts, msg.Content)
		}
	}
	return strings.Join(parts, " ")
}

// Transcript renders the conversation as alternating "Patient:" /
// "Assistant:" lines, the format fed to the summarizer and embedded in
// notification emails.
func (c Conversation) Transcript() string {
	var b strings.Builder
	for i, msg := range c {
		if i > 0 {
			b.WriteString("\n")
		}
		switch msg.Role {
		case RoleAssistant:
			b.WriteString("Assistant: ")
		default:
			b.WriteString("Patient: ")
		}
		b.WriteString(msg.Content)
	}
	return b.String()
}

// Intent is the classified purpose of a conversation.
type Intent string

const (
	IntentAppointment Intent = "appointment"
	IntentQuote       Intent = "quote"
	IntentOther       Intent = "other"
)

// Actionable reports whether the intent warrants a lead notification.
func (i Intent) Actionable() bool {
	return i == IntentAppointment || i == IntentQuote
}

// ParseIntent maps a wire value to a known intent. Unknown values report
// false so callers can fall back to their own classification.
func ParseIntent(s string) (Intent, bool) {
	switch i := Intent(s); i {
	case IntentAppointment, IntentQuote, IntentOther:
		return i, true
	}
	return IntentOther, false
}

// ContactInfo holds the fields the extractor can discover in a
// conversation. Every field is independently optional.
type ContactInfo struct {
	Name         string `json:"name,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Service      string `json:"service,omitempty"`
	Practitioner string `json:"practitioner,omitempty"`
	Availability string `json:"availability,omitempty"`
}

// Merge returns a left-biased merge: fields already set on c win, blanks
// are filled from other.
func (c ContactInfo) Merge(other ContactInfo) ContactInfo {
	if c.Name == "" {
		c.Name = other.Name
	}
	if c.Email == "" {
		c.Email = other.Email
	}
	if c.Phone == "" {
		c.Phone = other.Phone
	}
	if c.Service == "" {
		c.Service = other.Service
	}
	if c.Practitioner == "" {
		c.Practitioner = other.Practitioner
	}
	if c.Availability == "" {
		c.Availability = other.Availability
	}
	return c
}

// HasIdentity reports whether the lead can actually be contacted: a name
// plus at least one of email or phone.
func (c ContactInfo) HasIdentity() bool {
	return c.Name != "" && (c.Email != "" || c.Phone != "")
}
