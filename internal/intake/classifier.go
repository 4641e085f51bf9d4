package intake

import "strings"

// Appointment terms take priority over quote terms; anything else is
// classified as "other" and never reaches the dispatcher.
var (
	appointmentTerms = []string{
		"rendez-vous",
		"rendez vous",
		"rdv",
		"prendre date",
		"réserver",
		"reserver",
		"appointment",
		"book",
	}

	quoteTerms = []string{
		"devis",
		"tarif",
		"prix",
		"combien",
		"coût",
		"cout",
		"quote",
		"price",
		"how much",
	}
)

// Classify labels a conversation from its full concatenated text. It is a
// total function: every input maps to exactly one intent.
func Classify(conv Conversation) Intent {
	text := strings.ToLower(conv.FullText())
	for _, term := range appointmentTerms {
		if strings.Contains(text, term) {
			return IntentAppointment
		}
	}
	for _, term := range quoteTerms {
		if strings.Contains(text, term) {
			return IntentQuote
		}
	}
	return IntentOther
}
