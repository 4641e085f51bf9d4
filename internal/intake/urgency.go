package intake

import "strings"

// UrgencyDetector flags conversations mentioning dental emergencies. The
// keyword set is injected configuration so the intake pipeline and the chat
// relay share one list.
type UrgencyDetector struct {
	terms []string
}

func NewUrgencyDetector(terms []string) *UrgencyDetector {
	lowered := make([]string, 0, len(terms))
	for _, t := range terms {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			lowered = append(lowered, t)
		}
	}
	return &UrgencyDetector{terms: lowered}
}

// Detect reports whether the text contains any urgency keyword.
func (d *UrgencyDetector) Detect(text string) bool {
	if d == nil {
		return false
	}
	lower := strings.ToLower(text)
	for _, term := range d.terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
