package intake

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// availabilityMaxLen bounds the verbatim availability excerpt.
const availabilityMaxLen = 100

var (
	emailRE = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// French numbers: leading 0 or +33, then 9 digits in pairs with
	// optional space/dot/dash separators.
	phoneRE = regexp.MustCompile(`(?:\+33|0)\s?[1-9](?:[\s.\-]?\d{2}){4}`)

	phoneSeparators = strings.NewReplacer(" ", "", ".", "", "-", "", " ", "")

	nameTextNormalizer = strings.NewReplacer(
		"’", "'", // right single quote
		"‘", "'", // left single quote
	)

	// A name word starts with an uppercase letter; hyphens and apostrophes
	// cover compound French names (Jean-Pierre, D'Angelo).
	nameWord = `\p{Lu}[\p{L}'\-]+`

	namePhraseRE = regexp.MustCompile(`(?:(?i:je m'appelle|my name is|je suis|i am|i'm|c'est|it's))\s+(` + nameWord + `\s+` + nameWord + `)`)
	bareNameRE   = regexp.MustCompile(`(?m)^\s*(` + nameWord + `\s+` + nameWord + `)\s*$`)

	weekdayTerms = []string{
		"lundi", "mardi", "mercredi", "jeudi", "vendredi", "samedi", "dimanche",
		"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday",
	}

	// 14h, 14h30, 14:30, 2pm
	hourRE = regexp.MustCompile(`(?i)\b\d{1,2}\s?(?:h(?:\d{2})?\b|:\d{2}\b|\s?(?:am|pm)\b)`)
)

// Extractor derives ContactInfo from a conversation using fixed pattern
// matching. It is deterministic and side-effect-free.
type Extractor struct {
	fields []fieldFunc
}

// fieldFunc inspects one patient message and returns a ContactInfo with at
// most one field populated.
type fieldFunc func(content string) ContactInfo

// NewExtractor builds an extractor for the given service vocabulary and
// practitioner surname list (both matched case-insensitively).
func NewExtractor(services, practitioners []string) *Extractor {
	return &Extractor{
		fields: []fieldFunc{
			extractEmail,
			extractPhone,
			extractName,
			serviceField(services),
			practitionerField(practitioners),
			extractAvailability,
		},
	}
}

// Extract scans patient messages in chronological order. Assistant turns
// are skipped; any other role label counts as the patient, matching
// Transcript(), since chat widgets commonly send "user". Each field is
// matched independently (one message can yield several fields) and the
// first match per field wins: the accumulated value is never overwritten.
func (e *Extractor) Extract(conv Conversation) ContactInfo {
	var info ContactInfo
	for _, msg := range conv {
		if msg.Role == RoleAssistant {
			continue
		}
		for _, field := range e.fields {
			info = info.Merge(field(msg.Content))
		}
	}
	return info
}

func extractEmail(content string) ContactInfo {
	if m := emailRE.FindString(content); m != "" {
		return ContactInfo{Email: strings.ToLower(m)}
	}
	return ContactInfo{}
}

func extractPhone(content string) ContactInfo {
	if m := phoneRE.FindString(content); m != "" {
		return ContactInfo{Phone: phoneSeparators.Replace(m)}
	}
	return ContactInfo{}
}

func extractName(content string) ContactInfo {
	content = nameTextNormalizer.Replace(content)
	if m := namePhraseRE.FindStringSubmatch(content); len(m) == 2 {
		return ContactInfo{Name: m[1]}
	}
	if m := bareNameRE.FindStringSubmatch(content); len(m) == 2 {
		return ContactInfo{Name: m[1]}
	}
	return ContactInfo{}
}

func serviceField(services []string) fieldFunc {
	return func(content string) ContactInfo {
		lower := strings.ToLower(content)
		for _, svc := range services {
			if strings.Contains(lower, strings.ToLower(svc)) {
				return ContactInfo{Service: strings.ToLower(svc)}
			}
		}
		return ContactInfo{}
	}
}

func practitionerField(surnames []string) fieldFunc {
	return func(content string) ContactInfo {
		lower := strings.ToLower(content)
		for _, surname := range surnames {
			s := strings.ToLower(strings.TrimSpace(surname))
			if s == "" {
				continue
			}
			if strings.Contains(lower, s) {
				return ContactInfo{Practitioner: "Dr. " + capitalize(s)}
			}
		}
		return ContactInfo{}
	}
}

// extractAvailability stores the start of any message mentioning a weekday
// or an hour-like expression, verbatim, as the availability text.
func extractAvailability(content string) ContactInfo {
	lower := strings.ToLower(content)
	matched := hourRE.MatchString(content)
	if !matched {
		for _, day := range weekdayTerms {
			if strings.Contains(lower, day) {
				matched = true
				break
			}
		}
	}
	if !matched {
		return ContactInfo{}
	}
	return ContactInfo{Availability: truncateRunes(content, availabilityMaxLen)}
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return strings.ToUpper(string(r)) + s[size:]
}
