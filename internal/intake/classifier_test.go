package intake

import "testing"

func TestClassifyAppointment(t *testing.T) {
	tests := []string{
		"je voudrais prendre rendez-vous pour un détartrage",
		"un RDV mardi serait parfait",
		"I would like to book an appointment",
		"peut-on réserver un créneau ?",
	}
	for _, text := range tests {
		if intent := Classify(patientSays(text)); intent != IntentAppointment {
			t.Errorf("Classify(%q) = %q, want appointment", text, intent)
		}
	}
}

func TestClassifyQuote(t *testing.T) {
	tests := []string{
		"je voudrais un devis pour un blanchiment",
		"combien coûte un implant ?",
		"quel est le tarif d'une couronne",
		"how much is teeth whitening?",
	}
	for _, text := range tests {
		if intent := Classify(patientSays(text)); intent != IntentQuote {
			t.Errorf("Classify(%q) = %q, want quote", text, intent)
		}
	}
}

func TestClassifyOther(t *testing.T) {
	tests := []string{
		"",
		"bonjour",
		"quels sont vos horaires d'ouverture ?",
		"merci beaucoup, bonne journée",
	}
	for _, text := range tests {
		if intent := Classify(patientSays(text)); intent != IntentOther {
			t.Errorf("Classify(%q) = %q, want other", text, intent)
		}
	}
}

func TestClassifyAppointmentWinsOverQuote(t *testing.T) {
	conv := patientSays("je voudrais un devis et prendre rendez-vous")
	if intent := Classify(conv); intent != IntentAppointment {
		t.Errorf("appointment terms must take priority, got %q", intent)
	}
}

func TestClassifyUsesAllRoles(t *testing.T) {
	conv := Conversation{
		{Role: RoleAssistant, Content: "souhaitez-vous un rendez-vous ?"},
		{Role: RolePatient, Content: "oui"},
	}
	if intent := Classify(conv); intent != IntentAppointment {
		t.Errorf("classifier must scan all roles, got %q", intent)
	}
}

func TestIntentActionable(t *testing.T) {
	if !IntentAppointment.Actionable() || !IntentQuote.Actionable() {
		t.Error("appointment and quote must be actionable")
	}
	if IntentOther.Actionable() {
		t.Error("other must never be actionable")
	}
}

func TestParseIntent(t *testing.T) {
	tests := []struct {
		in   string
		want Intent
		ok   bool
	}{
		{"appointment", IntentAppointment, true},
		{"quote", IntentQuote, true},
		{"other", IntentOther, true},
		{"", IntentOther, false},
		{"complaint", IntentOther, false},
	}
	for _, tt := range tests {
		got, ok := ParseIntent(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseIntent(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestUrgencyDetector(t *testing.T) {
	d := NewUrgencyDetector([]string{"urgence", "douleur", " abcès "})
	if !d.Detect("j'ai une DOULEUR terrible depuis hier") {
		t.Error("expected urgency match, case-insensitive")
	}
	if !d.Detect("c'est un abcès je crois") {
		t.Error("expected trimmed keyword to match")
	}
	if d.Detect("simple question de tarif") {
		t.Error("unexpected urgency match")
	}
	var nilDetector *UrgencyDetector
	if nilDetector.Detect("urgence") {
		t.Error("nil detector must report false")
	}
}
