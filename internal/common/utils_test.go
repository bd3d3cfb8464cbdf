package common

import "testing"

func TestNormalize(t *testing.T) {
	if got := Normalize("  Will it   RAIN\ttomorrow? "); got != "will it rain tomorrow?" {
		t.Fatalf("unexpected normalized text: %q", got)
	}
}

func TestHasAny(t *testing.T) {
	if !HasAny("is there pollution", "air quality", "pollution") {
		t.Fatalf("expected a match")
	}
	if HasAny("sunny", "rain", "snow") || HasAny("anything") {
		t.Fatalf("expected no match")
	}
}
