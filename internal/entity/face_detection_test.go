package entity

import (
	"encoding/json"
	"testing"
)

func TestParseLikelihood(t *testing.T) {
	tests := map[string]Likelihood{
		"VERY_UNLIKELY":          LikelihoodVeryUnlikely,
		"UNLIKELY":               LikelihoodUnlikely,
		"POSSIBLE":               LikelihoodPossible,
		"LIKELY":                 LikelihoodLikely,
		"VERY_LIKELY":            LikelihoodVeryLikely,
		"very_likely":            LikelihoodUnknown,
		"likely":                 LikelihoodUnknown,
		" LIKELY ":               LikelihoodUnknown,
		"UNKNOWN":                LikelihoodUnknown,
		"LIKELIHOOD_UNSPECIFIED": LikelihoodUnknown,
		"":                       LikelihoodUnknown,
		"MAYBE":                  LikelihoodUnknown,
	}

	for label, want := range tests {
		if got := ParseLikelihood(label); got != want {
			t.Errorf("ParseLikelihood(%q) = %v, want %v", label, got, want)
		}
	}
}

func TestLikelihoodScore(t *testing.T) {
	for want, l := range []Likelihood{
		LikelihoodUnknown,
		LikelihoodVeryUnlikely,
		LikelihoodUnlikely,
		LikelihoodPossible,
		LikelihoodLikely,
		LikelihoodVeryLikely,
	} {
		if got := l.Score(); got != want {
			t.Errorf("%v.Score() = %d, want %d", l, got, want)
		}
	}

	if got := Likelihood(42).Score(); got != 0 {
		t.Errorf("out of range likelihood scored %d, want 0", got)
	}
}

func TestFaceJSONUsesLabels(t *testing.T) {
	var f Face
	payload := `{"joy":"LIKELY","sorrow":"VERY_UNLIKELY","anger":"whatever","surprise":"POSSIBLE"}`
	if err := json.Unmarshal([]byte(payload), &f); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	want := Face{
		Joy:      LikelihoodLikely,
		Sorrow:   LikelihoodVeryUnlikely,
		Anger:    LikelihoodUnknown,
		Surprise: LikelihoodPossible,
	}
	if f != want {
		t.Fatalf("got %+v, want %+v", f, want)
	}

	out, err := json.Marshal(f)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	const expected = `{"joy":"LIKELY","sorrow":"VERY_UNLIKELY","anger":"UNKNOWN","surprise":"POSSIBLE"}`
	if string(out) != expected {
		t.Fatalf("marshal = %s, want %s", out, expected)
	}
}
