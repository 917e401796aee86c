package cli

import (
	"bytes"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/lazypower/soulgatchi/internal/client"
	"github.com/lazypower/soulgatchi/internal/engine"
	"github.com/lazypower/soulgatchi/internal/pet"
)

func TestBar(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{0, "[" + strings.Repeat(".", barWidth) + "]"},
		{50, "[" + strings.Repeat("#", 10) + strings.Repeat(".", 10) + "]"},
		{100, "[" + strings.Repeat("#", barWidth) + "]"},
		{140, "[" + strings.Repeat("#", barWidth) + "]"},
	}
	for _, tt := range tests {
		if got := bar(tt.v); got != tt.want {
			t.Errorf("bar(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestPrintStatus(t *testing.T) {
	prayers := pet.NewPrayerStatus()
	prayers[pet.Fajr] = true

	st := engine.Status{
		Profile:               pet.Profile{Name: "Nur", Emoji: "🐣", AgeHours: 7},
		Stats:                 pet.Uniform(20),
		Mood:                  pet.MoodSad,
		Stage:                 pet.StageFor(7),
		Alive:                 true,
		Rituals:               pet.NewRitualCounts(),
		Prayers:               prayers,
		SecondsUntilNextDecay: 4,
	}

	var buf bytes.Buffer
	printStatus(&buf, st)
	out := buf.String()

	for _, want := range []string{"🐣 Nur", "age 7h", "next decay in 4s", "[x] Fajr", "[ ] Asr", "Subhanallah 0"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestPrintResultSetCompleted(t *testing.T) {
	var buf bytes.Buffer
	printResult(&buf, engine.Result{
		Accepted:     true,
		Message:      "Recited: Subhanallah (33x)",
		SetCompleted: true,
	})
	if !strings.Contains(buf.String(), "Set of 33 complete!") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestActionError(t *testing.T) {
	conflict := func(body string) error {
		return &client.StatusError{Method: "POST", Path: "/api/pet/rest", Code: http.StatusConflict, Body: []byte(body)}
	}

	if got := actionError(conflict(`{"error":"Nur has passed away"}`)); got.Error() != "Nur has passed away" {
		t.Errorf("error = %q, want server message", got)
	}

	for _, body := range []string{`<html>bad gateway</html>`, `{}`, ``} {
		got := actionError(conflict(body))
		if got == nil || got.Error() == "" {
			t.Fatalf("body %q: empty error", body)
		}
		if !strings.Contains(got.Error(), "status 409") {
			t.Errorf("body %q: error = %q, want status fallback", body, got)
		}
	}

	plain := errors.New("connection refused")
	if got := actionError(plain); got != plain {
		t.Errorf("error = %v, want passthrough", got)
	}
}
