package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lazypower/soulgatchi/internal/pet"
)

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	w := httptest.NewRecorder()
	srv.ServeHTTP(w, req)
	return w
}

type resultBody struct {
	Accepted     bool     `json:"accepted"`
	Changed      bool     `json:"changed"`
	Message      string   `json:"message"`
	Mood         pet.Mood `json:"mood"`
	MoodImproved bool     `json:"mood_improved"`
	SetCompleted bool     `json:"set_completed"`
	Count        int      `json:"count"`
	Pet          struct {
		Stats pet.Stats `json:"stats"`
		Alive bool      `json:"alive"`
	} `json:"pet"`
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) resultBody {
	t.Helper()
	var res resultBody
	if err := json.Unmarshal(w.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode body: %v; body: %s", err, w.Body.String())
	}
	return res
}

func TestGetPet(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "GET", "/api/pet", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, http.StatusOK, w.Body.String())
	}

	var body struct {
		Profile struct {
			Name string `json:"name"`
		} `json:"profile"`
		Stats                 pet.Stats       `json:"stats"`
		Mood                  string          `json:"mood"`
		Alive                 bool            `json:"alive"`
		SecondsUntilNextDecay int             `json:"seconds_until_next_decay"`
		Prayers               map[string]bool `json:"prayer_status"`
		Rituals               map[string]int  `json:"ritual_counts"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)

	if body.Profile.Name != "SoulGatchi" {
		t.Errorf("name = %q, want SoulGatchi", body.Profile.Name)
	}
	if body.Stats != pet.Uniform(20) {
		t.Errorf("stats = %+v, want baseline", body.Stats)
	}
	if body.Mood != "sad" || !body.Alive {
		t.Errorf("mood = %q alive = %v", body.Mood, body.Alive)
	}
	if body.SecondsUntilNextDecay != 10 {
		t.Errorf("seconds_until_next_decay = %d, want 10", body.SecondsUntilNextDecay)
	}
	if len(body.Prayers) != 6 || len(body.Rituals) != 4 {
		t.Errorf("prayers = %v rituals = %v", body.Prayers, body.Rituals)
	}
}

func TestRitualRoute(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "POST", "/api/pet/rituals/Allahu%20Akbar", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
	res := decodeResult(t, w)
	if !res.Accepted || res.Count != 1 {
		t.Errorf("result = %+v", res)
	}
	if res.Message != "Recited: Allahu Akbar (1x)" {
		t.Errorf("message = %q", res.Message)
	}
	if res.Pet.Stats.Energy != 21 || res.Pet.Stats.Health != 20.5 {
		t.Errorf("stats = %+v", res.Pet.Stats)
	}
}

func TestRitualRouteSetCompletion(t *testing.T) {
	srv := testServer(t)

	var res resultBody
	for i := 0; i < 33; i++ {
		res = decodeResult(t, do(t, srv, "POST", "/api/pet/rituals/Subhanallah", ""))
	}
	if !res.SetCompleted || res.Count != 33 {
		t.Errorf("result = %+v, want set completed at 33", res)
	}
}

func TestPrayerRoute(t *testing.T) {
	srv := testServer(t)

	res := decodeResult(t, do(t, srv, "POST", "/api/pet/prayers/Fajr", ""))
	want := pet.Stats{Health: 28, Spirituality: 35, Energy: 28, Happiness: 30}
	if !res.Changed || res.Pet.Stats != want {
		t.Errorf("result = %+v", res)
	}

	again := do(t, srv, "POST", "/api/pet/prayers/Fajr", "")
	if again.Code != http.StatusOK {
		t.Fatalf("repeat status = %d", again.Code)
	}
	res = decodeResult(t, again)
	if res.Changed || res.Pet.Stats != want {
		t.Errorf("repeat result = %+v", res)
	}
}

func TestPrayerRouteUnknownSlot(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "POST", "/api/pet/prayers/Brunch", "")
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestRestAndStudyRoutes(t *testing.T) {
	srv := testServer(t)

	res := decodeResult(t, do(t, srv, "POST", "/api/pet/rest", ""))
	if res.Pet.Stats.Energy != 40 || res.Message != "Resting..." {
		t.Errorf("rest result = %+v", res)
	}

	res = decodeResult(t, do(t, srv, "POST", "/api/pet/study", `{"topic":"Tajweed"}`))
	if res.Pet.Stats.Energy != 35 || res.Pet.Stats.Spirituality != 25 {
		t.Errorf("study result = %+v", res)
	}
}

func TestStudyRouteValidation(t *testing.T) {
	srv := testServer(t)

	if w := do(t, srv, "POST", "/api/pet/study", `not json`); w.Code != http.StatusBadRequest {
		t.Errorf("invalid json status = %d, want 400", w.Code)
	}
	if w := do(t, srv, "POST", "/api/pet/study", `{}`); w.Code != http.StatusBadRequest {
		t.Errorf("missing topic status = %d, want 400", w.Code)
	}
}

func TestDeadPetConflict(t *testing.T) {
	env := newTestEnv(t)
	env.eng.Reset("Nur", "")

	// Starve the pet: 20 decay windows takes health from 20 to 0.
	for i := 0; i < 20; i++ {
		env.clock.Advance(10 * time.Second)
		env.eng.CheckDecay()
	}
	if env.eng.IsAlive() {
		t.Fatal("pet should be dead")
	}

	w := do(t, env.srv, "POST", "/api/pet/rest", "")
	if w.Code != http.StatusConflict {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusConflict)
	}
	var body map[string]any
	json.Unmarshal(w.Body.Bytes(), &body)
	if body["error"] == nil {
		t.Error("expected error message")
	}

	w = do(t, env.srv, "POST", "/api/pet/reset", `{"name":"Huda","emoji":"🐨"}`)
	if w.Code != http.StatusOK {
		t.Fatalf("reset status = %d", w.Code)
	}
	var st struct {
		Alive   bool `json:"alive"`
		Profile struct {
			Name  string `json:"name"`
			Emoji string `json:"emoji"`
		} `json:"profile"`
	}
	json.Unmarshal(w.Body.Bytes(), &st)
	if !st.Alive || st.Profile.Name != "Huda" || st.Profile.Emoji != "🐨" {
		t.Errorf("reset body = %s", w.Body.String())
	}
}

func TestResetEmptyBody(t *testing.T) {
	srv := testServer(t)

	w := do(t, srv, "POST", "/api/pet/reset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d; body: %s", w.Code, w.Body.String())
	}
}

func TestDailyResetRoute(t *testing.T) {
	srv := testServer(t)

	do(t, srv, "POST", "/api/pet/prayers/Asr", "")
	w := do(t, srv, "POST", "/api/pet/daily-reset", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var body struct {
		Prayers map[string]bool `json:"prayer_status"`
	}
	json.Unmarshal(w.Body.Bytes(), &body)
	if body.Prayers["Asr"] {
		t.Error("Asr still marked after daily reset")
	}
}

func TestHistoryAndLives(t *testing.T) {
	env := newTestEnv(t)

	do(t, env.srv, "POST", "/api/pet/rest", "")
	do(t, env.srv, "POST", "/api/pet/study", `{"topic":"Seerah"}`)
	do(t, env.srv, "POST", "/api/pet/reset", `{"name":"Nur"}`)
	env.eng.Flush()

	w := do(t, env.srv, "GET", "/api/history?limit=2", "")
	var hist struct {
		Count      int `json:"count"`
		Activities []struct {
			Kind   string `json:"kind"`
			Detail string `json:"detail"`
		} `json:"activities"`
	}
	json.Unmarshal(w.Body.Bytes(), &hist)
	if hist.Count != 2 {
		t.Fatalf("count = %d, want 2; body: %s", hist.Count, w.Body.String())
	}
	if hist.Activities[0].Kind != "reset" || hist.Activities[1].Detail != "Seerah" {
		t.Errorf("activities = %+v", hist.Activities)
	}

	w = do(t, env.srv, "GET", "/api/lives", "")
	var lives struct {
		Count int `json:"count"`
		Lives []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
		} `json:"lives"`
	}
	json.Unmarshal(w.Body.Bytes(), &lives)
	if lives.Count != 2 {
		t.Fatalf("lives count = %d, want 2; body: %s", lives.Count, w.Body.String())
	}
	if lives.Lives[0].Name != "Nur" || lives.Lives[0].Status != "alive" || lives.Lives[1].Status != "ended" {
		t.Errorf("lives = %+v", lives.Lives)
	}
}
