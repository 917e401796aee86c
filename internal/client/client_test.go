package client

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestNewFallsBackToEnvThenDefault(t *testing.T) {
	t.Setenv("SOULGATCHI_URL", "")
	if got := New("").URL(); got != defaultServerURL {
		t.Errorf("URL = %q, want %q", got, defaultServerURL)
	}

	t.Setenv("SOULGATCHI_URL", "http://pet.local:9000")
	if got := New("").URL(); got != "http://pet.local:9000" {
		t.Errorf("URL = %q, want env value", got)
	}

	if got := New("http://explicit:1").URL(); got != "http://explicit:1" {
		t.Errorf("URL = %q, want explicit value", got)
	}
}

func TestPostSendsJSON(t *testing.T) {
	var gotBody, gotType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/pet/study" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		gotType = r.Header.Get("Content-Type")
		w.Write([]byte(`{"accepted":true}`))
	}))
	defer ts.Close()

	data, err := New(ts.URL).PostJSON("/api/pet/study", map[string]string{"topic": "Fiqh"})
	if err != nil {
		t.Fatalf("PostJSON: %v", err)
	}
	if string(data) != `{"accepted":true}` {
		t.Errorf("body = %s", data)
	}
	if gotBody != `{"topic":"Fiqh"}` {
		t.Errorf("sent body = %s", gotBody)
	}
	if gotType != "application/json" {
		t.Errorf("content type = %q", gotType)
	}
}

func TestStatusErrorKeepsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"error":"Nur has passed away"}`))
	}))
	defer ts.Close()

	data, err := New(ts.URL).Post("/api/pet/rest", nil)
	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("err = %v, want *StatusError", err)
	}
	if se.Code != http.StatusConflict {
		t.Errorf("code = %d, want 409", se.Code)
	}
	if string(data) != `{"error":"Nur has passed away"}` {
		t.Errorf("body = %s", data)
	}
}

func TestHealthy(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/health" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`{"status":"ok"}`))
	}))

	c := New(ts.URL)
	if !c.Healthy() {
		t.Error("Healthy = false, want true")
	}

	ts.Close()
	if c.Healthy() {
		t.Error("Healthy = true after server closed")
	}
}
