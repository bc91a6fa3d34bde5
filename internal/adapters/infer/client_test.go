package infer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"moodwire/internal/core/emotion"
)

func TestClassify_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/classify" || r.Method != http.MethodPost {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var in struct {
			Text   string `json:"text"`
			Lang   string `json:"lang"`
			Scheme string `json:"scheme"`
		}
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.Lang != "lv" || in.Scheme != "normal" || in.Text == "" {
			t.Errorf("request body = %+v", in)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"scores": map[string]float64{"positive": 0.7, "neutral": 0.2, "negative": 0.1},
		})
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	scores, err := c.Classify(context.Background(), "lv", emotion.SchemeNormal, "laba diena")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if scores["positive"] != 0.7 {
		t.Fatalf("scores = %v", scores)
	}
}

func TestClassify_EmptyScoresIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"scores": map[string]float64{}})
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	if _, err := c.Classify(context.Background(), "ru", emotion.SchemeEkman, "x"); err == nil {
		t.Fatalf("expected error on empty score map")
	}
}

func TestClassify_Non200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model loading", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	if _, err := c.Classify(context.Background(), "lv", emotion.SchemeNormal, "x"); err == nil {
		t.Fatalf("expected error on 503")
	}
}

func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var in struct {
			Lang string `json:"lang"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		if in.Lang == "en" {
			_ = json.NewEncoder(w).Encode(map[string]any{"supported": false})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"supported": true,
			"embedding": []float32{0.1, 0.2, 0.3},
		})
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})

	vec, ok, err := c.Embed(context.Background(), "virsraksts", "lv")
	if err != nil || !ok || len(vec) != 3 {
		t.Fatalf("Embed lv = %v %v %v", vec, ok, err)
	}

	vec, ok, err = c.Embed(context.Background(), "headline", "en")
	if err != nil || ok || vec != nil {
		t.Fatalf("Embed en = %v %v %v", vec, ok, err)
	}
}

func TestHealthy(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/healthz" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := NewClient(Options{BaseURL: srv.URL})
	if err := c.Healthy(context.Background()); err != nil {
		t.Fatalf("Healthy: %v", err)
	}
}
