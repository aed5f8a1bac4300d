package handler_test

import (
	"net/http"
	"testing"

	"github.com/MelDxKviel/reels-downloader-bot/internal/api/handler"
)

func TestHealth_Live(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decode[handler.HealthResponse](t, rec)
	if resp.Status != "ok" {
		t.Errorf("status = %q, want ok", resp.Status)
	}
}

func TestHealth_Ready(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/ready", nil, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	resp := decode[handler.HealthResponse](t, rec)
	if resp.Queue == nil {
		t.Error("ready response missing queue stats")
	}
}
