package handler_test

import (
	"net/http"
	"os"
	"testing"

	"github.com/MelDxKviel/reels-downloader-bot/internal/api/handler"
	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
)

func TestCache_InfoEmpty(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/cache", nil, adminHeaders())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	info := decode[handler.CacheInfoResponse](t, rec)
	if info.Entries != 0 || info.TotalBytes != 0 {
		t.Errorf("info = %+v, want empty cache", info)
	}
	if info.Dir == "" {
		t.Error("info missing cache dir")
	}
}

func TestCache_InfoAndClear(t *testing.T) {
	env := newTestEnv(t)

	path := env.store.Dir() + "/cached.mp4"
	if err := os.WriteFile(path, []byte("0123456789"), 0644); err != nil {
		t.Fatal(err)
	}
	env.store.Put("https://youtu.be/abc", domain.DownloadResult{
		Success: true, FilePath: path, Title: "clip",
	})

	info := decode[handler.CacheInfoResponse](t, env.do(t, http.MethodGet, "/api/v1/cache", nil, adminHeaders()))
	if info.Entries != 1 {
		t.Errorf("Entries = %d, want 1", info.Entries)
	}
	if info.TotalBytes != 10 {
		t.Errorf("TotalBytes = %d, want 10", info.TotalBytes)
	}

	cleared := decode[handler.ClearResponse](t, env.do(t, http.MethodDelete, "/api/v1/cache", nil, adminHeaders()))
	if cleared.FilesRemoved != 1 {
		t.Errorf("FilesRemoved = %d, want 1", cleared.FilesRemoved)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("cached file should be deleted")
	}

	info = decode[handler.CacheInfoResponse](t, env.do(t, http.MethodGet, "/api/v1/cache", nil, adminHeaders()))
	if info.Entries != 0 {
		t.Errorf("Entries after clear = %d, want 0", info.Entries)
	}
}
