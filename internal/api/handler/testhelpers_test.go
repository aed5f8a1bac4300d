package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/MelDxKviel/reels-downloader-bot/internal/api"
	"github.com/MelDxKviel/reels-downloader-bot/internal/api/handler"
	"github.com/MelDxKviel/reels-downloader-bot/internal/cache"
	"github.com/MelDxKviel/reels-downloader-bot/internal/config"
	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
	"github.com/MelDxKviel/reels-downloader-bot/internal/repository"
	"github.com/MelDxKviel/reels-downloader-bot/internal/service"
)

const testAPIKey = "test-api-key"

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeFetcher returns a successful result backed by a real temp file.
type fakeFetcher struct {
	dir string
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, p domain.Platform) domain.DownloadResult {
	path := filepath.Join(f.dir, "out.mp4")
	os.WriteFile(path, []byte("video"), 0644)
	return domain.DownloadResult{Success: true, FilePath: path, Title: "clip"}
}

// testEnv wires the full router over temp storage.
type testEnv struct {
	router  http.Handler
	userSvc *service.UserService
	jobRepo repository.JobRepository
	store   *cache.Store
}

func newTestEnv(t *testing.T, admins ...int64) *testEnv {
	t.Helper()
	logger := testLogger()

	dir := t.TempDir()
	store, err := cache.Open(dir, logger)
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	db, err := repository.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("OpenDB: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	jobRepo := repository.NewInMemoryJobRepository()
	userRepo := repository.NewSQLiteUserRepository(db)
	statsRepo := repository.NewSQLiteStatsRepository(db)

	downloadSvc := service.NewDownloadService(store, &fakeFetcher{dir: dir}, jobRepo, logger)
	statsSvc := service.NewStatsService(statsRepo, logger)
	userSvc := service.NewUserService(userRepo, config.AdminConfig{Users: admins}, logger)

	router := api.NewRouter(
		handler.NewDownloadHandler(downloadSvc, logger),
		handler.NewAdminHandler(userSvc, statsSvc, logger),
		handler.NewCacheHandler(store, logger),
		handler.NewHealthHandler(jobRepo),
		userSvc,
		testAPIKey,
	)

	return &testEnv{
		router:  router,
		userSvc: userSvc,
		jobRepo: jobRepo,
		store:   store,
	}
}

// do executes a request against the router and returns the recorder.
func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

func adminHeaders() map[string]string {
	return map[string]string{"X-API-Key": testAPIKey}
}

func userHeaders(userID string) map[string]string {
	return map[string]string{"X-User-ID": userID}
}
