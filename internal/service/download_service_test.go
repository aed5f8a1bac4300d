package service

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MelDxKviel/reels-downloader-bot/internal/cache"
	"github.com/MelDxKviel/reels-downloader-bot/internal/domain"
	"github.com/MelDxKviel/reels-downloader-bot/internal/repository"
)

// fakeFetcher counts calls and produces a fresh artifact per invocation.
type fakeFetcher struct {
	mu     sync.Mutex
	calls  atomic.Int64
	dir    string
	result func() domain.DownloadResult
	block  chan struct{} // optional: holds Fetch until closed
}

func (f *fakeFetcher) Fetch(ctx context.Context, url string, p domain.Platform) domain.DownloadResult {
	f.calls.Add(1)
	if f.block != nil {
		<-f.block
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.result()
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func successResult(t *testing.T, dir, name string) func() domain.DownloadResult {
	return func() domain.DownloadResult {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
			t.Errorf("write artifact: %v", err)
		}
		return domain.DownloadResult{Success: true, FilePath: path, Title: "clip"}
	}
}

func newTestService(t *testing.T, fetcher *fakeFetcher) (*DownloadService, *cache.Store) {
	t.Helper()
	dir := t.TempDir()
	store, err := cache.Open(dir, testLogger())
	if err != nil {
		t.Fatalf("cache.Open: %v", err)
	}
	fetcher.dir = dir
	svc := NewDownloadService(store, fetcher, repository.NewInMemoryJobRepository(), testLogger())
	return svc, store
}

func TestDownloadService_UnsupportedURL(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher)

	res := svc.Download(context.Background(), "https://example.com/page")

	if res.Success {
		t.Fatal("unsupported URL must fail")
	}
	if !strings.Contains(res.ErrorMessage, "Supported platforms") {
		t.Errorf("ErrorMessage = %q, want platform listing", res.ErrorMessage)
	}
	if n := fetcher.calls.Load(); n != 0 {
		t.Errorf("fetcher called %d times for unsupported URL", n)
	}
}

func TestDownloadService_CacheMissThenHit(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher)
	fetcher.result = successResult(t, fetcher.dir, "a.mp4")

	url := "https://youtu.be/abc123"

	first := svc.Download(context.Background(), url)
	if !first.Success || first.FromCache {
		t.Fatalf("first download = %+v, want fresh success", first)
	}

	second := svc.Download(context.Background(), url)
	if !second.Success || !second.FromCache {
		t.Fatalf("second download = %+v, want cache hit", second)
	}
	if second.FilePath != first.FilePath {
		t.Errorf("cache returned %q, want %q", second.FilePath, first.FilePath)
	}
	if n := fetcher.calls.Load(); n != 1 {
		t.Errorf("fetcher called %d times, want 1", n)
	}
}

func TestDownloadService_NormalizedVariantsShareEntry(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher)
	fetcher.result = successResult(t, fetcher.dir, "a.mp4")

	svc.Download(context.Background(), "https://youtu.be/abc123")
	res := svc.Download(context.Background(), "https://youtu.be/abc123?si=share_tracker")

	if !res.FromCache {
		t.Error("tracking-parameter variant should hit the cache")
	}
	if n := fetcher.calls.Load(); n != 1 {
		t.Errorf("fetcher called %d times, want 1", n)
	}
}

func TestDownloadService_FailureNotCached(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher)
	fetcher.result = func() domain.DownloadResult {
		return domain.Failure("Video is unavailable")
	}

	url := "https://youtu.be/gone"
	first := svc.Download(context.Background(), url)
	if first.Success {
		t.Fatal("expected failure")
	}

	second := svc.Download(context.Background(), url)
	if second.FromCache {
		t.Error("failures must not be served from cache")
	}
	if n := fetcher.calls.Load(); n != 2 {
		t.Errorf("fetcher called %d times, want 2 (failure retried fresh)", n)
	}
}

func TestDownloadService_ConcurrentDuplicatesShareOneFetch(t *testing.T) {
	fetcher := &fakeFetcher{block: make(chan struct{})}
	svc, _ := newTestService(t, fetcher)
	fetcher.result = successResult(t, fetcher.dir, "a.mp4")

	url := "https://youtu.be/abc123"
	const callers = 5

	var wg sync.WaitGroup
	results := make([]domain.DownloadResult, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = svc.Download(context.Background(), url)
		}(i)
	}

	// Let all callers pile onto the flight before releasing it.
	for fetcher.calls.Load() == 0 {
		time.Sleep(time.Millisecond)
	}
	close(fetcher.block)
	wg.Wait()

	if n := fetcher.calls.Load(); n != 1 {
		t.Errorf("fetcher called %d times, want 1 shared flight", n)
	}
	for i, res := range results {
		if !res.Success {
			t.Errorf("caller %d failed: %s", i, res.ErrorMessage)
		}
	}
}

func TestDownloadService_PanicBecomesFailure(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher)
	fetcher.result = func() domain.DownloadResult {
		panic("extractor went sideways")
	}

	res := svc.Download(context.Background(), "https://youtu.be/abc123")

	if res.Success {
		t.Fatal("panicking fetch must yield a failure result")
	}
	if res.ErrorMessage == "" {
		t.Error("failure result needs a user-facing message")
	}
}

func TestDownloadService_SubmitUnsupported(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher)

	_, err := svc.Submit(context.Background(), 1, "https://example.com/nope")
	if !errors.Is(err, domain.ErrUnsupportedURL) {
		t.Errorf("Submit error = %v, want ErrUnsupportedURL", err)
	}
}

func TestDownloadService_SubmitEnqueues(t *testing.T) {
	fetcher := &fakeFetcher{}
	svc, _ := newTestService(t, fetcher)

	resp, err := svc.Submit(context.Background(), 7, "https://www.tiktok.com/@u/video/1")
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if resp.Status != domain.JobStatusQueued {
		t.Errorf("status = %s, want queued", resp.Status)
	}
	if resp.Platform != domain.PlatformTikTok {
		t.Errorf("platform = %s, want TikTok", resp.Platform)
	}

	job, err := svc.GetJob(context.Background(), resp.JobID)
	if err != nil {
		t.Fatalf("GetJob: %v", err)
	}
	if job.UserID != 7 {
		t.Errorf("job user = %d, want 7", job.UserID)
	}
}
