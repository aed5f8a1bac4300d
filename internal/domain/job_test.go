package domain

import (
	"testing"
)

func TestNewJob(t *testing.T) {
	job := NewJob("job_1", 42, "https://youtu.be/abc", PlatformYouTube)

	if job.Status != JobStatusQueued {
		t.Errorf("status = %s, want queued", job.Status)
	}
	if job.Result != nil {
		t.Error("new job must have no result")
	}
	if job.CreatedAt.IsZero() || job.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func TestJob_MarkDone(t *testing.T) {
	job := NewJob("job_1", 42, "https://youtu.be/abc", PlatformYouTube)
	job.MarkProcessing()
	if job.Status != JobStatusProcessing {
		t.Fatalf("status = %s, want processing", job.Status)
	}

	job.MarkDone(DownloadResult{Success: true, FilePath: "/tmp/a.mp4"})
	if job.Status != JobStatusCompleted {
		t.Errorf("status = %s, want completed", job.Status)
	}
	if job.Result == nil || !job.Result.Success {
		t.Errorf("result = %+v, want success", job.Result)
	}

	failed := NewJob("job_2", 42, "https://youtu.be/def", PlatformYouTube)
	failed.MarkDone(Failure("Video is unavailable"))
	if failed.Status != JobStatusFailed {
		t.Errorf("status = %s, want failed", failed.Status)
	}
}

func TestJob_Clone(t *testing.T) {
	job := NewJob("job_1", 42, "https://youtu.be/abc", PlatformYouTube)
	job.MarkDone(DownloadResult{Success: true, FilePath: "/tmp/a.mp4"})

	clone := job.Clone()
	clone.Status = JobStatusFailed
	clone.Result.Success = false

	if job.Status != JobStatusCompleted {
		t.Errorf("status = %s, clone mutation leaked into the original", job.Status)
	}
	if !job.Result.Success {
		t.Error("clone shares the original's result")
	}
}

func TestFailure(t *testing.T) {
	res := Failure("boom")
	if res.Success {
		t.Error("Failure result must not be successful")
	}
	if res.ErrorMessage != "boom" {
		t.Errorf("ErrorMessage = %q", res.ErrorMessage)
	}
	if res.FromCache {
		t.Error("Failure result must not be FromCache")
	}
}
