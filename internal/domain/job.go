package domain

import (
	"time"
)

// JobID is a unique identifier for a download job.
type JobID string

// String returns the string representation of the JobID.
func (id JobID) String() string {
	return string(id)
}

// JobStatus represents the current state of a download job.
type JobStatus string

const (
	JobStatusQueued     JobStatus = "queued"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// Job represents one queued download request. Retries are not tracked here;
// the extraction layer owns its own bounded retry policy.
type Job struct {
	ID        JobID
	UserID    int64
	URL       string
	Platform  Platform
	Status    JobStatus
	Result    *DownloadResult
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewJob creates a queued job for the given request.
func NewJob(id JobID, userID int64, url string, platform Platform) *Job {
	now := time.Now()
	return &Job{
		ID:        id,
		UserID:    userID,
		URL:       url,
		Platform:  platform,
		Status:    JobStatusQueued,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Clone returns a copy of the job that shares no mutable state with it.
func (j *Job) Clone() *Job {
	c := *j
	if j.Result != nil {
		r := *j.Result
		c.Result = &r
	}
	return &c
}

// MarkProcessing updates the job status to processing.
func (j *Job) MarkProcessing() {
	j.Status = JobStatusProcessing
	j.UpdatedAt = time.Now()
}

// MarkDone records the download result and the final status.
func (j *Job) MarkDone(result DownloadResult) {
	j.Result = &result
	if result.Success {
		j.Status = JobStatusCompleted
	} else {
		j.Status = JobStatusFailed
	}
	j.UpdatedAt = time.Now()
}
