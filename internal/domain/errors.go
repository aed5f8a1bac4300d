package domain

import "errors"

// Domain errors.
var (
	// ErrUnsupportedURL is returned when a URL matches no supported platform.
	ErrUnsupportedURL = errors.New("unsupported URL")

	// ErrUserNotFound is returned when a user cannot be found.
	ErrUserNotFound = errors.New("user not found")

	// ErrJobNotFound is returned when a job cannot be found.
	ErrJobNotFound = errors.New("job not found")

	// ErrNoJobs is returned when there are no jobs to process.
	ErrNoJobs = errors.New("no jobs available")
)
