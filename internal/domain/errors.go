package domain

import "errors"

// Sentinel errors shared across repositories and services. Handlers map
// ErrPermissionDenied to 403; everything else surfaces as a generic 400.
var (
	ErrNotFound         = errors.New("not found")
	ErrPermissionDenied = errors.New("permission denied")
)
