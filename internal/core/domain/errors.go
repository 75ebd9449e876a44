package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrSearchFailed indicates the backend call failed or returned a non-success status
	ErrSearchFailed = errors.New("search failed")

	// ErrSearchTimeout indicates the backend call exceeded the configured timeout
	ErrSearchTimeout = errors.New("search timed out")

	// ErrSuperseded indicates the response arrived after a newer search was issued
	ErrSuperseded = errors.New("search superseded by a newer request")

	// ErrEngineUnavailable indicates the search engine could not be reached
	ErrEngineUnavailable = errors.New("search engine unavailable")
)
