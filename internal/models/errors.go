package models

import (
	"errors"
	"fmt"
	"net/http"
)

// Request-level errors that map to specific HTTP statuses. Anything else is
// reported to the client as a generic 500.
var (
	ErrWrongAPIKey  = forbiddenError("wrong api key")
	ErrNotFound     = notFoundError("no contract details found")
	ErrInvalidEvent = invalidEventError("invalid job type")
)

type forbiddenError string

func (e forbiddenError) Error() string { return string(e) }

type notFoundError string

func (e notFoundError) Error() string { return string(e) }

type invalidEventError string

func (e invalidEventError) Error() string { return string(e) }

// AuthError reports a failed logon against the contract system.
type AuthError struct {
	Err error
}

func (e *AuthError) Error() string { return "contract system logon failed: " + e.Err.Error() }
func (e *AuthError) Unwrap() error { return e.Err }

// FetchError reports a failed contract-system read. Status carries the
// upstream HTTP status, or 500 for transport-level failures.
type FetchError struct {
	Op     string
	ContNo string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s failed for %s (status %d): %v", e.Op, e.ContNo, e.Status, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// DispatchError reports a failed event delivery to the messaging platform.
type DispatchError struct {
	CustomerID string
	Err        error
}

func (e *DispatchError) Error() string {
	return "event dispatch failed for " + e.CustomerID + ": " + e.Err.Error()
}

func (e *DispatchError) Unwrap() error { return e.Err }

// StatusOf maps an error to the HTTP status returned to the client.
// Only the key mismatch, missing header, and unknown event cases expose a
// specific status; all upstream detail collapses to 500.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, ErrWrongAPIKey):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidEvent):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
