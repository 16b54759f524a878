package myday

import "github.com/pkg/errors"

var (
	// ErrMalformedCredential is returned when the identity credential can not be decoded or lacks the session ID claim
	ErrMalformedCredential = errors.New("the identity credential is malformed")

	// ErrUpstreamUnavailable is returned when the myday API could not be reached
	ErrUpstreamUnavailable = errors.New("the myday API is unavailable")

	// ErrUpstreamProtocol is returned when the myday API responded with a body that does not match the expected shape
	ErrUpstreamProtocol = errors.New("the myday API responded unexpectedly")

	// ErrInvalidSessionDetails is returned when the myday API rejected a session registration
	ErrInvalidSessionDetails = errors.New("invalid session details")

	// ErrRequest is returned when a session registration could not be performed at all
	ErrRequest = errors.New("the registration request failed")
)
