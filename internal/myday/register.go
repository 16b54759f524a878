package myday

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

const registrationStatusOK = "200"

type registerRequest struct {
	SessionID                         uint64 `json:"SessionId"`
	RegistrationCode                  string `json:"SessionRegistrationCode"`
	ForceIncorrectSessionRegistration bool   `json:"ForceIncorrectSessionRegistration"`
}

type registerResponse struct {
	Status string `json:"Status"`
	OK     bool   `json:"OK"`
}

// Register registers the attendance of the identity credential's owner at a session.
// The registration counts as successful only if the myday API reports both status "200" and OK; any other answer
// yields ErrInvalidSessionDetails. Failures to perform the request at all yield ErrRequest.
// Registrations are not idempotent and are never retried.
func (client *Client) Register(ctx context.Context, sessionID uint64, registrationCode string) error {
	payload := &registerRequest{
		SessionID:                         sessionID,
		RegistrationCode:                  registrationCode,
		ForceIncorrectSessionRegistration: false,
	}
	response := new(registerResponse)
	if err := client.call(ctx, http.MethodPost, endpointRegister, nil, payload, response); err != nil {
		// Both ErrRequest and the cause have to stay matchable
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	if response.Status != registrationStatusOK || !response.OK {
		return errors.WithMessagef(ErrInvalidSessionDetails, "status %q, ok %t", response.Status, response.OK)
	}
	return nil
}
