package myday

import (
	"context"
	"net/http"
	"net/url"
)

type sessionResponse struct {
	Expires *string `json:"expires"`
}

// Expiry retrieves the expiry of the myday session the identity credential belongs to.
// The value is returned exactly as reported by the myday API.
func (client *Client) Expiry(ctx context.Context) (string, error) {
	sessionID, err := client.SessionID()
	if err != nil {
		return "", err
	}

	response := new(sessionResponse)
	if err := client.call(ctx, http.MethodGet, endpointSession+url.PathEscape(sessionID), nil, nil, response); err != nil {
		return "", err
	}
	if response.Expires == nil {
		return "", missingField(endpointSession, "expires")
	}
	return *response.Expires, nil
}
