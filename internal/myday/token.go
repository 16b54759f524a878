package myday

import (
	"context"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hako/durafmt"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"
)

const (
	grantTypeGetToken = "get_token"
	clientID          = "myday-mobile-af53151c-8124-4f7b-9979-7169fcf64bf1"
)

// Larger 'expires_in' values are clamped to this lifetime
const maxTokenLifetime = time.Duration(math.MaxInt64/int64(time.Second)) * time.Second

type tokenResponse struct {
	AccessToken *string `json:"access_token"`
	ExpiresIn   *uint64 `json:"expires_in"`
}

// Exchange exchanges the identity credential and device code for a short-lived bearer access token.
// Every call performs a fresh round trip; tokens are never cached.
func (client *Client) Exchange(ctx context.Context) (*oauth2.Token, error) {
	token, err := client.exchange(ctx)
	if err != nil {
		tokenExchanges.WithLabelValues("failure").Inc()
		return nil, err
	}
	tokenExchanges.WithLabelValues("success").Inc()
	return token, nil
}

func (client *Client) exchange(ctx context.Context) (*oauth2.Token, error) {
	ctx, cancel := client.withTimeout(ctx)
	defer cancel()

	form := url.Values{
		"grant_type": {grantTypeGetToken},
		"client_id":  {clientID},
		"id_token":   {client.credential},
		"code":       {client.deviceCode},
	}
	request, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+endpointToken, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, errors.Wrap(err, "could not build the token request")
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", "application/json")

	response, err := client.httpClient.Do(request)
	if err != nil {
		return nil, transportError(err, "exchanging the identity credential")
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return nil, errors.WithMessagef(ErrUpstreamProtocol, "%s responded with status %d", endpointToken, response.StatusCode)
	}

	payload := new(tokenResponse)
	if err := decodeResponse(response, endpointToken, payload); err != nil {
		return nil, err
	}
	if payload.AccessToken == nil || *payload.AccessToken == "" {
		return nil, missingField(endpointToken, "access_token")
	}
	if payload.ExpiresIn == nil {
		return nil, missingField(endpointToken, "expires_in")
	}

	lifetime := maxTokenLifetime
	if *payload.ExpiresIn < uint64(maxTokenLifetime/time.Second) {
		lifetime = time.Duration(*payload.ExpiresIn) * time.Second
	}
	log.Debug().Str("lifetime", durafmt.Parse(lifetime).String()).Msg("exchanged the identity credential for an access token")

	return &oauth2.Token{
		AccessToken: *payload.AccessToken,
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(lifetime),
	}, nil
}
