package myday

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Exchange(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := upstream.client()

	token, err := client.Exchange(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testAccessToken, token.AccessToken)
	assert.Equal(t, "Bearer", token.Type())
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.Expiry, time.Minute)
	assert.EqualValues(t, 1, upstream.exchanges.Load())
}

func TestClient_Exchange_NeverCaches(t *testing.T) {
	upstream := newFakeUpstream(t)
	client := upstream.client()

	for i := 0; i < 3; i++ {
		_, err := client.Exchange(context.Background())
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, upstream.exchanges.Load())
}

func TestClient_Exchange_ProtocolErrors(t *testing.T) {
	cases := map[string]string{
		"not json":             `<html>bad gateway</html>`,
		"missing access token": `{"expires_in":3600}`,
		"empty access token":   `{"access_token":"","expires_in":3600}`,
		"missing expiry":       `{"access_token":"abc"}`,
		"wrong expiry type":    `{"access_token":"abc","expires_in":"soon"}`,
	}

	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
				writer.Write([]byte(body))
			}))
			defer server.Close()

			_, err := clientFor(t, server.URL).Exchange(context.Background())
			assert.True(t, errors.Is(err, ErrUpstreamProtocol), "expected ErrUpstreamProtocol, got %v", err)
		})
	}
}

func TestClient_Exchange_RejectedCredential(t *testing.T) {
	upstream := newFakeUpstream(t)
	target, err := url.Parse(upstream.server.URL)
	require.NoError(t, err)
	client := New(credentialWithClaims(`{"sid":"x"}`), "wrong-device-code",
		WithHTTPClient(&http.Client{Transport: &rewriteTransport{target: target}}))

	_, err = client.Exchange(context.Background())
	assert.True(t, errors.Is(err, ErrUpstreamProtocol), "expected ErrUpstreamProtocol, got %v", err)
}

func TestClient_Exchange_Unavailable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	address := server.URL
	server.Close()

	_, err := clientFor(t, address).Exchange(context.Background())
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable), "expected ErrUpstreamUnavailable, got %v", err)
}

func TestClient_Exchange_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		select {
		case <-request.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	client := New("a.b.c", testDeviceCode,
		WithHTTPClient(&http.Client{Transport: &rewriteTransport{target: target}}),
		WithTimeout(50*time.Millisecond))

	_, err = client.Exchange(context.Background())
	assert.True(t, errors.Is(err, ErrUpstreamUnavailable), "expected ErrUpstreamUnavailable, got %v", err)
}

func clientFor(t *testing.T, address string) *Client {
	t.Helper()
	target, err := url.Parse(address)
	require.NoError(t, err)
	return New(credentialWithClaims(`{"sid":"`+testSessionID+`"}`), testDeviceCode,
		WithHTTPClient(&http.Client{Transport: &rewriteTransport{target: target}}))
}

func TestClient_Exchange_RedirectToForeignHost(t *testing.T) {
	var leaked atomic.Int32
	foreign := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		leaked.Add(1)
		writer.Write([]byte(`{"access_token":"abc","expires_in":3600}`))
	}))
	defer foreign.Close()

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Redirect(writer, request, foreign.URL+endpointToken, http.StatusTemporaryRedirect)
	}))
	defer server.Close()

	_, err := clientFor(t, server.URL).Exchange(context.Background())
	assert.True(t, errors.Is(err, ErrUpstreamProtocol), "expected ErrUpstreamProtocol, got %v", err)
	assert.EqualValues(t, 0, leaked.Load())
}

func TestClient_Exchange_ClampsLifetime(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Write([]byte(`{"access_token":"abc","expires_in":18446744073709551615}`))
	}))
	defer server.Close()

	token, err := clientFor(t, server.URL).Exchange(context.Background())
	require.NoError(t, err)
	assert.True(t, token.Expiry.After(time.Now().Add(100*365*24*time.Hour)), "expected a far future expiry, got %s", token.Expiry)
}
