package myday

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
)

const (
	testAccessToken = "abc"
	testDeviceCode  = "device-code"
	testSessionID   = "session-1"
)

// credentialWithClaims builds an unsigned identity credential carrying the given raw JSON claims
func credentialWithClaims(claims string) string {
	encoding := base64.RawURLEncoding
	return encoding.EncodeToString([]byte(`{"alg":"RS256","typ":"JWT"}`)) + "." +
		encoding.EncodeToString([]byte(claims)) + "." +
		encoding.EncodeToString([]byte("signature"))
}

// rewriteTransport redirects every request to the fake upstream while keeping its path and query
type rewriteTransport struct {
	target *url.URL
}

func (transport *rewriteTransport) RoundTrip(request *http.Request) (*http.Response, error) {
	cpy := request.Clone(request.Context())
	cpy.URL.Scheme = transport.target.Scheme
	cpy.URL.Host = transport.target.Host
	cpy.Host = ""
	return http.DefaultTransport.RoundTrip(cpy)
}

// fakeUpstream simulates the myday API
type fakeUpstream struct {
	t         *testing.T
	server    *httptest.Server
	mux       *http.ServeMux
	exchanges atomic.Int32
}

func newFakeUpstream(t *testing.T) *fakeUpstream {
	t.Helper()
	upstream := &fakeUpstream{
		t:   t,
		mux: http.NewServeMux(),
	}
	upstream.mux.HandleFunc(endpointToken, upstream.handleToken)
	upstream.server = httptest.NewServer(upstream.mux)
	t.Cleanup(upstream.server.Close)
	return upstream
}

func (upstream *fakeUpstream) handleToken(writer http.ResponseWriter, request *http.Request) {
	upstream.exchanges.Add(1)
	if request.Method != http.MethodPost || request.ParseForm() != nil {
		writer.WriteHeader(http.StatusBadRequest)
		return
	}
	form := request.PostForm
	if form.Get("grant_type") != "get_token" ||
		form.Get("client_id") != clientID ||
		form.Get("id_token") == "" ||
		form.Get("code") != testDeviceCode {
		writer.WriteHeader(http.StatusBadRequest)
		writer.Write([]byte(`{"error":"invalid_grant"}`))
		return
	}
	writer.Write([]byte(`{"access_token":"` + testAccessToken + `","expires_in":3600}`))
}

// handle registers an authorized endpoint on the fake upstream
func (upstream *fakeUpstream) handle(path string, handler http.HandlerFunc) {
	upstream.mux.HandleFunc(path, func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Authorization") != "Bearer "+testAccessToken {
			writer.WriteHeader(http.StatusUnauthorized)
			writer.Write([]byte(`{"message":"unauthorized"}`))
			return
		}
		handler(writer, request)
	})
}

// handleJSON registers an authorized endpoint that always responds with the given value
func (upstream *fakeUpstream) handleJSON(path string, value any) {
	upstream.handle(path, func(writer http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(writer).Encode(value)
	})
}

func (upstream *fakeUpstream) client() *Client {
	return upstream.clientWith(credentialWithClaims(`{"sid":"` + testSessionID + `"}`))
}

func (upstream *fakeUpstream) clientWith(credential string) *Client {
	target, err := url.Parse(upstream.server.URL)
	if err != nil {
		upstream.t.Fatalf("parsing fake upstream URL: %v", err)
	}
	return New(credential, testDeviceCode, WithHTTPClient(&http.Client{Transport: &rewriteTransport{target: target}}))
}
