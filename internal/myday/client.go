package myday

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/c2h5oh/datasize"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// The upstream host is fixed; credentials and access tokens must never be sent anywhere else
const (
	upstreamHost = "api.myday.cloud"
	baseURL      = "https://" + upstreamHost
)

const (
	maxRedirects    = 10
	maxResponseSize = 4 * datasize.MB
)

const (
	endpointToken          = "/sessions/token"
	endpointSession        = "/sessions/session/"
	endpointSessionsByDate = "/legacy/api/endpoint/CISConnectLite/sessions"
	endpointSessionsByCode = "/legacy/api/endpoint/CISConnectLite/search"
	endpointRegister       = "/legacy/api/endpoint/CISConnectLite/register"
)

// Client talks to the myday scheduling API on behalf of a single identity credential.
// It holds no mutable state and may be used by multiple goroutines at once.
type Client struct {
	httpClient *http.Client
	timeout    time.Duration

	credential string
	deviceCode string
}

// Option configures optional aspects of a Client
type Option func(client *Client)

// WithHTTPClient makes the client send its requests through the given HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(client *Client) {
		cpy := *httpClient
		client.httpClient = &cpy
	}
}

// WithTimeout bounds every single upstream call to the given duration.
// A value <= 0 disables the timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(client *Client) {
		client.timeout = timeout
	}
}

// New creates a new myday API client using the given identity credential and device code
func New(credential, deviceCode string, opts ...Option) *Client {
	client := &Client{
		httpClient: &http.Client{},
		credential: credential,
		deviceCode: deviceCode,
	}
	for _, opt := range opts {
		opt(client)
	}
	client.httpClient.Transport = instrument(client.httpClient.Transport)
	client.httpClient.CheckRedirect = confineRedirects
	return client
}

// confineRedirects only follows redirects that stay on the upstream host.
// The oauth2 transport attaches the bearer token to every hop, so the standard library's header stripping on
// cross-host redirects does not apply.
func confineRedirects(request *http.Request, via []*http.Request) error {
	if request.URL.Scheme != "https" || request.URL.Host != upstreamHost {
		return errors.WithMessagef(ErrUpstreamProtocol, "refusing to follow a redirect to %s://%s", request.URL.Scheme, request.URL.Host)
	}
	if len(via) >= maxRedirects {
		return errors.WithMessagef(ErrUpstreamProtocol, "stopped after %d redirects", maxRedirects)
	}
	return nil
}

// transportError classifies an error returned by http.Client.Do
func transportError(err error, format string, args ...any) error {
	if errors.Is(err, ErrUpstreamProtocol) {
		return err
	}
	return errors.WithMessagef(ErrUpstreamUnavailable, format+": %v", append(args, err)...)
}

func (client *Client) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if client.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, client.timeout)
}

// call exchanges a fresh access token and performs an authorized JSON request against the given endpoint.
// The response body is decoded into target regardless of the HTTP status code as the legacy endpoints report
// failures inside the body.
func (client *Client) call(ctx context.Context, method, endpoint string, query url.Values, body, target any) error {
	token, err := client.Exchange(ctx)
	if err != nil {
		return err
	}

	ctx, cancel := client.withTimeout(ctx)
	defer cancel()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "could not encode the request body")
		}
		reader = bytes.NewReader(raw)
	}

	address := baseURL + endpoint
	if len(query) > 0 {
		address += "?" + query.Encode()
	}
	request, err := http.NewRequestWithContext(ctx, method, address, reader)
	if err != nil {
		return errors.Wrap(err, "could not build the upstream request")
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	authorized := &http.Client{
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(token),
			Base:   client.httpClient.Transport,
		},
		CheckRedirect: client.httpClient.CheckRedirect,
		Timeout:       client.httpClient.Timeout,
	}
	response, err := authorized.Do(request)
	if err != nil {
		return transportError(err, "%s %s", method, endpoint)
	}
	defer response.Body.Close()

	return decodeResponse(response, endpoint, target)
}

// decodeResponse decodes the JSON body of an upstream response into target.
// Bodies larger than maxResponseSize are rejected without being buffered completely.
func decodeResponse(response *http.Response, endpoint string, target any) error {
	raw, err := io.ReadAll(io.LimitReader(response.Body, int64(maxResponseSize.Bytes())+1))
	if err != nil {
		return errors.WithMessagef(ErrUpstreamUnavailable, "reading %s response: %v", endpoint, err)
	}
	if uint64(len(raw)) > maxResponseSize.Bytes() {
		return errors.WithMessagef(ErrUpstreamProtocol, "%s response exceeds %s", endpoint, maxResponseSize.HumanReadable())
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return errors.WithMessagef(ErrUpstreamProtocol, "%s responded with status %d and an undecodable body: %v", endpoint, response.StatusCode, err)
	}
	return nil
}

// missingField reports a required field the upstream response did not contain
func missingField(endpoint, field string) error {
	return errors.WithMessagef(ErrUpstreamProtocol, "%s response lacks the '%s' field", endpoint, field)
}
