package gateway

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/hlog"
	"github.com/skybi/myday-gateway/internal/api/schema"
	"github.com/skybi/myday-gateway/internal/myday"
)

var (
	errRegistrationInvalidSessionDetails = &schema.Error{
		Type:    "registration.invalidSessionDetails",
		Message: "The myday API rejected the given session ID or registration code.",
		Details: map[string]any{},
	}
	errRegistrationFailed = &schema.Error{
		Type:    "registration.requestFailed",
		Message: "The registration could not be sent to the myday API.",
		Details: map[string]any{},
	}
)

// writeUpstreamError maps an error returned by the myday client to an API error response
func (service *Service) writeUpstreamError(writer http.ResponseWriter, request *http.Request, err error) {
	switch {
	case errors.Is(err, myday.ErrInvalidSessionDetails):
		service.writer.WriteErrors(writer, http.StatusBadRequest, errRegistrationInvalidSessionDetails)
	case errors.Is(err, myday.ErrRequest):
		hlog.FromRequest(request).Warn().Err(err).Msg("could not perform a session registration")
		service.writer.WriteErrors(writer, http.StatusBadGateway, errRegistrationFailed)
	case errors.Is(err, myday.ErrUpstreamUnavailable):
		hlog.FromRequest(request).Warn().Err(err).Msg("the myday API is unavailable")
		service.writer.WriteErrors(writer, http.StatusBadGateway, schema.ErrUpstreamUnavailable)
	case errors.Is(err, myday.ErrUpstreamProtocol):
		hlog.FromRequest(request).Warn().Err(err).Msg("the myday API responded unexpectedly")
		service.writer.WriteErrors(writer, http.StatusBadGateway, schema.ErrUpstreamProtocol)
	default:
		service.writer.WriteInternalError(writer, err)
	}
}
