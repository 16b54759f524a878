package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
)

const headerRequestID = "X-Request-Id"

// requestID makes sure every request carries a request ID, echoes it back to the client and attaches it to the
// request logger
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		id := request.Header.Get(headerRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		writer.Header().Set(headerRequestID, id)

		logger := hlog.FromRequest(request).With().Str("request_id", id).Logger()
		next.ServeHTTP(writer, request.WithContext(logger.WithContext(request.Context())))
	})
}

func logAccess(request *http.Request, status, size int, duration time.Duration) {
	var event *zerolog.Event
	logger := hlog.FromRequest(request)
	switch {
	case status >= 500:
		event = logger.Error()
	case status >= 400:
		event = logger.Warn()
	default:
		event = logger.Info()
	}
	event.
		Str("method", request.Method).
		Str("path", request.URL.Path).
		Int("status", status).
		Int("size", size).
		Dur("duration", duration).
		Msg("handled request")
}

// MiddlewareLimitBody caps the size of request bodies to the configured maximum
func (service *Service) MiddlewareLimitBody(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		request.Body = http.MaxBytesReader(writer, request.Body, int64(service.Config.MaxBodySize.Bytes()))
		next.ServeHTTP(writer, request)
	})
}
