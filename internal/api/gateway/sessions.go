package gateway

import (
	"net/http"

	"github.com/skybi/myday-gateway/internal/api/schema"
	"github.com/skybi/myday-gateway/internal/api/validation"
	"github.com/skybi/myday-gateway/internal/myday"
)

const (
	queryRegistrationCode = "registration_code"
	queryStartTime        = "start_time"
	queryEndTime          = "end_time"
)

var errSessionsNoSearchMode = &schema.Error{
	Type:    "validation.query.sessions.noSearchMode",
	Message: "Either 'registration_code' or both 'start_time' and 'end_time' have to be given.",
	Details: map[string]any{},
}

// EndpointGetSessions handles the 'GET /sessions?registration_code={u64}' and
// 'GET /sessions?start_time={string}&end_time={string}' endpoints
func (service *Service) EndpointGetSessions(writer http.ResponseWriter, request *http.Request) {
	mode, validationErr := validation.Exclusive(request,
		[]string{queryRegistrationCode},
		[]string{queryStartTime, queryEndTime},
	)
	if validationErr != nil {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
		return
	}

	var sessions []myday.Session
	var err error
	switch mode {
	case 0:
		code, validationErr := validation.QueryUnsigned(request, queryRegistrationCode, true, 0)
		if validationErr != nil {
			service.writer.WriteErrors(writer, http.StatusBadRequest, validationErr)
			return
		}
		sessions, err = service.Upstream.SessionsByCode(request.Context(), code)
	case 1:
		var validationErrs []*schema.Error
		startTime, validationErr := validation.QueryString(request, queryStartTime, true)
		if validationErr != nil {
			validationErrs = append(validationErrs, validationErr)
		}
		endTime, validationErr := validation.QueryString(request, queryEndTime, true)
		if validationErr != nil {
			validationErrs = append(validationErrs, validationErr)
		}
		if len(validationErrs) > 0 {
			service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
			return
		}
		sessions, err = service.Upstream.SessionsByDate(request.Context(), startTime, endTime)
	default:
		service.writer.WriteErrors(writer, http.StatusBadRequest, errSessionsNoSearchMode)
		return
	}
	if err != nil {
		service.writeUpstreamError(writer, request, err)
		return
	}

	if sessions == nil {
		sessions = []myday.Session{}
	}
	service.writer.WriteJSON(writer, sessions)
}
