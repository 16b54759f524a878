package gateway

import (
	"net/http"

	"github.com/skybi/myday-gateway/internal/api/schema"
)

type endpointRegisterRequestPayload struct {
	SessionID        *uint64 `json:"session_id" required:"true"`
	RegistrationCode *string `json:"registration_code" required:"true"`
}

// EndpointRegister handles the 'POST /register' endpoint
func (service *Service) EndpointRegister(writer http.ResponseWriter, request *http.Request) {
	payload, validationErrs, err := schema.UnmarshalBody[endpointRegisterRequestPayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	if len(validationErrs) > 0 {
		service.writer.WriteErrors(writer, http.StatusBadRequest, validationErrs...)
		return
	}

	if err := service.Upstream.Register(request.Context(), *payload.SessionID, *payload.RegistrationCode); err != nil {
		service.writeUpstreamError(writer, request, err)
		return
	}
	service.writer.WriteNoContent(writer)
}
