package gateway

import "net/http"

type endpointGetExpiryResponse struct {
	Expiry string `json:"expiry"`
}

// EndpointGetExpiry handles the 'GET /expiry' endpoint
func (service *Service) EndpointGetExpiry(writer http.ResponseWriter, request *http.Request) {
	expiry, err := service.Upstream.Expiry(request.Context())
	if err != nil {
		service.writeUpstreamError(writer, request, err)
		return
	}
	service.writer.WriteJSON(writer, &endpointGetExpiryResponse{
		Expiry: expiry,
	})
}
