package portal

import (
	"net/http"
)

// EndpointGetSelfUser handles the 'GET /v1/me' endpoint
func (service *Service) EndpointGetSelfUser(writer http.ResponseWriter, request *http.Request) {
	service.writer.WriteData(writer, requestUser(request))
}

// EndpointDeleteSelfUser handles the 'DELETE /v1/me' endpoint.
// Deleting the user cascades to their invoices and terminates all of their sessions.
func (service *Service) EndpointDeleteSelfUser(writer http.ResponseWriter, request *http.Request) {
	client := requestUser(request)

	if err := service.Storage.Users().Delete(request.Context(), client.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	unsetCookie(writer, cookieNameToken)
	if err := service.Sessions.TerminateByUserID(request.Context(), client.ID); err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}
