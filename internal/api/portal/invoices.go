package portal

import (
	"net/http"

	"github.com/freelancetrack/invoice-server/internal/api/schema"
	"github.com/freelancetrack/invoice-server/internal/api/validation"
	"github.com/freelancetrack/invoice-server/internal/invoice"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var (
	errInvalidInvoiceID = &schema.Error{
		Message: "Invalid invoice ID.",
		Code:    schema.CodeInvalidID,
	}
	errInvoiceNotFound = &schema.Error{
		Message: "Invoice not found.",
		Code:    schema.CodeNotFound,
	}
)

// EndpointListInvoices handles the 'GET /v1/invoices?page={number?:1}&pageSize={number?:10}&status={string?}' endpoint
func (service *Service) EndpointListInvoices(writer http.ResponseWriter, request *http.Request) {
	query, issues := validation.InvoiceList(request)
	if issues != nil {
		service.writer.WriteValidationError(writer, http.StatusBadRequest, issues)
		return
	}

	client := requestUser(request)
	offset, limit := schema.PageWindow(query.Page, query.PageSize)

	invoices, n, err := service.Storage.Invoices().GetByUserID(request.Context(), client.ID, &invoice.Filter{
		Status: query.Status,
	}, offset, limit)
	if err != nil {
		service.storageError(writer, "list", "Failed to fetch invoices.", err)
		return
	}

	service.writer.WriteData(writer, schema.BuildPaginatedResponse(query.Page, query.PageSize, n, invoices))
}

// EndpointCreateInvoice handles the 'POST /v1/invoices' endpoint.
// The owner of the new record is always the authenticated caller; any owner field present
// in the request body is ignored.
func (service *Service) EndpointCreateInvoice(writer http.ResponseWriter, request *http.Request) {
	payload, issues, err := validation.DecodeBody[validation.InvoicePayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	var create *invoice.Create
	if issues == nil {
		create, issues = validation.InvoiceCreate(payload)
	}
	if issues != nil {
		service.writer.WriteValidationError(writer, http.StatusUnprocessableEntity, issues)
		return
	}

	client := requestUser(request)
	obj, err := service.Storage.Invoices().Create(request.Context(), client.ID, create)
	if err != nil {
		service.storageError(writer, "create", "Failed to create invoice.", err)
		return
	}

	service.writer.WriteDataCode(writer, http.StatusCreated, obj)
}

// EndpointUpdateInvoice handles the 'PATCH /v1/invoices/{id}' endpoint.
// A record owned by another user is reported as not found rather than forbidden so that
// record existence does not leak to non-owners.
func (service *Service) EndpointUpdateInvoice(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteError(writer, http.StatusBadRequest, errInvalidInvoiceID)
		return
	}

	payload, issues, err := validation.DecodeBody[validation.InvoicePayload](request)
	if err != nil {
		service.writer.WriteInternalError(writer, err)
		return
	}
	var update *invoice.Update
	if issues == nil {
		update, issues = validation.InvoiceUpdate(payload)
	}
	if issues != nil {
		service.writer.WriteValidationError(writer, http.StatusUnprocessableEntity, issues)
		return
	}

	client := requestUser(request)
	obj, err := service.Storage.Invoices().Update(request.Context(), id, client.ID, update)
	if err != nil {
		service.storageError(writer, "update", "Failed to update invoice.", err)
		return
	}
	if obj == nil {
		service.writer.WriteError(writer, http.StatusNotFound, errInvoiceNotFound)
		return
	}

	service.writer.WriteData(writer, obj)
}

// EndpointDeleteInvoice handles the 'DELETE /v1/invoices/{id}' endpoint.
// The delete operation is idempotent; deleting a record that is already gone responds
// with 204 as well.
func (service *Service) EndpointDeleteInvoice(writer http.ResponseWriter, request *http.Request) {
	id, err := uuid.Parse(chi.URLParam(request, "id"))
	if err != nil {
		service.writer.WriteError(writer, http.StatusBadRequest, errInvalidInvoiceID)
		return
	}

	client := requestUser(request)
	if err := service.Storage.Invoices().Delete(request.Context(), id, client.ID); err != nil {
		service.storageError(writer, "delete", "Failed to delete invoice.", err)
		return
	}

	writer.WriteHeader(http.StatusNoContent)
}

// storageError logs an unexpected storage failure with its operation name and responds
// with a generic message. Storage internals never reach the caller.
func (service *Service) storageError(writer http.ResponseWriter, operation, message string, err error) {
	log.Error().Err(err).Str("operation", operation).Msg("invoice storage operation failed")
	service.writer.WriteError(writer, http.StatusInternalServerError, &schema.Error{
		Message: message,
		Code:    schema.CodeDBError,
	})
}
