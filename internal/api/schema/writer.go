package schema

import (
	"encoding/json"
	"net/http"
)

// Writer helps writing unified API responses
type Writer struct {
	InternalErrorHook func(err error)
}

// WriteJSONCode writes the JSON representation of value to the given response writer using the given HTTP status code
func (writer *Writer) WriteJSONCode(rw http.ResponseWriter, code int, value interface{}) {
	val, _ := json.Marshal(value)
	rw.Header().Set("Content-Type", "application/json")
	rw.WriteHeader(code)
	rw.Write(val)
}

// WriteData sends a success envelope wrapping the given payload.
// This method sends 200 OK as the HTTP status code; use WriteDataCode to use a different one.
func (writer *Writer) WriteData(rw http.ResponseWriter, data interface{}) {
	writer.WriteDataCode(rw, http.StatusOK, data)
}

// WriteDataCode sends a success envelope wrapping the given payload using the given HTTP status code
func (writer *Writer) WriteDataCode(rw http.ResponseWriter, code int, data interface{}) {
	writer.WriteJSONCode(rw, code, &Envelope{
		Success: true,
		Data:    data,
	})
}

// WriteError sends a failure envelope.
// The status code embedded in the envelope is forced to equal the HTTP status code on the wire.
func (writer *Writer) WriteError(rw http.ResponseWriter, code int, err *Error) {
	clone := *err
	clone.Status = code
	writer.WriteJSONCode(rw, code, &Envelope{
		Success: false,
		Error:   &clone,
	})
}

// WriteValidationError sends a failure envelope carrying a field-level issue mapping
func (writer *Writer) WriteValidationError(rw http.ResponseWriter, code int, issues map[string][]string) {
	writer.WriteError(rw, code, &Error{
		Message: "Validation failed.",
		Code:    CodeValidationError,
		Issues:  issues,
	})
}

// WriteInternalError processes an internal server error and writes it to the response
func (writer *Writer) WriteInternalError(rw http.ResponseWriter, err error) {
	if writer.InternalErrorHook != nil {
		writer.InternalErrorHook(err)
	}
	writer.WriteError(rw, http.StatusInternalServerError, ErrInternal)
}
