package schema

// Machine-readable error code tokens
const (
	CodeUnauthorized     = "UNAUTHORIZED"
	CodeValidationError  = "VALIDATION_ERROR"
	CodeInvalidID        = "INVALID_ID"
	CodeNotFound         = "NOT_FOUND"
	CodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
	CodeDBError          = "DB_ERROR"
	CodeInternalError    = "INTERNAL_ERROR"
)

// Envelope represents the uniform wrapper shape every endpoint responds with
type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *Error      `json:"error,omitempty"`
}

// Error represents the failure payload of an Envelope.
// The Status field always equals the HTTP status code sent on the wire.
type Error struct {
	Message string              `json:"message"`
	Status  int                 `json:"status"`
	Code    string              `json:"code"`
	Issues  map[string][]string `json:"issues,omitempty"`
}

var (
	ErrUnauthorized = &Error{
		Message: "Unauthorized",
		Code:    CodeUnauthorized,
	}
	ErrNotFound = &Error{
		Message: "Resource not found.",
		Code:    CodeNotFound,
	}
	ErrMethodNotAllowed = &Error{
		Message: "Method not allowed.",
		Code:    CodeMethodNotAllowed,
	}
	ErrInternal = &Error{
		Message: "Internal server error.",
		Code:    CodeInternalError,
	}
)
