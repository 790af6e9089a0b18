package validation

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/freelancetrack/invoice-server/internal/invoice"
)

// Pagination bounds of the invoice list endpoint
const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// InvoiceQuery represents the validated query parameters of an invoice list request
type InvoiceQuery struct {
	Page     uint64
	PageSize uint64
	Status   *invoice.Status
}

// InvoiceList validates the query parameters of an invoice list request.
// Non-numeric or out-of-range values are validation errors; they are never silently
// defaulted or clamped.
func InvoiceList(request *http.Request) (*InvoiceQuery, Issues) {
	issues := Issues{}
	query := &InvoiceQuery{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}

	if page, msg := queryNumber(request, "page", DefaultPage, 1, 0); msg != "" {
		issues.Add("page", msg)
	} else {
		query.Page = page
	}

	if pageSize, msg := queryNumber(request, "pageSize", DefaultPageSize, 1, MaxPageSize); msg != "" {
		issues.Add("pageSize", msg)
	} else {
		query.PageSize = pageSize
	}

	if raw := request.URL.Query().Get("status"); raw != "" {
		status, msgs := checkStatus(raw)
		if len(msgs) > 0 {
			for _, msg := range msgs {
				issues.Add("status", msg)
			}
		} else {
			query.Status = &status
		}
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return query, nil
}

// queryNumber extracts and validates an integer query parameter.
// A max of 0 means no upper bound.
func queryNumber(request *http.Request, key string, def, min, max uint64) (uint64, string) {
	value := request.URL.Query().Get(key)
	if value == "" {
		return def, ""
	}

	parsed, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return 0, fmt.Sprintf("Query parameter '%s' ('%s') is not a valid number.", key, value)
	}

	if parsed < min || (max > 0 && parsed > max) {
		if max > 0 {
			return 0, fmt.Sprintf("Query parameter '%s' (%d) is out of the required range [%d,%d].", key, parsed, min, max)
		}
		return 0, fmt.Sprintf("Query parameter '%s' (%d) must be at least %d.", key, parsed, min)
	}

	return parsed, ""
}
