package validation

import (
	"net/http/httptest"
	"testing"

	"github.com/freelancetrack/invoice-server/internal/invoice"
)

func listRequest(query string) *InvoiceQuery {
	parsed, _ := InvoiceList(httptest.NewRequest("GET", "/v1/invoices"+query, nil))
	return parsed
}

func listIssues(query string) Issues {
	_, issues := InvoiceList(httptest.NewRequest("GET", "/v1/invoices"+query, nil))
	return issues
}

func TestInvoiceList_Defaults(t *testing.T) {
	query := listRequest("")
	if query == nil {
		t.Fatal("query = nil, want defaults")
	}
	if query.Page != 1 {
		t.Errorf("page = %d, want 1", query.Page)
	}
	if query.PageSize != 10 {
		t.Errorf("pageSize = %d, want 10", query.PageSize)
	}
	if query.Status != nil {
		t.Errorf("status = %v, want nil", query.Status)
	}
}

func TestInvoiceList_ExplicitValues(t *testing.T) {
	query := listRequest("?page=3&pageSize=25&status=paid")
	if query == nil {
		t.Fatal("query = nil, want parsed values")
	}
	if query.Page != 3 || query.PageSize != 25 {
		t.Errorf("page/pageSize = %d/%d, want 3/25", query.Page, query.PageSize)
	}
	if query.Status == nil || *query.Status != invoice.StatusPaid {
		t.Errorf("status = %v, want paid", query.Status)
	}
}

func TestInvoiceList_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		query string
		field string
	}{
		{"non-numeric page", "?page=abc", "page"},
		{"negative page", "?page=-1", "page"},
		{"zero page", "?page=0", "page"},
		{"fractional page", "?page=1.5", "page"},
		{"zero pageSize", "?pageSize=0", "pageSize"},
		{"pageSize above maximum", "?pageSize=101", "pageSize"},
		{"unknown status", "?status=archived", "status"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			issues := listIssues(test.query)
			if len(issues[test.field]) == 0 {
				t.Errorf("no issue raised for %q (issues: %v)", test.field, issues)
			}
		})
	}
}

func TestInvoiceList_BoundaryValues(t *testing.T) {
	if query := listRequest("?pageSize=100"); query == nil || query.PageSize != 100 {
		t.Errorf("pageSize=100 should be accepted")
	}
	if query := listRequest("?pageSize=1&page=1"); query == nil {
		t.Errorf("lower bounds should be accepted")
	}
}
