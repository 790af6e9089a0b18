package validation

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/freelancetrack/invoice-server/internal/invoice"
)

var dueDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// InvoicePayload represents the raw, untrusted request body of an invoice create or update request.
// Every field is a pointer so that absent and present-but-zero values can be told apart.
type InvoicePayload struct {
	ClientName *string  `json:"client_name"`
	Amount     *float64 `json:"amount"`
	DueDate    *string  `json:"due_date"`
	Status     *string  `json:"status"`
}

// InvoiceCreate validates the payload of an invoice create request and narrows it down to
// a typed create action. Missing status defaults to draft.
func InvoiceCreate(payload *InvoicePayload) (*invoice.Create, Issues) {
	issues := Issues{}

	create := &invoice.Create{
		Status: invoice.StatusDraft,
	}

	if payload.ClientName == nil {
		issues.Add("client_name", "Client name is required.")
	} else {
		name, msgs := checkClientName(*payload.ClientName)
		for _, msg := range msgs {
			issues.Add("client_name", msg)
		}
		create.ClientName = name
	}

	if payload.Amount == nil {
		issues.Add("amount", "Amount is required.")
	} else {
		for _, msg := range checkAmount(*payload.Amount) {
			issues.Add("amount", msg)
		}
		create.Amount = *payload.Amount
	}

	if payload.DueDate == nil {
		issues.Add("due_date", "Due date is required.")
	} else {
		for _, msg := range checkDueDate(*payload.DueDate) {
			issues.Add("due_date", msg)
		}
		create.DueDate = *payload.DueDate
	}

	if payload.Status != nil {
		status, msgs := checkStatus(*payload.Status)
		for _, msg := range msgs {
			issues.Add("status", msg)
		}
		create.Status = status
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return create, nil
}

// InvoiceUpdate validates the payload of an invoice update request and narrows it down to
// a typed partial update action. Absent fields stay untouched.
func InvoiceUpdate(payload *InvoicePayload) (*invoice.Update, Issues) {
	issues := Issues{}
	update := &invoice.Update{}

	if payload.ClientName != nil {
		name, msgs := checkClientName(*payload.ClientName)
		for _, msg := range msgs {
			issues.Add("client_name", msg)
		}
		update.ClientName = &name
	}

	if payload.Amount != nil {
		for _, msg := range checkAmount(*payload.Amount) {
			issues.Add("amount", msg)
		}
		update.Amount = payload.Amount
	}

	if payload.DueDate != nil {
		for _, msg := range checkDueDate(*payload.DueDate) {
			issues.Add("due_date", msg)
		}
		update.DueDate = payload.DueDate
	}

	if payload.Status != nil {
		status, msgs := checkStatus(*payload.Status)
		for _, msg := range msgs {
			issues.Add("status", msg)
		}
		update.Status = &status
	}

	if len(issues) > 0 {
		return nil, issues
	}
	return update, nil
}

func checkClientName(value string) (string, []string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return value, []string{"Client name is required."}
	}
	if len(value) > invoice.MaxClientNameLength {
		return value, []string{fmt.Sprintf("Client name must be under %d characters.", invoice.MaxClientNameLength)}
	}
	return value, nil
}

func checkAmount(value float64) []string {
	var msgs []string
	if value <= 0 {
		msgs = append(msgs, "Amount must be a positive number.")
	}
	// Tolerate float noise when checking the two-decimal-places rule; near the maximum
	// amount a single ulp of the cent value is already ~2e-6
	cents := value * 100
	if math.Abs(cents-math.Round(cents)) > 1e-4 {
		msgs = append(msgs, "Amount can have at most 2 decimal places.")
	}
	if value > invoice.MaxAmount {
		msgs = append(msgs, "Amount is too large.")
	}
	return msgs
}

func checkDueDate(value string) []string {
	if !dueDatePattern.MatchString(value) {
		return []string{"Due date must be in YYYY-MM-DD format."}
	}
	if _, err := time.Parse("2006-01-02", value); err != nil {
		return []string{"Invalid date."}
	}
	return nil
}

func checkStatus(value string) (invoice.Status, []string) {
	status := invoice.Status(value)
	if !status.IsValid() {
		return status, []string{fmt.Sprintf("Status must be one of %s.", statusList())}
	}
	return status, nil
}

func statusList() string {
	strs := make([]string, len(invoice.Statuses))
	for i, status := range invoice.Statuses {
		strs[i] = string(status)
	}
	return strings.Join(strs, ", ")
}
