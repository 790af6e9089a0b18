package inmem

import (
	"context"
	"testing"

	"github.com/freelancetrack/invoice-server/internal/invoice"
	"github.com/google/uuid"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	driver := New()
	if err := driver.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize driver: %v", err)
	}
	return driver
}

func seedInvoice(t *testing.T, driver *Driver, userID, clientName string, status invoice.Status) *invoice.Invoice {
	t.Helper()
	obj, err := driver.Invoices().Create(context.Background(), userID, &invoice.Create{
		ClientName: clientName,
		Amount:     100,
		DueDate:    "2025-03-01",
		Status:     status,
	})
	if err != nil {
		t.Fatalf("create invoice: %v", err)
	}
	return obj
}

func TestGetByUserID_OrderingAndWindow(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	for _, name := range []string{"first", "second", "third", "fourth"} {
		seedInvoice(t, driver, "user-1", name, invoice.StatusDraft)
	}

	invoices, n, err := driver.Invoices().GetByUserID(ctx, "user-1", nil, 1, 2)
	if err != nil {
		t.Fatalf("get invoices: %v", err)
	}
	if n != 4 {
		t.Errorf("total = %d, want 4", n)
	}
	if len(invoices) != 2 {
		t.Fatalf("len = %d, want 2", len(invoices))
	}
	// Newest first, offset 1 skips "fourth"
	if invoices[0].ClientName != "third" || invoices[1].ClientName != "second" {
		t.Errorf("window = [%s, %s], want [third, second]", invoices[0].ClientName, invoices[1].ClientName)
	}
}

func TestGetByUserID_StatusFilter(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	seedInvoice(t, driver, "user-1", "a", invoice.StatusPaid)
	seedInvoice(t, driver, "user-1", "b", invoice.StatusSent)
	seedInvoice(t, driver, "user-1", "c", invoice.StatusPaid)

	paid := invoice.StatusPaid
	invoices, n, err := driver.Invoices().GetByUserID(ctx, "user-1", &invoice.Filter{Status: &paid}, 0, 10)
	if err != nil {
		t.Fatalf("get invoices: %v", err)
	}
	if n != 2 || len(invoices) != 2 {
		t.Errorf("total/len = %d/%d, want 2/2", n, len(invoices))
	}
}

func TestGetByUserID_OffsetBeyondTotal(t *testing.T) {
	driver := newTestDriver(t)

	seedInvoice(t, driver, "user-1", "only", invoice.StatusDraft)

	invoices, n, err := driver.Invoices().GetByUserID(context.Background(), "user-1", nil, 10, 10)
	if err != nil {
		t.Fatalf("get invoices: %v", err)
	}
	if n != 1 {
		t.Errorf("total = %d, want 1", n)
	}
	if len(invoices) != 0 {
		t.Errorf("len = %d, want 0", len(invoices))
	}
}

func TestGetByID_OwnerScoped(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	obj := seedInvoice(t, driver, "user-1", "mine", invoice.StatusDraft)

	if got, err := driver.Invoices().GetByID(ctx, obj.ID, "user-1"); err != nil || got == nil {
		t.Errorf("owner lookup = (%v, %v), want invoice", got, err)
	}
	if got, err := driver.Invoices().GetByID(ctx, obj.ID, "user-2"); err != nil || got != nil {
		t.Errorf("foreign lookup = (%v, %v), want nil", got, err)
	}
}

func TestUpdate_OnlySuppliedFields(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	obj := seedInvoice(t, driver, "user-1", "mine", invoice.StatusDraft)

	paid := invoice.StatusPaid
	updated, err := driver.Invoices().Update(ctx, obj.ID, "user-1", &invoice.Update{Status: &paid})
	if err != nil {
		t.Fatalf("update invoice: %v", err)
	}
	if updated.Status != invoice.StatusPaid {
		t.Errorf("status = %q, want paid", updated.Status)
	}
	if updated.ClientName != "mine" || updated.Amount != 100 {
		t.Errorf("untouched fields changed: %+v", updated)
	}
}

func TestUpdate_ForeignRecord(t *testing.T) {
	driver := newTestDriver(t)

	obj := seedInvoice(t, driver, "user-1", "mine", invoice.StatusDraft)

	paid := invoice.StatusPaid
	updated, err := driver.Invoices().Update(context.Background(), obj.ID, "user-2", &invoice.Update{Status: &paid})
	if err != nil {
		t.Fatalf("update invoice: %v", err)
	}
	if updated != nil {
		t.Errorf("updated = %+v, want nil for foreign record", updated)
	}
}

func TestDelete_MissingRecordIsNoError(t *testing.T) {
	driver := newTestDriver(t)

	if err := driver.Invoices().Delete(context.Background(), uuid.New(), "user-1"); err != nil {
		t.Errorf("delete of missing record = %v, want nil", err)
	}
}

func TestUserDelete_CascadesInvoices(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	seedInvoice(t, driver, "user-1", "mine", invoice.StatusDraft)
	seedInvoice(t, driver, "user-2", "other", invoice.StatusDraft)

	if err := driver.Users().Delete(ctx, "user-1"); err != nil {
		t.Fatalf("delete user: %v", err)
	}

	if _, n, _ := driver.Invoices().GetByUserID(ctx, "user-1", nil, 0, 10); n != 0 {
		t.Errorf("invoices of deleted user = %d, want 0", n)
	}
	if _, n, _ := driver.Invoices().GetByUserID(ctx, "user-2", nil, 0, 10); n != 1 {
		t.Errorf("invoices of other user = %d, want 1", n)
	}
}
