package inmem

import (
	"context"
	"testing"
	"time"
)

func newTestDriver(t *testing.T) *Driver {
	t.Helper()
	driver, err := New()
	if err != nil {
		t.Fatalf("create driver: %v", err)
	}
	return driver
}

func TestCreateAndGet(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	token, err := driver.Create(ctx, "user-1", time.Now().Add(time.Hour).Unix())
	if err != nil {
		t.Fatalf("create session: %v", err)
	}

	ses, err := driver.GetByRawToken(ctx, token)
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if ses == nil {
		t.Fatal("session = nil, want stored session")
	}
	if ses.UserID != "user-1" {
		t.Errorf("user ID = %q, want user-1", ses.UserID)
	}
	if ses.TokenHash == token {
		t.Error("token is stored unhashed")
	}
}

func TestGetUnknownToken(t *testing.T) {
	driver := newTestDriver(t)

	ses, err := driver.GetByRawToken(context.Background(), "bm90LWEtcmVhbC10b2tlbg==")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if ses != nil {
		t.Errorf("session = %+v, want nil", ses)
	}
}

func TestGetMalformedToken(t *testing.T) {
	driver := newTestDriver(t)

	// Tokens that are no valid base64 behave exactly like unknown ones
	ses, err := driver.GetByRawToken(context.Background(), "%%%not-base64%%%")
	if err != nil {
		t.Fatalf("get session: %v", err)
	}
	if ses != nil {
		t.Errorf("session = %+v, want nil", ses)
	}
}

func TestTerminateByRawToken(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	token, _ := driver.Create(ctx, "user-1", time.Now().Add(time.Hour).Unix())
	if err := driver.TerminateByRawToken(ctx, token); err != nil {
		t.Fatalf("terminate session: %v", err)
	}

	if ses, _ := driver.GetByRawToken(ctx, token); ses != nil {
		t.Errorf("session survived termination")
	}
}

func TestTerminateByUserID(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	expires := time.Now().Add(time.Hour).Unix()
	token1, _ := driver.Create(ctx, "user-1", expires)
	token2, _ := driver.Create(ctx, "user-1", expires)
	other, _ := driver.Create(ctx, "user-2", expires)

	if err := driver.TerminateByUserID(ctx, "user-1"); err != nil {
		t.Fatalf("terminate sessions: %v", err)
	}

	if ses, _ := driver.GetByRawToken(ctx, token1); ses != nil {
		t.Error("first session survived termination")
	}
	if ses, _ := driver.GetByRawToken(ctx, token2); ses != nil {
		t.Error("second session survived termination")
	}
	if ses, _ := driver.GetByRawToken(ctx, other); ses == nil {
		t.Error("session of another user was terminated")
	}
}

func TestTerminateExpired(t *testing.T) {
	driver := newTestDriver(t)
	ctx := context.Background()

	expired1, _ := driver.Create(ctx, "user-1", time.Now().Add(-time.Hour).Unix())
	expired2, _ := driver.Create(ctx, "user-2", time.Now().Add(-time.Minute).Unix())
	alive, _ := driver.Create(ctx, "user-3", time.Now().Add(time.Hour).Unix())

	n, err := driver.TerminateExpired(ctx)
	if err != nil {
		t.Fatalf("terminate expired sessions: %v", err)
	}
	if n != 2 {
		t.Errorf("terminated = %d, want 2", n)
	}

	if ses, _ := driver.GetByRawToken(ctx, expired1); ses != nil {
		t.Error("expired session 1 survived")
	}
	if ses, _ := driver.GetByRawToken(ctx, expired2); ses != nil {
		t.Error("expired session 2 survived")
	}
	if ses, _ := driver.GetByRawToken(ctx, alive); ses == nil {
		t.Error("live session was terminated")
	}
}
