package cache

import (
	"context"
	"time"

	"github.com/freelancetrack/invoice-server/internal/hashmap"
	"github.com/freelancetrack/invoice-server/internal/invoice"
	"github.com/freelancetrack/invoice-server/internal/storage"
	"github.com/freelancetrack/invoice-server/internal/user"
)

// Driver represents a storage driver implementation that wraps another one in order to
// cache user lookups in-process. The session middleware resolves the calling user on
// every request; without this layer every API call would hit the database twice.
// Invoice access is not cached.
type Driver struct {
	underlying storage.Driver
	users      *UserRepository
}

var _ storage.Driver = (*Driver)(nil)

// New returns a new caching storage driver
func New(underlying storage.Driver) *Driver {
	return &Driver{
		underlying: underlying,
	}
}

// Initialize initializes the caching repositories
func (driver *Driver) Initialize(_ context.Context) error {
	userCache := hashmap.NewExpiring[string, *user.User](5 * time.Minute)
	userCache.ScheduleCleanupTask(10 * time.Second)
	driver.users = &UserRepository{
		repo:  driver.underlying.Users(),
		cache: userCache,
	}
	return nil
}

// Users provides the caching user repository implementation
func (driver *Driver) Users() user.Repository {
	return driver.users
}

// Invoices provides the invoice repository implementation of the underlying driver
func (driver *Driver) Invoices() invoice.Repository {
	return driver.underlying.Invoices()
}

// Close stops the cache cleanup tasks and closes the underlying driver
func (driver *Driver) Close() {
	driver.users.cache.StopCleanupTask()
	driver.users = nil
	driver.underlying.Close()
}
