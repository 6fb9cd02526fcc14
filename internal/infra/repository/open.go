package repository

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/yelo29/barangayreservetest-1/internal/audit"
	"github.com/yelo29/barangayreservetest-1/internal/config"
	"github.com/yelo29/barangayreservetest-1/internal/db"
	"github.com/yelo29/barangayreservetest-1/internal/domain/account"
	"github.com/yelo29/barangayreservetest-1/internal/domain/booking"
	"github.com/yelo29/barangayreservetest-1/internal/domain/event"
	"github.com/yelo29/barangayreservetest-1/internal/domain/facility"
	"github.com/yelo29/barangayreservetest-1/internal/domain/verification"
)

// Store is everything the API persists.
type Store interface {
	account.Repository
	facility.Repository
	booking.Repository
	verification.Repository
	event.Repository
	audit.Store
}

var (
	_ Store = (*GormStore)(nil)
	_ Store = (*MongoStore)(nil)
	_ Store = (*MemoryStore)(nil)
)

// Opened is a connected store with its health checks and teardown.
type Opened struct {
	Store  Store
	Checks map[string]func(ctx context.Context) error
	Close  func()
}

// Open connects the store selected by DB_DRIVER.
func Open(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Opened, error) {
	o := &Opened{
		Checks: map[string]func(ctx context.Context) error{},
		Close:  func() {},
	}

	switch cfg.DBDriver {
	case config.DriverPostgres:
		gdb, err := db.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("get sql.DB: %w", err)
		}
		o.Store = NewGormStore(gdb)
		o.Checks["postgres"] = sqlDB.PingContext
		o.Close = func() { _ = sqlDB.Close() }

	case config.DriverMongo:
		client, mdb, err := db.NewMongo(ctx, cfg)
		if err != nil {
			return nil, err
		}
		ms := NewMongoStore(mdb)
		if err := ms.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
		o.Store = ms
		o.Checks["mongo"] = func(ctx context.Context) error { return client.Ping(ctx, nil) }
		o.Close = func() { _ = client.Disconnect(context.Background()) }

	case config.DriverMemory:
		log.Warn("using in-memory store; data is lost on restart")
		o.Store = NewMemoryStore()

	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	return o, nil
}
