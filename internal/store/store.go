// Package store provides data access for the activity log.
//
// The ActivityStore consumes predicate trees built by internal/filter
// opaquely: it renders them to parameterized SQL (sqlgen.go) and never
// interprets field names itself.
package store

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/coopsuite/activity-log-ms/internal/dbpool"
)

const defaultQueryTimeout = 30 * time.Second

// Base contains shared dependencies for stores.
type Base struct {
	Pool *dbpool.Pool
	Log  *logrus.Logger
}

// withTimeout creates a context with the default query timeout.
func withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, defaultQueryTimeout)
}

// beginReadTx starts a read-only transaction at REPEATABLE READ, which
// in PostgreSQL pins one snapshot for the whole transaction. Count and
// fetch of a list query run inside one such transaction so they stay
// mutually consistent under concurrent ingestion; the default READ
// COMMITTED re-snapshots per statement and cannot guarantee that.
func (b *Base) beginReadTx(ctx context.Context) (pgx.Tx, error) {
	return b.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
}
