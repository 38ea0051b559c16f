package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/coopsuite/activity-log-ms/internal/db"
	"github.com/coopsuite/activity-log-ms/internal/db/migrations"
	"github.com/coopsuite/activity-log-ms/internal/dbpool"
	"github.com/coopsuite/activity-log-ms/internal/store"
)

// testEnv holds shared test infrastructure (single pool across all tests).
type testEnv struct {
	pool *dbpool.Pool
	log  *logrus.Logger
}

var sharedEnv *testEnv

func getTestEnv(t *testing.T) *testEnv {
	t.Helper()

	if sharedEnv != nil {
		return sharedEnv
	}

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()

	pool, err := dbpool.NewPool(ctx, dbURL)
	if err != nil {
		t.Fatalf("connecting to test DB: %v", err)
	}

	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)

	if err := db.RunMigrations(ctx, pool, log, migrations.FS); err != nil {
		t.Fatalf("running migrations: %v", err)
	}

	sharedEnv = &testEnv{pool: pool, log: log}

	return sharedEnv
}

// setupTestStore returns an ActivityStore against an emptied audit table.
func setupTestStore(t *testing.T) *store.ActivityStore {
	t.Helper()

	env := getTestEnv(t)

	if _, err := env.pool.Exec(context.Background(), `TRUNCATE "AL01AuditLog"`); err != nil {
		t.Fatalf("truncating audit table: %v", err)
	}

	return store.NewActivityStore(store.Base{Pool: env.pool, Log: env.log})
}
