// Package testdb opens migrated in-memory SQLite stores for package tests.
package testdb

import (
	"context"
	"fmt"
	"regexp"
	"sync/atomic"
	"testing"

	"github.com/helphub/helphub-backend/pkg/config"
	"github.com/helphub/helphub-backend/pkg/db"
	"github.com/helphub/helphub-backend/pkg/logger"
	"github.com/helphub/helphub-backend/pkg/migrate"
)

var (
	seq      atomic.Int64
	unsafeRe = regexp.MustCompile(`[^A-Za-z0-9_]+`)
)

// DSN returns a private shared-cache memory DSN for the running test.
func DSN(t testing.TB) string {
	t.Helper()
	name := unsafeRe.ReplaceAllString(t.Name(), "_")
	return fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, seq.Add(1))
}

// Open returns a client over a fresh in-memory store with the schema applied.
// The client is closed when the test ends.
func Open(t testing.TB) *db.Client {
	t.Helper()
	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{Driver: config.DriverSQLite, DSN: DSN(t)}, logger.Nop())
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := migrate.Initialize(ctx, client, logger.Nop()); err != nil {
		t.Fatalf("initialize schema: %v", err)
	}
	return client
}
