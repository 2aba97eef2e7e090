//go:build integration

package db_test

import (
	"context"
	"testing"

	"brecho/internal/platform/db"
	"brecho/internal/platform/db/dbtest"
	"brecho/migrations"
)

func TestMigrateIsIdempotent(t *testing.T) {
	ctx := context.Background()
	pool := dbtest.Pool(t)

	if err := db.Migrate(ctx, pool, migrations.FS); err != nil {
		t.Fatalf("second migrate should be a no-op: %v", err)
	}

	var applied int
	if err := pool.QueryRow(ctx, "SELECT count(*) FROM schema_migrations").Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Fatalf("expected 2 applied migrations, got %d", applied)
	}
}
