// Package pgdbtest gives tests an isolated PostgreSQL schema.
package pgdbtest

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"wikigo/internal/platform/pgdb"
)

// EnvDSN names the variable holding the test database DSN.
const EnvDSN = "WIKIGO_TEST_POSTGRES_DSN"

// Open returns a pool whose search_path is a fresh schema, dropped when the
// test ends. The test is skipped when EnvDSN is unset.
func Open(t testing.TB) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s not set", EnvDSN)
	}
	ctx := context.Background()

	admin, err := pgdb.Connect(ctx, dsn)
	require.NoError(t, err)
	schema := "wikigo_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec(ctx, "CREATE SCHEMA "+schema)
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.ConnConfig.RuntimeParams["search_path"] = schema
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)

	t.Cleanup(func() {
		pool.Close()
		_, _ = admin.Exec(context.Background(), "DROP SCHEMA "+schema+" CASCADE")
		admin.Close()
	})
	return pool
}
