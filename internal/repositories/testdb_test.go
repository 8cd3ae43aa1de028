package repositories

import (
	"context"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/anonto42/nexa/backend/pkg/config"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func dsn(dbName string) string {
	get := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		get("DB_USER", "postgres"), get("DB_PASSWORD", "postgres"),
		os.Getenv("DB_HOST"), get("DB_PORT", "5432"), dbName)
}

// createTempDB creates a fresh migrated database for one test and drops it
// on cleanup. Skips when no Postgres is configured.
func createTempDB(t *testing.T) *gorm.DB {
	t.Helper()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("DB_HOST not set, skipping Postgres integration test")
	}

	ctx := context.Background()
	admin, err := pgx.Connect(ctx, dsn("postgres"))
	require.NoError(t, err)
	defer admin.Close(ctx)

	name := "nexa_test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	_, err = admin.Exec(ctx, "CREATE DATABASE "+name)
	require.NoError(t, err)

	db, err := config.OpenPostgres(dsn(name), config.PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxIdleTime: 30 * time.Second,
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
		conn, err := pgx.Connect(context.Background(), dsn("postgres"))
		if err != nil {
			t.Logf("drop %s: %v", name, err)
			return
		}
		defer conn.Close(context.Background())
		if _, err := conn.Exec(context.Background(), "DROP DATABASE IF EXISTS "+name+" WITH (FORCE)"); err != nil {
			t.Logf("drop %s: %v", name, err)
		}
	})
	return db
}
