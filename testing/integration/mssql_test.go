package integration

import (
	"context"
	"database/sql"
	"testing"

	"github.com/testcontainers/testcontainers-go/modules/mssql"

	"github.com/zoobzio/condql"
	mssqldialect "github.com/zoobzio/condql/mssql"
)

// MSSQLContainer wraps a testcontainers SQL Server instance.
type MSSQLContainer struct {
	container *mssql.MSSQLServerContainer
	db        *sql.DB
	connStr   string
}

// Exec executes a SQL statement.
func (mc *MSSQLContainer) Exec(ctx context.Context, t *testing.T, sql string, args ...any) {
	t.Helper()
	_, err := mc.db.ExecContext(ctx, sql, args...)
	if err != nil {
		t.Fatalf("Failed to execute SQL: %v\nSQL: %s", err, sql)
	}
}

// setupMSSQLSchema recreates the test schema.
func setupMSSQLSchema(ctx context.Context, t *testing.T, mc *MSSQLContainer) {
	t.Helper()

	mc.Exec(ctx, t, `DROP TABLE IF EXISTS events, orders, posts, users`)

	mc.Exec(ctx, t, `
		CREATE TABLE users (
			id BIGINT IDENTITY(1,1) PRIMARY KEY,
			username NVARCHAR(255) NOT NULL,
			email NVARCHAR(255) NOT NULL UNIQUE,
			age INT,
			active BIT DEFAULT 1
		)
	`)

	mc.Exec(ctx, t, `
		CREATE TABLE posts (
			id BIGINT IDENTITY(1,1) PRIMARY KEY,
			user_id BIGINT,
			title NVARCHAR(255) NOT NULL,
			views INT DEFAULT 0,
			published BIT DEFAULT 0
		)
	`)

	mc.Exec(ctx, t, `
		CREATE TABLE orders (
			id BIGINT IDENTITY(1,1) PRIMARY KEY,
			user_id BIGINT,
			total DECIMAL(10,2) NOT NULL,
			status NVARCHAR(50) DEFAULT 'pending'
		)
	`)

	mc.Exec(ctx, t, `
		CREATE TABLE events (
			id BIGINT IDENTITY(1,1) PRIMARY KEY,
			name NVARCHAR(255) NOT NULL,
			happened_at DATETIME2 NOT NULL
		)
	`)
}

// TestIntegration_MSSQL runs the shared scenarios against SQL Server.
func TestIntegration_MSSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	mc := getMSSQLContainer(t)
	setupMSSQLSchema(ctx, t, mc)

	b := sqlBackend(mssqldialect.New(), mc.db)
	seed(ctx, t, b)

	runConditionScenarios(ctx, t, b)
	runDateScenarios(ctx, t, b)

	t.Run("offset requires order by", func(t *testing.T) {
		_, _, err := condql.Select(b.dialect, "username").From("users").Limit(2).Query()
		if !condql.IsUnsupportedFeature(err) {
			t.Fatalf("Expected unsupported feature error, got %v", err)
		}
	})

	t.Run("row values unsupported", func(t *testing.T) {
		_, _, err := condql.Select(b.dialect, "username").From("users").Where(func(w *condql.Where) {
			w.Column([]string{"username", "age"}, []any{"alice", 30})
		}).Query()
		if !condql.IsUnsupportedFeature(err) {
			t.Fatalf("Expected unsupported feature error, got %v", err)
		}
	})

	t.Run("composite key as conditions", func(t *testing.T) {
		got := usernames(ctx, t, b, condql.Select(b.dialect, "username").From("users").
			Where(func(w *condql.Where) { w.Column("username", "alice").Column("age", 30) }).
			OrderBy("username", condql.ASC))
		assertNames(t, []string{"alice"}, got)
	})

	runMutationScenarios(ctx, t, b)
}
