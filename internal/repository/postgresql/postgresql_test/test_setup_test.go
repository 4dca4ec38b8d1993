package postgresql_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// newTestDB connects to TEST_DATABASE_URL, applies the schema and empties
// every table. Tests are skipped when no database is configured.
func newTestDB(t *testing.T) *database.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := database.NewPostgreSQLDB(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(db.Close)

	ctx := context.Background()
	schema, err := os.ReadFile(schemaPath())
	require.NoError(t, err)
	_, err = db.Exec(ctx, string(schema))
	require.NoError(t, err)

	tables := []string{
		"overtime_requests",
		"leave_requests",
		"leave_quotas",
		"leave_types",
		"attendances",
		"holidays",
		"employees",
		"company_settings",
	}
	for _, table := range tables {
		_, err := db.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		require.NoError(t, err, "failed to truncate table %s", table)
	}

	return db
}

func schemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations", "001_init.sql")
}

func createEmployee(t *testing.T, db *database.DB, name string, salary *string) string {
	t.Helper()
	id := uuid.Must(uuid.NewV7()).String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO employees (id, employee_code, full_name, email, monthly_salary)
		VALUES ($1, $2, $3, $4, $5::numeric)
	`, id, "EMP-"+id[len(id)-6:], name, name+"@example.com", salary)
	require.NoError(t, err)
	return id
}

func createLeaveType(t *testing.T, db *database.DB, name string, paid bool) string {
	t.Helper()
	id := uuid.Must(uuid.NewV7()).String()
	_, err := db.Exec(context.Background(), `
		INSERT INTO leave_types (id, name, is_paid) VALUES ($1, $2, $3)
	`, id, name, paid)
	require.NoError(t, err)
	return id
}
