package testhelpers

import (
	"context"
	"testing"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/repository/postgres"
)

// NewDBForTest creates a postgres.DB with test database and logger
func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

// NewScheduleRepositoryForTest applies migrations, truncates schedule
// tables and returns a schedule repository.
func NewScheduleRepositoryForTest(t *testing.T, tdb *TestDB) repository.ScheduleRepository {
	t.Helper()

	ctx := context.Background()
	pgDB := NewDBForTest(tdb.DB, tdb.Logger)
	if err := pgDB.Migrate(ctx); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	if err := tdb.Cleanup(ctx); err != nil {
		t.Fatalf("cleanup schedule tables: %v", err)
	}

	return postgres.NewScheduleRepository(pgDB)
}
