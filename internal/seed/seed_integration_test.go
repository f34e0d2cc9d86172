//go:build integration

package seed

import (
	"context"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/mergington/activities/internal/app/models"
	"github.com/mergington/activities/internal/app/repositories"
	"github.com/mergington/activities/internal/db"
	"github.com/mergington/activities/internal/pkg/apperrors"
)

func setupSeedTestDB(t *testing.T) *db.PostgresDB {
	t.Helper()
	ctx := context.Background()

	pg, err := postgrescontainer.Run(ctx, "postgres:16-alpine",
		postgrescontainer.WithDatabase("mergington_seed_test"),
		postgrescontainer.WithUsername("platform"),
		postgrescontainer.WithPassword("platform"),
		postgrescontainer.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	database := db.NewPostgresDBFromPool(pool)
	require.NoError(t, database.EnsureSchema(ctx))
	return database
}

func countRows(t *testing.T, database *db.PostgresDB, table string) int {
	t.Helper()
	var count int
	require.NoError(t, database.Pool.QueryRow(context.Background(),
		fmt.Sprintf("SELECT COUNT(*) FROM %s", table)).Scan(&count))
	return count
}

func TestRunOncePopulatesEmptyStore(t *testing.T) {
	database := setupSeedTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunOnce(ctx, database, zerolog.Nop()))

	assert.Equal(t, 9, countRows(t, database, "activities"))
	assert.Equal(t, 18, countRows(t, database, "users"))
	assert.Equal(t, 18, countRows(t, database, "registrations"))

	repos := repositories.NewRepositories(database)
	chess, err := repos.ActivityRepository.GetByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.NotNil(t, chess)
	assert.Equal(t, 12, chess.MaxParticipants)

	participants, err := repos.RegistrationRepository.ListUsersForActivity(ctx, chess.ID)
	require.NoError(t, err)
	require.Len(t, participants, 2)
	assert.Equal(t, "michael@mergington.edu", participants[0].Email)
	assert.Equal(t, "daniel@mergington.edu", participants[1].Email)
}

func TestRunOnceIsIdempotent(t *testing.T) {
	database := setupSeedTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunOnce(ctx, database, zerolog.Nop()))
	require.NoError(t, RunOnce(ctx, database, zerolog.Nop()))

	assert.Equal(t, 9, countRows(t, database, "activities"))
	assert.Equal(t, 18, countRows(t, database, "users"))
	assert.Equal(t, 18, countRows(t, database, "registrations"))
}

func TestRunOnceSkipsPopulatedStore(t *testing.T) {
	database := setupSeedTestDB(t)
	ctx := context.Background()
	repos := repositories.NewRepositories(database)

	// Any pre-existing row disables the seed entirely.
	require.NoError(t, repos.UserRepository.Create(ctx, &models.User{Email: "existing@mergington.edu"}))

	require.NoError(t, RunOnce(ctx, database, zerolog.Nop()))

	assert.Equal(t, 0, countRows(t, database, "activities"))
	assert.Equal(t, 1, countRows(t, database, "users"))
}

// The seeded Chess Club starts with 2 of 12 spots taken; exactly 10 more
// students fit before the capacity check rejects the next one.
func TestSeededChessClubFillsToCapacity(t *testing.T) {
	database := setupSeedTestDB(t)
	ctx := context.Background()

	require.NoError(t, RunOnce(ctx, database, zerolog.Nop()))

	repos := repositories.NewRepositories(database)
	chess, err := repos.ActivityRepository.GetByName(ctx, "Chess Club")
	require.NoError(t, err)
	require.NotNil(t, chess)

	for i := 0; i < 10; i++ {
		user, err := repos.UserRepository.GetOrCreateByEmail(ctx, fmt.Sprintf("filler%d@mergington.edu", i))
		require.NoError(t, err)
		_, err = repos.RegistrationRepository.Register(ctx, user.ID, chess.ID)
		require.NoError(t, err)
	}

	extra, err := repos.UserRepository.GetOrCreateByEmail(ctx, "thirteenth@mergington.edu")
	require.NoError(t, err)
	_, err = repos.RegistrationRepository.Register(ctx, extra.ID, chess.ID)
	assert.ErrorIs(t, err, apperrors.ErrActivityFull)

	count, err := repos.RegistrationRepository.CountForActivity(ctx, chess.ID)
	require.NoError(t, err)
	assert.Equal(t, 12, count)
}
