package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"restorativeLandsAPI/internal/achievement"
	"restorativeLandsAPI/internal/course"
	"restorativeLandsAPI/internal/migration"
	"restorativeLandsAPI/internal/user"
	"restorativeLandsAPI/services"
)

const testUserPrefix = "test_"

// SetupTestDB connects to TEST_DATABASE_URL, applies migrations and seeds
// the catalogs. Tests are skipped when the variable is unset.
func SetupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()

	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	require.NoError(t, err, "failed to connect to test database")
	require.NoError(t, pool.Ping(ctx), "failed to ping test database")

	_, err = migration.NewRunner(pool).Apply(ctx)
	require.NoError(t, err, "failed to migrate test database")
	require.NoError(t, services.NewCatalogService(pool).Seed(ctx), "failed to seed catalogs")

	t.Cleanup(func() { CleanupTestDB(t, pool) })
	return pool
}

// CleanupTestDB removes every row owned by test users, then closes the pool.
func CleanupTestDB(t *testing.T, pool *pgxpool.Pool) {
	ctx := context.Background()
	owned := `user_id IN (SELECT id FROM users WHERE username LIKE 'test\_%')`

	for _, query := range []string{
		`DELETE FROM zen_coin_transactions WHERE ` + owned,
		`DELETE FROM course_completions WHERE ` + owned,
		`DELETE FROM mood_diary_entries WHERE ` + owned,
		`DELETE FROM breathing_sessions WHERE ` + owned,
		`DELETE FROM users WHERE username LIKE 'test\_%'`,
	} {
		if _, err := pool.Exec(ctx, query); err != nil {
			t.Logf("Warning: failed to cleanup test data: %v", err)
		}
	}
	pool.Close()
}

// Catalogs loads the seeded achievement and course catalogs.
func Catalogs(t *testing.T, pool *pgxpool.Pool) ([]achievement.Achievement, []course.Course) {
	t.Helper()
	ctx := context.Background()
	catalog := services.NewCatalogService(pool)

	achievements, err := catalog.LoadAchievements(ctx)
	require.NoError(t, err)
	courses, err := catalog.LoadCourses(ctx)
	require.NoError(t, err)

	return achievements, courses
}

// CreateTestUser creates a profile whose rows CleanupTestDB will remove.
func CreateTestUser(t *testing.T, users *services.UserService, referredBy *string) *user.User {
	t.Helper()

	username := fmt.Sprintf("%s%s", testUserPrefix, uuid.NewString()[:8])
	u, err := users.CreateUser(context.Background(), &user.CreateUserRequest{
		Username:   username,
		ReferredBy: referredBy,
	})
	require.NoError(t, err)
	return u
}
