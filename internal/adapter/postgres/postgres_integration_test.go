package postgres

import (
	"context"
	"flag"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

var testDatabaseURL string

func TestMain(m *testing.M) {
	flag.Parse()

	if testing.Short() {
		os.Exit(m.Run())
	}

	os.Exit(runWithContainer(m))
}

func runWithContainer(m *testing.M) int {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:17-alpine",
		tcpostgres.WithDatabase("appdb"),
		tcpostgres.WithUsername("appuser"),
		tcpostgres.WithPassword("apppassword"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start postgres container: %v\n", err)
		return 1
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to terminate postgres container: %v\n", err)
		}
	}()

	testDatabaseURL, err = container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to get connection string: %v\n", err)
		return 1
	}

	return m.Run()
}

func setupTestClock(t *testing.T) *Clock {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	clock, err := NewClock(testDatabaseURL, 5*time.Second)
	require.NoError(t, err)
	return clock
}

func TestClockNow_Integration(t *testing.T) {
	clock := setupTestClock(t)

	got, err := clock.Now(context.Background())
	require.NoError(t, err)

	parsed, err := time.Parse("2006-01-02 15:04:05.999999-07:00", got)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), parsed, time.Minute)
}

func TestClockPing_Integration(t *testing.T) {
	clock := setupTestClock(t)
	require.NoError(t, clock.Ping(context.Background()))
}

func TestClockNow_WrongPassword(t *testing.T) {
	setupTestClock(t)

	cfg, err := NewClock(testDatabaseURL, 5*time.Second)
	require.NoError(t, err)
	cfg.connConfig.Password = "wrong"

	_, err = cfg.Now(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to connect to database")
}
