package main

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/academy-registry/internal/config"
	"github.com/aanand-mishra/academy-registry/internal/types"
)

func TestOpenStores(t *testing.T) {
	for _, backend := range []string{config.BackendMemory, config.BackendSQLite} {
		t.Run(backend, func(t *testing.T) {
			stores, closeStores, err := openStores(&config.Config{Env: "dev", Storage: config.Storage{Backend: backend}})
			require.NoError(t, err)
			defer closeStores()

			require.NoError(t, stores.Users.Put("alice", types.User{Name: "Alice", Role: types.RoleStudent}))
			_, err = stores.TeacherRatings.Increment("alice")
			require.NoError(t, err)

			n, err := stores.StudentRatings.Get("alice")
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestLoggerHandlerLevels(t *testing.T) {
	var buf bytes.Buffer
	ctx := context.Background()

	assert.False(t, loggerHandler("prod", &buf).Enabled(ctx, slog.LevelDebug))
	assert.True(t, loggerHandler("staging", &buf).Enabled(ctx, slog.LevelDebug))
	assert.True(t, loggerHandler("dev", &buf).Enabled(ctx, slog.LevelDebug))

	slog.New(loggerHandler("prod", &buf)).Info("hello")
	assert.Contains(t, buf.String(), `"msg":"hello"`)
}
