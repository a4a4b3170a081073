package database

import (
	"context"
	"testing"

	"railbook/internal/shared/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitDB_RedisDisabled(t *testing.T) {
	cfg := config.Load()
	cfg.Redis.Enabled = false

	db := InitDB(cfg)
	require.NotNil(t, db)
	assert.Nil(t, db.GetRedis())
	assert.NoError(t, db.HealthCheck(context.Background()))
	assert.NoError(t, db.Close())
}
