package config_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/log/global"

	"github.com/AntonStoeckl/library-circulation-go/config"
)

func Test_PGXPoolConfig_AppliesPoolLimits(t *testing.T) {
	// arrange
	pool := config.DefaultPostgresPool()
	pool.MaxConns = 7

	// act
	cfg, err := config.PGXPoolConfig(config.DefaultPostgresDSN, pool)

	// assert
	require.NoError(t, err)
	assert.Equal(t, int32(7), cfg.MaxConns)
	assert.Equal(t, pool.MinConns, cfg.MinConns)
	assert.Equal(t, pool.HealthCheckPeriod, cfg.HealthCheckPeriod)
	assert.Equal(t, pool.ConnectTimeout, cfg.ConnConfig.ConnectTimeout)
	assert.Equal(t, "circulation", cfg.ConnConfig.Database)
}

func Test_PGXPoolConfig_RejectsBadInput(t *testing.T) {
	_, errEmpty := config.PGXPoolConfig("", config.DefaultPostgresPool())
	_, errParse := config.PGXPoolConfig("postgres://%zz", config.DefaultPostgresPool())

	assert.ErrorIs(t, errEmpty, config.ErrEmptyDSN)
	assert.ErrorIs(t, errParse, config.ErrParsingPoolConfig)
}

func Test_ApplySQLPool(t *testing.T) {
	// arrange
	db, err := sql.Open("postgres", config.DefaultPostgresDSN)
	require.NoError(t, err)
	defer db.Close()

	pool := config.DefaultPostgresPool()
	pool.MaxConns = 3
	pool.MaxConnLifetime = time.Minute

	// act
	config.ApplySQLPool(db, pool)

	// assert
	assert.Equal(t, 3, db.Stats().MaxOpenConnections)
}

func Test_NewObservabilityProviders_RegistersAllThreeGlobals(t *testing.T) {
	// arrange
	ctx := context.Background()

	// act
	providers, err := config.NewObservabilityProviders(ctx, "circulation-test", "test", "localhost:4317")

	// assert
	require.NoError(t, err)
	t.Cleanup(func() { _ = providers.Shutdown() }) // nothing listens on the endpoint

	require.NotNil(t, providers.LoggerProvider)
	assert.Same(t, providers.LoggerProvider, global.GetLoggerProvider())
	assert.Same(t, providers.TracerProvider, otel.GetTracerProvider())
	assert.Same(t, providers.MeterProvider, otel.GetMeterProvider())
}
