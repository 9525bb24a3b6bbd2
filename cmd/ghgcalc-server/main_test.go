package main

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgcalc/internal/config"
)

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	lc := listenConfig{
		GRPCAddress:     "127.0.0.1:0",
		MetricsAddress:  "127.0.0.1:0",
		ShutdownTimeout: time.Second,
	}

	done := make(chan error, 1)
	go func() {
		done <- run(ctx, config.Default(), lc, zerolog.Nop())
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestRun_BadFactorsFile(t *testing.T) {
	cfg := config.Default()
	cfg.Factors.File = t.TempDir() + "/missing.json"

	err := run(context.Background(), cfg, listenConfig{GRPCAddress: "127.0.0.1:0"}, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading emission factors")
}
