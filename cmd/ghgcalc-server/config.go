package main

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/rshade/ghgcalc/internal/config"
)

const defaultShutdownTimeout = 10 * time.Second

// listenConfig is the resolved network configuration of the server.
type listenConfig struct {
	GRPCAddress string
	// MetricsAddress is empty when the metrics listener is disabled.
	MetricsAddress  string
	ShutdownTimeout time.Duration
}

// parseListenConfig applies the process environment on top of the loaded
// server settings. PORT replaces the gRPC port and GHGCALC_METRICS_DISABLED
// turns the metrics listener off. Bad values are logged and ignored; bad
// addresses are an error.
func parseListenConfig(cfg config.ServerConfig, logger zerolog.Logger) (listenConfig, error) {
	lc := listenConfig{
		GRPCAddress:     cfg.Address,
		MetricsAddress:  cfg.MetricsAddress,
		ShutdownTimeout: cfg.ShutdownTimeout,
	}

	if portStr := os.Getenv("PORT"); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 && port <= 65535 {
			host, _, splitErr := net.SplitHostPort(lc.GRPCAddress)
			if splitErr != nil {
				host = ""
			}
			lc.GRPCAddress = net.JoinHostPort(host, strconv.Itoa(port))
		} else {
			logger.Warn().Str("value", portStr).Msg("invalid PORT, using configured address")
		}
	}

	if strings.ToLower(os.Getenv("GHGCALC_METRICS_DISABLED")) == "true" {
		lc.MetricsAddress = ""
	}

	if lc.ShutdownTimeout <= 0 {
		lc.ShutdownTimeout = defaultShutdownTimeout
	}

	if _, _, err := net.SplitHostPort(lc.GRPCAddress); err != nil {
		return listenConfig{}, fmt.Errorf("server.address %q: %w", lc.GRPCAddress, err)
	}
	if lc.MetricsAddress != "" {
		if _, _, err := net.SplitHostPort(lc.MetricsAddress); err != nil {
			return listenConfig{}, fmt.Errorf("server.metrics_address %q: %w", lc.MetricsAddress, err)
		}
		if lc.MetricsAddress == lc.GRPCAddress {
			return listenConfig{}, fmt.Errorf("server.metrics_address must differ from server.address (%s)", lc.GRPCAddress)
		}
	}

	logger.Debug().
		Str("grpc_address", lc.GRPCAddress).
		Str("metrics_address", lc.MetricsAddress).
		Dur("shutdown_timeout", lc.ShutdownTimeout).
		Msg("listen configuration applied")

	return lc, nil
}
