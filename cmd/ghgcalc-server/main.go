package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/rshade/ghgcalc/internal/carbon"
	"github.com/rshade/ghgcalc/internal/config"
	"github.com/rshade/ghgcalc/internal/factors"
	"github.com/rshade/ghgcalc/internal/service"
)

var version = "dev"

func main() {
	// Setup context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		fmt.Fprintf(os.Stderr, "[ghgcalc-server] Received shutdown signal\n")
		cancel()
	}()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "[ghgcalc-server] Error: %v\n", err)
		cancel()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath, factorsFile string
	cmd := &cobra.Command{
		Use:           "ghgcalc-server",
		Short:         "Serve the emission calculator over gRPC",
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if factorsFile != "" {
				cfg.Factors.File = factorsFile
			}
			logger := config.NewLogger(cfg.Logging, cmd.ErrOrStderr()).
				With().Str("service", "ghgcalc-server").Logger()

			lc, err := parseListenConfig(cfg.Server, logger)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg, lc, logger)
		},
	}
	cmd.Flags().StringVar(&configPath, "config", "", "path to a YAML configuration file")
	cmd.Flags().StringVar(&factorsFile, "factors", "", "emission factor data set replacing the embedded defaults")
	return cmd
}

// run serves until ctx is done or a listener fails, then shuts both servers
// down within lc.ShutdownTimeout.
func run(ctx context.Context, cfg config.Config, lc listenConfig, logger zerolog.Logger) error {
	carbon.SetLogger(logger)

	var (
		table *factors.Client
		err   error
	)
	if cfg.Factors.File != "" {
		table, err = factors.NewClientFromFile(cfg.Factors.File, logger)
	} else {
		table, err = factors.NewClient(logger)
	}
	if err != nil {
		return fmt.Errorf("loading emission factors: %w", err)
	}

	metrics := service.NewMetrics()
	gs := grpc.NewServer()
	service.Register(gs, service.NewServer(carbon.NewCalculator(table), metrics, logger))

	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	hs.SetServingStatus(service.ServiceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", lc.GRPCAddress)
	if err != nil {
		return fmt.Errorf("listen %s: %w", lc.GRPCAddress, err)
	}

	errCh := make(chan error, 2)
	go func() {
		logger.Info().
			Str("addr", lis.Addr().String()).
			Str("factors_version", table.Version()).
			Str("factors_origin", table.Origin()).
			Msg("Starting gRPC server")
		if err := gs.Serve(lis); err != nil {
			errCh <- fmt.Errorf("grpc server: %w", err)
		}
	}()

	var metricsServer *http.Server
	if lc.MetricsAddress != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		metricsServer = &http.Server{
			Addr:              lc.MetricsAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}
		go func() {
			logger.Info().Str("addr", lc.MetricsAddress).Msg("Starting metrics server")
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- fmt.Errorf("metrics server: %w", err)
			}
		}()
	}

	var serveErr error
	select {
	case <-ctx.Done():
	case serveErr = <-errCh:
		logger.Error().Err(serveErr).Msg("Server failed")
	}

	shutdown(gs, hs, metricsServer, lc.ShutdownTimeout, logger)
	return serveErr
}

func shutdown(gs *grpc.Server, hs *health.Server, metricsServer *http.Server, timeout time.Duration, logger zerolog.Logger) {
	logger.Info().Dur("timeout", timeout).Msg("Shutting down")
	hs.Shutdown()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	stopped := make(chan struct{})
	go func() {
		gs.GracefulStop()
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-ctx.Done():
		logger.Warn().Msg("graceful stop timed out, closing connections")
		gs.Stop()
	}

	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
	}
}
