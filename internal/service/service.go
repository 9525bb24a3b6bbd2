// Package service exposes the emission calculator as a gRPC service. Messages
// are the engine's own JSON types carried by a registered JSON codec.
package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"google.golang.org/grpc"
	"google.golang.org/grpc/metadata"

	"github.com/rshade/ghgcalc/internal/carbon"
)

// Log field names shared by every request log.
const (
	FieldTraceID     = "trace_id"
	FieldOperation   = "operation"
	FieldDurationMs  = "duration_ms"
	FieldTotalCO2eKg = "total_co2e_kg"
	FieldGRPCCode    = "grpc_code"
)

// TraceIDMetadataKey is the metadata key carrying the request trace ID in
// both directions.
const TraceIDMetadataKey = "x-trace-id"

// Scope label values.
const (
	ScopeScope1 = "scope1"
	ScopeScope2 = "scope2"
	ScopeScope3 = "scope3"
	ScopeReport = "report"
)

// Server implements EmissionsServer on top of a calculator.
type Server struct {
	calc     carbon.EmissionsCalculator
	metrics  *Metrics
	logger   zerolog.Logger // logger is immutable (copy-on-write)
	testMode bool           // true when GHGCALC_TEST_MODE=true
}

// NewServer creates a Server. metrics may be nil to disable instrumentation.
func NewServer(calc carbon.EmissionsCalculator, metrics *Metrics, logger zerolog.Logger) *Server {
	logger = logger.With().Str("component", "service").Logger()
	ValidateTestModeEnv(logger)

	testMode := IsTestMode()
	if testMode {
		logger.Info().Msg("Test mode enabled")
	}

	return &Server{
		calc:     calc,
		metrics:  metrics,
		logger:   logger,
		testMode: testMode,
	}
}

// CalculateScope1 computes direct emissions.
func (s *Server) CalculateScope1(ctx context.Context, in *carbon.Scope1Input) (*carbon.Scope1Output, error) {
	return serve(ctx, s, "CalculateScope1", ScopeScope1, in,
		func(_ context.Context, in carbon.Scope1Input) (carbon.Scope1Output, error) { return s.calc.Scope1(in) },
		func(out carbon.Scope1Output) float64 { return out.TotalCO2e })
}

// CalculateScope2 computes purchased-energy emissions.
func (s *Server) CalculateScope2(ctx context.Context, in *carbon.Scope2Input) (*carbon.Scope2Output, error) {
	return serve(ctx, s, "CalculateScope2", ScopeScope2, in,
		func(_ context.Context, in carbon.Scope2Input) (carbon.Scope2Output, error) { return s.calc.Scope2(in) },
		func(out carbon.Scope2Output) float64 { return out.TotalCO2Emissions })
}

// CalculateScope3 computes value-chain emissions.
func (s *Server) CalculateScope3(ctx context.Context, in *carbon.Scope3Input) (*carbon.Scope3Output, error) {
	return serve(ctx, s, "CalculateScope3", ScopeScope3, in,
		func(_ context.Context, in carbon.Scope3Input) (carbon.Scope3Output, error) { return s.calc.Scope3(in) },
		func(out carbon.Scope3Output) float64 { return out.TotalCO2eEmissions })
}

// CalculateReport computes all three scopes.
func (s *Server) CalculateReport(ctx context.Context, in *carbon.ReportInput) (*carbon.ReportOutput, error) {
	return serve(ctx, s, "CalculateReport", ScopeReport, in, s.calc.Report,
		func(out carbon.ReportOutput) float64 { return out.TotalCO2e })
}

// serve runs one calculation with trace propagation, logging, metrics and
// status mapping.
func serve[In, Out any](
	ctx context.Context,
	s *Server,
	operation, scope string,
	in *In,
	calc func(context.Context, In) (Out, error),
	total func(Out) float64,
) (*Out, error) {
	start := time.Now()
	traceID := s.getTraceID(ctx)

	if err := grpc.SetHeader(ctx, metadata.Pairs(TraceIDMetadataKey, traceID)); err != nil {
		s.logger.Debug().Str(FieldTraceID, traceID).Err(err).Msg("failed to set response header")
	}

	if s.testMode {
		s.logger.Debug().
			Str(FieldTraceID, traceID).
			Str(FieldOperation, operation).
			Interface("request", in).
			Msg("request received")
	}

	var req In
	if in != nil {
		req = *in
	}
	out, err := calc(ctx, req)
	elapsed := time.Since(start)

	if err != nil {
		code, outcome := classify(err)
		s.metrics.observe(scope, outcome, elapsed, 0)
		s.logErrorWithID(traceID, operation, err, code.String(), elapsed)
		return nil, s.newErrorWithID(traceID, code, err)
	}

	co2e := total(out)
	s.metrics.observe(scope, OutcomeSuccess, elapsed, co2e)
	s.logger.Info().
		Str(FieldTraceID, traceID).
		Str(FieldOperation, operation).
		Int64(FieldDurationMs, elapsed.Milliseconds()).
		Float64(FieldTotalCO2eKg, co2e).
		Msg("calculation completed")

	return &out, nil
}

// getTraceID reads the trace ID from incoming metadata or generates one.
func (s *Server) getTraceID(ctx context.Context) string {
	if md, ok := metadata.FromIncomingContext(ctx); ok {
		if values := md.Get(TraceIDMetadataKey); len(values) > 0 && values[0] != "" {
			return values[0]
		}
	}
	return uuid.New().String()
}

func (s *Server) logErrorWithID(traceID, operation string, err error, code string, elapsed time.Duration) {
	s.logger.Error().
		Str(FieldTraceID, traceID).
		Str(FieldOperation, operation).
		Str(FieldGRPCCode, code).
		Int64(FieldDurationMs, elapsed.Milliseconds()).
		Err(err).
		Msg("request failed")
}
