// Package integration exercises the gRPC emissions service end to end over
// a real TCP listener.
//
// Run with: go test ./test/integration/... -v
package integration

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/status"

	"github.com/rshade/ghgcalc/internal/carbon"
	"github.com/rshade/ghgcalc/internal/factors"
	"github.com/rshade/ghgcalc/internal/service"
)

const (
	// numGoroutines is the number of concurrent clients for stress testing.
	numGoroutines = 100

	// numIterations is the number of calls per goroutine.
	numIterations = 5
)

func f64(v float64) *float64 { return &v }

type fixture struct {
	calc    *carbon.Calculator
	conn    *grpc.ClientConn
	client  *service.Client
	metrics *service.Metrics
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	table, err := factors.NewClient(zerolog.Nop())
	require.NoError(t, err)
	calc := carbon.NewCalculator(table)

	metrics := service.NewMetrics()
	gs := grpc.NewServer()
	service.Register(gs, service.NewServer(calc, metrics, zerolog.Nop()))
	hs := health.NewServer()
	healthpb.RegisterHealthServer(gs, hs)
	hs.SetServingStatus(service.ServiceName, healthpb.HealthCheckResponse_SERVING)

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go func() {
		_ = gs.Serve(lis)
	}()
	t.Cleanup(gs.GracefulStop)

	conn, err := grpc.NewClient(lis.Addr().String(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return &fixture{calc: calc, conn: conn, client: service.NewClient(conn), metrics: metrics}
}

func inventory() *carbon.ReportInput {
	return &carbon.ReportInput{
		Scope1: carbon.Scope1Input{
			CombustionEmissions: []carbon.CombustionInput{
				{Source: "Heating", FuelType: carbon.FuelNaturalGas, Unit: carbon.UnitCubicMeters, Amount: 12000},
				{Source: "Generators", FuelType: carbon.FuelDiesel, Unit: carbon.UnitLiters, Amount: 450},
				{Source: "Furnace", FuelType: carbon.FuelCoal, Unit: carbon.UnitTonnes, Amount: 2},
			},
			FugitiveEmissions: []carbon.FugitiveEmissionInput{
				{Source: "Refrigerants", RefrigerantType: carbon.RefrigerantR32, AmountKg: 1.2},
			},
		},
		Scope2: carbon.Scope2Input{
			Electricity:     &carbon.ElectricityInput{AmountKWh: 85000},
			DistrictHeating: &carbon.HeatingInput{AmountGJ: 320},
		},
		Scope3: carbon.Scope3Input{
			PurchasedGoodsServices: []carbon.Scope3Item{{VolumeM3: f64(900)}, {MassKg: f64(250), EcoLabeled: true}},
			WasteGenerated:         []carbon.Scope3Item{{MassKg: f64(4200)}, {VolumeM3: f64(700)}},
			BusinessTravel: []carbon.Scope3Item{
				{Type: carbon.SubtypeAirTravel, DistanceKm: f64(400), FlightClass: "economy"},
				{Type: carbon.SubtypeAirTravel, DistanceKm: f64(9000), FlightClass: "business"},
				{Type: carbon.SubtypeRailTravel, DistanceKm: f64(600)},
				{DistanceKm: f64(35), VehicleType: "Taxi"},
			},
		},
	}
}

func TestService_Health(t *testing.T) {
	fx := newFixture(t)

	resp, err := healthpb.NewHealthClient(fx.conn).Check(context.Background(),
		&healthpb.HealthCheckRequest{Service: service.ServiceName})
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus())
}

func TestService_ReportMatchesEngine(t *testing.T) {
	fx := newFixture(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	in := inventory()
	want, err := fx.calc.Report(ctx, *in)
	require.NoError(t, err)

	got, err := fx.client.CalculateReport(ctx, in)
	require.NoError(t, err)

	assert.InDelta(t, want.TotalCO2e, got.TotalCO2e, 1e-6)
	assert.InDelta(t, want.Scope1.TotalCO2e, got.Scope1.TotalCO2e, 1e-6)
	assert.InDelta(t, want.Scope2.TotalCO2Emissions, got.Scope2.TotalCO2Emissions, 1e-6)
	assert.InDelta(t, want.Scope3.TotalCO2eEmissions, got.Scope3.TotalCO2eEmissions, 1e-6)
	assert.Len(t, got.Scope1.Breakdown, 4)
	assert.Len(t, got.Scope3.Items, 8)

	for _, g := range carbon.Scope3Groups() {
		assert.Equal(t, len(want.Scope3.Breakdown.Group(g)), len(got.Scope3.Breakdown.Group(g)), g.String())
	}
}

func TestService_InvalidInputPosition(t *testing.T) {
	fx := newFixture(t)

	in := inventory()
	in.Scope3.BusinessTravel = append(in.Scope3.BusinessTravel, carbon.Scope3Item{DistanceKm: f64(5), VehicleType: "rickshaw"})

	_, err := fx.client.CalculateReport(context.Background(), in)
	require.Error(t, err)
	st, _ := status.FromError(err)
	assert.Equal(t, codes.InvalidArgument, st.Code())
	assert.Contains(t, st.Message(), "scope3: business_travel[4]")

	info, ok := service.ErrorInfo(err)
	require.True(t, ok)
	assert.Equal(t, "vehicle_type", info.GetMetadata()["field"])
}

// TestConcurrentAccess_Report spawns 100 clients making 5 report calls each
// and checks every response matches the engine.
func TestConcurrentAccess_Report(t *testing.T) {
	fx := newFixture(t)
	in := inventory()
	want, err := fx.calc.Report(context.Background(), *in)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, numGoroutines*numIterations)
	results := make(chan float64, numGoroutines*numIterations)

	for i := 0; i < numGoroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < numIterations; j++ {
				out, err := fx.client.CalculateReport(context.Background(), in)
				if err != nil {
					errs <- err
					return
				}
				results <- out.TotalCO2e
			}
		}()
	}

	wg.Wait()
	close(errs)
	close(results)

	require.Empty(t, errs, "No errors should occur during concurrent access")
	count := 0
	for total := range results {
		assert.InDelta(t, want.TotalCO2e, total, 1e-6)
		count++
	}
	assert.Equal(t, numGoroutines*numIterations, count)
}
