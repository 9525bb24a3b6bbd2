package carbon

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/rshade/ghgcalc/internal/factors"
)

const tolerance = 1e-9

func f64(v float64) *float64 { return &v }

func newTestTable(t testing.TB) *factors.Client {
	t.Helper()
	table, err := factors.NewClient(zerolog.Nop())
	require.NoError(t, err)
	return table
}

func newTestCalculator(t testing.TB) *Calculator {
	t.Helper()
	return NewCalculator(newTestTable(t))
}

func factorsOf(co2, ch4, n2o float64) factors.GasFactors {
	return factors.GasFactors{CO2: co2, CH4: ch4, N2O: n2o}
}
