package carbon

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/ghgcalc/internal/factors"
)

func TestLitersToGJ_Diesel(t *testing.T) {
	// 100 l x 0.82 kg/l x 43.1 MJ/kg / 1000
	assert.InDelta(t, 3.5342, LitersToGJ(100, 0.82, 43.1), tolerance)
}

func TestEnergyConversions(t *testing.T) {
	tests := []struct {
		name string
		got  float64
		want float64
	}{
		{"natural gas 1000 m3 at 38 MJ/m3", CubicMetersToGJ(1000, 38), 38},
		{"coal 2 t at 24 MJ/kg", TonnesToGJ(2, 24), 48},
		{"petrol 50 l", LitersToGJ(50, 0.72, 44.3), 50 * 0.72 * 44.3 / 1000},
		{"fleet fuel 100 km at 60 g/km", FleetFuelKg(100, 60), 6},
		{"6 kg diesel to liters", FuelKgToLiters(6, 0.82), 6 / 0.82},
		{"km to miles", KmToMi(100), 62.1371},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.got, tolerance)
		})
	}
}

func TestClassifyHaul(t *testing.T) {
	tests := []struct {
		miles float64
		want  factors.HaulClass
	}{
		{0.5, factors.HaulShort},
		{299.999, factors.HaulShort},
		{300, factors.HaulMedium},
		{1200, factors.HaulMedium},
		{2299.999, factors.HaulMedium},
		{2300, factors.HaulLong},
		{9000, factors.HaulLong},
	}
	for _, tt := range tests {
		t.Run(tt.want.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyHaul(tt.miles), "miles=%v", tt.miles)
		})
	}
}
