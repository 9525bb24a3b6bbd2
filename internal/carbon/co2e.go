package carbon

import "math"

// CO2e folds per-gas masses (kg) into kg CO2-equivalent:
//
//	co2e = CO2 + CH4 × 28 + N2O × 265
//
// NaN, infinite and negative masses are rejected with ErrInvalidInput.
func CO2e(massCO2, massCH4, massN2O float64) (float64, error) {
	for _, m := range []struct {
		field string
		v     float64
	}{
		{"mass_co2", massCO2},
		{"mass_ch4", massCH4},
		{"mass_n2o", massN2O},
	} {
		if math.IsNaN(m.v) || math.IsInf(m.v, 0) {
			return 0, invalid(m.field, m.v, "must be a finite number")
		}
		if m.v < 0 {
			return 0, invalid(m.field, m.v, "must not be negative")
		}
	}
	return massCO2 + massCH4*GWPCH4 + massN2O*GWPN2O, nil
}
