package carbon

import "fmt"

// ElectricityCO2 returns kg CO2 for purchased electricity:
//
//	kg = kWh / 1000 × factor (kg/MWh)
func ElectricityCO2(amountKWh, factorKgPerMWh float64) float64 {
	return amountKWh / KWhPerMWh * factorKgPerMWh
}

// DistrictHeatingCO2 returns kg CO2 for purchased district heating.
func DistrictHeatingCO2(amountGJ, factorKgPerGJ float64) float64 {
	return amountGJ * factorKgPerGJ
}

// Scope2 computes purchased-energy emissions. Absent inputs contribute
// nothing and are left out of the breakdown.
func (c *Calculator) Scope2(in Scope2Input) (Scope2Output, error) {
	out := Scope2Output{Breakdown: make(map[Scope2Key]float64, 2)}

	if e := in.Electricity; e != nil {
		if err := firstErr(
			requirePositive("amount_kwh", e.AmountKWh),
			requirePositiveOpt("emission_factor_kg_co2_per_mwh", e.EmissionFactorKgPerMWh),
		); err != nil {
			return Scope2Output{}, fmt.Errorf("electricity: %w", err)
		}
		factor, err := resolve("emission_factor_kg_co2_per_mwh", e.EmissionFactorKgPerMWh, c.table.ElectricityFactor)
		if err != nil {
			return Scope2Output{}, fmt.Errorf("electricity: %w", err)
		}
		kg := ElectricityCO2(e.AmountKWh, factor)
		out.Breakdown[Scope2Electricity] = kg
		out.TotalCO2Emissions += kg
	}

	if h := in.DistrictHeating; h != nil {
		if err := firstErr(
			requirePositive("amount_gj", h.AmountGJ),
			requirePositiveOpt("emission_factor_kg_co2_per_gj", h.EmissionFactorKgPerGJ),
		); err != nil {
			return Scope2Output{}, fmt.Errorf("district_heating: %w", err)
		}
		factor, err := resolve("emission_factor_kg_co2_per_gj", h.EmissionFactorKgPerGJ, c.table.DistrictHeatingFactor)
		if err != nil {
			return Scope2Output{}, fmt.Errorf("district_heating: %w", err)
		}
		kg := DistrictHeatingCO2(h.AmountGJ, factor)
		out.Breakdown[Scope2DistrictHeating] = kg
		out.TotalCO2Emissions += kg
	}

	logger.Debug().
		Int("entries", len(out.Breakdown)).
		Float64("total_co2_kg", out.TotalCO2Emissions).
		Msg("scope 2 calculated")

	return out, nil
}
