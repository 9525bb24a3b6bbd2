package carbon

import "fmt"

// Scope1 computes direct emissions. Combustion records are processed before
// fugitive records, each list in input order; the total is the running sum
// in that order. The first failing record aborts the calculation.
func (c *Calculator) Scope1(in Scope1Input) (Scope1Output, error) {
	out := Scope1Output{
		Breakdown: make([]EmissionResult, 0, len(in.CombustionEmissions)+len(in.FugitiveEmissions)),
	}

	for i, rec := range in.CombustionEmissions {
		act, err := rec.Activity(c.table)
		if err != nil {
			return Scope1Output{}, fmt.Errorf("combustion_emissions[%d]: %w", i, err)
		}
		if err := out.add(act); err != nil {
			return Scope1Output{}, fmt.Errorf("combustion_emissions[%d]: %w", i, err)
		}
	}

	for i, rec := range in.FugitiveEmissions {
		act, err := rec.Activity(c.table)
		if err != nil {
			return Scope1Output{}, fmt.Errorf("fugitive_emissions[%d]: %w", i, err)
		}
		if err := out.add(act); err != nil {
			return Scope1Output{}, fmt.Errorf("fugitive_emissions[%d]: %w", i, err)
		}
	}

	logger.Debug().
		Int("records", len(out.Breakdown)).
		Float64("total_co2e_kg", out.TotalCO2e).
		Msg("scope 1 calculated")

	return out, nil
}

func (o *Scope1Output) add(act Activity) error {
	res, err := act.Compute()
	if err != nil {
		return err
	}
	o.TotalCO2e += res.CO2e
	o.Breakdown = append(o.Breakdown, res)
	return nil
}
