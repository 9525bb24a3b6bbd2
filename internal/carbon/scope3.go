package carbon

import "fmt"

// Scope3 computes value-chain emissions for purchased goods, waste and
// business travel. Results accumulate into the grouped breakdown and the
// total is the breakdown sum. The first failing item aborts the calculation.
func (c *Calculator) Scope3(in Scope3Input) (Scope3Output, error) {
	var out Scope3Output

	lists := []struct {
		group Scope3Group
		items []Scope3Item
	}{
		{GroupPurchasedGoodsServices, in.PurchasedGoodsServices},
		{GroupWasteGenerated, in.WasteGenerated},
		{GroupBusinessTravel, in.BusinessTravel},
	}

	for _, list := range lists {
		for i, item := range list.items {
			act, sub, err := item.Activity(list.group, c.table)
			if err != nil {
				return Scope3Output{}, fmt.Errorf("%s[%d]: %w", list.group, i, err)
			}
			res, err := act.Compute()
			if err != nil {
				return Scope3Output{}, fmt.Errorf("%s[%d]: %w", list.group, i, err)
			}
			out.Breakdown.Add(sub, res.CO2e)
			out.Items = append(out.Items, res)
		}
	}

	out.TotalCO2eEmissions = out.Breakdown.Total()

	logger.Debug().
		Int("items", len(out.Items)).
		Float64("total_co2e_kg", out.TotalCO2eEmissions).
		Msg("scope 3 calculated")

	return out, nil
}
