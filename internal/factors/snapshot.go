package factors

import "sort"

// Snapshot is a sorted, read-only view of the whole data set for display.
type Snapshot struct {
	Version                string                `json:"version"`
	SchemaVersion          string                `json:"schema_version"`
	Source                 string                `json:"source"`
	Origin                 string                `json:"origin"`
	Fuels                  []Fuel                `json:"fuels"`
	Refrigerants           []Refrigerant         `json:"refrigerants"`
	Fleet                  []FleetProfile        `json:"fleet"`
	Air                    map[string]AirFactors `json:"air"`
	Rail                   *RailFactors          `json:"rail,omitempty"`
	Road                   []RoadFactor          `json:"road"`
	Goods                  map[GoodsKey]float64  `json:"goods"`
	ElectricityKgPerMWh    float64               `json:"electricity_kg_per_mwh"`
	DistrictHeatingKgPerGJ float64               `json:"district_heating_kg_per_gj"`
}

// Snapshot returns a copy of the loaded data set.
func (c *Client) Snapshot() Snapshot {
	_ = c.init()

	s := Snapshot{
		Version:                c.version,
		SchemaVersion:          c.schemaVersion,
		Source:                 c.source,
		Origin:                 c.origin,
		Air:                    make(map[string]AirFactors, len(c.air)),
		Goods:                  make(map[GoodsKey]float64, len(c.goods)),
		ElectricityKgPerMWh:    c.electricityKgPerMWh,
		DistrictHeatingKgPerGJ: c.districtHeatingKgPerGJ,
	}
	for _, f := range c.fuels {
		s.Fuels = append(s.Fuels, f)
	}
	sort.Slice(s.Fuels, func(i, j int) bool { return s.Fuels[i].Name < s.Fuels[j].Name })

	for _, r := range c.refrigerants {
		s.Refrigerants = append(s.Refrigerants, r)
	}
	sort.Slice(s.Refrigerants, func(i, j int) bool { return s.Refrigerants[i].Name < s.Refrigerants[j].Name })

	for _, p := range c.fleet {
		s.Fleet = append(s.Fleet, p)
	}
	sort.Slice(s.Fleet, func(i, j int) bool { return s.Fleet[i].VehicleClass < s.Fleet[j].VehicleClass })

	for _, r := range c.road {
		s.Road = append(s.Road, r)
	}
	sort.Slice(s.Road, func(i, j int) bool { return s.Road[i].Vehicle < s.Road[j].Vehicle })

	for h, a := range c.air {
		s.Air[h.String()] = a
	}
	for k, v := range c.goods {
		s.Goods[k] = v
	}
	if c.rail != nil {
		rail := *c.rail
		s.Rail = &rail
	}
	return s
}
