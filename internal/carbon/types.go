package carbon

// FuelType is a combustible fuel accepted in Scope 1 combustion records.
type FuelType string

// Supported fuel types.
const (
	FuelNaturalGas FuelType = "Natural Gas"
	FuelHeatingOil FuelType = "Heating Oil"
	FuelDiesel     FuelType = "Diesel"
	FuelPetrol     FuelType = "Petrol"
	FuelCoal       FuelType = "Coal"

	// FuelElectricity is accepted at the boundary but has no combustion path.
	FuelElectricity FuelType = "Electricity"
)

func (f FuelType) valid() bool {
	switch f {
	case FuelNaturalGas, FuelHeatingOil, FuelDiesel, FuelPetrol, FuelCoal, FuelElectricity:
		return true
	}
	return false
}

// liquid reports whether the fuel is metered in liters.
func (f FuelType) liquid() bool {
	return f == FuelDiesel || f == FuelPetrol || f == FuelHeatingOil
}

// Unit is the unit of measure of a combustion amount.
type Unit string

// Supported units.
const (
	UnitCubicMeters Unit = "m3"
	UnitLiters      Unit = "l"
	UnitTonnes      Unit = "t"
	UnitKWh         Unit = "kWh"
	UnitKilometers  Unit = "km"
)

func (u Unit) valid() bool {
	switch u {
	case UnitCubicMeters, UnitLiters, UnitTonnes, UnitKWh, UnitKilometers:
		return true
	}
	return false
}

// RefrigerantType names a refrigerant gas. Any refrigerant present in the
// factor table is accepted; RefrigerantCustom requires an explicit GWP.
type RefrigerantType string

// Refrigerants in the default factor table, plus the custom marker.
const (
	RefrigerantR407C  RefrigerantType = "R407C"
	RefrigerantR32    RefrigerantType = "R32"
	RefrigerantR410A  RefrigerantType = "R410A"
	RefrigerantCustom RefrigerantType = "Custom"
)

// Category classifies an EmissionResult.
type Category string

// Result categories. Scope 3 categories share their names with the
// breakdown subtypes.
const (
	CategoryCombustion      Category = "combustion"
	CategoryFleet           Category = "fleet"
	CategoryFugitive        Category = "fugitive"
	CategoryElectricity     Category = "electricity"
	CategoryDistrictHeating Category = "district_heating"
	CategoryWaterSupply     Category = "water_supply"
	CategoryPaperUsage      Category = "paper_usage"
	CategorySolidWaste      Category = "solid_waste_disposal"
	CategoryWastewater      Category = "wastewater_treatment"
	CategoryAirTravel       Category = "air_travel"
	CategoryRailTravel      Category = "rail_travel"
	CategoryTaxiBusTravel   Category = "taxi_bus_travel"
)

// CombustionInput is a Scope 1 combustion record as received from callers.
// Optional overrides replace the factor table defaults when set.
type CombustionInput struct {
	// Source describes the emitter, e.g. "Heating", "Generators" or "Fleet".
	Source   string   `json:"source" yaml:"source"`
	FuelType FuelType `json:"fuel_type" yaml:"fuel_type"`
	Unit     Unit     `json:"unit" yaml:"unit"`
	Amount   float64  `json:"amount" yaml:"amount"`

	// CalorificValueMJKg is MJ/kg, or MJ/m3 for natural gas metered in m3.
	CalorificValueMJKg *float64 `json:"calorific_value_mj_kg,omitempty" yaml:"calorific_value_mj_kg,omitempty"`
	DensityKgL         *float64 `json:"density_kg_l,omitempty" yaml:"density_kg_l,omitempty"`

	// Distance-based fleet estimate (unit "km", source "Fleet").
	DistanceKm  *float64 `json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
	VehicleType string   `json:"vehicle_type,omitempty" yaml:"vehicle_type,omitempty"`

	EmissionFactorCO2KgGJ *float64 `json:"emission_factor_co2_kg_gj,omitempty" yaml:"emission_factor_co2_kg_gj,omitempty"`
	EmissionFactorCH4KgGJ *float64 `json:"emission_factor_ch4_kg_gj,omitempty" yaml:"emission_factor_ch4_kg_gj,omitempty"`
	EmissionFactorN2OKgGJ *float64 `json:"emission_factor_n2o_kg_gj,omitempty" yaml:"emission_factor_n2o_kg_gj,omitempty"`
}

// FugitiveEmissionInput is a Scope 1 refrigerant refill record.
type FugitiveEmissionInput struct {
	Source          string          `json:"source" yaml:"source"`
	RefrigerantType RefrigerantType `json:"refrigerant_type" yaml:"refrigerant_type"`
	AmountKg        float64         `json:"amount_kg" yaml:"amount_kg"`
	GWPFactor       *float64        `json:"gwp_factor,omitempty" yaml:"gwp_factor,omitempty"`
}

// Scope1Input lists combustion and fugitive records.
type Scope1Input struct {
	CombustionEmissions []CombustionInput       `json:"combustion_emissions" yaml:"combustion_emissions"`
	FugitiveEmissions   []FugitiveEmissionInput `json:"fugitive_emissions" yaml:"fugitive_emissions"`
}

// ElectricityInput is purchased electricity consumption.
type ElectricityInput struct {
	AmountKWh float64 `json:"amount_kwh" yaml:"amount_kwh"`

	// EmissionFactorKgPerMWh overrides the grid factor (e.g. market-based).
	EmissionFactorKgPerMWh *float64 `json:"emission_factor_kg_co2_per_mwh,omitempty" yaml:"emission_factor_kg_co2_per_mwh,omitempty"`
}

// HeatingInput is purchased district heating consumption.
type HeatingInput struct {
	AmountGJ              float64  `json:"amount_gj" yaml:"amount_gj"`
	EmissionFactorKgPerGJ *float64 `json:"emission_factor_kg_co2_per_gj,omitempty" yaml:"emission_factor_kg_co2_per_gj,omitempty"`
}

// Scope2Input holds the optional purchased-energy inputs.
type Scope2Input struct {
	Electricity     *ElectricityInput `json:"electricity,omitempty" yaml:"electricity,omitempty"`
	DistrictHeating *HeatingInput     `json:"district_heating,omitempty" yaml:"district_heating,omitempty"`
}

// Scope3Item is one Scope 3 line item. Type selects the subtype; when it is
// omitted the subtype is inferred from the fields present and the list the
// item appears in.
type Scope3Item struct {
	Type Scope3Subtype `json:"type,omitempty" yaml:"type,omitempty"`

	VolumeM3   *float64 `json:"volume_m3,omitempty" yaml:"volume_m3,omitempty"`
	MassKg     *float64 `json:"mass_kg,omitempty" yaml:"mass_kg,omitempty"`
	EcoLabeled bool     `json:"eco_labeled,omitempty" yaml:"eco_labeled,omitempty"`

	DistanceKm  *float64 `json:"distance_km,omitempty" yaml:"distance_km,omitempty"`
	VehicleType string   `json:"vehicle_type,omitempty" yaml:"vehicle_type,omitempty"`

	// FlightClass is recorded on the result; it does not change the factor.
	FlightClass string `json:"flight_class,omitempty" yaml:"flight_class,omitempty"`
}

// Scope3Input groups line items the way the GHG Protocol categories do.
type Scope3Input struct {
	PurchasedGoodsServices []Scope3Item `json:"purchased_goods_services" yaml:"purchased_goods_services"`
	WasteGenerated         []Scope3Item `json:"waste_generated" yaml:"waste_generated"`
	BusinessTravel         []Scope3Item `json:"business_travel" yaml:"business_travel"`
}

// ReportInput bundles the inputs of all three scopes.
type ReportInput struct {
	Scope1 Scope1Input `json:"scope1" yaml:"scope1"`
	Scope2 Scope2Input `json:"scope2" yaml:"scope2"`
	Scope3 Scope3Input `json:"scope3" yaml:"scope3"`
}

// EmissionResult is the outcome of one activity record.
type EmissionResult struct {
	Source          string          `json:"source"`
	Category        Category        `json:"category"`
	FuelType        FuelType        `json:"fuel_type,omitempty"`
	RefrigerantType RefrigerantType `json:"refrigerant_type,omitempty"`

	// Subtype carries the haul class or vehicle type for travel results.
	Subtype string `json:"subtype,omitempty"`

	// CO2e is kg CO2-equivalent.
	CO2e float64 `json:"co2e"`

	// Details holds the intermediate quantities (energy_gj, mass_co2, ...).
	Details map[string]float64 `json:"details"`

	// Labels holds non-numeric attributes echoed from the input.
	Labels map[string]string `json:"labels,omitempty"`
}

// Scope1Output is the Scope 1 total and the per-record results in input
// order, combustion records first.
type Scope1Output struct {
	TotalCO2e float64          `json:"total_co2e"`
	Breakdown []EmissionResult `json:"breakdown"`
}

// Scope2Key identifies a Scope 2 breakdown entry.
type Scope2Key string

// Scope 2 breakdown keys.
const (
	Scope2Electricity     Scope2Key = "electricity"
	Scope2DistrictHeating Scope2Key = "district_heating"
)

// Scope2Output is the Scope 2 total. Absent inputs are omitted from the
// breakdown.
type Scope2Output struct {
	TotalCO2Emissions float64               `json:"total_co2_emissions"`
	Breakdown         map[Scope2Key]float64 `json:"breakdown"`
}

// Scope3Output is the Scope 3 total, its grouped breakdown and the
// per-item results in input order.
type Scope3Output struct {
	TotalCO2eEmissions float64          `json:"total_co2e_emissions"`
	Breakdown          Scope3Breakdown  `json:"breakdown"`
	Items              []EmissionResult `json:"items,omitempty"`
}

// ReportOutput combines all three scopes.
type ReportOutput struct {
	Scope1    Scope1Output `json:"scope1"`
	Scope2    Scope2Output `json:"scope2"`
	Scope3    Scope3Output `json:"scope3"`
	TotalCO2e float64      `json:"total_co2e"`
}
