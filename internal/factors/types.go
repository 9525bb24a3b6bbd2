package factors

import "fmt"

// dataSet represents the on-disk layout of an emission factor data set.
// The same structure is read from JSON (embedded defaults) and from YAML
// or JSON files supplied by the operator.
type dataSet struct {
	SchemaVersion string             `json:"schema_version" yaml:"schema_version"`
	Version       string             `json:"version" yaml:"version"`
	Source        string             `json:"source" yaml:"source"`
	Fuels         []fuelEntry        `json:"fuels" yaml:"fuels"`
	Refrigerants  []refrigerant      `json:"refrigerants" yaml:"refrigerants"`
	Fleet         []fleetEntry       `json:"fleet" yaml:"fleet"`
	Scope2        scope2Entry        `json:"scope2" yaml:"scope2"`
	Goods         map[string]float64 `json:"goods" yaml:"goods"`
	Air           []airEntry         `json:"air" yaml:"air"`
	Rail          railEntry          `json:"rail" yaml:"rail"`
	Road          []roadEntry        `json:"road" yaml:"road"`
}

// fuelEntry holds the physical properties and per-energy emission factors
// of one combustible fuel.
type fuelEntry struct {
	Name           string  `json:"name" yaml:"name"`
	DensityKgPerL  float64 `json:"density_kg_per_l,omitempty" yaml:"density_kg_per_l,omitempty"`
	CalorificValue float64 `json:"calorific_value,omitempty" yaml:"calorific_value,omitempty"`
	CalorificUnit  string  `json:"calorific_unit,omitempty" yaml:"calorific_unit,omitempty"` // MJ/kg or MJ/m3
	FactorUnit     string  `json:"factor_unit,omitempty" yaml:"factor_unit,omitempty"`       // kg/GJ (default) or g/mmBtu
	CO2            float64 `json:"co2" yaml:"co2"`
	CH4            float64 `json:"ch4" yaml:"ch4"`
	N2O            float64 `json:"n2o" yaml:"n2o"`
}

type refrigerant struct {
	Name string  `json:"name" yaml:"name"`
	GWP  float64 `json:"gwp" yaml:"gwp"`
}

type fleetEntry struct {
	VehicleClass      string  `json:"vehicle_class" yaml:"vehicle_class"`
	Fuel              string  `json:"fuel" yaml:"fuel"`
	ConsumptionGPerKm float64 `json:"consumption_g_per_km" yaml:"consumption_g_per_km"`
}

type scope2Entry struct {
	ElectricityKgPerMWh    float64 `json:"electricity_kg_per_mwh" yaml:"electricity_kg_per_mwh"`
	DistrictHeatingKgPerGJ float64 `json:"district_heating_kg_per_gj" yaml:"district_heating_kg_per_gj"`
}

type airEntry struct {
	Haul         string  `json:"haul" yaml:"haul"`
	CO2KgPerMile float64 `json:"co2_kg_per_mile" yaml:"co2_kg_per_mile"`
	CH4GPerMile  float64 `json:"ch4_g_per_mile" yaml:"ch4_g_per_mile"`
	N2OGPerMile  float64 `json:"n2o_g_per_mile" yaml:"n2o_g_per_mile"`
}

type railEntry struct {
	CO2KgPerKm   float64 `json:"co2_kg_per_km" yaml:"co2_kg_per_km"`
	CH4KgPerMile float64 `json:"ch4_kg_per_mile" yaml:"ch4_kg_per_mile"`
	N2OKgPerMile float64 `json:"n2o_kg_per_mile" yaml:"n2o_kg_per_mile"`
}

type roadEntry struct {
	Vehicle     string  `json:"vehicle" yaml:"vehicle"`
	CO2eKgPerKm float64 `json:"co2e_kg_per_km" yaml:"co2e_kg_per_km"`
}

// GasFactors is an immutable {CO2, CH4, N2O} emission factor triple.
// For combustion fuels the values are kg per GJ of energy.
type GasFactors struct {
	CO2 float64 `json:"co2"`
	CH4 float64 `json:"ch4"`
	N2O float64 `json:"n2o"`
}

// Fuel describes a fuel's physical properties as loaded from the data set.
// A zero DensityKgPerL means the fuel has no liquid density (gas, solid).
type Fuel struct {
	Name           string     `json:"name"`
	DensityKgPerL  float64    `json:"density_kg_per_l,omitempty"`
	CalorificValue float64    `json:"calorific_value,omitempty"`
	CalorificUnit  string     `json:"calorific_unit,omitempty"`
	Factors        GasFactors `json:"factors_kg_per_gj"`
}

// FleetProfile is the typical consumption of one vehicle class, used for
// distance-based fleet estimates.
type FleetProfile struct {
	VehicleClass      string  `json:"vehicle_class"`
	Fuel              string  `json:"fuel"`
	ConsumptionGPerKm float64 `json:"consumption_g_per_km"`
}

// AirFactors holds per-mile emission factors for one haul class.
// CO2 is in kg per mile, CH4 and N2O are in grams per mile.
type AirFactors struct {
	CO2KgPerMile float64 `json:"co2_kg_per_mile"`
	CH4GPerMile  float64 `json:"ch4_g_per_mile"`
	N2OGPerMile  float64 `json:"n2o_g_per_mile"`
}

// RailFactors holds rail travel factors. CO2 is per kilometer while CH4
// and N2O are per mile.
type RailFactors struct {
	CO2KgPerKm   float64 `json:"co2_kg_per_km"`
	CH4KgPerMile float64 `json:"ch4_kg_per_mile"`
	N2OKgPerMile float64 `json:"n2o_kg_per_mile"`
}

// HaulClass is the air travel distance bracket.
type HaulClass int

const (
	// HaulShort covers flights under 300 miles.
	HaulShort HaulClass = iota
	// HaulMedium covers flights from 300 up to (not including) 2300 miles.
	HaulMedium
	// HaulLong covers flights of 2300 miles or more.
	HaulLong
)

// String returns the display name used in results ("Short Haul", ...).
func (h HaulClass) String() string {
	switch h {
	case HaulShort:
		return "Short Haul"
	case HaulMedium:
		return "Medium Haul"
	case HaulLong:
		return "Long Haul"
	default:
		return fmt.Sprintf("HaulClass(%d)", int(h))
	}
}

// key returns the data set key for the haul class.
func (h HaulClass) key() string {
	switch h {
	case HaulShort:
		return "short"
	case HaulMedium:
		return "medium"
	case HaulLong:
		return "long"
	default:
		return ""
	}
}

// GoodsKey identifies a single-factor Scope 3 goods or waste entry.
type GoodsKey string

// Goods and waste factor keys. Water and wastewater factors are kg CO2e per
// m3; paper and solid waste factors are kg CO2e per tonne.
const (
	GoodsWaterSupply         GoodsKey = "water_supply"
	GoodsPaperEcoLabeled     GoodsKey = "paper_eco_labeled"
	GoodsPaperStandard       GoodsKey = "paper_standard"
	GoodsSolidWasteDisposal  GoodsKey = "solid_waste_disposal"
	GoodsWastewaterTreatment GoodsKey = "wastewater_treatment"
)

// Calorific value units accepted in the data set.
const (
	CalorificPerKg = "MJ/kg"
	CalorificPerM3 = "MJ/m3"
)

// Emission factor units accepted in the data set.
const (
	FactorKgPerGJ   = "kg/GJ"
	FactorGPerMMBtu = "g/mmBtu"
)
