package carbon

import (
	"strings"

	"github.com/rshade/ghgcalc/internal/factors"
)

// Activity is a fully resolved emission source. Every value needed for the
// calculation is present, so Compute does not consult the factor table.
// The set of implementations is closed.
type Activity interface {
	// Compute returns the emission result of the activity.
	Compute() (EmissionResult, error)

	isActivity()
}

// LiquidFuelCombustion is fuel metered in liters (diesel, petrol, heating oil).
type LiquidFuelCombustion struct {
	Source           string
	Fuel             FuelType
	Liters           float64
	DensityKgPerL    float64
	CalorificMJPerKg float64
	Factors          factors.GasFactors
}

// NaturalGasCombustion is natural gas metered in cubic meters.
type NaturalGasCombustion struct {
	Source           string
	CubicMeters      float64
	CalorificMJPerM3 float64
	Factors          factors.GasFactors
}

// CoalCombustion is coal metered in tonnes.
type CoalCombustion struct {
	Source           string
	Tonnes           float64
	CalorificMJPerKg float64
	Factors          factors.GasFactors
}

// FleetDistance estimates vehicle fuel use from distance and a typical
// consumption figure for the vehicle class.
type FleetDistance struct {
	Source            string
	Fuel              FuelType
	VehicleClass      string
	DistanceKm        float64
	ConsumptionGPerKm float64
	DensityKgPerL     float64
	CalorificMJPerKg  float64
	Factors           factors.GasFactors
}

// RefrigerantLeak is a refrigerant refill, assumed equal to the leaked mass.
type RefrigerantLeak struct {
	Source      string
	Refrigerant RefrigerantType
	AmountKg    float64
	GWP         float64
}

// WaterSupply is purchased mains water.
type WaterSupply struct {
	VolumeM3      float64
	FactorKgPerM3 float64
}

// PaperUsage is purchased paper.
type PaperUsage struct {
	MassKg           float64
	EcoLabeled       bool
	FactorKgPerTonne float64
}

// SolidWaste is solid waste sent to disposal.
type SolidWaste struct {
	MassKg           float64
	FactorKgPerTonne float64
}

// Wastewater is wastewater sent to treatment.
type Wastewater struct {
	VolumeM3      float64
	FactorKgPerM3 float64
}

// AirTravel is a flight. Haul must match the distance; use ClassifyHaul.
type AirTravel struct {
	DistanceKm  float64
	FlightClass string
	Haul        factors.HaulClass
	Factors     factors.AirFactors
}

// RailTravel is a rail journey.
type RailTravel struct {
	DistanceKm float64
	Factors    factors.RailFactors
}

// RoadTravel is a taxi or bus journey with a flat per-km factor.
type RoadTravel struct {
	DistanceKm    float64
	Vehicle       string
	FactorKgPerKm float64
}

func (LiquidFuelCombustion) isActivity() {}
func (NaturalGasCombustion) isActivity() {}
func (CoalCombustion) isActivity()       {}
func (FleetDistance) isActivity()        {}
func (RefrigerantLeak) isActivity()      {}
func (WaterSupply) isActivity()          {}
func (PaperUsage) isActivity()           {}
func (SolidWaste) isActivity()           {}
func (Wastewater) isActivity()           {}
func (AirTravel) isActivity()            {}
func (RailTravel) isActivity()           {}
func (RoadTravel) isActivity()           {}

// combustion applies per-GJ factors to an energy quantity.
func combustion(source string, category Category, fuel FuelType, energyGJ float64, ef factors.GasFactors) (EmissionResult, error) {
	if err := firstErr(
		requireNonNegative("emission_factor_co2_kg_gj", ef.CO2),
		requireNonNegative("emission_factor_ch4_kg_gj", ef.CH4),
		requireNonNegative("emission_factor_n2o_kg_gj", ef.N2O),
	); err != nil {
		return EmissionResult{}, err
	}

	massCO2 := energyGJ * ef.CO2
	massCH4 := energyGJ * ef.CH4
	massN2O := energyGJ * ef.N2O

	co2e, err := CO2e(massCO2, massCH4, massN2O)
	if err != nil {
		return EmissionResult{}, err
	}

	return EmissionResult{
		Source:   source,
		Category: category,
		FuelType: fuel,
		CO2e:     co2e,
		Details: map[string]float64{
			"energy_gj": energyGJ,
			"mass_co2":  massCO2,
			"mass_ch4":  massCH4,
			"mass_n2o":  massN2O,
		},
	}, nil
}

// Compute implements Activity.
func (a LiquidFuelCombustion) Compute() (EmissionResult, error) {
	if err := firstErr(
		requirePositive("amount", a.Liters),
		requirePositive("density_kg_l", a.DensityKgPerL),
		requirePositive("calorific_value_mj_kg", a.CalorificMJPerKg),
	); err != nil {
		return EmissionResult{}, err
	}
	return combustion(a.Source, CategoryCombustion, a.Fuel,
		LitersToGJ(a.Liters, a.DensityKgPerL, a.CalorificMJPerKg), a.Factors)
}

// Compute implements Activity.
func (a NaturalGasCombustion) Compute() (EmissionResult, error) {
	if err := firstErr(
		requirePositive("amount", a.CubicMeters),
		requirePositive("calorific_value_mj_kg", a.CalorificMJPerM3),
	); err != nil {
		return EmissionResult{}, err
	}
	return combustion(a.Source, CategoryCombustion, FuelNaturalGas,
		CubicMetersToGJ(a.CubicMeters, a.CalorificMJPerM3), a.Factors)
}

// Compute implements Activity.
func (a CoalCombustion) Compute() (EmissionResult, error) {
	if err := firstErr(
		requirePositive("amount", a.Tonnes),
		requirePositive("calorific_value_mj_kg", a.CalorificMJPerKg),
	); err != nil {
		return EmissionResult{}, err
	}
	return combustion(a.Source, CategoryCombustion, FuelCoal,
		TonnesToGJ(a.Tonnes, a.CalorificMJPerKg), a.Factors)
}

// Compute implements Activity.
func (a FleetDistance) Compute() (EmissionResult, error) {
	if err := firstErr(
		requirePositive("distance_km", a.DistanceKm),
		requirePositive("consumption_g_per_km", a.ConsumptionGPerKm),
		requirePositive("density_kg_l", a.DensityKgPerL),
		requirePositive("calorific_value_mj_kg", a.CalorificMJPerKg),
	); err != nil {
		return EmissionResult{}, err
	}

	fuelKg := FleetFuelKg(a.DistanceKm, a.ConsumptionGPerKm)
	liters := FuelKgToLiters(fuelKg, a.DensityKgPerL)

	res, err := combustion(a.Source, CategoryFleet, a.Fuel,
		LitersToGJ(liters, a.DensityKgPerL, a.CalorificMJPerKg), a.Factors)
	if err != nil {
		return EmissionResult{}, err
	}
	res.Details["distance_km"] = a.DistanceKm
	res.Details["fuel_kg"] = fuelKg
	res.Details["fuel_liters"] = liters
	res.Labels = map[string]string{"vehicle_type": a.VehicleClass}
	return res, nil
}

// Compute implements Activity.
func (a RefrigerantLeak) Compute() (EmissionResult, error) {
	if err := firstErr(
		requirePositive("amount_kg", a.AmountKg),
		requirePositive("gwp_factor", a.GWP),
	); err != nil {
		return EmissionResult{}, err
	}
	return EmissionResult{
		Source:          a.Source,
		Category:        CategoryFugitive,
		RefrigerantType: a.Refrigerant,
		CO2e:            a.AmountKg * a.GWP,
		Details: map[string]float64{
			"amount_kg":  a.AmountKg,
			"gwp_factor": a.GWP,
		},
	}, nil
}

// volumeResult is the single-factor result shared by the m3-based goods.
func volumeResult(category Category, volumeM3, factor float64) (EmissionResult, error) {
	if err := firstErr(
		requirePositive("volume_m3", volumeM3),
		requirePositive("emission_factor", factor),
	); err != nil {
		return EmissionResult{}, err
	}
	return EmissionResult{
		Source:   string(category),
		Category: category,
		CO2e:     volumeM3 * factor,
		Details: map[string]float64{
			"volume_m3":       volumeM3,
			"emission_factor": factor,
		},
	}, nil
}

// massResult is the single-factor result shared by the tonne-based goods.
func massResult(category Category, massKg, factor float64) (EmissionResult, error) {
	if err := firstErr(
		requirePositive("mass_kg", massKg),
		requirePositive("emission_factor", factor),
	); err != nil {
		return EmissionResult{}, err
	}
	tonnes := massKg * KgToTonnes
	return EmissionResult{
		Source:   string(category),
		Category: category,
		CO2e:     tonnes * factor,
		Details: map[string]float64{
			"mass_kg":         massKg,
			"mass_tonnes":     tonnes,
			"emission_factor": factor,
		},
	}, nil
}

// Compute implements Activity.
func (a WaterSupply) Compute() (EmissionResult, error) {
	return volumeResult(CategoryWaterSupply, a.VolumeM3, a.FactorKgPerM3)
}

// Compute implements Activity.
func (a PaperUsage) Compute() (EmissionResult, error) {
	res, err := massResult(CategoryPaperUsage, a.MassKg, a.FactorKgPerTonne)
	if err != nil {
		return EmissionResult{}, err
	}
	if a.EcoLabeled {
		res.Subtype = "eco_labeled"
	} else {
		res.Subtype = "standard"
	}
	return res, nil
}

// Compute implements Activity.
func (a SolidWaste) Compute() (EmissionResult, error) {
	return massResult(CategorySolidWaste, a.MassKg, a.FactorKgPerTonne)
}

// Compute implements Activity.
func (a Wastewater) Compute() (EmissionResult, error) {
	return volumeResult(CategoryWastewater, a.VolumeM3, a.FactorKgPerM3)
}

// Compute implements Activity.
func (a AirTravel) Compute() (EmissionResult, error) {
	if err := requirePositive("distance_km", a.DistanceKm); err != nil {
		return EmissionResult{}, err
	}

	miles := KmToMi(a.DistanceKm)
	if haul := ClassifyHaul(miles); haul != a.Haul {
		return EmissionResult{}, invalid("haul", a.Haul.String(),
			"does not match %.2f miles (expected %s)", miles, haul)
	}

	massCO2 := miles * a.Factors.CO2KgPerMile
	massCH4 := miles * a.Factors.CH4GPerMile / GramsPerKg
	massN2O := miles * a.Factors.N2OGPerMile / GramsPerKg

	co2e, err := CO2e(massCO2, massCH4, massN2O)
	if err != nil {
		return EmissionResult{}, err
	}

	res := EmissionResult{
		Source:   string(CategoryAirTravel),
		Category: CategoryAirTravel,
		Subtype:  a.Haul.String(),
		CO2e:     co2e,
		Details: map[string]float64{
			"distance_km":    a.DistanceKm,
			"distance_miles": miles,
			"mass_co2":       massCO2,
			"mass_ch4":       massCH4,
			"mass_n2o":       massN2O,
		},
	}
	if a.FlightClass != "" {
		res.Labels = map[string]string{"flight_class": a.FlightClass}
	}
	return res, nil
}

// Compute implements Activity.
//
// CO2 is per kilometer while CH4 and N2O are per mile:
//
//	co2e = km × CO2 + miles × CH4 × 28 + miles × N2O × 265
func (a RailTravel) Compute() (EmissionResult, error) {
	if err := requirePositive("distance_km", a.DistanceKm); err != nil {
		return EmissionResult{}, err
	}

	miles := KmToMi(a.DistanceKm)
	massCO2 := a.DistanceKm * a.Factors.CO2KgPerKm
	massCH4 := miles * a.Factors.CH4KgPerMile
	massN2O := miles * a.Factors.N2OKgPerMile

	co2e, err := CO2e(massCO2, massCH4, massN2O)
	if err != nil {
		return EmissionResult{}, err
	}

	return EmissionResult{
		Source:   string(CategoryRailTravel),
		Category: CategoryRailTravel,
		CO2e:     co2e,
		Details: map[string]float64{
			"distance_km":    a.DistanceKm,
			"distance_miles": miles,
			"mass_co2":       massCO2,
			"mass_ch4":       massCH4,
			"mass_n2o":       massN2O,
		},
	}, nil
}

// Compute implements Activity.
func (a RoadTravel) Compute() (EmissionResult, error) {
	if err := firstErr(
		requirePositive("distance_km", a.DistanceKm),
		requirePositive("emission_factor", a.FactorKgPerKm),
	); err != nil {
		return EmissionResult{}, err
	}
	return EmissionResult{
		Source:   string(CategoryTaxiBusTravel),
		Category: CategoryTaxiBusTravel,
		Subtype:  strings.ToLower(a.Vehicle),
		CO2e:     a.DistanceKm * a.FactorKgPerKm,
		Details: map[string]float64{
			"distance_km":     a.DistanceKm,
			"emission_factor": a.FactorKgPerKm,
		},
	}, nil
}
