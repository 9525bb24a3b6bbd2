package carbon

import (
	"strings"

	"github.com/rshade/ghgcalc/internal/factors"
)

// lookupFunc reads a default from the factor table.
type lookupFunc func() (float64, bool)

// resolve returns the override when set, otherwise the table default. A
// value found in neither place is an InputError naming field.
func resolve(field string, override *float64, lookup lookupFunc) (float64, error) {
	if override != nil {
		return *override, nil
	}
	if lookup != nil {
		if v, ok := lookup(); ok {
			return v, nil
		}
	}
	return 0, invalid(field, nil, "no value given and no default in the factor table")
}

// fuelProperty looks up a positive physical property of a fuel.
func fuelProperty(table factors.Table, fuel string, pick func(factors.Fuel) float64) lookupFunc {
	return func() (float64, bool) {
		f, ok := table.Fuel(fuel)
		if !ok {
			return 0, false
		}
		v := pick(f)
		return v, v > 0
	}
}

func density(f factors.Fuel) float64 { return f.DensityKgPerL }

// calorificIn picks the calorific value only when it is expressed in unit.
func calorificIn(unit string) func(factors.Fuel) float64 {
	return func(f factors.Fuel) float64 {
		if f.CalorificUnit != unit {
			return 0
		}
		return f.CalorificValue
	}
}

// gasFactor looks up one per-GJ factor of a fuel. Zero is a valid factor.
func gasFactor(table factors.Table, fuel string, pick func(factors.GasFactors) float64) lookupFunc {
	return func() (float64, bool) {
		f, ok := table.Fuel(fuel)
		if !ok {
			return 0, false
		}
		return pick(f.Factors), true
	}
}

// Validate checks the boundary constraints of a combustion record: known
// fuel type and unit, positive amount and positive overrides.
func (in CombustionInput) Validate() error {
	if !in.FuelType.valid() {
		return invalid("fuel_type", string(in.FuelType), "unknown fuel type")
	}
	if !in.Unit.valid() {
		return invalid("unit", string(in.Unit), "unknown unit")
	}
	return firstErr(
		requirePositive("amount", in.Amount),
		requirePositiveOpt("calorific_value_mj_kg", in.CalorificValueMJKg),
		requirePositiveOpt("density_kg_l", in.DensityKgL),
		requirePositiveOpt("distance_km", in.DistanceKm),
		requirePositiveOpt("emission_factor_co2_kg_gj", in.EmissionFactorCO2KgGJ),
		requirePositiveOpt("emission_factor_ch4_kg_gj", in.EmissionFactorCH4KgGJ),
		requirePositiveOpt("emission_factor_n2o_kg_gj", in.EmissionFactorN2OKgGJ),
	)
}

// Activity validates the record, selects its calculation path from the
// unit, fuel type and source, and resolves every missing value from table.
//
//	l  + Diesel | Petrol | Heating Oil -> LiquidFuelCombustion
//	m3 + Natural Gas                   -> NaturalGasCombustion
//	t  + Coal                          -> CoalCombustion
//	km + source "Fleet"                -> FleetDistance
func (in CombustionInput) Activity(table factors.Table) (Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	fuel := string(in.FuelType)

	switch {
	case in.Unit == UnitLiters && in.FuelType.liquid():
		densityKgL, err := resolve("density_kg_l", in.DensityKgL, fuelProperty(table, fuel, density))
		if err != nil {
			return nil, err
		}
		calorific, err := resolve("calorific_value_mj_kg", in.CalorificValueMJKg,
			fuelProperty(table, fuel, calorificIn(factors.CalorificPerKg)))
		if err != nil {
			return nil, err
		}
		ef, err := in.emissionFactors(table, fuel)
		if err != nil {
			return nil, err
		}
		return LiquidFuelCombustion{
			Source:           in.Source,
			Fuel:             in.FuelType,
			Liters:           in.Amount,
			DensityKgPerL:    densityKgL,
			CalorificMJPerKg: calorific,
			Factors:          ef,
		}, nil

	case in.Unit == UnitCubicMeters && in.FuelType == FuelNaturalGas:
		// The calorific override is read as MJ/m3 for gas metered by volume.
		calorific, err := resolve("calorific_value_mj_kg", in.CalorificValueMJKg,
			fuelProperty(table, fuel, calorificIn(factors.CalorificPerM3)))
		if err != nil {
			return nil, err
		}
		ef, err := in.emissionFactors(table, fuel)
		if err != nil {
			return nil, err
		}
		return NaturalGasCombustion{
			Source:           in.Source,
			CubicMeters:      in.Amount,
			CalorificMJPerM3: calorific,
			Factors:          ef,
		}, nil

	case in.Unit == UnitTonnes && in.FuelType == FuelCoal:
		calorific, err := resolve("calorific_value_mj_kg", in.CalorificValueMJKg,
			fuelProperty(table, fuel, calorificIn(factors.CalorificPerKg)))
		if err != nil {
			return nil, err
		}
		ef, err := in.emissionFactors(table, fuel)
		if err != nil {
			return nil, err
		}
		return CoalCombustion{
			Source:           in.Source,
			Tonnes:           in.Amount,
			CalorificMJPerKg: calorific,
			Factors:          ef,
		}, nil

	case in.Unit == UnitKilometers && in.Source == SourceFleet:
		return in.fleetActivity(table)
	}

	return nil, invalid("unit", string(in.Unit),
		"unsupported combination with fuel_type %q and source %q", in.FuelType, in.Source)
}

func (in CombustionInput) fleetActivity(table factors.Table) (Activity, error) {
	if in.DistanceKm == nil {
		return nil, invalid("distance_km", nil, "required for distance-based fleet estimates")
	}
	if strings.TrimSpace(in.VehicleType) == "" {
		return nil, invalid("vehicle_type", nil, "required for distance-based fleet estimates")
	}
	profile, ok := table.FleetProfile(in.VehicleType)
	if !ok {
		return nil, invalid("vehicle_type", in.VehicleType, "no fleet consumption profile in the factor table")
	}
	if !strings.EqualFold(profile.Fuel, string(in.FuelType)) {
		return nil, invalid("fuel_type", string(in.FuelType),
			"vehicle class %q runs on %s", profile.VehicleClass, profile.Fuel)
	}

	densityKgL, err := resolve("density_kg_l", in.DensityKgL, fuelProperty(table, profile.Fuel, density))
	if err != nil {
		return nil, err
	}
	calorific, err := resolve("calorific_value_mj_kg", in.CalorificValueMJKg,
		fuelProperty(table, profile.Fuel, calorificIn(factors.CalorificPerKg)))
	if err != nil {
		return nil, err
	}
	ef, err := in.emissionFactors(table, profile.Fuel)
	if err != nil {
		return nil, err
	}
	return FleetDistance{
		Source:            in.Source,
		Fuel:              in.FuelType,
		VehicleClass:      profile.VehicleClass,
		DistanceKm:        *in.DistanceKm,
		ConsumptionGPerKm: profile.ConsumptionGPerKm,
		DensityKgPerL:     densityKgL,
		CalorificMJPerKg:  calorific,
		Factors:           ef,
	}, nil
}

func (in CombustionInput) emissionFactors(table factors.Table, fuel string) (factors.GasFactors, error) {
	co2, err := resolve("emission_factor_co2_kg_gj", in.EmissionFactorCO2KgGJ,
		gasFactor(table, fuel, func(g factors.GasFactors) float64 { return g.CO2 }))
	if err != nil {
		return factors.GasFactors{}, err
	}
	ch4, err := resolve("emission_factor_ch4_kg_gj", in.EmissionFactorCH4KgGJ,
		gasFactor(table, fuel, func(g factors.GasFactors) float64 { return g.CH4 }))
	if err != nil {
		return factors.GasFactors{}, err
	}
	n2o, err := resolve("emission_factor_n2o_kg_gj", in.EmissionFactorN2OKgGJ,
		gasFactor(table, fuel, func(g factors.GasFactors) float64 { return g.N2O }))
	if err != nil {
		return factors.GasFactors{}, err
	}
	return factors.GasFactors{CO2: co2, CH4: ch4, N2O: n2o}, nil
}

// Validate checks the boundary constraints of a refrigerant record.
func (in FugitiveEmissionInput) Validate() error {
	if strings.TrimSpace(string(in.RefrigerantType)) == "" {
		return invalid("refrigerant_type", nil, "required")
	}
	return firstErr(
		requirePositive("amount_kg", in.AmountKg),
		requirePositiveOpt("gwp_factor", in.GWPFactor),
	)
}

// Activity validates the record and resolves its GWP. Custom refrigerants
// need an explicit gwp_factor; any other refrigerant must be in table.
func (in FugitiveEmissionInput) Activity(table factors.Table) (Activity, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	var gwp float64
	if strings.EqualFold(string(in.RefrigerantType), string(RefrigerantCustom)) {
		if in.GWPFactor == nil {
			return nil, invalid("gwp_factor", nil, "required for Custom refrigerant")
		}
		gwp = *in.GWPFactor
	} else {
		tabulated, ok := table.RefrigerantGWP(string(in.RefrigerantType))
		if !ok {
			return nil, invalid("refrigerant_type", string(in.RefrigerantType),
				"unknown refrigerant; use Custom with a gwp_factor")
		}
		gwp = tabulated
		if in.GWPFactor != nil {
			gwp = *in.GWPFactor
		}
	}

	return RefrigerantLeak{
		Source:      in.Source,
		Refrigerant: in.RefrigerantType,
		AmountKg:    in.AmountKg,
		GWP:         gwp,
	}, nil
}

// subtype returns the declared subtype or infers one from the fields set.
//
// Purchased goods: volume_m3 -> water supply, mass_kg -> paper.
// Waste: mass_kg -> solid waste, volume_m3 -> wastewater.
// Business travel: vehicle_type -> taxi/bus, otherwise air. Rail travel
// must always be declared.
func (it Scope3Item) subtype(group Scope3Group) (Scope3Subtype, error) {
	if it.Type != SubtypeUnspecified {
		if !it.Type.valid() {
			return 0, invalid("type", it.Type.String(), "unknown scope 3 subtype")
		}
		if it.Type.Group() != group {
			return 0, invalid("type", it.Type.String(), "belongs to %s, not %s", it.Type.Group(), group)
		}
		return it.Type, nil
	}

	switch group {
	case GroupPurchasedGoodsServices:
		if it.VolumeM3 != nil {
			return SubtypeWaterSupply, nil
		}
		if it.MassKg != nil {
			return SubtypePaperUsage, nil
		}
	case GroupWasteGenerated:
		if it.MassKg != nil {
			return SubtypeSolidWasteDisposal, nil
		}
		if it.VolumeM3 != nil {
			return SubtypeWastewaterTreatment, nil
		}
	case GroupBusinessTravel:
		if it.VehicleType != "" {
			return SubtypeTaxiBusTravel, nil
		}
		if it.DistanceKm != nil {
			return SubtypeAirTravel, nil
		}
	}
	return 0, invalid("type", nil, "cannot infer the %s subtype from the fields given", group)
}

// Activity resolves a Scope 3 line item listed under group.
func (it Scope3Item) Activity(group Scope3Group, table factors.Table) (Activity, Scope3Subtype, error) {
	sub, err := it.subtype(group)
	if err != nil {
		return nil, 0, err
	}
	act, err := it.activity(sub, table)
	if err != nil {
		return nil, 0, err
	}
	return act, sub, nil
}

func (it Scope3Item) activity(sub Scope3Subtype, table factors.Table) (Activity, error) {
	goods := func(key factors.GoodsKey) lookupFunc {
		return func() (float64, bool) { return table.GoodsFactor(key) }
	}

	switch sub {
	case SubtypeWaterSupply:
		vol, err := required("volume_m3", it.VolumeM3)
		if err != nil {
			return nil, err
		}
		f, err := resolve("emission_factor", nil, goods(factors.GoodsWaterSupply))
		if err != nil {
			return nil, err
		}
		return WaterSupply{VolumeM3: vol, FactorKgPerM3: f}, nil

	case SubtypePaperUsage:
		mass, err := required("mass_kg", it.MassKg)
		if err != nil {
			return nil, err
		}
		key := factors.GoodsPaperStandard
		if it.EcoLabeled {
			key = factors.GoodsPaperEcoLabeled
		}
		f, err := resolve("emission_factor", nil, goods(key))
		if err != nil {
			return nil, err
		}
		return PaperUsage{MassKg: mass, EcoLabeled: it.EcoLabeled, FactorKgPerTonne: f}, nil

	case SubtypeSolidWasteDisposal:
		mass, err := required("mass_kg", it.MassKg)
		if err != nil {
			return nil, err
		}
		f, err := resolve("emission_factor", nil, goods(factors.GoodsSolidWasteDisposal))
		if err != nil {
			return nil, err
		}
		return SolidWaste{MassKg: mass, FactorKgPerTonne: f}, nil

	case SubtypeWastewaterTreatment:
		vol, err := required("volume_m3", it.VolumeM3)
		if err != nil {
			return nil, err
		}
		f, err := resolve("emission_factor", nil, goods(factors.GoodsWastewaterTreatment))
		if err != nil {
			return nil, err
		}
		return Wastewater{VolumeM3: vol, FactorKgPerM3: f}, nil

	case SubtypeAirTravel:
		km, err := required("distance_km", it.DistanceKm)
		if err != nil {
			return nil, err
		}
		haul := ClassifyHaul(KmToMi(km))
		af, ok := table.AirFactors(haul)
		if !ok {
			return nil, invalid("distance_km", km, "no %s air factors in the factor table", haul)
		}
		return AirTravel{DistanceKm: km, FlightClass: it.FlightClass, Haul: haul, Factors: af}, nil

	case SubtypeRailTravel:
		km, err := required("distance_km", it.DistanceKm)
		if err != nil {
			return nil, err
		}
		rf, ok := table.RailFactors()
		if !ok {
			return nil, invalid("distance_km", km, "no rail factors in the factor table")
		}
		return RailTravel{DistanceKm: km, Factors: rf}, nil

	case SubtypeTaxiBusTravel:
		km, err := required("distance_km", it.DistanceKm)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(it.VehicleType) == "" {
			return nil, invalid("vehicle_type", nil, "required for taxi/bus travel")
		}
		f, ok := table.RoadFactor(it.VehicleType)
		if !ok {
			return nil, invalid("vehicle_type", it.VehicleType, "unsupported vehicle type for taxi/bus")
		}
		return RoadTravel{DistanceKm: km, Vehicle: it.VehicleType, FactorKgPerKm: f}, nil
	}

	return nil, invalid("type", sub.String(), "unknown scope 3 subtype")
}

// required dereferences a mandatory positive field.
func required(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, invalid(field, nil, "required")
	}
	if err := requirePositive(field, *v); err != nil {
		return 0, err
	}
	return *v, nil
}
