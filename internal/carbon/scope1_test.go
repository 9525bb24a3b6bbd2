package carbon

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCombustionInput_Activity_StateSelection(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		name  string
		input CombustionInput
		want  Activity
	}{
		{
			name:  "diesel in liters",
			input: CombustionInput{Source: "Generators", FuelType: FuelDiesel, Unit: UnitLiters, Amount: 100},
			want: LiquidFuelCombustion{
				Source: "Generators", Fuel: FuelDiesel, Liters: 100, DensityKgPerL: 0.82, CalorificMJPerKg: 43.1,
			},
		},
		{
			name:  "heating oil in liters",
			input: CombustionInput{Source: "Heating", FuelType: FuelHeatingOil, Unit: UnitLiters, Amount: 10},
			want: LiquidFuelCombustion{
				Source: "Heating", Fuel: FuelHeatingOil, Liters: 10, DensityKgPerL: 0.82, CalorificMJPerKg: 42.6,
			},
		},
		{
			name:  "natural gas in m3",
			input: CombustionInput{Source: "Heating", FuelType: FuelNaturalGas, Unit: UnitCubicMeters, Amount: 1000},
			want:  NaturalGasCombustion{Source: "Heating", CubicMeters: 1000, CalorificMJPerM3: 38},
		},
		{
			name:  "coal in tonnes",
			input: CombustionInput{Source: "Boiler", FuelType: FuelCoal, Unit: UnitTonnes, Amount: 2},
			want:  CoalCombustion{Source: "Boiler", Tonnes: 2, CalorificMJPerKg: 24},
		},
		{
			name: "fleet distance",
			input: CombustionInput{
				Source: SourceFleet, FuelType: FuelDiesel, Unit: UnitKilometers, Amount: 1,
				DistanceKm: f64(100), VehicleType: "Passenger Car Diesel",
			},
			want: FleetDistance{
				Source: SourceFleet, Fuel: FuelDiesel, VehicleClass: "Passenger Car Diesel", DistanceKm: 100,
				ConsumptionGPerKm: 60, DensityKgPerL: 0.82, CalorificMJPerKg: 43.1,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := tt.input.Activity(table)
			require.NoError(t, err)
			require.IsType(t, tt.want, act)

			// Factors are checked separately; compare everything else.
			switch got := act.(type) {
			case LiquidFuelCombustion:
				assert.NotZero(t, got.Factors.CO2)
				got.Factors = tt.want.(LiquidFuelCombustion).Factors
				assert.Equal(t, tt.want, got)
			case NaturalGasCombustion:
				assert.InDelta(t, 56.1, got.Factors.CO2, tolerance)
				got.Factors = tt.want.(NaturalGasCombustion).Factors
				assert.Equal(t, tt.want, got)
			case CoalCombustion:
				assert.InDelta(t, 94.6, got.Factors.CO2, tolerance)
				got.Factors = tt.want.(CoalCombustion).Factors
				assert.Equal(t, tt.want, got)
			case FleetDistance:
				assert.InDelta(t, 74.1, got.Factors.CO2, tolerance)
				got.Factors = tt.want.(FleetDistance).Factors
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCombustionInput_Overrides(t *testing.T) {
	table := newTestTable(t)

	in := CombustionInput{
		Source: "Generators", FuelType: FuelPetrol, Unit: UnitLiters, Amount: 10,
		DensityKgL:            f64(0.75),
		CalorificValueMJKg:    f64(44),
		EmissionFactorCO2KgGJ: f64(70),
		EmissionFactorCH4KgGJ: f64(0.01),
		EmissionFactorN2OKgGJ: f64(0.001),
	}
	act, err := in.Activity(table)
	require.NoError(t, err)
	liquid := act.(LiquidFuelCombustion)
	assert.InDelta(t, 0.75, liquid.DensityKgPerL, tolerance)
	assert.InDelta(t, 44, liquid.CalorificMJPerKg, tolerance)
	assert.InDelta(t, 70, liquid.Factors.CO2, tolerance)
	assert.InDelta(t, 0.01, liquid.Factors.CH4, tolerance)
	assert.InDelta(t, 0.001, liquid.Factors.N2O, tolerance)

	// Natural gas reads the calorific override as MJ/m3.
	gas := CombustionInput{
		Source: "Heating", FuelType: FuelNaturalGas, Unit: UnitCubicMeters, Amount: 100,
		CalorificValueMJKg: f64(39),
	}
	act, err = gas.Activity(table)
	require.NoError(t, err)
	assert.InDelta(t, 39, act.(NaturalGasCombustion).CalorificMJPerM3, tolerance)
}

func TestCombustionInput_Invalid(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		name      string
		input     CombustionInput
		wantField string
	}{
		{
			name:      "zero amount",
			input:     CombustionInput{Source: "Heating", FuelType: FuelDiesel, Unit: UnitLiters, Amount: 0},
			wantField: "amount",
		},
		{
			name:      "negative amount",
			input:     CombustionInput{Source: "Heating", FuelType: FuelDiesel, Unit: UnitLiters, Amount: -5},
			wantField: "amount",
		},
		{
			name:      "unknown fuel",
			input:     CombustionInput{Source: "Heating", FuelType: "Kerosene", Unit: UnitLiters, Amount: 5},
			wantField: "fuel_type",
		},
		{
			name:      "unknown unit",
			input:     CombustionInput{Source: "Heating", FuelType: FuelDiesel, Unit: "gal", Amount: 5},
			wantField: "unit",
		},
		{
			name:      "negative override",
			input:     CombustionInput{Source: "Heating", FuelType: FuelDiesel, Unit: UnitLiters, Amount: 5, DensityKgL: f64(-1)},
			wantField: "density_kg_l",
		},
		{
			name:      "natural gas in tonnes",
			input:     CombustionInput{Source: "Heating", FuelType: FuelNaturalGas, Unit: UnitTonnes, Amount: 5},
			wantField: "unit",
		},
		{
			name:      "natural gas in liters",
			input:     CombustionInput{Source: "Heating", FuelType: FuelNaturalGas, Unit: UnitLiters, Amount: 5},
			wantField: "unit",
		},
		{
			name:      "electricity has no combustion path",
			input:     CombustionInput{Source: "Heating", FuelType: FuelElectricity, Unit: UnitKWh, Amount: 5},
			wantField: "unit",
		},
		{
			name:      "km without fleet source",
			input:     CombustionInput{Source: "Generators", FuelType: FuelDiesel, Unit: UnitKilometers, Amount: 5},
			wantField: "unit",
		},
		{
			name: "fleet without distance",
			input: CombustionInput{
				Source: SourceFleet, FuelType: FuelDiesel, Unit: UnitKilometers, Amount: 5,
				VehicleType: "Passenger Car Diesel",
			},
			wantField: "distance_km",
		},
		{
			name: "fleet without vehicle type",
			input: CombustionInput{
				Source: SourceFleet, FuelType: FuelDiesel, Unit: UnitKilometers, Amount: 5, DistanceKm: f64(10),
			},
			wantField: "vehicle_type",
		},
		{
			name: "fleet with unknown vehicle class",
			input: CombustionInput{
				Source: SourceFleet, FuelType: FuelDiesel, Unit: UnitKilometers, Amount: 5,
				DistanceKm: f64(10), VehicleType: "Cargo Bike",
			},
			wantField: "vehicle_type",
		},
		{
			name: "fleet fuel does not match vehicle class",
			input: CombustionInput{
				Source: SourceFleet, FuelType: FuelPetrol, Unit: UnitKilometers, Amount: 5,
				DistanceKm: f64(10), VehicleType: "Passenger Car Diesel",
			},
			wantField: "fuel_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := tt.input.Activity(table)
			require.Error(t, err)
			assert.Nil(t, act)
			assert.ErrorIs(t, err, ErrInvalidInput)

			var inErr *InputError
			require.True(t, errors.As(err, &inErr))
			assert.Equal(t, tt.wantField, inErr.Field)
		})
	}
}

func TestCombustionInput_UnsupportedCombinationMessage(t *testing.T) {
	in := CombustionInput{Source: "Heating", FuelType: FuelNaturalGas, Unit: UnitTonnes, Amount: 5}
	_, err := in.Activity(newTestTable(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unit=t`)
	assert.Contains(t, err.Error(), `"Natural Gas"`)
	assert.Contains(t, err.Error(), `"Heating"`)
}

func TestFugitiveEmissionInput_Activity(t *testing.T) {
	table := newTestTable(t)

	tests := []struct {
		name      string
		input     FugitiveEmissionInput
		wantGWP   float64
		wantField string
	}{
		{"R407C default", FugitiveEmissionInput{Source: "AC", RefrigerantType: RefrigerantR407C, AmountKg: 1}, 1624, ""},
		{"R32 default", FugitiveEmissionInput{Source: "AC", RefrigerantType: RefrigerantR32, AmountKg: 1}, 677, ""},
		{"R410A override", FugitiveEmissionInput{Source: "AC", RefrigerantType: RefrigerantR410A, AmountKg: 1, GWPFactor: f64(2088)}, 2088, ""},
		{"custom with gwp", FugitiveEmissionInput{Source: "AC", RefrigerantType: RefrigerantCustom, AmountKg: 2, GWPFactor: f64(1500)}, 1500, ""},
		{"custom without gwp", FugitiveEmissionInput{Source: "AC", RefrigerantType: RefrigerantCustom, AmountKg: 2}, 0, "gwp_factor"},
		{"unknown refrigerant", FugitiveEmissionInput{Source: "AC", RefrigerantType: "R22", AmountKg: 2, GWPFactor: f64(1810)}, 0, "refrigerant_type"},
		{"missing refrigerant", FugitiveEmissionInput{Source: "AC", AmountKg: 2}, 0, "refrigerant_type"},
		{"zero amount", FugitiveEmissionInput{Source: "AC", RefrigerantType: RefrigerantR32, AmountKg: 0}, 0, "amount_kg"},
		{"zero gwp override", FugitiveEmissionInput{Source: "AC", RefrigerantType: RefrigerantR32, AmountKg: 1, GWPFactor: f64(0)}, 0, "gwp_factor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			act, err := tt.input.Activity(table)
			if tt.wantField != "" {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidInput)
				var inErr *InputError
				require.True(t, errors.As(err, &inErr))
				assert.Equal(t, tt.wantField, inErr.Field)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.wantGWP, act.(RefrigerantLeak).GWP, tolerance)
		})
	}
}

func TestCalculator_Scope1(t *testing.T) {
	calc := newTestCalculator(t)

	in := Scope1Input{
		CombustionEmissions: []CombustionInput{
			{Source: "Generators", FuelType: FuelDiesel, Unit: UnitLiters, Amount: 100},
			{Source: "Heating", FuelType: FuelNaturalGas, Unit: UnitCubicMeters, Amount: 1000},
			{Source: "Boiler", FuelType: FuelCoal, Unit: UnitTonnes, Amount: 2},
			{
				Source: SourceFleet, FuelType: FuelDiesel, Unit: UnitKilometers, Amount: 1,
				DistanceKm: f64(100), VehicleType: "passenger car diesel",
			},
		},
		FugitiveEmissions: []FugitiveEmissionInput{
			{Source: "Refrigerants", RefrigerantType: RefrigerantR410A, AmountKg: 2},
			{Source: "Refrigerants", RefrigerantType: RefrigerantCustom, AmountKg: 2, GWPFactor: f64(1500)},
		},
	}

	out, err := calc.Scope1(in)
	require.NoError(t, err)
	require.Len(t, out.Breakdown, 6)

	diesel := out.Breakdown[0]
	assert.Equal(t, "Generators", diesel.Source)
	assert.Equal(t, CategoryCombustion, diesel.Category)
	assert.Equal(t, FuelDiesel, diesel.FuelType)
	assert.InDelta(t, 3.5342, diesel.Details["energy_gj"], tolerance)
	assert.InDelta(t, 3.5342*74.1, diesel.Details["mass_co2"], tolerance)
	assert.InDelta(t, 3.5342*74.1+3.5342*0.00003*28+3.5342*0.00006*265, diesel.CO2e, tolerance)

	gas := out.Breakdown[1]
	assert.InDelta(t, 38, gas.Details["energy_gj"], tolerance)
	assert.InDelta(t, 38*56.1+38*0.0001*28+38*0.00002*265, gas.CO2e, tolerance)

	coal := out.Breakdown[2]
	assert.InDelta(t, 48, coal.Details["energy_gj"], tolerance)
	assert.InDelta(t, 48*94.6+48*0.001*28+48*0.0001*265, coal.CO2e, tolerance)

	fleet := out.Breakdown[3]
	assert.Equal(t, CategoryFleet, fleet.Category)
	assert.InDelta(t, 6, fleet.Details["fuel_kg"], tolerance)
	assert.InDelta(t, 6/0.82, fleet.Details["fuel_liters"], tolerance)
	assert.InDelta(t, 0.2586, fleet.Details["energy_gj"], tolerance)
	assert.Equal(t, "Passenger Car Diesel", fleet.Labels["vehicle_type"])

	r410a := out.Breakdown[4]
	assert.Equal(t, CategoryFugitive, r410a.Category)
	assert.Equal(t, RefrigerantR410A, r410a.RefrigerantType)
	assert.InDelta(t, 3848, r410a.CO2e, tolerance)
	assert.InDelta(t, 1924, r410a.Details["gwp_factor"], tolerance)

	custom := out.Breakdown[5]
	assert.InDelta(t, 3000, custom.CO2e, tolerance)

	var sum float64
	for _, r := range out.Breakdown {
		sum += r.CO2e
	}
	assert.Equal(t, sum, out.TotalCO2e, "total is the running sum in input order")
}

func TestCalculator_Scope1_Empty(t *testing.T) {
	out, err := newTestCalculator(t).Scope1(Scope1Input{})
	require.NoError(t, err)
	assert.Zero(t, out.TotalCO2e)
	assert.Empty(t, out.Breakdown)
}

func TestCalculator_Scope1_ErrorNamesPosition(t *testing.T) {
	calc := newTestCalculator(t)

	tests := []struct {
		name       string
		input      Scope1Input
		wantPrefix string
	}{
		{
			name: "third combustion record",
			input: Scope1Input{CombustionEmissions: []CombustionInput{
				{Source: "A", FuelType: FuelDiesel, Unit: UnitLiters, Amount: 1},
				{Source: "B", FuelType: FuelDiesel, Unit: UnitLiters, Amount: 1},
				{Source: "C", FuelType: FuelNaturalGas, Unit: UnitTonnes, Amount: 1},
			}},
			wantPrefix: "combustion_emissions[2]: ",
		},
		{
			name: "first fugitive record",
			input: Scope1Input{
				CombustionEmissions: []CombustionInput{{Source: "A", FuelType: FuelDiesel, Unit: UnitLiters, Amount: 1}},
				FugitiveEmissions:   []FugitiveEmissionInput{{Source: "AC", RefrigerantType: RefrigerantCustom, AmountKg: 1}},
			},
			wantPrefix: "fugitive_emissions[0]: ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := calc.Scope1(tt.input)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantPrefix)
			assert.Empty(t, out.Breakdown)
		})
	}
}

func TestActivity_ComputeRevalidates(t *testing.T) {
	tests := []struct {
		name string
		act  Activity
	}{
		{"liquid fuel without density", LiquidFuelCombustion{Fuel: FuelDiesel, Liters: 10, CalorificMJPerKg: 43}},
		{"natural gas with zero volume", NaturalGasCombustion{CalorificMJPerM3: 38}},
		{"coal with negative factor", CoalCombustion{Tonnes: 1, CalorificMJPerKg: 24, Factors: factorsOf(-1, 0, 0)}},
		{"refrigerant without gwp", RefrigerantLeak{Refrigerant: RefrigerantCustom, AmountKg: 1}},
		{"air with mismatched haul", AirTravel{DistanceKm: 10000}},
		{"road without factor", RoadTravel{DistanceKm: 5, Vehicle: "taxi"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.act.Compute()
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
