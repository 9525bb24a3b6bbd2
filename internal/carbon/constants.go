// Package carbon computes greenhouse-gas emissions for Scope 1, 2 and 3
// activities using the GHG Protocol methodology.
package carbon

const (
	// GWPCH4 is the 100-year global warming potential of methane.
	// Source: IPCC AR5.
	GWPCH4 = 28.0

	// GWPN2O is the 100-year global warming potential of nitrous oxide.
	// Source: IPCC AR5.
	GWPN2O = 265.0

	// KmToMiles converts kilometers to statute miles.
	KmToMiles = 0.621371

	// KgToTonnes converts kilograms to metric tonnes.
	KgToTonnes = 0.001

	// KgPerTonne is the number of kilograms in a metric tonne.
	KgPerTonne = 1000.0

	// MJPerGJ is the number of megajoules in a gigajoule.
	MJPerGJ = 1000.0

	// GramsPerKg is the number of grams in a kilogram.
	GramsPerKg = 1000.0

	// KWhPerMWh is the number of kilowatt-hours in a megawatt-hour.
	KWhPerMWh = 1000.0

	// ShortHaulMaxMiles is the exclusive upper bound of a short-haul flight.
	// Source: EPA Emission Factors Hub, business travel.
	ShortHaulMaxMiles = 300.0

	// MediumHaulMaxMiles is the exclusive upper bound of a medium-haul flight.
	// Source: EPA Emission Factors Hub, business travel.
	MediumHaulMaxMiles = 2300.0

	// SourceFleet is the combustion source label that enables the
	// distance-based fleet estimate for records measured in km.
	SourceFleet = "Fleet"
)
