package carbon

import "github.com/rshade/ghgcalc/internal/factors"

// LitersToGJ converts a liquid fuel volume to energy.
//
//	GJ = liters × density (kg/l) × calorific value (MJ/kg) / 1000
func LitersToGJ(liters, densityKgPerL, calorificMJPerKg float64) float64 {
	return liters * densityKgPerL * calorificMJPerKg / MJPerGJ
}

// CubicMetersToGJ converts a natural gas volume to energy.
//
//	GJ = m3 × calorific value (MJ/m3) / 1000
func CubicMetersToGJ(cubicMeters, calorificMJPerM3 float64) float64 {
	return cubicMeters * (calorificMJPerM3 / MJPerGJ)
}

// TonnesToGJ converts a solid fuel mass to energy.
//
//	GJ = tonnes × 1000 × calorific value (MJ/kg) / 1000
func TonnesToGJ(tonnes, calorificMJPerKg float64) float64 {
	return tonnes * KgPerTonne * (calorificMJPerKg / MJPerGJ)
}

// FleetFuelKg estimates the fuel burned over a distance from a per-km
// consumption figure in grams.
func FleetFuelKg(distanceKm, consumptionGPerKm float64) float64 {
	return distanceKm * (consumptionGPerKm / GramsPerKg)
}

// FuelKgToLiters converts a liquid fuel mass to volume.
func FuelKgToLiters(fuelKg, densityKgPerL float64) float64 {
	return fuelKg / densityKgPerL
}

// KmToMi converts kilometers to miles.
func KmToMi(km float64) float64 {
	return km * KmToMiles
}

// ClassifyHaul returns the haul class of a flight distance in miles.
// Lower bounds are inclusive: exactly 300 miles is medium haul and exactly
// 2300 miles is long haul.
func ClassifyHaul(miles float64) factors.HaulClass {
	switch {
	case miles < ShortHaulMaxMiles:
		return factors.HaulShort
	case miles < MediumHaulMaxMiles:
		return factors.HaulMedium
	default:
		return factors.HaulLong
	}
}
