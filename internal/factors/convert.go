package factors

// gjPerMMBtu is the number of GJ in one million BTU, rounded as in the
// published EPA conversion tables.
const gjPerMMBtu = 1.055

// GMMBtuToKgGJ converts an emission factor from grams per mmBtu to kg per GJ.
func GMMBtuToKgGJ(gPerMMBtu float64) float64 {
	return gPerMMBtu / (1000 * gjPerMMBtu)
}
