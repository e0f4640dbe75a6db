package domain

const (
	// minBillableGrams is the smallest weight a carrier will rate.
	minBillableGrams = 1000
	// firstBandCeiling is the heaviest parcel that still bills as one kilogram.
	firstBandCeiling = 1250
	// roundingTolerance is the per-kilogram overflow carriers absorb before
	// charging the next full kilogram.
	roundingTolerance = 250
	// gramsPerKilogram converts between the stored unit and carrier bands.
	gramsPerKilogram = 1000
)

// BillableWeight maps an actual parcel weight in grams to the weight the
// carrier charges for, also in grams. Carriers bill whole kilograms with a
// 250g tolerance: up to 1250g bills as 1kg, 1251-2250g as 2kg, and so on.
// Non-positive and missing weights fall back to the 1kg minimum.
func BillableWeight(grams int) int {
	if grams <= firstBandCeiling {
		return minBillableGrams
	}
	kg := grams / gramsPerKilogram
	if grams%gramsPerKilogram > roundingTolerance {
		kg++
	}
	return kg * gramsPerKilogram
}
