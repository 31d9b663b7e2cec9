package pricing

import "sort"

// ProjectTotals aggregates all room breakdowns of a project.
type ProjectTotals struct {
	Subtotal       float64
	VolumeDiscount float64
	ExtraDeduction float64
	FinalTotal     float64
}

// Aggregate sums room breakdowns into a project subtotal, applies the
// matching volume-discount tier, caps the total discount, and clamps the
// result to the minimum project total. It never fails: an empty room list
// yields the minimum total by the floor rule, which callers must guard
// against presenting for an empty project if that is undesired.
func Aggregate(breakdowns []RoomBreakdown, catalog Catalog) ProjectTotals {
	totals := ProjectTotals{}
	for _, b := range breakdowns {
		totals.Subtotal += b.TotalBeforeVolume
	}

	if tier, ok := selectTier(catalog.Tiers, totals.Subtotal); ok {
		totals.VolumeDiscount = totals.Subtotal * (tier.DiscountPercent / 100.0)
		totals.ExtraDeduction = tier.ExtraDeduction
	}

	// Cap the combined discount at a fixed share of the subtotal; the
	// percentage discount absorbs the clamp, the flat extra stays intact.
	if totals.Subtotal > 0 {
		discount := totals.VolumeDiscount + totals.ExtraDeduction
		cap := totals.Subtotal * (catalog.Rates.DiscountCapPercent / 100.0)
		if discount > cap {
			totals.VolumeDiscount = cap - totals.ExtraDeduction
		}
	}

	totals.FinalTotal = totals.Subtotal - totals.VolumeDiscount - totals.ExtraDeduction
	if totals.FinalTotal < catalog.Rates.MinimumProjectTotal {
		totals.FinalTotal = catalog.Rates.MinimumProjectTotal
	}

	return totals
}

// selectTier picks the highest-threshold tier not exceeding the subtotal.
func selectTier(tiers []VolumeTier, subtotal float64) (VolumeTier, bool) {
	sorted := make([]VolumeTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Threshold > sorted[j].Threshold
	})

	for _, tier := range sorted {
		if tier.Threshold <= subtotal {
			return tier, true
		}
	}
	return VolumeTier{}, false
}
