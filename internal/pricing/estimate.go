package pricing

import "math"

// Labor/material split and the estimate heuristics below are presentation
// figures, not a coverage or time model.
const (
	laborShare       = 0.7
	materialShare    = 0.3
	hoursPerRoom     = 4.0
	dollarsPerGallon = 250.0
)

// Estimate is the externally consumed shape of a computed project: the
// aggregate numbers plus the derived presentation fields the persistence
// and UI layers store and render verbatim.
type Estimate struct {
	Subtotal       float64
	VolumeDiscount float64
	FinalTotal     float64

	LaborCost    float64
	MaterialCost float64
	TimeHours    float64
	PaintGallons int

	Discounts       map[string]float64
	AdditionalCosts map[string]float64
}

// Assemble maps room breakdowns and project totals into an Estimate.
// Heuristics: time is four hours per room and paint is one gallon per 250
// of final total, rounded up.
func Assemble(breakdowns []RoomBreakdown, totals ProjectTotals) Estimate {
	est := Estimate{
		Subtotal:        totals.Subtotal,
		VolumeDiscount:  totals.VolumeDiscount + totals.ExtraDeduction,
		FinalTotal:      totals.FinalTotal,
		LaborCost:       totals.FinalTotal * laborShare,
		MaterialCost:    totals.FinalTotal * materialShare,
		TimeHours:       float64(len(breakdowns)) * hoursPerRoom,
		PaintGallons:    int(math.Ceil(totals.FinalTotal / dollarsPerGallon)),
		Discounts:       map[string]float64{},
		AdditionalCosts: map[string]float64{},
	}

	for _, b := range breakdowns {
		// Room discounts are stored as negative contributions; the keyed
		// maps carry positive amounts.
		addNonZero(est.Discounts, ConditionEmptyHouse, -b.EmptyHouseDiscount)
		addNonZero(est.Discounts, ConditionNoFloorCovering, -b.NoFloorDiscount)

		addNonZero(est.AdditionalCosts, "paint_upcharge", b.PaintUpcharge)
		addNonZero(est.AdditionalCosts, "add_ons", b.AddOnCost)
		addNonZero(est.AdditionalCosts, "baseboards", b.BaseboardCost)
		addNonZero(est.AdditionalCosts, AddOnHighCeiling, b.HighCeilingCost)
		addNonZero(est.AdditionalCosts, "doors", b.DoorCost)
		addNonZero(est.AdditionalCosts, "windows", b.WindowCost)
		addNonZero(est.AdditionalCosts, "fireplace", b.FireplaceCost)
		addNonZero(est.AdditionalCosts, "stair_railing", b.RailingCost)
		addNonZero(est.AdditionalCosts, "closets", b.ClosetCost)
		addNonZero(est.AdditionalCosts, "two_colors", b.TwoColorCost)
		addNonZero(est.AdditionalCosts, "millwork_priming", b.MillworkCost)
		addNonZero(est.AdditionalCosts, "repairs", b.RepairCost)
		addNonZero(est.AdditionalCosts, "baseboard_installation", b.BaseboardInstallCost)
		addNonZero(est.AdditionalCosts, "minimum_engagement", b.ExtrasOnlyCost)
	}

	if est.VolumeDiscount != 0 {
		est.Discounts["volume"] = est.VolumeDiscount
	}

	return est
}

func addNonZero(m map[string]float64, key string, amount float64) {
	if amount != 0 {
		m[key] += amount
	}
}
