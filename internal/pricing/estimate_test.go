package pricing

import "testing"

func TestAssemble_SplitsLaborAndMaterial(t *testing.T) {
	totals := ProjectTotals{Subtotal: 1000, FinalTotal: 1000}

	est := Assemble([]RoomBreakdown{breakdownWithTotal(500), breakdownWithTotal(500)}, totals)

	nearlyEqual(t, "laborCost", est.LaborCost, 700)
	nearlyEqual(t, "materialCost", est.MaterialCost, 300)
	nearlyEqual(t, "timeHours", est.TimeHours, 8)
	if est.PaintGallons != 4 {
		t.Fatalf("paintGallons = %d, want 4", est.PaintGallons)
	}
}

func TestAssemble_PaintGallonsRoundUp(t *testing.T) {
	est := Assemble(nil, ProjectTotals{FinalTotal: 401})

	if est.PaintGallons != 2 {
		t.Fatalf("paintGallons = %d, want 2", est.PaintGallons)
	}
}

func TestAssemble_KeyedDiscountAndCostMaps(t *testing.T) {
	breakdowns := []RoomBreakdown{
		{
			DoorCost:           550,
			WindowCost:         90,
			EmptyHouseDiscount: -150,
			NoFloorDiscount:    -42.5,
			TotalBeforeVolume:  447.5,
		},
		{
			DoorCost:          490,
			TotalBeforeVolume: 490,
		},
	}
	totals := ProjectTotals{Subtotal: 937.5, VolumeDiscount: 46.875, ExtraDeduction: 100, FinalTotal: 790.625}

	est := Assemble(breakdowns, totals)

	nearlyEqual(t, "doors", est.AdditionalCosts["doors"], 1040)
	nearlyEqual(t, "windows", est.AdditionalCosts["windows"], 90)
	nearlyEqual(t, "empty_house", est.Discounts[ConditionEmptyHouse], 150)
	nearlyEqual(t, "no_floor_covering", est.Discounts[ConditionNoFloorCovering], 42.5)
	nearlyEqual(t, "volume", est.Discounts["volume"], 146.875)
	nearlyEqual(t, "volumeDiscount", est.VolumeDiscount, 146.875)

	if _, ok := est.AdditionalCosts["fireplace"]; ok {
		t.Fatalf("expected zero-cost keys to be omitted, got %+v", est.AdditionalCosts)
	}
}

func TestAssemble_EndToEndTwoBedrooms(t *testing.T) {
	catalog := testCatalog()
	rooms := []RoomInput{
		{RoomType: "bedroom", Size: "average"},
		{RoomType: "bedroom", Size: "average"},
	}

	breakdowns := make([]RoomBreakdown, 0, len(rooms))
	for _, room := range rooms {
		breakdowns = append(breakdowns, PriceRoom(room, catalog))
	}
	totals := Aggregate(breakdowns, catalog)
	est := Assemble(breakdowns, totals)

	nearlyEqual(t, "subtotal", est.Subtotal, 700)
	nearlyEqual(t, "volumeDiscount", est.VolumeDiscount, 0)
	nearlyEqual(t, "finalTotal", est.FinalTotal, 700)
	nearlyEqual(t, "laborCost", est.LaborCost, 490)
	nearlyEqual(t, "materialCost", est.MaterialCost, 210)
}
