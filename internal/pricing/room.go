package pricing

// Method selects how a paintable fixture is handled.
type Method string

const (
	MethodNone  Method = "none"
	MethodBrush Method = "brush"
	MethodSpray Method = "spray"
)

// RepairLevel grades drywall/surface repair work for a room.
type RepairLevel string

const (
	RepairNone      RepairLevel = "none"
	RepairMinimal   RepairLevel = "minimal"
	RepairExtensive RepairLevel = "extensive"
)

// Per-door rates as a step function of the room's total door count. The
// tier is chosen once from the count and applied to every door, so the
// total can drop when a count crosses a boundary (11 brushed doors cost
// less than 10). That matches the observed billing behaviour and is kept.
var doorBrushRates = []struct {
	minCount int
	rate     float64
}{
	{20, 35},
	{11, 40},
	{1, 50},
}

var doorSprayRates = []struct {
	minCount int
	rate     float64
}{
	{20, 50},
	{11, 65},
	{1, 75},
}

// RoomInput is one room's configuration for pricing, as captured by the
// estimate form. Counts are clamped to zero by the calculator; a painting
// method other than "none" with a zero count is inert, not an error.
type RoomInput struct {
	RoomType  string
	Size      string
	PaintType string   // empty means standard paint, no upcharge
	AddOns    []string // selected add-on names

	HighCeiling     bool
	EmptyHouse      bool
	NoFloorCovering bool
	StairRailing    bool
	TwoColors       bool
	MillworkPriming bool

	DoorMethod      Method
	DoorCount       int
	WindowMethod    Method
	WindowCount     int
	FireplaceMethod Method

	Repairs RepairLevel

	BaseboardMethod      Method
	BaseboardInstallFeet float64

	WalkInClosets  int
	RegularClosets int
}

// RoomBreakdown itemizes the cost of pricing one room. Discount fields are
// negative contributions; TotalBeforeVolume is the sum of every field.
type RoomBreakdown struct {
	BasePrice            float64
	PaintUpcharge        float64
	AddOnCost            float64
	BaseboardCost        float64
	HighCeilingCost      float64
	DoorCost             float64
	WindowCost           float64
	FireplaceCost        float64
	RailingCost          float64
	ClosetCost           float64
	TwoColorCost         float64
	MillworkCost         float64
	RepairCost           float64
	BaseboardInstallCost float64
	ExtrasOnlyCost       float64
	EmptyHouseDiscount   float64
	NoFloorDiscount      float64

	TotalBeforeVolume float64
}

// PriceRoom computes the itemized cost breakdown for a single room. It is
// deterministic and side-effect free: unknown catalog lookups degrade to
// zero and invalid counts are clamped, never rejected.
func PriceRoom(room RoomInput, catalog Catalog) RoomBreakdown {
	b := RoomBreakdown{}
	rates := catalog.Rates

	b.BasePrice = catalog.BasePrice(room.RoomType, room.Size)

	if paint, ok := catalog.PaintTypes[room.PaintType]; ok {
		b.PaintUpcharge = b.BasePrice*(paint.UpchargePercent/100.0) + paint.UpchargeFixed
	}

	for _, name := range room.AddOns {
		cost, _ := catalog.addOnCost(name, b.BasePrice)
		b.AddOnCost += cost
	}

	switch room.BaseboardMethod {
	case MethodBrush:
		b.BaseboardCost = b.BasePrice * 0.25
	case MethodSpray:
		b.BaseboardCost = b.BasePrice * 0.5
	}

	if room.HighCeiling {
		cost, ok := catalog.addOnCost(AddOnHighCeiling, b.BasePrice)
		if !ok {
			cost = rates.HighCeilingFallback
		}
		b.HighCeilingCost = cost
	}

	b.DoorCost = doorCost(room.DoorMethod, clampCount(room.DoorCount), rates)
	b.WindowCost = windowCost(room.WindowMethod, clampCount(room.WindowCount), rates)

	switch room.FireplaceMethod {
	case MethodBrush:
		b.FireplaceCost = rates.FireplaceBrushCost
	case MethodSpray:
		b.FireplaceCost = rates.FireplaceSprayCost
	}

	if room.StairRailing {
		b.RailingCost = rates.StairRailingCost
	}

	b.ClosetCost = closetCost(room, b.BasePrice, catalog)

	// Two-color work surcharges the partial subtotal through the ceiling
	// term only, not the full room total.
	if room.TwoColors {
		b.TwoColorCost = 0.10 * (b.BasePrice + b.PaintUpcharge + b.AddOnCost + b.HighCeilingCost)
	}

	if room.MillworkPriming {
		b.MillworkCost = 0.50 * b.BasePrice
	}

	switch room.Repairs {
	case RepairMinimal:
		b.RepairCost = rates.RepairMinimalCost
	case RepairExtensive:
		b.RepairCost = rates.RepairExtensiveCost
	}

	if room.BaseboardInstallFeet > 0 {
		b.BaseboardInstallCost = room.BaseboardInstallFeet * rates.BaseboardInstallRate
	}

	// A room with no base painting work but isolated extras still has to
	// cover setup overhead.
	extras := b.DoorCost + b.WindowCost + b.FireplaceCost + b.RailingCost
	if b.BasePrice == 0 && extras > 0 {
		b.ExtrasOnlyCost = extras * (rates.ExtrasOnlyPercent / 100.0)
	}

	running := b.BasePrice + b.PaintUpcharge + b.AddOnCost + b.BaseboardCost +
		b.HighCeilingCost + b.DoorCost + b.WindowCost + b.FireplaceCost +
		b.RailingCost + b.ClosetCost + b.TwoColorCost + b.MillworkCost +
		b.RepairCost + b.BaseboardInstallCost + b.ExtrasOnlyCost

	if room.EmptyHouse {
		b.EmptyHouseDiscount = -running * (catalog.conditionPercent(ConditionEmptyHouse) / 100.0)
	}

	// Compounds on the already-discounted amount, not the original subtotal.
	if room.NoFloorCovering {
		b.NoFloorDiscount = -(running + b.EmptyHouseDiscount) * (catalog.conditionPercent(ConditionNoFloorCovering) / 100.0)
	}

	b.TotalBeforeVolume = running + b.EmptyHouseDiscount + b.NoFloorDiscount
	return b
}

func doorCost(method Method, count int, rates Rates) float64 {
	if method == MethodNone || method == "" || count == 0 {
		return 0
	}

	tiers := doorBrushRates
	if method == MethodSpray {
		tiers = doorSprayRates
	}

	for _, tier := range tiers {
		if count >= tier.minCount {
			return rates.DoorSetupFee + float64(count)*tier.rate
		}
	}
	return 0
}

func windowCost(method Method, count int, rates Rates) float64 {
	if count == 0 {
		return 0
	}

	switch method {
	case MethodBrush:
		return rates.WindowSetupFee + float64(count)*rates.WindowBrushRate
	case MethodSpray:
		return rates.WindowSetupFee + float64(count)*rates.WindowSprayRate
	}
	return 0
}

func closetCost(room RoomInput, basePrice float64, catalog Catalog) float64 {
	walkInUnit, ok := catalog.addOnCost(AddOnWalkInCloset, basePrice)
	if !ok {
		walkInUnit = catalog.Rates.WalkInClosetFallback
	}
	regularUnit, ok := catalog.addOnCost(AddOnRegularCloset, basePrice)
	if !ok {
		regularUnit = catalog.Rates.RegularClosetFallback
	}

	return float64(clampCount(room.WalkInClosets))*walkInUnit +
		float64(clampCount(room.RegularClosets))*regularUnit
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
