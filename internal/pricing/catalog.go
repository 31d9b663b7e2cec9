package pricing

// Well-known catalog entry names. Lookups by these names are optional: a
// catalog without them falls back to the default rates below.
const (
	AddOnHighCeiling   = "high_ceiling"
	AddOnWalkInCloset  = "walk_in_closet"
	AddOnRegularCloset = "regular_closet"

	ConditionEmptyHouse      = "empty_house"
	ConditionNoFloorCovering = "no_floor_covering"
)

// AddOnKind distinguishes percentage-of-base add-ons from flat-amount ones.
type AddOnKind string

const (
	AddOnPercent AddOnKind = "percent"
	AddOnFixed   AddOnKind = "fixed"
)

// AddOn is a named catalog cost modifier, either a percentage of the room
// base price or a fixed amount.
type AddOn struct {
	Name  string
	Kind  AddOnKind
	Value float64
}

// PaintType describes an upgrade over standard paint. Percentage and fixed
// upcharges are independent and summed when both are set.
type PaintType struct {
	Name            string
	UpchargePercent float64
	UpchargeFixed   float64
}

// Condition is a named special-condition discount expressed as a percentage
// off the running room subtotal.
type Condition struct {
	Name            string
	DiscountPercent float64
}

// VolumeTier is one volume-discount rule. The tier whose Threshold is the
// highest value not exceeding the project subtotal applies. ExtraDeduction
// is an additional flat amount subtracted after the percentage discount;
// zero means the tier carries none.
type VolumeTier struct {
	Threshold       float64
	DiscountPercent float64
	ExtraDeduction  float64
}

// Rates holds the flat charges and policy constants of the calculation.
// The source systems disagreed on several of these, so they are catalog
// data rather than hardcoded; DefaultRates records the chosen defaults.
type Rates struct {
	DoorSetupFee          float64
	WindowSetupFee        float64
	WindowBrushRate       float64
	WindowSprayRate       float64
	FireplaceBrushCost    float64
	FireplaceSprayCost    float64
	StairRailingCost      float64
	RepairMinimalCost     float64
	RepairExtensiveCost   float64
	BaseboardInstallRate  float64
	ExtrasOnlyPercent     float64
	HighCeilingFallback   float64
	WalkInClosetFallback  float64
	RegularClosetFallback float64
	DiscountCapPercent    float64
	MinimumProjectTotal   float64
}

// DefaultRates returns the canonical rate set.
func DefaultRates() Rates {
	return Rates{
		DoorSetupFee:          50,
		WindowSetupFee:        50,
		WindowBrushRate:       20,
		WindowSprayRate:       40,
		FireplaceBrushCost:    100,
		FireplaceSprayCost:    200,
		StairRailingCost:      250,
		RepairMinimalCost:     50,
		RepairExtensiveCost:   200,
		BaseboardInstallRate:  5,
		ExtrasOnlyPercent:     40,
		HighCeilingFallback:   600,
		WalkInClosetFallback:  300,
		RegularClosetFallback: 100,
		DiscountCapPercent:    37.5,
		MinimumProjectTotal:   400,
	}
}

// Catalog is the immutable reference data every calculation reads. It is
// always passed in explicitly; the engine never reaches into ambient state.
type Catalog struct {
	// BasePrices maps room type -> size class -> base price.
	BasePrices map[string]map[string]float64
	PaintTypes map[string]PaintType
	AddOns     map[string]AddOn
	Conditions map[string]Condition
	Tiers      []VolumeTier
	Rates      Rates
}

// BasePrice looks up the base price for a (room type, size) pair. Unknown
// keys price to zero rather than failing the whole computation.
func (c Catalog) BasePrice(roomType, size string) float64 {
	sizes, ok := c.BasePrices[roomType]
	if !ok {
		return 0
	}
	return sizes[size]
}

// addOnCost resolves a single add-on against the base price. The second
// return value reports whether the add-on exists in the catalog.
func (c Catalog) addOnCost(name string, basePrice float64) (float64, bool) {
	addOn, ok := c.AddOns[name]
	if !ok {
		return 0, false
	}
	if addOn.Kind == AddOnPercent {
		return basePrice * (addOn.Value / 100.0), true
	}
	return addOn.Value, true
}

// conditionPercent returns the discount percentage of a named condition,
// or zero when the catalog does not define it.
func (c Catalog) conditionPercent(name string) float64 {
	return c.Conditions[name].DiscountPercent
}
