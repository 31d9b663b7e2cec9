package seed

import (
	"database/sql"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/pricing"
)

// Config contains the values required by startup seed.
type Config struct {
	AdminEmail    string
	AdminPassword string
}

// Stats contains seed operation counters.
type Stats struct {
	Inserts int
}

type roomPriceRow struct {
	roomType string
	size     string
	price    float64
}

var defaultRoomPrices = []roomPriceRow{
	{"bedroom", "small", 250},
	{"bedroom", "average", 350},
	{"bedroom", "large", 450},
	{"bedroom", "extra_large", 550},
	{"living_room", "small", 350},
	{"living_room", "average", 500},
	{"living_room", "large", 700},
	{"living_room", "extra_large", 900},
	{"kitchen", "small", 200},
	{"kitchen", "average", 300},
	{"kitchen", "large", 400},
	{"kitchen", "extra_large", 500},
	{"bathroom", "small", 150},
	{"bathroom", "average", 250},
	{"bathroom", "large", 350},
	{"bathroom", "extra_large", 450},
	{"hallway", "small", 150},
	{"hallway", "average", 200},
	{"hallway", "large", 300},
	{"hallway", "extra_large", 400},
}

type addOnRow struct {
	name  string
	kind  pricing.AddOnKind
	value float64
}

var defaultAddOns = []addOnRow{
	{"accent_wall", pricing.AddOnPercent, 20},
	{"ceiling_paint", pricing.AddOnPercent, 40},
	{pricing.AddOnHighCeiling, pricing.AddOnFixed, 600},
	{pricing.AddOnWalkInCloset, pricing.AddOnFixed, 300},
	{pricing.AddOnRegularCloset, pricing.AddOnFixed, 100},
}

// Run executes the startup seed in an idempotent way: the admin user, the
// rate singleton, and a default pricing catalog are created only when
// missing, never overwritten.
func Run(db *sql.DB, cfg Config) (Stats, error) {
	tx, err := db.Begin()
	if err != nil {
		return Stats{}, fmt.Errorf("begin seed transaction: %w", err)
	}

	stats := Stats{}

	steps := []func(*sql.Tx, *Stats) error{
		func(tx *sql.Tx, stats *Stats) error {
			return seedAdmin(tx, cfg.AdminEmail, cfg.AdminPassword, stats)
		},
		ensureRateConfig,
		ensureRoomPrices,
		ensurePaintTypes,
		ensureAddOns,
		ensureConditions,
		ensureVolumeTiers,
	}
	for _, step := range steps {
		if err := step(tx, &stats); err != nil {
			_ = tx.Rollback()
			return Stats{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return Stats{}, fmt.Errorf("commit seed transaction: %w", err)
	}

	return stats, nil
}

func seedAdmin(tx *sql.Tx, email, password string, stats *Stats) error {
	if email == "" || password == "" {
		return nil
	}

	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM users WHERE email = ? LIMIT 1)`, email).Scan(&exists); err != nil {
		return fmt.Errorf("check admin user existence: %w", err)
	}
	if exists {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	if _, err := tx.Exec(`INSERT INTO users (email, password_hash) VALUES (?, ?)`, email, string(hash)); err != nil {
		return fmt.Errorf("insert admin user: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureRateConfig(tx *sql.Tx, stats *Stats) error {
	var exists bool
	if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM rate_config WHERE id = 1)`).Scan(&exists); err != nil {
		return fmt.Errorf("check rate config existence: %w", err)
	}
	if exists {
		return nil
	}

	rates := pricing.DefaultRates()
	if _, err := tx.Exec(`
		INSERT INTO rate_config (
			id,
			repair_minimal_cost,
			repair_extensive_cost,
			baseboard_install_rate,
			extras_only_percent,
			discount_cap_percent,
			minimum_project_total
		)
		VALUES (1, ?, ?, ?, ?, ?, ?)
	`,
		rates.RepairMinimalCost,
		rates.RepairExtensiveCost,
		rates.BaseboardInstallRate,
		rates.ExtrasOnlyPercent,
		rates.DiscountCapPercent,
		rates.MinimumProjectTotal,
	); err != nil {
		return fmt.Errorf("insert rate config singleton: %w", err)
	}
	stats.Inserts++
	return nil
}

func ensureRoomPrices(tx *sql.Tx, stats *Stats) error {
	for _, row := range defaultRoomPrices {
		var exists bool
		if err := tx.QueryRow(`
			SELECT EXISTS(SELECT 1 FROM room_prices WHERE room_type = ? AND size = ? LIMIT 1)
		`, row.roomType, row.size).Scan(&exists); err != nil {
			return fmt.Errorf("check room price existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO room_prices (room_type, size, price, active)
			VALUES (?, ?, ?, TRUE)
		`, row.roomType, row.size, row.price); err != nil {
			return fmt.Errorf("insert room price %s/%s: %w", row.roomType, row.size, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensurePaintTypes(tx *sql.Tx, stats *Stats) error {
	paints := []pricing.PaintType{
		{Name: "premium", UpchargePercent: 15},
		{Name: "eco_friendly", UpchargePercent: 10, UpchargeFixed: 50},
	}

	for _, paint := range paints {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM paint_types WHERE name = ? LIMIT 1)`, paint.Name).Scan(&exists); err != nil {
			return fmt.Errorf("check paint type existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO paint_types (name, upcharge_percent, upcharge_fixed, active)
			VALUES (?, ?, ?, TRUE)
		`, paint.Name, paint.UpchargePercent, paint.UpchargeFixed); err != nil {
			return fmt.Errorf("insert paint type %s: %w", paint.Name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureAddOns(tx *sql.Tx, stats *Stats) error {
	for _, row := range defaultAddOns {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM addons WHERE name = ? LIMIT 1)`, row.name).Scan(&exists); err != nil {
			return fmt.Errorf("check addon existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO addons (name, kind, value, active)
			VALUES (?, ?, ?, TRUE)
		`, row.name, string(row.kind), row.value); err != nil {
			return fmt.Errorf("insert addon %s: %w", row.name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureConditions(tx *sql.Tx, stats *Stats) error {
	conditions := []pricing.Condition{
		{Name: pricing.ConditionEmptyHouse, DiscountPercent: 15},
		{Name: pricing.ConditionNoFloorCovering, DiscountPercent: 5},
	}

	for _, condition := range conditions {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM conditions WHERE name = ? LIMIT 1)`, condition.Name).Scan(&exists); err != nil {
			return fmt.Errorf("check condition existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO conditions (name, discount_percent, active)
			VALUES (?, ?, TRUE)
		`, condition.Name, condition.DiscountPercent); err != nil {
			return fmt.Errorf("insert condition %s: %w", condition.Name, err)
		}
		stats.Inserts++
	}
	return nil
}

func ensureVolumeTiers(tx *sql.Tx, stats *Stats) error {
	tiers := []pricing.VolumeTier{
		{Threshold: 2000, DiscountPercent: 5},
		{Threshold: 4000, DiscountPercent: 10, ExtraDeduction: 100},
	}

	for _, tier := range tiers {
		var exists bool
		if err := tx.QueryRow(`SELECT EXISTS(SELECT 1 FROM volume_tiers WHERE threshold = ? LIMIT 1)`, tier.Threshold).Scan(&exists); err != nil {
			return fmt.Errorf("check volume tier existence: %w", err)
		}
		if exists {
			continue
		}

		if _, err := tx.Exec(`
			INSERT INTO volume_tiers (threshold, discount_percent, extra_deduction, active)
			VALUES (?, ?, ?, TRUE)
		`, tier.Threshold, tier.DiscountPercent, tier.ExtraDeduction); err != nil {
			return fmt.Errorf("insert volume tier %v: %w", tier.Threshold, err)
		}
		stats.Inserts++
	}
	return nil
}
