package catalog

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/pricing"
)

// Load reads the full pricing catalog from the database. Reference rows
// that are missing simply become zero-cost lookups in the engine; only SQL
// errors are surfaced.
func Load(db *sql.DB) (pricing.Catalog, error) {
	catalog := pricing.Catalog{
		BasePrices: map[string]map[string]float64{},
		PaintTypes: map[string]pricing.PaintType{},
		AddOns:     map[string]pricing.AddOn{},
		Conditions: map[string]pricing.Condition{},
	}

	if err := loadBasePrices(db, &catalog); err != nil {
		return pricing.Catalog{}, err
	}
	if err := loadPaintTypes(db, &catalog); err != nil {
		return pricing.Catalog{}, err
	}
	if err := loadAddOns(db, &catalog); err != nil {
		return pricing.Catalog{}, err
	}
	if err := loadConditions(db, &catalog); err != nil {
		return pricing.Catalog{}, err
	}
	if err := loadTiers(db, &catalog); err != nil {
		return pricing.Catalog{}, err
	}
	if err := loadRates(db, &catalog); err != nil {
		return pricing.Catalog{}, err
	}

	return catalog, nil
}

func loadBasePrices(db *sql.DB, catalog *pricing.Catalog) error {
	rows, err := db.Query(`
		SELECT room_type, size, price
		FROM room_prices
		WHERE active
	`)
	if err != nil {
		return fmt.Errorf("query room prices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var roomType, size string
		var price float64
		if err := rows.Scan(&roomType, &size, &price); err != nil {
			return fmt.Errorf("scan room price: %w", err)
		}
		if catalog.BasePrices[roomType] == nil {
			catalog.BasePrices[roomType] = map[string]float64{}
		}
		catalog.BasePrices[roomType][size] = price
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate room prices: %w", err)
	}
	return nil
}

func loadPaintTypes(db *sql.DB, catalog *pricing.Catalog) error {
	rows, err := db.Query(`
		SELECT name, upcharge_percent, upcharge_fixed
		FROM paint_types
		WHERE active
	`)
	if err != nil {
		return fmt.Errorf("query paint types: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var paint pricing.PaintType
		if err := rows.Scan(&paint.Name, &paint.UpchargePercent, &paint.UpchargeFixed); err != nil {
			return fmt.Errorf("scan paint type: %w", err)
		}
		catalog.PaintTypes[paint.Name] = paint
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate paint types: %w", err)
	}
	return nil
}

func loadAddOns(db *sql.DB, catalog *pricing.Catalog) error {
	rows, err := db.Query(`
		SELECT name, kind, value
		FROM addons
		WHERE active
	`)
	if err != nil {
		return fmt.Errorf("query addons: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var addOn pricing.AddOn
		var kind string
		if err := rows.Scan(&addOn.Name, &kind, &addOn.Value); err != nil {
			return fmt.Errorf("scan addon: %w", err)
		}
		addOn.Kind = pricing.AddOnKind(kind)
		catalog.AddOns[addOn.Name] = addOn
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate addons: %w", err)
	}
	return nil
}

func loadConditions(db *sql.DB, catalog *pricing.Catalog) error {
	rows, err := db.Query(`
		SELECT name, discount_percent
		FROM conditions
		WHERE active
	`)
	if err != nil {
		return fmt.Errorf("query conditions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var condition pricing.Condition
		if err := rows.Scan(&condition.Name, &condition.DiscountPercent); err != nil {
			return fmt.Errorf("scan condition: %w", err)
		}
		catalog.Conditions[condition.Name] = condition
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate conditions: %w", err)
	}
	return nil
}

func loadTiers(db *sql.DB, catalog *pricing.Catalog) error {
	rows, err := db.Query(`
		SELECT threshold, discount_percent, extra_deduction
		FROM volume_tiers
		WHERE active
		ORDER BY threshold DESC
	`)
	if err != nil {
		return fmt.Errorf("query volume tiers: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tier pricing.VolumeTier
		if err := rows.Scan(&tier.Threshold, &tier.DiscountPercent, &tier.ExtraDeduction); err != nil {
			return fmt.Errorf("scan volume tier: %w", err)
		}
		catalog.Tiers = append(catalog.Tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterate volume tiers: %w", err)
	}
	return nil
}

func loadRates(db *sql.DB, catalog *pricing.Catalog) error {
	rates := pricing.DefaultRates()
	err := db.QueryRow(`
		SELECT
			repair_minimal_cost,
			repair_extensive_cost,
			baseboard_install_rate,
			extras_only_percent,
			discount_cap_percent,
			minimum_project_total
		FROM rate_config
		WHERE id = 1
	`).Scan(
		&rates.RepairMinimalCost,
		&rates.RepairExtensiveCost,
		&rates.BaseboardInstallRate,
		&rates.ExtrasOnlyPercent,
		&rates.DiscountCapPercent,
		&rates.MinimumProjectTotal,
	)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("query rate config: %w", err)
	}

	catalog.Rates = rates
	return nil
}
