package main

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"
)

// newTestServer opens an in-memory database with the app schema and a
// small catalog: average bedrooms at 350, the two condition discounts,
// and the standard volume tiers.
func newTestServer(t *testing.T) *server {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open sqlite db: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
		CREATE TABLE room_prices (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			room_type TEXT NOT NULL,
			size TEXT NOT NULL,
			price NUMERIC NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE TABLE paint_types (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			upcharge_percent NUMERIC NOT NULL DEFAULT 0,
			upcharge_fixed NUMERIC NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE TABLE addons (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			value NUMERIC NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE TABLE conditions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			discount_percent NUMERIC NOT NULL,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE TABLE volume_tiers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			threshold NUMERIC NOT NULL,
			discount_percent NUMERIC NOT NULL,
			extra_deduction NUMERIC NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT TRUE
		);
		CREATE TABLE rate_config (
			id INTEGER PRIMARY KEY,
			repair_minimal_cost NUMERIC NOT NULL,
			repair_extensive_cost NUMERIC NOT NULL,
			baseboard_install_rate NUMERIC NOT NULL,
			extras_only_percent NUMERIC NOT NULL,
			discount_cap_percent NUMERIC NOT NULL,
			minimum_project_total NUMERIC NOT NULL
		);
		CREATE TABLE quotes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			reference TEXT NOT NULL UNIQUE,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
			customer_name TEXT,
			customer_email TEXT,
			notes TEXT,
			rooms_json TEXT NOT NULL,
			breakdowns_json TEXT NOT NULL,
			totals_json TEXT NOT NULL,
			subtotal NUMERIC NOT NULL,
			volume_discount NUMERIC NOT NULL,
			final_total NUMERIC NOT NULL
		);
	`)
	if err != nil {
		t.Fatalf("failed creating schema: %v", err)
	}

	_, err = db.Exec(`
		INSERT INTO room_prices (room_type, size, price) VALUES
			('bedroom', 'average', 350),
			('living_room', 'large', 1000);
		INSERT INTO paint_types (name, upcharge_percent, upcharge_fixed) VALUES
			('premium', 15, 0);
		INSERT INTO conditions (name, discount_percent) VALUES
			('empty_house', 15),
			('no_floor_covering', 5);
		INSERT INTO volume_tiers (threshold, discount_percent, extra_deduction) VALUES
			(2000, 5, 0),
			(4000, 10, 100);
	`)
	if err != nil {
		t.Fatalf("failed seeding catalog: %v", err)
	}

	return &server{db: db}
}
