package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
)

type roomPriceRow struct {
	ID       int64
	RoomType string
	Size     string
	Price    float64
	Active   bool
}

type roomPricesViewData struct {
	baseViewData
	RoomPrices []roomPriceRow
}

type paintTypeRow struct {
	ID              int64
	Name            string
	UpchargePercent float64
	UpchargeFixed   float64
	Active          bool
}

type paintTypesViewData struct {
	baseViewData
	PaintTypes []paintTypeRow
}

type addOnRow struct {
	ID     int64
	Name   string
	Kind   string
	Value  float64
	Active bool
}

type addOnsViewData struct {
	baseViewData
	AddOns []addOnRow
}

type conditionRow struct {
	ID              int64
	Name            string
	DiscountPercent float64
	Active          bool
}

type conditionsViewData struct {
	baseViewData
	Conditions []conditionRow
}

type tierRow struct {
	ID              int64
	Threshold       float64
	DiscountPercent float64
	ExtraDeduction  float64
	Active          bool
}

type tiersViewData struct {
	baseViewData
	Tiers []tierRow
}

type rateConfigForm struct {
	RepairMinimalCost    float64
	RepairExtensiveCost  float64
	BaseboardInstallRate float64
	ExtrasOnlyPercent    float64
	DiscountCapPercent   float64
	MinimumProjectTotal  float64
}

type ratesViewData struct {
	baseViewData
	RateConfig rateConfigForm
}

func (s *server) handleAdminRoomPricesForm(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
		SELECT id, room_type, size, price, active
		FROM room_prices
		ORDER BY room_type, size
	`)
	if err != nil {
		http.Error(w, "failed to load room prices", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	prices := make([]roomPriceRow, 0)
	for rows.Next() {
		var row roomPriceRow
		if err := rows.Scan(&row.ID, &row.RoomType, &row.Size, &row.Price, &row.Active); err != nil {
			http.Error(w, "failed to load room prices", http.StatusInternalServerError)
			return
		}
		prices = append(prices, row)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "failed to load room prices", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_rooms.html", roomPricesViewData{
		baseViewData: queryMessages(r),
		RoomPrices:   prices,
	})
}

func (s *server) handleAdminRoomPricesCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseRoomPriceForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/rooms", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO room_prices (room_type, size, price, active)
		VALUES (?, ?, ?, TRUE)
	`, row.RoomType, row.Size, row.Price)
	if err != nil {
		http.Error(w, "failed to create room price", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/rooms?success=Room+price+created", http.StatusSeeOther)
}

func (s *server) handleAdminRoomPricesUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAdminID(w, r, "room price")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseRoomPriceForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/rooms", err)
		return
	}
	row.Active = r.FormValue("active") == "1"

	result, err := s.db.Exec(`
		UPDATE room_prices
		SET
			room_type = ?,
			size = ?,
			price = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, row.RoomType, row.Size, row.Price, row.Active, id)
	if err != nil {
		http.Error(w, "failed to update room price", http.StatusInternalServerError)
		return
	}
	if !requireAffected(w, r, result) {
		return
	}

	http.Redirect(w, r, "/admin/rooms?success=Room+price+updated", http.StatusSeeOther)
}

func (s *server) handleAdminPaintTypesForm(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
		SELECT id, name, upcharge_percent, upcharge_fixed, active
		FROM paint_types
		ORDER BY id DESC
	`)
	if err != nil {
		http.Error(w, "failed to load paint types", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	paints := make([]paintTypeRow, 0)
	for rows.Next() {
		var row paintTypeRow
		if err := rows.Scan(&row.ID, &row.Name, &row.UpchargePercent, &row.UpchargeFixed, &row.Active); err != nil {
			http.Error(w, "failed to load paint types", http.StatusInternalServerError)
			return
		}
		paints = append(paints, row)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "failed to load paint types", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_paints.html", paintTypesViewData{
		baseViewData: queryMessages(r),
		PaintTypes:   paints,
	})
}

func (s *server) handleAdminPaintTypesCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parsePaintTypeForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/paints", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO paint_types (name, upcharge_percent, upcharge_fixed, active)
		VALUES (?, ?, ?, TRUE)
	`, row.Name, row.UpchargePercent, row.UpchargeFixed)
	if err != nil {
		http.Error(w, "failed to create paint type", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/paints?success=Paint+type+created", http.StatusSeeOther)
}

func (s *server) handleAdminPaintTypesUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAdminID(w, r, "paint type")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parsePaintTypeForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/paints", err)
		return
	}
	row.Active = r.FormValue("active") == "1"

	result, err := s.db.Exec(`
		UPDATE paint_types
		SET
			name = ?,
			upcharge_percent = ?,
			upcharge_fixed = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, row.Name, row.UpchargePercent, row.UpchargeFixed, row.Active, id)
	if err != nil {
		http.Error(w, "failed to update paint type", http.StatusInternalServerError)
		return
	}
	if !requireAffected(w, r, result) {
		return
	}

	http.Redirect(w, r, "/admin/paints?success=Paint+type+updated", http.StatusSeeOther)
}

func (s *server) handleAdminAddOnsForm(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
		SELECT id, name, kind, value, active
		FROM addons
		ORDER BY id DESC
	`)
	if err != nil {
		http.Error(w, "failed to load addons", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	addOns := make([]addOnRow, 0)
	for rows.Next() {
		var row addOnRow
		if err := rows.Scan(&row.ID, &row.Name, &row.Kind, &row.Value, &row.Active); err != nil {
			http.Error(w, "failed to load addons", http.StatusInternalServerError)
			return
		}
		addOns = append(addOns, row)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "failed to load addons", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_addons.html", addOnsViewData{
		baseViewData: queryMessages(r),
		AddOns:       addOns,
	})
}

func (s *server) handleAdminAddOnsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseAddOnForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/addons", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO addons (name, kind, value, active)
		VALUES (?, ?, ?, TRUE)
	`, row.Name, row.Kind, row.Value)
	if err != nil {
		http.Error(w, "failed to create addon", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/addons?success=Add-on+created", http.StatusSeeOther)
}

func (s *server) handleAdminAddOnsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAdminID(w, r, "addon")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseAddOnForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/addons", err)
		return
	}
	row.Active = r.FormValue("active") == "1"

	result, err := s.db.Exec(`
		UPDATE addons
		SET
			name = ?,
			kind = ?,
			value = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, row.Name, row.Kind, row.Value, row.Active, id)
	if err != nil {
		http.Error(w, "failed to update addon", http.StatusInternalServerError)
		return
	}
	if !requireAffected(w, r, result) {
		return
	}

	http.Redirect(w, r, "/admin/addons?success=Add-on+updated", http.StatusSeeOther)
}

func (s *server) handleAdminConditionsForm(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
		SELECT id, name, discount_percent, active
		FROM conditions
		ORDER BY id DESC
	`)
	if err != nil {
		http.Error(w, "failed to load conditions", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	conditions := make([]conditionRow, 0)
	for rows.Next() {
		var row conditionRow
		if err := rows.Scan(&row.ID, &row.Name, &row.DiscountPercent, &row.Active); err != nil {
			http.Error(w, "failed to load conditions", http.StatusInternalServerError)
			return
		}
		conditions = append(conditions, row)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "failed to load conditions", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_conditions.html", conditionsViewData{
		baseViewData: queryMessages(r),
		Conditions:   conditions,
	})
}

func (s *server) handleAdminConditionsCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseConditionForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/conditions", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO conditions (name, discount_percent, active)
		VALUES (?, ?, TRUE)
	`, row.Name, row.DiscountPercent)
	if err != nil {
		http.Error(w, "failed to create condition", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/conditions?success=Condition+created", http.StatusSeeOther)
}

func (s *server) handleAdminConditionsUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAdminID(w, r, "condition")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseConditionForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/conditions", err)
		return
	}
	row.Active = r.FormValue("active") == "1"

	result, err := s.db.Exec(`
		UPDATE conditions
		SET
			name = ?,
			discount_percent = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, row.Name, row.DiscountPercent, row.Active, id)
	if err != nil {
		http.Error(w, "failed to update condition", http.StatusInternalServerError)
		return
	}
	if !requireAffected(w, r, result) {
		return
	}

	http.Redirect(w, r, "/admin/conditions?success=Condition+updated", http.StatusSeeOther)
}

func (s *server) handleAdminTiersForm(w http.ResponseWriter, r *http.Request) {
	rows, err := s.db.Query(`
		SELECT id, threshold, discount_percent, extra_deduction, active
		FROM volume_tiers
		ORDER BY threshold
	`)
	if err != nil {
		http.Error(w, "failed to load volume tiers", http.StatusInternalServerError)
		return
	}
	defer rows.Close()

	tiers := make([]tierRow, 0)
	for rows.Next() {
		var row tierRow
		if err := rows.Scan(&row.ID, &row.Threshold, &row.DiscountPercent, &row.ExtraDeduction, &row.Active); err != nil {
			http.Error(w, "failed to load volume tiers", http.StatusInternalServerError)
			return
		}
		tiers = append(tiers, row)
	}
	if err := rows.Err(); err != nil {
		http.Error(w, "failed to load volume tiers", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_tiers.html", tiersViewData{
		baseViewData: queryMessages(r),
		Tiers:        tiers,
	})
}

func (s *server) handleAdminTiersCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseTierForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/tiers", err)
		return
	}

	_, err = s.db.Exec(`
		INSERT INTO volume_tiers (threshold, discount_percent, extra_deduction, active)
		VALUES (?, ?, ?, TRUE)
	`, row.Threshold, row.DiscountPercent, row.ExtraDeduction)
	if err != nil {
		http.Error(w, "failed to create volume tier", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/admin/tiers?success=Volume+tier+created", http.StatusSeeOther)
}

func (s *server) handleAdminTiersUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseAdminID(w, r, "volume tier")
	if !ok {
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	row, err := parseTierForm(r)
	if err != nil {
		redirectWithError(w, r, "/admin/tiers", err)
		return
	}
	row.Active = r.FormValue("active") == "1"

	result, err := s.db.Exec(`
		UPDATE volume_tiers
		SET
			threshold = ?,
			discount_percent = ?,
			extra_deduction = ?,
			active = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, row.Threshold, row.DiscountPercent, row.ExtraDeduction, row.Active, id)
	if err != nil {
		http.Error(w, "failed to update volume tier", http.StatusInternalServerError)
		return
	}
	if !requireAffected(w, r, result) {
		return
	}

	http.Redirect(w, r, "/admin/tiers?success=Volume+tier+updated", http.StatusSeeOther)
}

func (s *server) handleAdminRatesForm(w http.ResponseWriter, r *http.Request) {
	rates, err := s.getRateConfig()
	if err != nil {
		http.Error(w, "failed to load rate config", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_rates.html", ratesViewData{RateConfig: rates})
}

func (s *server) handleAdminRatesSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rates, validationErr := parseRateConfigForm(r)
	if validationErr != nil {
		w.WriteHeader(http.StatusBadRequest)
		s.renderTemplate(w, "admin_rates.html", ratesViewData{
			baseViewData: baseViewData{ErrorMessage: validationErr.Error()},
			RateConfig:   rates,
		})
		return
	}

	if err := s.updateRateConfig(rates); err != nil {
		http.Error(w, "failed to save rate config", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "admin_rates.html", ratesViewData{
		baseViewData: baseViewData{SuccessMessage: "Rates saved."},
		RateConfig:   rates,
	})
}

func (s *server) getRateConfig() (rateConfigForm, error) {
	var rc rateConfigForm
	err := s.db.QueryRow(`
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
		&rc.RepairMinimalCost,
		&rc.RepairExtensiveCost,
		&rc.BaseboardInstallRate,
		&rc.ExtrasOnlyPercent,
		&rc.DiscountCapPercent,
		&rc.MinimumProjectTotal,
	)
	if err != nil {
		return rateConfigForm{}, fmt.Errorf("query rate_config: %w", err)
	}
	return rc, nil
}

func (s *server) updateRateConfig(rc rateConfigForm) error {
	_, err := s.db.Exec(`
		UPDATE rate_config
		SET
			repair_minimal_cost = ?,
			repair_extensive_cost = ?,
			baseboard_install_rate = ?,
			extras_only_percent = ?,
			discount_cap_percent = ?,
			minimum_project_total = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = 1
	`,
		rc.RepairMinimalCost,
		rc.RepairExtensiveCost,
		rc.BaseboardInstallRate,
		rc.ExtrasOnlyPercent,
		rc.DiscountCapPercent,
		rc.MinimumProjectTotal,
	)
	if err != nil {
		return fmt.Errorf("update rate_config: %w", err)
	}

	return nil
}

func parseRoomPriceForm(r *http.Request) (roomPriceRow, error) {
	row := roomPriceRow{
		RoomType: strings.TrimSpace(r.FormValue("room_type")),
		Size:     strings.TrimSpace(r.FormValue("size")),
	}

	if row.RoomType == "" {
		return row, fmt.Errorf("room_type is required")
	}
	if row.Size == "" {
		return row, fmt.Errorf("size is required")
	}

	var err error
	row.Price, err = parseNonNegativeFloat(r.FormValue("price"), "price")
	if err != nil {
		return row, err
	}

	return row, nil
}

func parsePaintTypeForm(r *http.Request) (paintTypeRow, error) {
	row := paintTypeRow{
		Name: strings.TrimSpace(r.FormValue("name")),
	}

	if row.Name == "" {
		return row, fmt.Errorf("name is required")
	}

	var err error
	if row.UpchargePercent, err = parsePercent(r.FormValue("upcharge_percent"), "upcharge_percent"); err != nil {
		return row, err
	}
	if row.UpchargeFixed, err = parseNonNegativeFloat(r.FormValue("upcharge_fixed"), "upcharge_fixed"); err != nil {
		return row, err
	}

	return row, nil
}

func parseAddOnForm(r *http.Request) (addOnRow, error) {
	row := addOnRow{
		Name: strings.TrimSpace(r.FormValue("name")),
		Kind: strings.TrimSpace(r.FormValue("kind")),
	}

	if row.Name == "" {
		return row, fmt.Errorf("name is required")
	}
	if row.Kind != "percent" && row.Kind != "fixed" {
		return row, fmt.Errorf("kind must be percent or fixed")
	}

	var err error
	row.Value, err = parseNonNegativeFloat(r.FormValue("value"), "value")
	if err != nil {
		return row, err
	}

	return row, nil
}

func parseConditionForm(r *http.Request) (conditionRow, error) {
	row := conditionRow{
		Name: strings.TrimSpace(r.FormValue("name")),
	}

	if row.Name == "" {
		return row, fmt.Errorf("name is required")
	}

	var err error
	row.DiscountPercent, err = parsePercent(r.FormValue("discount_percent"), "discount_percent")
	if err != nil {
		return row, err
	}

	return row, nil
}

func parseTierForm(r *http.Request) (tierRow, error) {
	row := tierRow{}

	var err error
	if row.Threshold, err = parseNonNegativeFloat(r.FormValue("threshold"), "threshold"); err != nil {
		return row, err
	}
	if row.DiscountPercent, err = parsePercent(r.FormValue("discount_percent"), "discount_percent"); err != nil {
		return row, err
	}
	if row.ExtraDeduction, err = parseNonNegativeFloat(r.FormValue("extra_deduction"), "extra_deduction"); err != nil {
		return row, err
	}

	return row, nil
}

func parseRateConfigForm(r *http.Request) (rateConfigForm, error) {
	rates := rateConfigForm{}

	var err error
	if rates.RepairMinimalCost, err = parseNonNegativeFloat(r.FormValue("repair_minimal_cost"), "repair_minimal_cost"); err != nil {
		return rates, err
	}
	if rates.RepairExtensiveCost, err = parseNonNegativeFloat(r.FormValue("repair_extensive_cost"), "repair_extensive_cost"); err != nil {
		return rates, err
	}
	if rates.BaseboardInstallRate, err = parseNonNegativeFloat(r.FormValue("baseboard_install_rate"), "baseboard_install_rate"); err != nil {
		return rates, err
	}
	if rates.ExtrasOnlyPercent, err = parsePercent(r.FormValue("extras_only_percent"), "extras_only_percent"); err != nil {
		return rates, err
	}
	if rates.DiscountCapPercent, err = parsePercent(r.FormValue("discount_cap_percent"), "discount_cap_percent"); err != nil {
		return rates, err
	}
	if rates.MinimumProjectTotal, err = parseNonNegativeFloat(r.FormValue("minimum_project_total"), "minimum_project_total"); err != nil {
		return rates, err
	}

	return rates, nil
}

func parseNonNegativeFloat(raw, field string) (float64, error) {
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be numeric", field)
	}
	if value < 0 {
		return 0, fmt.Errorf("%s must be greater than or equal to 0", field)
	}
	return value, nil
}

func parsePercent(raw, field string) (float64, error) {
	value, err := parseNonNegativeFloat(raw, field)
	if err != nil {
		return 0, err
	}
	if value > 100 {
		return 0, fmt.Errorf("%s must be between 0 and 100", field)
	}
	return value, nil
}

func parseAdminID(w http.ResponseWriter, r *http.Request, entity string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid "+entity+" id", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func redirectWithError(w http.ResponseWriter, r *http.Request, path string, err error) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

func requireAffected(w http.ResponseWriter, r *http.Request, result sql.Result) bool {
	affected, err := result.RowsAffected()
	if err != nil {
		http.Error(w, "failed to update record", http.StatusInternalServerError)
		return false
	}
	if affected == 0 {
		http.NotFound(w, r)
		return false
	}
	return true
}

func queryMessages(r *http.Request) baseViewData {
	return baseViewData{
		ErrorMessage:   r.URL.Query().Get("error"),
		SuccessMessage: r.URL.Query().Get("success"),
	}
}
