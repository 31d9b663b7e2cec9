package main

import (
	"net/http/httptest"
	"net/url"
	"testing"
)

func TestParseRoomPriceForm_Success(t *testing.T) {
	form := url.Values{}
	form.Set("room_type", " bedroom ")
	form.Set("size", "average")
	form.Set("price", "350")

	req := httptest.NewRequest("POST", "/admin/rooms", nil)
	req.Form = form

	row, err := parseRoomPriceForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if row.RoomType != "bedroom" || row.Size != "average" || row.Price != 350 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestParseRoomPriceForm_RejectsNegativePrice(t *testing.T) {
	form := url.Values{}
	form.Set("room_type", "bedroom")
	form.Set("size", "average")
	form.Set("price", "-10")

	req := httptest.NewRequest("POST", "/admin/rooms", nil)
	req.Form = form

	if _, err := parseRoomPriceForm(req); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestParseAddOnForm_RejectsUnknownKind(t *testing.T) {
	form := url.Values{}
	form.Set("name", "high_ceiling")
	form.Set("kind", "multiplier")
	form.Set("value", "600")

	req := httptest.NewRequest("POST", "/admin/addons", nil)
	req.Form = form

	if _, err := parseAddOnForm(req); err == nil {
		t.Fatal("expected kind validation error")
	}
}

func TestParseConditionForm_RejectsPercentOver100(t *testing.T) {
	form := url.Values{}
	form.Set("name", "empty_house")
	form.Set("discount_percent", "120")

	req := httptest.NewRequest("POST", "/admin/conditions", nil)
	req.Form = form

	if _, err := parseConditionForm(req); err == nil {
		t.Fatal("expected percent validation error")
	}
}

func TestParseTierForm_Success(t *testing.T) {
	form := url.Values{}
	form.Set("threshold", "4000")
	form.Set("discount_percent", "10")
	form.Set("extra_deduction", "100")

	req := httptest.NewRequest("POST", "/admin/tiers", nil)
	req.Form = form

	row, err := parseTierForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if row.Threshold != 4000 || row.DiscountPercent != 10 || row.ExtraDeduction != 100 {
		t.Fatalf("unexpected row: %+v", row)
	}
}

func TestParseRateConfigForm_Success(t *testing.T) {
	form := url.Values{}
	form.Set("repair_minimal_cost", "50")
	form.Set("repair_extensive_cost", "200")
	form.Set("baseboard_install_rate", "5")
	form.Set("extras_only_percent", "40")
	form.Set("discount_cap_percent", "37.5")
	form.Set("minimum_project_total", "400")

	req := httptest.NewRequest("POST", "/admin/rates", nil)
	req.Form = form

	rates, err := parseRateConfigForm(req)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if rates.RepairExtensiveCost != 200 || rates.DiscountCapPercent != 37.5 {
		t.Fatalf("unexpected rates: %+v", rates)
	}
}

func TestParseRateConfigForm_InvalidNumbers(t *testing.T) {
	form := url.Values{}
	form.Set("repair_minimal_cost", "abc")

	req := httptest.NewRequest("POST", "/admin/rates", nil)
	req.Form = form

	if _, err := parseRateConfigForm(req); err == nil {
		t.Fatal("expected numeric validation error")
	}
}

func TestIsPublicPath(t *testing.T) {
	public := []string{"/login", "/static/app.css", "/estimate", "/api/estimate"}
	for _, path := range public {
		if !isPublicPath(path) {
			t.Fatalf("expected %q to be public", path)
		}
	}

	private := []string{"/", "/quotes", "/quotes/1", "/admin/rooms"}
	for _, path := range private {
		if isPublicPath(path) {
			t.Fatalf("expected %q to be private", path)
		}
	}
}
