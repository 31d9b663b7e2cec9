package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
)

func useRepoTemplates(t *testing.T) {
	t.Helper()

	old := templateDir
	templateDir = filepath.Join("..", "..", "web", "templates")
	t.Cleanup(func() { templateDir = old })
}

func TestRenderTemplate_EveryPageRenders(t *testing.T) {
	useRepoTemplates(t)
	srv := &server{}

	pages := []struct {
		name string
		data any
	}{
		{"home.html", nil},
		{"estimate.html", nil},
		{"login.html", loginViewData{baseViewData: baseViewData{ErrorMessage: "Invalid credentials. Try again."}}},
		{"quotes.html", quotesViewData{
			Query:  "ana",
			Quotes: []quoteListItem{{ID: 1, Reference: "ref-1", CreatedAt: "2026-08-31", CustomerName: "Ana", FinalTotal: 700}},
		}},
		{"quote_detail.html", quoteDetailViewData{Quote: quoteDetail{
			ID:           1,
			Reference:    "ref-1",
			CreatedAt:    "2026-08-31",
			CustomerName: "Ana",
			Rooms:        []roomPayload{{RoomType: "bedroom", Size: "average"}},
			Breakdowns:   []breakdownPayload{{BasePrice: 350, TotalBeforeVolume: 350}},
			Estimate:     estimatePayload{Subtotal: 350, FinalTotal: 400},
		}}},
		{"admin_rooms.html", roomPricesViewData{RoomPrices: []roomPriceRow{{ID: 1, RoomType: "bedroom", Size: "average", Price: 350, Active: true}}}},
		{"admin_paints.html", paintTypesViewData{PaintTypes: []paintTypeRow{{ID: 1, Name: "premium", UpchargePercent: 15, Active: true}}}},
		{"admin_addons.html", addOnsViewData{AddOns: []addOnRow{{ID: 1, Name: "accent_wall", Kind: "percent", Value: 20, Active: true}}}},
		{"admin_conditions.html", conditionsViewData{Conditions: []conditionRow{{ID: 1, Name: "empty_house", DiscountPercent: 15, Active: true}}}},
		{"admin_tiers.html", tiersViewData{Tiers: []tierRow{{ID: 1, Threshold: 2000, DiscountPercent: 5, Active: true}}}},
		{"admin_rates.html", ratesViewData{RateConfig: rateConfigForm{RepairMinimalCost: 50, MinimumProjectTotal: 400}}},
	}

	for _, page := range pages {
		rr := httptest.NewRecorder()
		srv.renderTemplate(rr, page.name, page.data)

		if rr.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200, got %d: %s", page.name, rr.Code, rr.Body.String())
		}
		if !strings.Contains(rr.Body.String(), "</html>") {
			t.Fatalf("%s: expected a full page, got: %s", page.name, rr.Body.String())
		}
	}
}

func TestHandleQuotesList_RendersPage(t *testing.T) {
	useRepoTemplates(t)
	srv := newTestServer(t)
	createQuote(t, srv, `{"customerName":"Ana","rooms":[{"roomType":"bedroom","size":"average"}]}`)

	req := httptest.NewRequest(http.MethodGet, "/quotes", nil)
	rr := httptest.NewRecorder()
	srv.handleQuotesList(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Ana") {
		t.Fatalf("expected the quote list to include the customer, got: %s", rr.Body.String())
	}
}
