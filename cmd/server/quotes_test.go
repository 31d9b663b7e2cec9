package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
)

func createQuote(t *testing.T, srv *server, body string) (*httptest.ResponseRecorder, quoteCreateResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/quotes", strings.NewReader(body))
	rr := httptest.NewRecorder()
	srv.handleQuoteCreate(rr, req)

	var resp quoteCreateResponse
	if rr.Code == http.StatusCreated {
		if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to decode quote response: %v", err)
		}
	}
	return rr, resp
}

func TestHandleQuoteCreate_PersistsSnapshot(t *testing.T) {
	srv := newTestServer(t)

	rr, resp := createQuote(t, srv, `{
		"customerName": "Dana Smith",
		"customerEmail": "dana@example.com",
		"notes": "two coats please",
		"rooms": [
			{"roomType": "bedroom", "size": "average"},
			{"roomType": "bedroom", "size": "average"}
		]
	}`)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d: %s", rr.Code, rr.Body.String())
	}
	if resp.Reference == "" {
		t.Fatal("expected a quote reference")
	}
	if resp.Estimate.FinalTotal != 700 {
		t.Fatalf("expected final total 700, got %v", resp.Estimate.FinalTotal)
	}

	var count int
	var finalTotal float64
	err := srv.db.QueryRow(`SELECT COUNT(*), MAX(final_total) FROM quotes WHERE reference = ?`, resp.Reference).Scan(&count, &finalTotal)
	if err != nil {
		t.Fatalf("query saved quote: %v", err)
	}
	if count != 1 || finalTotal != 700 {
		t.Fatalf("expected one saved quote with total 700, got count=%d total=%v", count, finalTotal)
	}
}

func TestHandleQuoteCreate_RequiresNameAndRooms(t *testing.T) {
	srv := newTestServer(t)

	noName, _ := createQuote(t, srv, `{"rooms":[{"roomType":"bedroom","size":"average"}]}`)
	if noName.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without customerName, got %d", noName.Code)
	}

	noRooms, _ := createQuote(t, srv, `{"customerName":"Dana","rooms":[]}`)
	if noRooms.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without rooms, got %d", noRooms.Code)
	}
}

func TestListQuotesOrdersByDateDescAndFilters(t *testing.T) {
	srv := newTestServer(t)

	seedQuote(t, srv, "2024-01-01 10:00:00", "Alice Anders", "alice@example.com", "front rooms", 500)
	seedQuote(t, srv, "2024-01-03 12:00:00", "Carol Chen", "carol@example.com", "whole house", 3000)
	seedQuote(t, srv, "2024-01-02 11:00:00", "Bob Brown", "bob@example.com", "hallway refresh", 450)

	quotes, err := srv.listQuotes("")
	if err != nil {
		t.Fatalf("listQuotes returned error: %v", err)
	}
	if len(quotes) != 3 {
		t.Fatalf("expected 3 quotes, got %d", len(quotes))
	}
	if quotes[0].CustomerName != "Carol Chen" || quotes[1].CustomerName != "Bob Brown" || quotes[2].CustomerName != "Alice Anders" {
		t.Fatalf("quotes are not sorted desc by created_at: %+v", quotes)
	}
	if quotes[0].FinalTotal != 3000 {
		t.Fatalf("unexpected totals: %+v", quotes)
	}

	byName, err := srv.listQuotes("Bob")
	if err != nil {
		t.Fatalf("listQuotes name filter returned error: %v", err)
	}
	if len(byName) != 1 || byName[0].CustomerName != "Bob Brown" {
		t.Fatalf("expected 1 quote filtered by name, got %+v", byName)
	}

	byNotes, err := srv.listQuotes("house")
	if err != nil {
		t.Fatalf("listQuotes notes filter returned error: %v", err)
	}
	if len(byNotes) != 1 {
		t.Fatalf("expected 1 quote filtered by notes, got %+v", byNotes)
	}
}

func TestGetQuoteDetailReadsSnapshotWithoutRecalculation(t *testing.T) {
	srv := newTestServer(t)

	_, created := createQuote(t, srv, `{
		"customerName": "Dana Smith",
		"rooms": [{"roomType": "bedroom", "size": "average", "doorMethod": "brush", "doorCount": 2}]
	}`)

	// Change the catalog after saving: the stored snapshot must win.
	if _, err := srv.db.Exec(`UPDATE room_prices SET price = 9999 WHERE room_type = 'bedroom'`); err != nil {
		t.Fatalf("update room price: %v", err)
	}

	var id int64
	if err := srv.db.QueryRow(`SELECT id FROM quotes WHERE reference = ?`, created.Reference).Scan(&id); err != nil {
		t.Fatalf("query quote id: %v", err)
	}

	detail, err := srv.getQuoteDetail(id)
	if err != nil {
		t.Fatalf("getQuoteDetail returned error: %v", err)
	}

	if detail.Estimate.FinalTotal != created.Estimate.FinalTotal {
		t.Fatalf("expected snapshot total %v, got %v", created.Estimate.FinalTotal, detail.Estimate.FinalTotal)
	}
	if len(detail.Rooms) != 1 || detail.Rooms[0].DoorCount != 2 {
		t.Fatalf("unexpected rooms snapshot: %+v", detail.Rooms)
	}
	if len(detail.Breakdowns) != 1 || detail.Breakdowns[0].BasePrice != 350 {
		t.Fatalf("expected stored base price 350, got %+v", detail.Breakdowns)
	}
}

func TestHandleQuoteTextReturnsPlainText(t *testing.T) {
	srv := newTestServer(t)

	_, created := createQuote(t, srv, `{
		"customerName": "Dana Smith",
		"notes": "weekend job",
		"rooms": [
			{"roomType": "bedroom", "size": "average"},
			{"roomType": "bedroom", "size": "average"}
		]
	}`)

	var id int64
	if err := srv.db.QueryRow(`SELECT id FROM quotes WHERE reference = ?`, created.Reference).Scan(&id); err != nil {
		t.Fatalf("query quote id: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/quotes/1/text", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", "1")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

	rr := httptest.NewRecorder()
	srv.handleQuoteText(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}
	if !strings.Contains(rr.Header().Get("Content-Type"), "text/plain") {
		t.Fatalf("expected text/plain content type, got %q", rr.Header().Get("Content-Type"))
	}

	body := rr.Body.String()
	for _, expected := range []string{"Customer: Dana Smith", "Rooms: 2", "Total: 700.00", "Labor: 490.00", "Notes: weekend job"} {
		if !strings.Contains(body, expected) {
			t.Fatalf("expected body to contain %q, got: %s", expected, body)
		}
	}
}

func seedQuote(t *testing.T, srv *server, createdAt, name, email, notes string, finalTotal float64) {
	t.Helper()

	_, err := srv.db.Exec(`
		INSERT INTO quotes (
			reference, created_at, customer_name, customer_email, notes,
			rooms_json, breakdowns_json, totals_json,
			subtotal, volume_discount, final_total
		) VALUES (?, ?, ?, ?, ?, '[]', '[]', '{}', ?, 0, ?)
	`, "ref-"+name, createdAt, name, email, notes, finalTotal, finalTotal)
	if err != nil {
		t.Fatalf("failed to seed quote: %v", err)
	}
}
