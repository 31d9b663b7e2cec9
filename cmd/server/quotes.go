package main

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

type quoteCreateRequest struct {
	CustomerName  string        `json:"customerName"`
	CustomerEmail string        `json:"customerEmail"`
	Notes         string        `json:"notes,omitempty"`
	Rooms         []roomPayload `json:"rooms"`
}

type quoteCreateResponse struct {
	Reference string          `json:"reference"`
	Estimate  estimatePayload `json:"estimate"`
}

type quoteListItem struct {
	ID           int64
	Reference    string
	CreatedAt    string
	CustomerName string
	FinalTotal   float64
}

type quotesViewData struct {
	baseViewData
	Query  string
	Quotes []quoteListItem
}

type quoteDetail struct {
	ID            int64
	Reference     string
	CreatedAt     string
	CustomerName  string
	CustomerEmail string
	Notes         string
	Rooms         []roomPayload
	Breakdowns    []breakdownPayload
	Estimate      estimatePayload
}

type quoteDetailViewData struct {
	baseViewData
	Quote quoteDetail
}

// handleQuoteCreate prices the submitted rooms and stores the quote
// request as a lead: the computed snapshot is persisted verbatim so the
// detail view never recalculates against a changed catalog.
func (s *server) handleQuoteCreate(w http.ResponseWriter, r *http.Request) {
	var req quoteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.CustomerName) == "" {
		http.Error(w, "customerName is required", http.StatusBadRequest)
		return
	}
	if len(req.Rooms) == 0 {
		http.Error(w, "at least one room is required", http.StatusBadRequest)
		return
	}

	resp, est, err := s.computeEstimate(req.Rooms)
	if err != nil {
		http.Error(w, "failed to load pricing catalog", http.StatusInternalServerError)
		return
	}

	roomsJSON, err := json.Marshal(req.Rooms)
	if err != nil {
		http.Error(w, "failed to encode rooms", http.StatusInternalServerError)
		return
	}
	breakdownsJSON, err := json.Marshal(resp.Rooms)
	if err != nil {
		http.Error(w, "failed to encode breakdowns", http.StatusInternalServerError)
		return
	}
	totalsJSON, err := json.Marshal(resp.Estimate)
	if err != nil {
		http.Error(w, "failed to encode totals", http.StatusInternalServerError)
		return
	}

	reference := uuid.NewString()
	_, err = s.db.Exec(`
		INSERT INTO quotes (
			reference, customer_name, customer_email, notes,
			rooms_json, breakdowns_json, totals_json,
			subtotal, volume_discount, final_total
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		reference,
		strings.TrimSpace(req.CustomerName),
		strings.TrimSpace(req.CustomerEmail),
		strings.TrimSpace(req.Notes),
		string(roomsJSON),
		string(breakdownsJSON),
		string(totalsJSON),
		est.Subtotal,
		est.VolumeDiscount,
		est.FinalTotal,
	)
	if err != nil {
		http.Error(w, "failed to save quote", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, quoteCreateResponse{
		Reference: reference,
		Estimate:  resp.Estimate,
	})
}

func (s *server) handleQuotesList(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	quotes, err := s.listQuotes(query)
	if err != nil {
		http.Error(w, "failed to load quotes", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "quotes.html", quotesViewData{
		Query:  query,
		Quotes: quotes,
	})
}

func (s *server) listQuotes(query string) ([]quoteListItem, error) {
	search := "%" + query + "%"
	rows, err := s.db.Query(`
		SELECT
			id,
			reference,
			created_at,
			COALESCE(customer_name, ''),
			final_total
		FROM quotes
		WHERE (? = '' OR COALESCE(customer_name, '') LIKE ? OR COALESCE(customer_email, '') LIKE ? OR COALESCE(notes, '') LIKE ?)
		ORDER BY datetime(created_at) DESC, id DESC
	`, query, search, search, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	quotes := make([]quoteListItem, 0)
	for rows.Next() {
		var item quoteListItem
		if err := rows.Scan(&item.ID, &item.Reference, &item.CreatedAt, &item.CustomerName, &item.FinalTotal); err != nil {
			return nil, err
		}
		quotes = append(quotes, item)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return quotes, nil
}

func (s *server) handleQuoteDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return
	}

	detail, err := s.getQuoteDetail(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return
	}

	s.renderTemplate(w, "quote_detail.html", quoteDetailViewData{Quote: detail})
}

// getQuoteDetail reads the stored snapshot as saved; the breakdown is not
// recomputed.
func (s *server) getQuoteDetail(id int64) (quoteDetail, error) {
	var detail quoteDetail
	var roomsJSON, breakdownsJSON, totalsJSON string

	err := s.db.QueryRow(`
		SELECT
			id,
			reference,
			created_at,
			COALESCE(customer_name, ''),
			COALESCE(customer_email, ''),
			COALESCE(notes, ''),
			rooms_json,
			breakdowns_json,
			totals_json
		FROM quotes
		WHERE id = ?
	`, id).Scan(
		&detail.ID,
		&detail.Reference,
		&detail.CreatedAt,
		&detail.CustomerName,
		&detail.CustomerEmail,
		&detail.Notes,
		&roomsJSON,
		&breakdownsJSON,
		&totalsJSON,
	)
	if err != nil {
		return quoteDetail{}, err
	}

	if err := json.Unmarshal([]byte(roomsJSON), &detail.Rooms); err != nil {
		return quoteDetail{}, fmt.Errorf("decode rooms snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(breakdownsJSON), &detail.Breakdowns); err != nil {
		return quoteDetail{}, fmt.Errorf("decode breakdowns snapshot: %w", err)
	}
	if err := json.Unmarshal([]byte(totalsJSON), &detail.Estimate); err != nil {
		return quoteDetail{}, fmt.Errorf("decode totals snapshot: %w", err)
	}

	return detail, nil
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid quote id", http.StatusBadRequest)
		return
	}

	detail, err := s.getQuoteDetail(id)
	if errors.Is(err, sql.ErrNoRows) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		http.Error(w, "failed to load quote", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, formatQuoteText(detail))
}

func formatQuoteText(detail quoteDetail) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Quote %s\n", detail.Reference)
	fmt.Fprintf(&sb, "Customer: %s\n", detail.CustomerName)
	fmt.Fprintf(&sb, "Created: %s\n\n", detail.CreatedAt)

	fmt.Fprintf(&sb, "Rooms: %d\n", len(detail.Rooms))
	for i, b := range detail.Breakdowns {
		room := ""
		if i < len(detail.Rooms) {
			room = fmt.Sprintf("%s (%s)", detail.Rooms[i].RoomType, detail.Rooms[i].Size)
		}
		fmt.Fprintf(&sb, "  %d. %s: %.2f\n", i+1, room, b.TotalBeforeVolume)
	}

	fmt.Fprintf(&sb, "\nSubtotal: %.2f\n", detail.Estimate.Subtotal)
	if detail.Estimate.VolumeDiscount > 0 {
		fmt.Fprintf(&sb, "Volume discount: -%.2f\n", detail.Estimate.VolumeDiscount)
	}
	fmt.Fprintf(&sb, "Total: %.2f\n\n", detail.Estimate.FinalTotal)

	fmt.Fprintf(&sb, "Labor: %.2f\n", detail.Estimate.LaborCost)
	fmt.Fprintf(&sb, "Materials: %.2f\n", detail.Estimate.MaterialCost)
	fmt.Fprintf(&sb, "Estimated time: %.0f hours\n", detail.Estimate.TimeHours)
	fmt.Fprintf(&sb, "Paint: %d gallons\n", detail.Estimate.PaintGallons)

	if detail.Notes != "" {
		fmt.Fprintf(&sb, "\nNotes: %s\n", detail.Notes)
	}

	return sb.String()
}
