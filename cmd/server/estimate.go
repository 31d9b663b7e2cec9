package main

import (
	"encoding/json"
	"net/http"

	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/catalog"
	"github.com/abrahamzahed/paintestimator-buddy-copy-sub000/internal/pricing"
)

// roomPayload is the wire shape of one room. It is mapped explicitly onto
// pricing.RoomInput so the engine types stay free of serialization concerns.
type roomPayload struct {
	RoomType  string   `json:"roomType"`
	Size      string   `json:"size"`
	PaintType string   `json:"paintType,omitempty"`
	AddOns    []string `json:"addOns,omitempty"`

	HighCeiling     bool `json:"highCeiling,omitempty"`
	EmptyHouse      bool `json:"emptyHouse,omitempty"`
	NoFloorCovering bool `json:"noFloorCovering,omitempty"`
	StairRailing    bool `json:"stairRailing,omitempty"`
	TwoColors       bool `json:"twoColors,omitempty"`
	MillworkPriming bool `json:"millworkPriming,omitempty"`

	DoorMethod      string `json:"doorMethod,omitempty"`
	DoorCount       int    `json:"doorCount,omitempty"`
	WindowMethod    string `json:"windowMethod,omitempty"`
	WindowCount     int    `json:"windowCount,omitempty"`
	FireplaceMethod string `json:"fireplaceMethod,omitempty"`

	Repairs string `json:"repairs,omitempty"`

	BaseboardMethod      string  `json:"baseboardMethod,omitempty"`
	BaseboardInstallFeet float64 `json:"baseboardInstallFeet,omitempty"`

	WalkInClosets  int `json:"walkInClosets,omitempty"`
	RegularClosets int `json:"regularClosets,omitempty"`
}

func (p roomPayload) toInput() pricing.RoomInput {
	return pricing.RoomInput{
		RoomType:             p.RoomType,
		Size:                 p.Size,
		PaintType:            p.PaintType,
		AddOns:               p.AddOns,
		HighCeiling:          p.HighCeiling,
		EmptyHouse:           p.EmptyHouse,
		NoFloorCovering:      p.NoFloorCovering,
		StairRailing:         p.StairRailing,
		TwoColors:            p.TwoColors,
		MillworkPriming:      p.MillworkPriming,
		DoorMethod:           parseMethod(p.DoorMethod),
		DoorCount:            p.DoorCount,
		WindowMethod:         parseMethod(p.WindowMethod),
		WindowCount:          p.WindowCount,
		FireplaceMethod:      parseMethod(p.FireplaceMethod),
		Repairs:              parseRepairLevel(p.Repairs),
		BaseboardMethod:      parseMethod(p.BaseboardMethod),
		BaseboardInstallFeet: p.BaseboardInstallFeet,
		WalkInClosets:        p.WalkInClosets,
		RegularClosets:       p.RegularClosets,
	}
}

// parseMethod coerces an unrecognized wire value to "none" so the engine
// never prices a method the form did not offer.
func parseMethod(value string) pricing.Method {
	switch m := pricing.Method(value); m {
	case pricing.MethodBrush, pricing.MethodSpray:
		return m
	}
	return pricing.MethodNone
}

func parseRepairLevel(value string) pricing.RepairLevel {
	switch l := pricing.RepairLevel(value); l {
	case pricing.RepairMinimal, pricing.RepairExtensive:
		return l
	}
	return pricing.RepairNone
}

type breakdownPayload struct {
	BasePrice            float64 `json:"basePrice"`
	PaintUpcharge        float64 `json:"paintUpcharge"`
	AddOnCost            float64 `json:"addOnCost"`
	BaseboardCost        float64 `json:"baseboardCost"`
	HighCeilingCost      float64 `json:"highCeilingCost"`
	DoorCost             float64 `json:"doorCost"`
	WindowCost           float64 `json:"windowCost"`
	FireplaceCost        float64 `json:"fireplaceCost"`
	RailingCost          float64 `json:"railingCost"`
	ClosetCost           float64 `json:"closetCost"`
	TwoColorCost         float64 `json:"twoColorCost"`
	MillworkCost         float64 `json:"millworkCost"`
	RepairCost           float64 `json:"repairCost"`
	BaseboardInstallCost float64 `json:"baseboardInstallCost"`
	ExtrasOnlyCost       float64 `json:"extrasOnlyCost"`
	EmptyHouseDiscount   float64 `json:"emptyHouseDiscount"`
	NoFloorDiscount      float64 `json:"noFloorDiscount"`
	TotalBeforeVolume    float64 `json:"totalBeforeVolume"`
}

func toBreakdownPayload(b pricing.RoomBreakdown) breakdownPayload {
	return breakdownPayload{
		BasePrice:            b.BasePrice,
		PaintUpcharge:        b.PaintUpcharge,
		AddOnCost:            b.AddOnCost,
		BaseboardCost:        b.BaseboardCost,
		HighCeilingCost:      b.HighCeilingCost,
		DoorCost:             b.DoorCost,
		WindowCost:           b.WindowCost,
		FireplaceCost:        b.FireplaceCost,
		RailingCost:          b.RailingCost,
		ClosetCost:           b.ClosetCost,
		TwoColorCost:         b.TwoColorCost,
		MillworkCost:         b.MillworkCost,
		RepairCost:           b.RepairCost,
		BaseboardInstallCost: b.BaseboardInstallCost,
		ExtrasOnlyCost:       b.ExtrasOnlyCost,
		EmptyHouseDiscount:   b.EmptyHouseDiscount,
		NoFloorDiscount:      b.NoFloorDiscount,
		TotalBeforeVolume:    b.TotalBeforeVolume,
	}
}

type estimatePayload struct {
	Subtotal        float64            `json:"subtotal"`
	VolumeDiscount  float64            `json:"volumeDiscount"`
	FinalTotal      float64            `json:"finalTotal"`
	LaborCost       float64            `json:"laborCost"`
	MaterialCost    float64            `json:"materialCost"`
	TimeHours       float64            `json:"timeHours"`
	PaintGallons    int                `json:"paintGallons"`
	Discounts       map[string]float64 `json:"discounts"`
	AdditionalCosts map[string]float64 `json:"additionalCosts"`
}

func toEstimatePayload(est pricing.Estimate) estimatePayload {
	return estimatePayload{
		Subtotal:        est.Subtotal,
		VolumeDiscount:  est.VolumeDiscount,
		FinalTotal:      est.FinalTotal,
		LaborCost:       est.LaborCost,
		MaterialCost:    est.MaterialCost,
		TimeHours:       est.TimeHours,
		PaintGallons:    est.PaintGallons,
		Discounts:       est.Discounts,
		AdditionalCosts: est.AdditionalCosts,
	}
}

type estimateRequest struct {
	Rooms []roomPayload `json:"rooms"`
}

type estimateResponse struct {
	Rooms    []breakdownPayload `json:"rooms"`
	Estimate estimatePayload    `json:"estimate"`
}

// computeEstimate runs the full pricing pipeline for a set of rooms
// against the current catalog.
func (s *server) computeEstimate(rooms []roomPayload) (estimateResponse, pricing.Estimate, error) {
	cat, err := catalog.Load(s.db)
	if err != nil {
		return estimateResponse{}, pricing.Estimate{}, err
	}

	breakdowns := make([]pricing.RoomBreakdown, 0, len(rooms))
	payloads := make([]breakdownPayload, 0, len(rooms))
	for _, room := range rooms {
		breakdown := pricing.PriceRoom(room.toInput(), cat)
		breakdowns = append(breakdowns, breakdown)
		payloads = append(payloads, toBreakdownPayload(breakdown))
	}

	totals := pricing.Aggregate(breakdowns, cat)
	est := pricing.Assemble(breakdowns, totals)

	return estimateResponse{Rooms: payloads, Estimate: toEstimatePayload(est)}, est, nil
}

// handleEstimateAPI recomputes a project estimate for the posted rooms.
// Nothing is persisted; the form calls this on every edit.
func (s *server) handleEstimateAPI(w http.ResponseWriter, r *http.Request) {
	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, _, err := s.computeEstimate(req.Rooms)
	if err != nil {
		http.Error(w, "failed to load pricing catalog", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
