package model

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Optimized ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != StrategyOptimized {
		t.Errorf("expected optimized, got %s", s)
	}

	_, err = ParseStrategy("genetic")
	if !errors.Is(err, ErrUnknownStrategy) {
		t.Errorf("expected ErrUnknownStrategy, got %v", err)
	}
}

func TestSortClassesNumericAware(t *testing.T) {
	classes := []string{"35M", "10M", "100M", "15M", "Z", "#4"}
	SortClasses(classes)
	want := []string{"10M", "15M", "35M", "100M", "#4", "Z"}
	for i := range want {
		if classes[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, classes)
		}
	}
}

func TestProfilesFor(t *testing.T) {
	profiles := ProfilesFor(DefaultWeightTable(), 12000)
	if len(profiles) != 6 {
		t.Fatalf("expected 6 profiles, got %d", len(profiles))
	}
	p := profiles["20M"]
	if p.StockLengthMm != 12000 || p.LinearWeightKgPerM != 2.355 {
		t.Errorf("unexpected 20M profile: %+v", p)
	}
	if math.Abs(p.WeightKg(12000)-28.26) > 1e-9 {
		t.Errorf("expected 28.26 kg, got %f", p.WeightKg(12000))
	}
}

func TestBarHelpers(t *testing.T) {
	b := Bar{
		StockLengthMm: 6000,
		Cuts:          []Cut{{LengthMm: 2000}, {LengthMm: 1000}},
		UsedLengthMm:  3000,
		RemainderMm:   3000,
	}
	if b.CutLengthMm() != 3000 {
		t.Errorf("expected 3000, got %d", b.CutLengthMm())
	}
	if b.Efficiency() != 50 {
		t.Errorf("expected 50%%, got %f", b.Efficiency())
	}
	if (Bar{}).Efficiency() != 0 {
		t.Error("empty bar should report zero efficiency")
	}
}

func TestInvalidItemErrorListsIDs(t *testing.T) {
	err := &InvalidItemError{Issues: []ItemIssue{
		{ItemID: "a", Reason: "length_mm must be positive"},
		{ItemID: "a", Reason: "quantity must be positive"},
		{ItemID: "b", Reason: "quantity must be positive"},
	}}
	ids := err.IDs()
	if len(ids) != 2 || ids[0] != "a" || ids[1] != "b" {
		t.Errorf("expected [a b], got %v", ids)
	}
	if !strings.Contains(err.Error(), "b (quantity must be positive)") {
		t.Errorf("error text missing item b: %s", err.Error())
	}

	var wrapped error = err
	var target *InvalidItemError
	if !errors.As(wrapped, &target) {
		t.Error("errors.As should match *InvalidItemError")
	}
}

func TestOversizeReportPieces(t *testing.T) {
	r := OversizeReport{{ID: "x", Quantity: 2}, {ID: "y", Quantity: 3}}
	if r.Pieces() != 5 {
		t.Errorf("expected 5 pieces, got %d", r.Pieces())
	}
}

func TestNewCutItemGeneratesID(t *testing.T) {
	a := NewCutItem("B1", "15M", 2400, 4)
	b := NewCutItem("B1", "15M", 2400, 4)
	if len(a.ID) != 8 {
		t.Errorf("expected 8 char id, got %q", a.ID)
	}
	if a.ID == b.ID {
		t.Error("expected distinct ids")
	}
}

func TestDefaultAppConfig(t *testing.T) {
	cfg := DefaultAppConfig()
	if cfg.DefaultKerfMm != 0 {
		t.Errorf("expected zero default kerf, got %d", cfg.DefaultKerfMm)
	}
	if !cfg.StockLengthAllowed(cfg.DefaultStockLengthMm) {
		t.Error("default stock length should be allowed")
	}
	if cfg.StockLengthAllowed(7000) {
		t.Error("7000 should not be allowed by default")
	}
	table := cfg.WeightTable()
	if table["35M"] != 7.850 {
		t.Errorf("expected 35M=7.850, got %f", table["35M"])
	}
	if cfg.Profiles[0].BarSizeClass != "10M" {
		t.Errorf("profiles should be in class order, got %s first", cfg.Profiles[0].BarSizeClass)
	}

	cfg.AllowedStockLengths = nil
	if !cfg.StockLengthAllowed(7000) {
		t.Error("empty allow-list should accept any positive length")
	}
	if cfg.StockLengthAllowed(0) {
		t.Error("zero length must never be allowed")
	}
}
