package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/RebarCut/internal/model"
)

func testPlan(name string) model.Plan {
	summary := model.OptimizationSummary{
		Strategy: model.StrategyOptimized,
		Results: []model.OptimizationResult{{
			BarSize:        "10M",
			StockLengthMm:  12000,
			Bars:           []model.Bar{{BarSizeClass: "10M", StockLengthMm: 12000, Cuts: []model.Cut{{SourceItemID: "a", MarkLabel: "B1", LengthMm: 7000}}, UsedLengthMm: 7000, RemainderMm: 5000}},
			TotalStockBars: 1,
			TotalCuts:      1,
			UsedLengthMm:   7000,
			WasteKg:        3.925,
			EfficiencyPct:  58.33,
		}},
		TotalStockBars:    1,
		TotalCuts:         1,
		TotalWasteKg:      3.925,
		OverallEfficiency: 58.33,
	}
	return model.NewPlan(name, 12000, 0, summary, nil)
}

func TestExportAndImportAllData(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "backup.json")

	cfg := model.DefaultAppConfig()
	cfg.DefaultKerfMm = 3
	plans := []model.Plan{testPlan("A"), testPlan("B")}

	if err := ExportAllData(path, cfg, plans); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}

	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}

	if backup.Version != "1.0.0" {
		t.Errorf("expected version 1.0.0, got %s", backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Config.DefaultKerfMm != 3 {
		t.Errorf("expected DefaultKerfMm=3, got %d", backup.Config.DefaultKerfMm)
	}
	if len(backup.Plans) != 2 || backup.Plans[1].Name != "B" {
		t.Errorf("unexpected plans: %+v", backup.Plans)
	}
}

func TestExportAllDataNilPlans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	if err := ExportAllData(path, model.DefaultAppConfig(), nil); err != nil {
		t.Fatalf("ExportAllData failed: %v", err)
	}
	backup, err := ImportAllData(path)
	if err != nil {
		t.Fatalf("ImportAllData failed: %v", err)
	}
	if backup.Plans == nil {
		t.Error("expected non-nil plans slice")
	}
}

func TestImportAllDataMissingFile(t *testing.T) {
	_, err := ImportAllData(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportAllDataInvalid(t *testing.T) {
	dir := t.TempDir()

	for name, content := range map[string]string{
		"garbage.json":   "not json",
		"noversion.json": `{"created_at": "2026-01-01T00:00:00Z"}`,
	} {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
		if _, err := ImportAllData(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestSaveAndLoadPlan(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans", "level2.json")
	plan := testPlan("Level 2")

	if err := SavePlan(path, plan); err != nil {
		t.Fatalf("SavePlan failed: %v", err)
	}

	loaded, err := LoadPlan(path)
	if err != nil {
		t.Fatalf("LoadPlan failed: %v", err)
	}

	if loaded.ID != plan.ID || loaded.Name != "Level 2" {
		t.Errorf("unexpected plan header: %+v", loaded)
	}
	if !loaded.CreatedAt.Equal(plan.CreatedAt) {
		t.Errorf("expected CreatedAt %v, got %v", plan.CreatedAt, loaded.CreatedAt)
	}
	if loaded.Summary.TotalStockBars != 1 || len(loaded.Summary.Results[0].Bars[0].Cuts) != 1 {
		t.Errorf("summary not preserved: %+v", loaded.Summary)
	}
	if loaded.Oversize == nil {
		t.Error("expected non-nil oversize report")
	}
}

func TestLoadPlanInvalid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(path, []byte(`{"version": "1.0.0", "plan": {}}`), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := LoadPlan(path); err == nil {
		t.Error("expected error for plan without id")
	}
	if _, err := LoadPlan(filepath.Join(dir, "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
}
