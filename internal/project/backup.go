package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/RebarCut/internal/model"
)

const backupVersion = "1.0.0"

// BackupData is the top-level structure for import/export of all application data.
type BackupData struct {
	Version   string          `json:"version"`
	CreatedAt string          `json:"created_at"`
	Config    model.AppConfig `json:"config"`
	Plans     []model.Plan    `json:"plans"`
}

// ExportAllData exports the config and every committed plan to a single
// JSON file at the specified path.
func ExportAllData(exportPath string, config model.AppConfig, plans []model.Plan) error {
	if plans == nil {
		plans = []model.Plan{}
	}
	backup := BackupData{
		Version:   backupVersion,
		CreatedAt: time.Now().UTC().Format(time.RFC3339),
		Config:    config,
		Plans:     plans,
	}
	return writeJSON(exportPath, backup, "backup")
}

// ImportAllData reads a backup JSON file and returns the contained data.
// The caller is responsible for applying the imported config and plans.
func ImportAllData(importPath string) (BackupData, error) {
	data, err := os.ReadFile(importPath)
	if err != nil {
		return BackupData{}, fmt.Errorf("failed to read backup file: %w", err)
	}
	var backup BackupData
	if err := json.Unmarshal(data, &backup); err != nil {
		return BackupData{}, fmt.Errorf("failed to parse backup file: %w", err)
	}
	if backup.Version == "" {
		return BackupData{}, fmt.Errorf("invalid backup file: missing version field")
	}
	if backup.Plans == nil {
		backup.Plans = []model.Plan{}
	}
	return backup, nil
}

// PlanFile is the on-disk form of a single committed plan.
type PlanFile struct {
	Version string     `json:"version"`
	SavedAt string     `json:"saved_at"`
	Plan    model.Plan `json:"plan"`
}

// SavePlan writes a committed plan to path as JSON.
func SavePlan(path string, plan model.Plan) error {
	return writeJSON(path, PlanFile{
		Version: backupVersion,
		SavedAt: time.Now().UTC().Format(time.RFC3339),
		Plan:    plan,
	}, "plan")
}

// LoadPlan reads a plan written by SavePlan.
func LoadPlan(path string) (model.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Plan{}, fmt.Errorf("failed to read plan file: %w", err)
	}
	var pf PlanFile
	if err := json.Unmarshal(data, &pf); err != nil {
		return model.Plan{}, fmt.Errorf("failed to parse plan file: %w", err)
	}
	if pf.Version == "" || pf.Plan.ID == "" {
		return model.Plan{}, fmt.Errorf("invalid plan file: missing version or plan id")
	}
	if pf.Plan.Oversize == nil {
		pf.Plan.Oversize = model.OversizeReport{}
	}
	return pf.Plan, nil
}

func writeJSON(path string, v any, what string) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s data: %w", what, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create %s directory: %w", what, err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s file: %w", what, err)
	}
	return nil
}
