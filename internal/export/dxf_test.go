package export

import (
	"path/filepath"
	"testing"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/RebarCut/internal/model"
)

func TestExportDXF_DrawsBarsAndCuts(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.dxf")

	plan := buildTestPlan()
	if err := ExportDXF(path, plan); err != nil {
		t.Fatalf("ExportDXF returned error: %v", err)
	}

	drawing, err := dxf.Open(path)
	if err != nil {
		t.Fatalf("cannot reopen DXF: %v", err)
	}

	var lines, texts int
	for _, ent := range drawing.Entities() {
		switch ent.(type) {
		case *entity.Line:
			lines++
		case *entity.Text:
			texts++
		}
	}

	// Four outline edges per bar plus one tick per cut.
	wantLines := 0
	wantTexts := 0
	for _, r := range plan.Summary.Results {
		for _, b := range r.Bars {
			wantLines += 4 + len(b.Cuts)
			wantTexts += 1 + len(b.Cuts)
		}
	}
	if lines != wantLines {
		t.Errorf("expected %d lines, got %d", wantLines, lines)
	}
	if texts != wantTexts {
		t.Errorf("expected %d texts, got %d", wantTexts, texts)
	}
}

func TestExportDXF_EmptyPlan(t *testing.T) {
	dir := t.TempDir()
	if err := ExportDXF(filepath.Join(dir, "empty.dxf"), model.Plan{}); err == nil {
		t.Fatal("expected error for empty plan")
	}
}
