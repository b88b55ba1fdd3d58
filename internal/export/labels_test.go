package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/RebarCut/internal/model"
)

func TestExportBarTags_CreatesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags.pdf")

	if err := ExportBarTags(path, buildTestPlan()); err != nil {
		t.Fatalf("ExportBarTags returned error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("output file not found: %v", err)
	}
	if info.Size() == 0 {
		t.Error("output PDF file is empty")
	}
}

func TestExportBarTags_MultiplePages(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tags_many.pdf")

	plan := buildTestPlan()
	r := plan.Summary.Results[0]
	for len(r.Bars) < tagsPerPage+3 {
		r.Bars = append(r.Bars, r.Bars[0])
	}
	plan.Summary.Results[0] = r

	if err := ExportBarTags(path, plan); err != nil {
		t.Fatalf("ExportBarTags returned error: %v", err)
	}
}

func TestExportBarTags_NoBars(t *testing.T) {
	dir := t.TempDir()
	err := ExportBarTags(filepath.Join(dir, "none.pdf"), model.Plan{})
	if err == nil {
		t.Fatal("expected error for plan without bars")
	}
}

func TestCollectTagInfos(t *testing.T) {
	tags := CollectTagInfos(buildTestPlan())

	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %d", len(tags))
	}

	first := tags[0]
	if first.PlanID != "plan-1" || first.BarSize != "10M" || first.BarIndex != 1 {
		t.Errorf("unexpected first tag: %+v", first)
	}
	if len(first.Cuts) != 2 || first.Cuts[0].Mark != "B101" || first.Cuts[0].LengthMm != 7000 {
		t.Errorf("unexpected first tag cuts: %+v", first.Cuts)
	}
	if first.RemainderMm != 0 || first.StopperMoves != 1 {
		t.Errorf("unexpected first tag totals: %+v", first)
	}

	if tags[1].BarIndex != 2 || tags[2].BarSize != "15M" || tags[2].BarIndex != 1 {
		t.Errorf("unexpected tag order: %+v", tags)
	}
}

func TestTagInfo_JSONRoundTrip(t *testing.T) {
	tag := CollectTagInfos(buildTestPlan())[2]

	data, err := json.Marshal(tag)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(data), `"bar_size":"15M"`) {
		t.Errorf("expected bar_size in JSON, got %s", data)
	}

	var decoded TagInfo
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(decoded.Cuts) != 3 || decoded.RemainderMm != 3000 {
		t.Errorf("unexpected decoded tag: %+v", decoded)
	}
}

func TestTagLines_GroupsRepeatedCuts(t *testing.T) {
	lines := tagLines([]TagCut{
		{Mark: "S1", LengthMm: 3000},
		{Mark: "S1", LengthMm: 3000},
		{Mark: "S2", LengthMm: 1500},
	})

	want := []string{"2 x S1  3000 mm", "1 x S2  1500 mm"}
	if len(lines) != len(want) {
		t.Fatalf("expected %v, got %v", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}
}

func TestTagLines_Overflow(t *testing.T) {
	var cuts []TagCut
	for i := 0; i < 10; i++ {
		cuts = append(cuts, TagCut{Mark: "M", LengthMm: 1000 + i})
	}

	lines := tagLines(cuts)
	if len(lines) != tagMaxLines {
		t.Fatalf("expected %d lines, got %d", tagMaxLines, len(lines))
	}
	if !strings.Contains(lines[tagMaxLines-1], "5 more") {
		t.Errorf("expected overflow line, got %q", lines[tagMaxLines-1])
	}
}
