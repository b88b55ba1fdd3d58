package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/RebarCut/internal/model"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "db", "plans.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func testPlan(name string, created time.Time, bars int) model.Plan {
	summary := model.OptimizationSummary{
		Strategy: model.StrategyOptimized,
		Results: []model.OptimizationResult{{
			BarSize:       "15M",
			StockLengthMm: 12000,
			Bars: []model.Bar{{
				BarSizeClass:  "15M",
				StockLengthMm: 12000,
				Cuts:          []model.Cut{{SourceItemID: "a", MarkLabel: "B1", LengthMm: 6000}},
				UsedLengthMm:  6000,
				RemainderMm:   6000,
			}},
			TotalStockBars: bars,
			TotalCuts:      1,
			UsedLengthMm:   6000,
			WasteKg:        9.42,
			EfficiencyPct:  50,
		}},
		TotalStockBars:    bars,
		TotalCuts:         1,
		TotalWasteKg:      9.42,
		OverallEfficiency: 50,
	}
	p := model.NewPlan(name, 12000, 3, summary, model.OversizeReport{{ID: "x", BarSizeClass: "15M", LengthMm: 13000, Quantity: 1}})
	p.CreatedAt = created
	return p
}

func TestSaveAndGetPlan(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	plan := testPlan("Footings", time.Date(2026, 5, 1, 7, 30, 0, 0, time.UTC), 1)
	require.NoError(t, s.SavePlan(ctx, plan))

	got, err := s.GetPlan(ctx, plan.ID)
	require.NoError(t, err)

	assert.Equal(t, plan.ID, got.ID)
	assert.Equal(t, "Footings", got.Name)
	assert.True(t, plan.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, 3, got.KerfMm)
	assert.Equal(t, plan.Summary, got.Summary)
	assert.Equal(t, plan.Oversize, got.Oversize)
}

func TestSavePlanReplacesExisting(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	plan := testPlan("Draft", time.Date(2026, 5, 1, 7, 30, 0, 0, time.UTC), 1)
	require.NoError(t, s.SavePlan(ctx, plan))

	plan.Name = "Final"
	require.NoError(t, s.SavePlan(ctx, plan))

	list, err := s.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Final", list[0].Name)
}

func TestSavePlanRequiresID(t *testing.T) {
	s := openTestStore(t)
	err := s.SavePlan(context.Background(), model.Plan{Name: "no id"})
	assert.Error(t, err)
}

func TestListPlansNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := testPlan("Older", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 2)
	newer := testPlan("Newer", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), 5)
	require.NoError(t, s.SavePlan(ctx, older))
	require.NoError(t, s.SavePlan(ctx, newer))

	list, err := s.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "Newer", list[0].Name)
	assert.Equal(t, 5, list[0].TotalStockBars)
	assert.Equal(t, model.StrategyOptimized, list[0].Strategy)
	assert.Equal(t, 12000, list[0].StockLengthMm)
	assert.InDelta(t, 9.42, list[0].TotalWasteKg, 1e-9)
	assert.Equal(t, "Older", list[1].Name)

	all, err := s.AllPlans(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, newer.ID, all[0].ID)
}

func TestListPlansEmpty(t *testing.T) {
	s := openTestStore(t)

	list, err := s.ListPlans(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestGetAndDeleteMissingPlan(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.GetPlan(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	err = s.DeletePlan(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeletePlan(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	plan := testPlan("Walls", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, s.SavePlan(ctx, plan))
	require.NoError(t, s.DeletePlan(ctx, plan.ID))

	_, err := s.GetPlan(ctx, plan.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestReopenKeepsPlans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plans.db")
	ctx := context.Background()

	s, err := Open(path, nil)
	require.NoError(t, err)
	plan := testPlan("Persisted", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 1)
	require.NoError(t, s.SavePlan(ctx, plan))
	require.NoError(t, s.Close())

	s, err = Open(path, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.GetPlan(ctx, plan.ID)
	require.NoError(t, err)
	assert.Equal(t, "Persisted", got.Name)
}

func TestAllPlansReturnsFullPlans(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	older := testPlan("Piers", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 1)
	newer := testPlan("Deck", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, s.SavePlan(ctx, older))
	require.NoError(t, s.SavePlan(ctx, newer))

	plans, err := s.AllPlans(ctx)
	require.NoError(t, err)
	require.Len(t, plans, 2)
	assert.Equal(t, newer.ID, plans[0].ID)
	assert.Equal(t, older.Summary, plans[1].Summary)
}

func TestSavePlansStoresAll(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	a := testPlan("Grade beams", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 1)
	b := testPlan("Columns", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), 2)
	require.NoError(t, s.SavePlans(ctx, []model.Plan{a, b}))

	plans, err := s.ListPlans(ctx)
	require.NoError(t, err)
	assert.Len(t, plans, 2)
}

func TestSavePlansIsAllOrNothing(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	good := testPlan("Slab on grade", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC), 1)
	bad := testPlan("Broken", time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), 1)
	bad.ID = ""

	err := s.SavePlans(ctx, []model.Plan{good, bad})
	require.Error(t, err)

	_, err = s.GetPlan(ctx, good.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	plans, err := s.ListPlans(ctx)
	require.NoError(t, err)
	assert.Empty(t, plans)
}
