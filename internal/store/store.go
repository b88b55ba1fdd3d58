// Package store persists committed cutting plans in SQLite.
package store

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/piwi3910/RebarCut/internal/model"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no plan has the requested id.
var ErrNotFound = errors.New("plan not found")

// PlanHeader is the listing form of a stored plan.
type PlanHeader struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	CreatedAt         time.Time      `json:"created_at"`
	Strategy          model.Strategy `json:"strategy"`
	StockLengthMm     int            `json:"stock_length_mm"`
	KerfMm            int            `json:"kerf_mm"`
	TotalStockBars    int            `json:"total_stock_bars"`
	TotalWasteKg      float64        `json:"total_waste_kg"`
	OverallEfficiency float64        `json:"overall_efficiency"`
}

// Store is a SQLite-backed plan repository. The full plan is kept as a JSON
// body; the headline numbers are duplicated into columns for listing.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open opens or creates the database at path and applies the schema.
func Open(path string, log *slog.Logger) (*Store, error) {
	const op = "store.Open"

	if log == nil {
		log = slog.Default()
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("%s: create dir: %w", op, err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	// SQLite allows a single writer.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%s: apply schema: %w", op, err)
	}

	log.Debug("plan store opened", slog.String("op", op), slog.String("path", path))
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// SavePlan inserts the plan, or replaces it when the id already exists.
func (s *Store) SavePlan(ctx context.Context, plan model.Plan) error {
	const op = "store.SavePlan"

	if err := upsertPlan(ctx, s.db, plan); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("plan saved", slog.String("op", op), slog.String("id", plan.ID), slog.String("name", plan.Name))
	return nil
}

// SavePlans upserts every plan in one transaction. Either all plans are
// stored or none are.
func (s *Store) SavePlans(ctx context.Context, plans []model.Plan) error {
	const op = "store.SavePlans"

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s: begin: %w", op, err)
	}
	defer tx.Rollback()

	for _, p := range plans {
		if err := upsertPlan(ctx, tx, p); err != nil {
			return fmt.Errorf("%s: plan %q: %w", op, p.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s: commit: %w", op, err)
	}

	s.log.Info("plans saved", slog.String("op", op), slog.Int("count", len(plans)))
	return nil
}

func upsertPlan(ctx context.Context, db execer, plan model.Plan) error {
	if plan.ID == "" {
		return errors.New("plan id is empty")
	}

	body, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO plans (id, name, created_at, strategy, stock_length_mm, kerf_mm,
			total_stock_bars, total_waste_kg, overall_efficiency, body)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			created_at = excluded.created_at,
			strategy = excluded.strategy,
			stock_length_mm = excluded.stock_length_mm,
			kerf_mm = excluded.kerf_mm,
			total_stock_bars = excluded.total_stock_bars,
			total_waste_kg = excluded.total_waste_kg,
			overall_efficiency = excluded.overall_efficiency,
			body = excluded.body`,
		plan.ID,
		plan.Name,
		plan.CreatedAt.UTC().Format(time.RFC3339),
		string(plan.Summary.Strategy),
		plan.StockLengthMm,
		plan.KerfMm,
		plan.Summary.TotalStockBars,
		plan.Summary.TotalWasteKg,
		plan.Summary.OverallEfficiency,
		string(body),
	)
	return err
}

// GetPlan returns the plan with the given id, or ErrNotFound.
func (s *Store) GetPlan(ctx context.Context, id string) (model.Plan, error) {
	const op = "store.GetPlan"

	var body string
	err := s.db.QueryRowContext(ctx, `SELECT body FROM plans WHERE id = ?`, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Plan{}, fmt.Errorf("%s: %s: %w", op, id, ErrNotFound)
	}
	if err != nil {
		return model.Plan{}, fmt.Errorf("%s: %w", op, err)
	}

	var plan model.Plan
	if err := json.Unmarshal([]byte(body), &plan); err != nil {
		return model.Plan{}, fmt.Errorf("%s: decode %s: %w", op, id, err)
	}
	return plan, nil
}

// ListPlans returns every stored plan, newest first.
func (s *Store) ListPlans(ctx context.Context) ([]PlanHeader, error) {
	const op = "store.ListPlans"

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, created_at, strategy, stock_length_mm, kerf_mm,
			total_stock_bars, total_waste_kg, overall_efficiency
		FROM plans
		ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	plans := []PlanHeader{}
	for rows.Next() {
		var (
			h        PlanHeader
			created  string
			strategy string
		)
		if err := rows.Scan(&h.ID, &h.Name, &created, &strategy, &h.StockLengthMm, &h.KerfMm,
			&h.TotalStockBars, &h.TotalWasteKg, &h.OverallEfficiency); err != nil {
			return nil, fmt.Errorf("%s: scan: %w", op, err)
		}
		h.CreatedAt, err = time.Parse(time.RFC3339, created)
		if err != nil {
			return nil, fmt.Errorf("%s: parse created_at of %s: %w", op, h.ID, err)
		}
		h.Strategy = model.Strategy(strategy)
		plans = append(plans, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return plans, nil
}

// AllPlans loads every stored plan in full, newest first.
func (s *Store) AllPlans(ctx context.Context) ([]model.Plan, error) {
	headers, err := s.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	plans := make([]model.Plan, 0, len(headers))
	for _, h := range headers {
		p, err := s.GetPlan(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, nil
}

// DeletePlan removes the plan with the given id, or returns ErrNotFound.
func (s *Store) DeletePlan(ctx context.Context, id string) error {
	const op = "store.DeletePlan"

	res, err := s.db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %s: %w", op, id, ErrNotFound)
	}

	s.log.Info("plan deleted", slog.String("op", op), slog.String("id", id))
	return nil
}
