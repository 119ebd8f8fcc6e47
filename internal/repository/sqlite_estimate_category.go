package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/buildcost/internal/db"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// SQLiteEstimateCategoryRepo implements EstimateCategoryRepo using a SQLite
// database.
type SQLiteEstimateCategoryRepo struct {
	db db.DBTX
}

func NewSQLiteEstimateCategoryRepo(conn db.DBTX) *SQLiteEstimateCategoryRepo {
	return &SQLiteEstimateCategoryRepo{db: conn}
}

// Replace swaps the stored categories of an estimate for the given set. Run
// it inside a transaction; a failure part way leaves a partial set.
func (r *SQLiteEstimateCategoryRepo) Replace(ctx context.Context, estimateID string, categories map[domain.Trade]float64) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM saved_estimate_categories WHERE estimate_id = ?`, estimateID); err != nil {
		return fmt.Errorf("clearing categories for %s: %w", estimateID, err)
	}
	for _, trade := range domain.SortedTrades(categories) {
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO saved_estimate_categories (estimate_id, trade, cost) VALUES (?, ?, ?)`,
			estimateID, string(trade), categories[trade])
		if err != nil {
			return fmt.Errorf("inserting category %s for %s: %w", trade, estimateID, err)
		}
	}
	return nil
}

func (r *SQLiteEstimateCategoryRepo) ListByEstimate(ctx context.Context, estimateID string) (map[domain.Trade]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT trade, cost FROM saved_estimate_categories WHERE estimate_id = ? ORDER BY trade`, estimateID)
	if err != nil {
		return nil, fmt.Errorf("listing categories for %s: %w", estimateID, err)
	}
	return scanCategoryRows(rows)
}

// TotalsByTrade sums category costs across every saved estimate.
func (r *SQLiteEstimateCategoryRepo) TotalsByTrade(ctx context.Context) (map[domain.Trade]float64, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT trade, SUM(cost) FROM saved_estimate_categories GROUP BY trade ORDER BY trade`)
	if err != nil {
		return nil, fmt.Errorf("summing categories: %w", err)
	}
	return scanCategoryRows(rows)
}

type categoryRows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

func scanCategoryRows(rows categoryRows) (map[domain.Trade]float64, error) {
	defer rows.Close()
	out := make(map[domain.Trade]float64)
	for rows.Next() {
		var trade string
		var cost float64
		if err := rows.Scan(&trade, &cost); err != nil {
			return nil, fmt.Errorf("scanning category: %w", err)
		}
		out[domain.Trade(trade)] = cost
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating categories: %w", err)
	}
	return out, nil
}
