package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/buildcost/internal/db"
	"github.com/alexanderramin/buildcost/internal/domain"
)

// SQLiteSavedEstimateRepo implements SavedEstimateRepo using a SQLite database.
type SQLiteSavedEstimateRepo struct {
	db db.DBTX
}

func NewSQLiteSavedEstimateRepo(conn db.DBTX) *SQLiteSavedEstimateRepo {
	return &SQLiteSavedEstimateRepo{db: conn}
}

const savedEstimateColumns = `id, name, project_name, global_tier, total_cost, catalog_version,
	document, result, created_at, updated_at`

// Upsert inserts s or replaces the estimate stored under s.Name. On return
// s.ID and s.CreatedAt hold the stored values.
func (r *SQLiteSavedEstimateRepo) Upsert(ctx context.Context, s *domain.SavedEstimate) error {
	query := `INSERT INTO saved_estimates (` + savedEstimateColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			project_name    = excluded.project_name,
			global_tier     = excluded.global_tier,
			total_cost      = excluded.total_cost,
			catalog_version = excluded.catalog_version,
			document        = excluded.document,
			result          = excluded.result,
			updated_at      = excluded.updated_at
		RETURNING id, created_at`
	var id, createdAt string
	err := r.db.QueryRowContext(ctx, query,
		s.ID,
		s.Name,
		s.ProjectName,
		string(s.GlobalTier),
		s.TotalCost,
		s.CatalogVersion,
		jsonOrEmpty(s.Document),
		jsonOrEmpty(s.Result),
		formatTime(s.CreatedAt),
		formatTime(s.UpdatedAt),
	).Scan(&id, &createdAt)
	if err != nil {
		return fmt.Errorf("upserting saved estimate %q: %w", s.Name, err)
	}
	created, err := parseTime("created_at", createdAt)
	if err != nil {
		return err
	}
	s.ID = id
	s.CreatedAt = created
	return nil
}

func (r *SQLiteSavedEstimateRepo) GetByName(ctx context.Context, name string) (*domain.SavedEstimate, error) {
	query := `SELECT ` + savedEstimateColumns + ` FROM saved_estimates WHERE name = ?`
	s, err := scanSavedEstimate(r.db.QueryRowContext(ctx, query, name))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("saved estimate %q: %w", name, ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// List returns every saved estimate, most recently updated first.
func (r *SQLiteSavedEstimateRepo) List(ctx context.Context) ([]*domain.SavedEstimate, error) {
	query := `SELECT ` + savedEstimateColumns + ` FROM saved_estimates ORDER BY updated_at DESC, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing saved estimates: %w", err)
	}
	defer rows.Close()

	var out []*domain.SavedEstimate
	for rows.Next() {
		s, err := scanSavedEstimate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating saved estimates: %w", err)
	}
	return out, nil
}

func (r *SQLiteSavedEstimateRepo) Delete(ctx context.Context, name string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_estimates WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("deleting saved estimate %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting saved estimate %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("saved estimate %q: %w", name, ErrNotFound)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSavedEstimate(row rowScanner) (*domain.SavedEstimate, error) {
	var s domain.SavedEstimate
	var tier, document, result, createdAt, updatedAt string
	err := row.Scan(
		&s.ID, &s.Name, &s.ProjectName, &tier, &s.TotalCost, &s.CatalogVersion,
		&document, &result, &createdAt, &updatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning saved estimate: %w", err)
	}
	s.GlobalTier = domain.Tier(tier)
	s.Document = []byte(document)
	s.Result = []byte(result)
	if s.CreatedAt, err = parseTime("created_at", createdAt); err != nil {
		return nil, err
	}
	if s.UpdatedAt, err = parseTime("updated_at", updatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
