package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/kanakku/kanakku/internal/db"
	"github.com/kanakku/kanakku/internal/domain"
)

// TaxRepo is a SQLite implementation of TaxRepository
type TaxRepo struct {
	db *db.DB
}

// NewTaxRepo creates a new TaxRepo
func NewTaxRepo(database *db.DB) *TaxRepo {
	return &TaxRepo{db: database}
}

// CreateRate inserts a tax rate
func (r *TaxRepo) CreateRate(ctx context.Context, rate *domain.TaxRate) error {
	if err := rate.Validate(); err != nil {
		return fmt.Errorf("invalid tax rate: %w", err)
	}

	result, err := r.db.ExecContext(ctx, "INSERT INTO tax_rates (name, rate) VALUES (?, ?)", rate.Name, rate.Rate)
	if err != nil {
		return fmt.Errorf("failed to create tax rate: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get tax rate ID: %w", err)
	}

	rate.ID = id
	return nil
}

// GetRate retrieves a tax rate by ID
func (r *TaxRepo) GetRate(ctx context.Context, id int64) (*domain.TaxRate, error) {
	rate := &domain.TaxRate{}
	err := r.db.QueryRowContext(ctx, "SELECT id, name, rate FROM tax_rates WHERE id = ?", id).
		Scan(&rate.ID, &rate.Name, &rate.Rate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tax rate %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tax rate: %w", err)
	}
	return rate, nil
}

// ListRates retrieves all tax rates ordered by name
func (r *TaxRepo) ListRates(ctx context.Context) ([]domain.TaxRate, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, rate FROM tax_rates ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tax rates: %w", err)
	}
	defer rows.Close()

	rates := make([]domain.TaxRate, 0)
	for rows.Next() {
		var rate domain.TaxRate
		if err := rows.Scan(&rate.ID, &rate.Name, &rate.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan tax rate: %w", err)
		}
		rates = append(rates, rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax rates: %w", err)
	}

	return rates, nil
}

// CreateGroup inserts a tax group and its member rates
func (r *TaxRepo) CreateGroup(ctx context.Context, group *domain.TaxGroup) error {
	if err := group.Validate(); err != nil {
		return fmt.Errorf("invalid tax group: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"INSERT INTO tax_groups (name, total_rate) VALUES (?, ?)",
		group.Name, group.TotalRate,
	)
	if err != nil {
		return fmt.Errorf("failed to create tax group: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get tax group ID: %w", err)
	}

	for _, rate := range group.Rates {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO tax_group_rates (group_id, rate_id) VALUES (?, ?)",
			id, rate.ID,
		); err != nil {
			return fmt.Errorf("failed to link tax rate %d: %w", rate.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tax group: %w", err)
	}

	group.ID = id
	return nil
}

// GetGroup retrieves a tax group with its member rates
func (r *TaxRepo) GetGroup(ctx context.Context, id int64) (*domain.TaxGroup, error) {
	group := &domain.TaxGroup{}
	err := r.db.QueryRowContext(ctx, "SELECT id, name, total_rate FROM tax_groups WHERE id = ?", id).
		Scan(&group.ID, &group.Name, &group.TotalRate)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tax group %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tax group: %w", err)
	}

	members, err := r.groupRates(ctx)
	if err != nil {
		return nil, err
	}
	group.Rates = members[group.ID]

	return group, nil
}

// ListGroups retrieves all tax groups with their member rates
func (r *TaxRepo) ListGroups(ctx context.Context) ([]domain.TaxGroup, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT id, name, total_rate FROM tax_groups ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("failed to list tax groups: %w", err)
	}

	groups := make([]domain.TaxGroup, 0)
	for rows.Next() {
		var g domain.TaxGroup
		if err := rows.Scan(&g.ID, &g.Name, &g.TotalRate); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan tax group: %w", err)
		}
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("error iterating tax groups: %w", err)
	}
	// release the connection before the member query
	rows.Close()

	members, err := r.groupRates(ctx)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		groups[i].Rates = members[groups[i].ID]
	}

	return groups, nil
}

// groupRates loads every group membership keyed by group id
func (r *TaxRepo) groupRates(ctx context.Context) (map[int64][]domain.TaxRate, error) {
	query := `
		SELECT gr.group_id, t.id, t.name, t.rate
		FROM tax_group_rates gr
		JOIN tax_rates t ON t.id = gr.rate_id
		ORDER BY t.name
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to load tax group rates: %w", err)
	}
	defer rows.Close()

	members := make(map[int64][]domain.TaxRate)
	for rows.Next() {
		var groupID int64
		var rate domain.TaxRate
		if err := rows.Scan(&groupID, &rate.ID, &rate.Name, &rate.Rate); err != nil {
			return nil, fmt.Errorf("failed to scan tax group rate: %w", err)
		}
		members[groupID] = append(members[groupID], rate)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tax group rates: %w", err)
	}

	return members, nil
}
