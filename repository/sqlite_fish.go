package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/balikhane/database"
	"github.com/akinalp/balikhane/models"
	"github.com/akinalp/balikhane/pkg"
)

// sqliteFishRepo, FishRepository'nin SQLite implementasyonu.
type sqliteFishRepo struct {
	db database.TxQuerier
}

// NewSQLiteFishRepo, constructor.
func NewSQLiteFishRepo(db database.TxQuerier) FishRepository {
	return &sqliteFishRepo{db: db}
}

func (r *sqliteFishRepo) Create(ctx context.Context, item *models.FishItem) error {
	query := `
		INSERT INTO fish_items (id, name, price, minimum, unit, description, uses, offer)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query,
		item.ID,
		item.Name,
		item.Price,
		item.Minimum,
		item.Unit,
		item.Description,
		item.Uses,
		item.Offer,
	).Scan(&item.CreatedAt)

	if err != nil {
		return fmt.Errorf("failed to create fish item: %w", err)
	}

	return nil
}

func (r *sqliteFishRepo) GetByID(ctx context.Context, id string) (*models.FishItem, error) {
	query := `
		SELECT id, name, price, minimum, unit, description, uses, offer, created_at
		FROM fish_items WHERE id = ?`

	item := &models.FishItem{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID, &item.Name, &item.Price, &item.Minimum, &item.Unit,
		&item.Description, &item.Uses, &item.Offer, &item.CreatedAt,
	)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get fish item: %w", err)
	}

	return item, nil
}

func (r *sqliteFishRepo) GetAll(ctx context.Context) ([]models.FishItem, error) {
	query := `
		SELECT id, name, price, minimum, unit, description, uses, offer, created_at
		FROM fish_items ORDER BY name`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to get fish items: %w", err)
	}
	defer rows.Close()

	var items []models.FishItem
	for rows.Next() {
		var item models.FishItem
		if err := rows.Scan(
			&item.ID, &item.Name, &item.Price, &item.Minimum, &item.Unit,
			&item.Description, &item.Uses, &item.Offer, &item.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan fish item row: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating fish item rows: %w", err)
	}

	return items, nil
}

func (r *sqliteFishRepo) Update(ctx context.Context, item *models.FishItem) error {
	query := `
		UPDATE fish_items
		SET name = ?, price = ?, minimum = ?, unit = ?, description = ?, uses = ?, offer = ?
		WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Price, item.Minimum, item.Unit,
		item.Description, item.Uses, item.Offer, item.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update fish item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteFishRepo) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM fish_items WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fish item: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}
