package wardroberepo

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/fitcheck/internal/domain/wardrobe"
)

const itemColumns = `image_url, storage_key, user_id, name, gender, category, color, material,
	texture, pattern, formality, season_tags, style_tags, notes, created_at`

// PostgresRepository persists wardrobe items in Postgres.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Create inserts an item row.
func (r *PostgresRepository) Create(ctx context.Context, item wardrobe.Item) (wardrobe.Item, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO wardrobe_items (`+itemColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING `+itemColumns,
		item.ImageURL, item.StorageKey, item.UserID, item.Name, item.Gender, item.Category, item.Color,
		item.Material, item.Texture, item.Pattern, item.Formality, nonNil(item.SeasonTags), nonNil(item.StyleTags),
		item.Notes, item.CreatedAt,
	)
	return scanItem(row)
}

// ListByUser returns the user's items oldest first.
func (r *PostgresRepository) ListByUser(ctx context.Context, userID int64) ([]wardrobe.Item, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+itemColumns+`
		FROM wardrobe_items
		WHERE user_id = $1
		ORDER BY created_at, image_url
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	items := make([]wardrobe.Item, 0)
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// GetByImageURL finds one item owned by the user.
func (r *PostgresRepository) GetByImageURL(ctx context.Context, userID int64, imageURL string) (wardrobe.Item, bool, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM wardrobe_items
		WHERE user_id = $1 AND image_url = $2
	`, userID, imageURL)
	item, err := scanItem(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return wardrobe.Item{}, false, nil
	}
	if err != nil {
		return wardrobe.Item{}, false, err
	}
	return item, true, nil
}

// DeleteByImageURL removes the item and reports whether a row matched.
func (r *PostgresRepository) DeleteByImageURL(ctx context.Context, userID int64, imageURL string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM wardrobe_items
		WHERE user_id = $1 AND image_url = $2
	`, userID, imageURL)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (wardrobe.Item, error) {
	var item wardrobe.Item
	var created time.Time
	if err := row.Scan(
		&item.ImageURL, &item.StorageKey, &item.UserID, &item.Name, &item.Gender, &item.Category, &item.Color,
		&item.Material, &item.Texture, &item.Pattern, &item.Formality, &item.SeasonTags, &item.StyleTags,
		&item.Notes, &created,
	); err != nil {
		return wardrobe.Item{}, err
	}
	item.CreatedAt = created.UTC()
	return item, nil
}

func nonNil(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

var _ wardrobe.Repository = (*PostgresRepository)(nil)
