package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/rentiva/discovery-service/internal/model"
)

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

type productRow struct {
	model.Product
	CategoryName *string        `db:"category_name"`
	Images       types.JSONText `db:"images"`
}

func (r *PGRepository) FindByID(ctx context.Context, id string) (*model.Product, error) {
	query := `
        SELECT p.id, p.created_at, p.updated_at, p.owner_id, p.category_id, p.country_id,
               p.title, p.description, p.status, p.condition, p.price_per_day, p.currency,
               p.latitude, p.longitude, p.specifications, p.view_count, p.average_rating,
               c.name AS category_name,
               COALESCE((
                   SELECT json_agg(json_build_object(
                       'id', pi.id, 'product_id', pi.product_id, 'url', pi.url,
                       'thumbnail_url', pi.thumbnail_url, 'is_primary', pi.is_primary,
                       'sort_order', pi.sort_order
                   ) ORDER BY pi.sort_order ASC, pi.is_primary DESC)
                   FROM product_images pi
                   WHERE pi.product_id = p.id AND pi.url IS NOT NULL
               ), '[]') AS images
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE p.id = $1 AND p.status <> 'deleted'
        LIMIT 1`

	var row productRow
	if err := r.DB.GetContext(ctx, &row, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	p := row.Product
	p.CategoryName = row.CategoryName
	if len(row.Images) > 0 {
		if err := json.Unmarshal(row.Images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode images: %w", err)
		}
	}
	return &p, nil
}

func (r *PGRepository) IncrementViewCount(ctx context.Context, id string) error {
	_, err := r.DB.ExecContext(ctx,
		`UPDATE products SET view_count = view_count + 1 WHERE id = $1`, id)
	return err
}
