package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"

	"github.com/rentiva/discovery-service/internal/model"
	"github.com/rentiva/discovery-service/internal/search"
	"github.com/rentiva/discovery-service/internal/search/dto"
	"github.com/rentiva/discovery-service/internal/search/predicate"
	"github.com/rentiva/discovery-service/internal/search/score"
)

// equalityColumns maps equality-filter fields to catalog columns.
var equalityColumns = map[predicate.Field]string{
	predicate.FieldStatus:    "p.status",
	predicate.FieldCondition: "p.condition",
	predicate.FieldOwner:     "p.owner_id",
	predicate.FieldCategory:  "p.category_id",
	predicate.FieldCountry:   "p.country_id",
}

// keywordColumns maps keyword-match fields to catalog columns.
var keywordColumns = map[predicate.Field]string{
	predicate.FieldTitle:        "p.title",
	predicate.FieldCategoryName: "c.name",
	predicate.FieldDescription:  "p.description",
}

const productColumns = `p.id, p.created_at, p.updated_at, p.owner_id, p.category_id, p.country_id,
        p.title, p.description, p.status, p.condition, p.price_per_day, p.currency,
        p.latitude, p.longitude, p.specifications, p.view_count, p.average_rating`

// imagesSubquery aggregates a product's images into an ordered JSON array,
// sort order first, primary flag breaking ties, null image rows dropped.
const imagesSubquery = `COALESCE((
            SELECT json_agg(json_build_object(
                'id', pi.id, 'product_id', pi.product_id, 'url', pi.url,
                'thumbnail_url', pi.thumbnail_url, 'is_primary', pi.is_primary,
                'sort_order', pi.sort_order
            ) ORDER BY pi.sort_order ASC, pi.is_primary DESC)
            FROM product_images pi
            WHERE pi.product_id = p.id AND pi.url IS NOT NULL
        ), '[]') AS images`

type PGRepository struct {
	DB *sqlx.DB
}

func NewPGRepository(db *sqlx.DB) *PGRepository {
	return &PGRepository{DB: db}
}

// BuildWhere compiles a predicate set into a WHERE clause and its named
// arguments. The deleted-status exclusion is always present, so even an
// empty set yields a usable clause.
func BuildWhere(pred predicate.Set) (string, map[string]interface{}, error) {
	conditions := []string{"p.status <> 'deleted'"}
	args := map[string]interface{}{}

	for i, c := range pred.Clauses {
		switch cl := c.(type) {
		case predicate.Equals:
			col, ok := equalityColumns[cl.Field]
			if !ok {
				return "", nil, fmt.Errorf("no equality column for field %q", cl.Field)
			}
			param := fmt.Sprintf("eq%d", i)
			conditions = append(conditions, fmt.Sprintf("%s = :%s", col, param))
			args[param] = cl.Value

		case predicate.Range:
			if cl.Min != nil {
				conditions = append(conditions, "p.price_per_day >= :price_min")
				args["price_min"] = *cl.Min
			}
			if cl.Max != nil {
				conditions = append(conditions, "p.price_per_day <= :price_max")
				args["price_max"] = *cl.Max
			}

		case predicate.Keyword:
			parts := make([]string, 0, len(cl.Tokens)*len(cl.Fields))
			for ti, tok := range cl.Tokens {
				param := fmt.Sprintf("kw%d", ti)
				args[param] = "%" + tok + "%"
				for _, f := range cl.Fields {
					col, ok := keywordColumns[f]
					if !ok {
						return "", nil, fmt.Errorf("no keyword column for field %q", f)
					}
					parts = append(parts, fmt.Sprintf("%s ILIKE :%s", col, param))
				}
			}
			conditions = append(conditions, "("+strings.Join(parts, " OR ")+")")

		case predicate.WithinRadius:
			args["geo_lat"] = cl.Latitude
			args["geo_lng"] = cl.Longitude
			args["geo_radius"] = cl.RadiusMeters
			conditions = append(conditions, fmt.Sprintf(
				"(p.latitude IS NOT NULL AND p.longitude IS NOT NULL AND %s <= :geo_radius)",
				score.DistanceSQL("geo_lat", "geo_lng")))

		case predicate.Contains:
			doc, err := json.Marshal(cl.Doc)
			if err != nil {
				return "", nil, fmt.Errorf("marshal containment doc: %w", err)
			}
			conditions = append(conditions, "p.specifications @> :specs")
			args["specs"] = types.JSONText(doc)

		default:
			return "", nil, fmt.Errorf("unsupported clause %T", c)
		}
	}

	return strings.Join(conditions, " AND "), args, nil
}

func (r *PGRepository) Count(ctx context.Context, pred predicate.Set) (int, error) {
	where, args, err := BuildWhere(pred)
	if err != nil {
		return 0, err
	}

	// DISTINCT keeps the image one-to-many join, if ever added here, from
	// inflating the count; the category join is one-to-zero-or-one.
	query := `SELECT COUNT(DISTINCT p.id)
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE ` + where

	rows, err := r.DB.NamedQueryContext(ctx, query, args)
	if err != nil {
		return 0, fmt.Errorf("count query: %w", err)
	}
	defer rows.Close()

	var count int
	if rows.Next() {
		if err := rows.Scan(&count); err != nil {
			return 0, fmt.Errorf("scan count: %w", err)
		}
	}
	return count, rows.Err()
}

// productRow is the data-query projection: the product columns plus the
// joined category name and the aggregated image array.
type productRow struct {
	model.Product
	CategoryName *string        `db:"category_name"`
	Images       types.JSONText `db:"images"`
}

func (r *PGRepository) Find(ctx context.Context, q *search.CatalogQuery) ([]model.Product, error) {
	where, args, err := BuildWhere(q.Pred)
	if err != nil {
		return nil, err
	}

	orderBy, err := resolveOrderBy(q, args)
	if err != nil {
		return nil, err
	}

	offset := (q.Page - 1) * q.Limit
	query := fmt.Sprintf(`SELECT %s,
        c.name AS category_name,
        %s
        FROM products p
        LEFT JOIN categories c ON c.id = p.category_id
        WHERE %s
        ORDER BY %s
        LIMIT %d OFFSET %d`,
		productColumns, imagesSubquery, where, orderBy, q.Limit, offset)

	nstmt, err := r.DB.PrepareNamedContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("prepare data query: %w", err)
	}
	defer nstmt.Close()

	var rows []productRow
	if err := nstmt.SelectContext(ctx, &rows, args); err != nil {
		return nil, fmt.Errorf("data query: %w", err)
	}

	products := make([]model.Product, 0, len(rows))
	for _, row := range rows {
		p := row.Product
		p.CategoryName = row.CategoryName
		if err := json.Unmarshal(row.Images, &p.Images); err != nil {
			return nil, fmt.Errorf("decode image array for product %s: %w", p.ID, err)
		}
		products = append(products, p)
	}
	return products, nil
}

func (r *PGRepository) RelatedCategories(ctx context.Context, pred predicate.Set, limit int) ([]model.RelatedCategory, error) {
	where, args, err := BuildWhere(pred)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT c.id, c.name, c.slug, COUNT(DISTINCT p.id) AS count
        FROM products p
        JOIN categories c ON c.id = p.category_id
        WHERE %s
        GROUP BY c.id, c.name, c.slug
        ORDER BY count DESC, c.name ASC
        LIMIT %d`, where, limit)

	rows, err := r.DB.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("related categories query: %w", err)
	}
	defer rows.Close()

	var cats []model.RelatedCategory
	for rows.Next() {
		var rc model.RelatedCategory
		if err := rows.StructScan(&rc); err != nil {
			return nil, fmt.Errorf("scan related category: %w", err)
		}
		cats = append(cats, rc)
	}
	return cats, rows.Err()
}

// resolveOrderBy picks the ordering expression per the sort contract:
// semantic similarity wins under "relevance" whenever a vector is present
// (direction fixed descending), lexical score honors the requested
// direction, "distance" is always ascending, and anything else is a
// whitelisted column. p.id breaks ties so pagination stays stable.
func resolveOrderBy(q *search.CatalogQuery, args map[string]interface{}) (string, error) {
	dir := "DESC"
	if q.SortOrder == dto.OrderAsc {
		dir = "ASC"
	}

	switch q.SortBy {
	case dto.SortRelevance:
		if q.Vector != nil {
			args["query_vec"] = *q.Vector
			// Products without embeddings have no comparable similarity
			// and sort last.
			return score.SimilaritySQL("query_vec") + " DESC NULLS LAST, p.id ASC", nil
		}
		if len(q.Tokens) > 0 {
			return "(" + score.LexicalSQL(q.Tokens, args) + ") " + dir + ", p.id ASC", nil
		}
		return "p.created_at " + dir + ", p.id ASC", nil

	case dto.SortDistance:
		if q.Geo != nil {
			args["sort_lat"] = q.Geo.Latitude
			args["sort_lng"] = q.Geo.Longitude
			// Closest-first is the only sensible discovery default; the
			// requested direction is deliberately ignored.
			return score.DistanceSQL("sort_lat", "sort_lng") + " ASC, p.id ASC", nil
		}
		return "p.created_at DESC, p.id ASC", nil

	case dto.SortPrice:
		return "p.price_per_day " + dir + ", p.id ASC", nil
	case dto.SortViews:
		return "p.view_count " + dir + ", p.id ASC", nil
	case dto.SortRating:
		return "COALESCE(p.average_rating, 0) " + dir + ", p.id ASC", nil
	case dto.SortCreatedAt, "":
		return "p.created_at " + dir + ", p.id ASC", nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q", search.ErrValidation, q.SortBy)
	}
}
