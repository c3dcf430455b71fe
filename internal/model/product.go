package model

import (
	"github.com/jmoiron/sqlx/types"
	"github.com/pgvector/pgvector-go"
)

// Product lifecycle states. Deleted listings never surface in discovery
// regardless of any requested status filter.
const (
	StatusDraft    = "draft"
	StatusActive   = "active"
	StatusInactive = "inactive"
	StatusDeleted  = "deleted"
)

type Product struct {
	BaseModel
	OwnerID        string           `db:"owner_id" json:"owner_id"`
	CategoryID     *string          `db:"category_id" json:"category_id"` // Nullable
	CountryID      *string          `db:"country_id" json:"country_id"`   // Nullable
	Title          string           `db:"title" json:"title"`
	Description    string           `db:"description" json:"description"`
	Status         string           `db:"status" json:"status"`
	Condition      string           `db:"condition" json:"condition"`
	PricePerDay    float64          `db:"price_per_day" json:"price_per_day"`
	Currency       string           `db:"currency" json:"currency"`
	Latitude       *float64         `db:"latitude" json:"latitude,omitempty"`
	Longitude      *float64         `db:"longitude" json:"longitude,omitempty"`
	Specifications types.JSONText   `db:"specifications" json:"specifications,omitempty"`
	Embedding      *pgvector.Vector `db:"embedding" json:"-"` // CLIP ViT-B/32, 512 dims
	ViewCount      int64            `db:"view_count" json:"view_count"`
	AverageRating  *float64         `db:"average_rating" json:"average_rating"`
	CategoryName   *string          `db:"-" json:"category_name,omitempty"` // Joined data
	Images         []ProductImage   `db:"-" json:"images"`                  // Not in DB table directly
}

type ProductImage struct {
	ID           string `db:"id" json:"id"`
	ProductID    string `db:"product_id" json:"product_id"`
	URL          string `db:"url" json:"url"`
	ThumbnailURL string `db:"thumbnail_url" json:"thumbnail_url"`
	IsPrimary    bool   `db:"is_primary" json:"is_primary"`
	SortOrder    int    `db:"sort_order" json:"sort_order"`
}
