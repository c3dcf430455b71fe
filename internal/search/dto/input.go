package dto

// Wildcard is accepted by any equality filter and means "no filter".
const Wildcard = "all"

// Sort keys accepted by the discovery endpoint.
const (
	SortRelevance = "relevance"
	SortDistance  = "distance"
	SortCreatedAt = "created_at"
	SortPrice     = "price"
	SortViews     = "view_count"
	SortRating    = "rating"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// GeoFilter bounds results to a radius (kilometers) around a point.
type GeoFilter struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKM  float64 `json:"radius_km"`
}

// SearchInput is the discovery request. Every filter is optional; a bare
// request returns the full non-deleted catalog ordered by creation time.
type SearchInput struct {
	Query          string                 `json:"search"`
	MinPrice       *float64               `json:"min_price"`
	MaxPrice       *float64               `json:"max_price"`
	Location       *GeoFilter             `json:"location"`
	TextEmbedding  []float32              `json:"text_embedding"`
	Status         string                 `json:"status"`
	Condition      string                 `json:"condition"`
	OwnerID        string                 `json:"owner_id"`
	CategoryID     string                 `json:"category_id"`
	CountryID      string                 `json:"country_id"`
	Specifications map[string]interface{} `json:"specifications"`
	Page           int                    `json:"page"`
	Limit          int                    `json:"limit"`
	SortBy         string                 `json:"sort_by"`
	SortOrder      string                 `json:"sort_order"`
}

// Normalize applies pagination and sort defaults in place.
func (in *SearchInput) Normalize(defaultLimit, maxLimit int) {
	if in.Page < 1 {
		in.Page = 1
	}
	if in.Limit <= 0 {
		in.Limit = defaultLimit
	}
	if in.Limit > maxLimit {
		in.Limit = maxLimit
	}
	if in.SortBy == "" {
		// Relevance degrades to created_at desc when the request carries
		// neither keywords nor a vector, so this default covers the bare
		// catalog listing too.
		in.SortBy = SortRelevance
	}
	if in.SortOrder != OrderAsc {
		in.SortOrder = OrderDesc
	}
}

// HasCategoryFilter reports whether an explicit (non-wildcard) category
// filter is active.
func (in *SearchInput) HasCategoryFilter() bool {
	return in.CategoryID != "" && in.CategoryID != Wildcard
}
