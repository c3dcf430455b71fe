package model

type Category struct {
	BaseModel
	ParentID  *string `db:"parent_id" json:"parent_id,omitempty"`
	Name      string  `db:"name" json:"name"`
	Slug      string  `db:"slug" json:"slug"`
	ImageURL  *string `db:"image_url" json:"image_url,omitempty"`
	SortOrder int     `db:"sort_order" json:"sort_order"`
	IsActive  bool    `db:"is_active" json:"is_active"`
}

// RelatedCategory is a category ranked by how many products match the
// active non-category filters, offered as a query-refinement suggestion.
type RelatedCategory struct {
	ID    string `db:"id" json:"id"`
	Name  string `db:"name" json:"name"`
	Slug  string `db:"slug" json:"slug"`
	Count int    `db:"count" json:"count"`
}
