package dto

import "github.com/rentiva/discovery-service/internal/model"

type CategoryFilters struct {
	ParentID   *string // nil means ignore, empty string means root categories
	ActiveOnly bool
}

type CategoryListResponse struct {
	Data  []model.Category `json:"data"`
	Total int              `json:"total"`
}
