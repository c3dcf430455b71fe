package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/category"
	"github.com/rentiva/discovery-service/internal/category/dto"
)

type CategoryHandler struct {
	uc     category.UseCase
	logger *zap.Logger
}

func NewCategoryHandler(uc category.UseCase, log *zap.Logger) *CategoryHandler {
	return &CategoryHandler{
		uc:     uc,
		logger: log,
	}
}

// List handles GET /api/v1/categories. The optional parent query param
// narrows to one subtree; parent= (empty) selects root categories.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	filters := &dto.CategoryFilters{ActiveOnly: true}
	if parent, ok := r.URL.Query()["parent"]; ok && len(parent) > 0 {
		filters.ParentID = &parent[0]
	}

	categories, err := h.uc.ListCategories(r.Context(), filters)
	if err != nil {
		h.logger.Error("failed to list categories", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryListResponse{
		Data:  categories,
		Total: len(categories),
	})
}

// Get handles GET /api/v1/categories/{idOrSlug}.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	idOrSlug := chi.URLParam(r, "idOrSlug")

	cat, err := h.uc.GetCategory(r.Context(), idOrSlug)
	if err != nil {
		h.logger.Error("failed to get category", zap.String("category", idOrSlug), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}
	if cat == nil {
		writeError(w, http.StatusNotFound, "category not found")
		return
	}

	writeJSON(w, http.StatusOK, cat)
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
