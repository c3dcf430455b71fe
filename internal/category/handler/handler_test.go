package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/category/dto"
	"github.com/rentiva/discovery-service/internal/model"
)

type stubUseCase struct {
	categories  []model.Category
	one         *model.Category
	err         error
	gotFilters  *dto.CategoryFilters
	gotIDOrSlug string
}

func (s *stubUseCase) GetCategory(_ context.Context, idOrSlug string) (*model.Category, error) {
	s.gotIDOrSlug = idOrSlug
	return s.one, s.err
}

func (s *stubUseCase) ListCategories(_ context.Context, filters *dto.CategoryFilters) ([]model.Category, error) {
	s.gotFilters = filters
	return s.categories, s.err
}

func TestList(t *testing.T) {
	uc := &stubUseCase{categories: []model.Category{
		{Name: "Bikes", Slug: "bikes"},
		{Name: "Cameras", Slug: "cameras"},
	}}
	h := NewCategoryHandler(uc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if uc.gotFilters == nil || !uc.gotFilters.ActiveOnly {
		t.Error("listing must be restricted to active categories")
	}
	if uc.gotFilters.ParentID != nil {
		t.Error("no parent filter expected")
	}

	var resp dto.CategoryListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Total != 2 || len(resp.Data) != 2 {
		t.Errorf("response = %+v", resp)
	}
}

func TestList_RootsViaEmptyParent(t *testing.T) {
	uc := &stubUseCase{}
	h := NewCategoryHandler(uc, zap.NewNop())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories?parent=", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	if uc.gotFilters.ParentID == nil || *uc.gotFilters.ParentID != "" {
		t.Error("parent= must select root categories")
	}
}

func TestGet_NotFound(t *testing.T) {
	h := NewCategoryHandler(&stubUseCase{}, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/v1/categories/{idOrSlug}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/no-such-slug", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestGet_RepositoryError(t *testing.T) {
	h := NewCategoryHandler(&stubUseCase{err: errors.New("boom")}, zap.NewNop())

	r := chi.NewRouter()
	r.Get("/api/v1/categories/{idOrSlug}", h.Get)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/categories/bikes", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
}
