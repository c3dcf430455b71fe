package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/model"
)

type stubUseCase struct {
	product *model.Product
	err     error
	gotID   string
}

func (s *stubUseCase) GetProduct(_ context.Context, id string) (*model.Product, error) {
	s.gotID = id
	return s.product, s.err
}

func serve(uc *stubUseCase, path string) *httptest.ResponseRecorder {
	h := NewProductHandler(uc, zap.NewNop())
	r := chi.NewRouter()
	r.Get("/api/v1/products/{id}", h.Get)

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestGet_OK(t *testing.T) {
	uc := &stubUseCase{product: &model.Product{
		BaseModel: model.BaseModel{ID: "7e57ab1e-0000-4000-8000-000000000001"},
		Title:     "Canon EOS R6",
	}}

	rec := serve(uc, "/api/v1/products/7e57ab1e-0000-4000-8000-000000000001")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if uc.gotID != "7e57ab1e-0000-4000-8000-000000000001" {
		t.Errorf("id = %q", uc.gotID)
	}

	var p model.Product
	if err := json.NewDecoder(rec.Body).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Title != "Canon EOS R6" {
		t.Errorf("title = %q", p.Title)
	}
}

func TestGet_InvalidID(t *testing.T) {
	uc := &stubUseCase{}

	rec := serve(uc, "/api/v1/products/not-a-uuid")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if uc.gotID != "" {
		t.Error("use case must not run for a malformed id")
	}
}

func TestGet_NotFound(t *testing.T) {
	rec := serve(&stubUseCase{}, "/api/v1/products/7e57ab1e-0000-4000-8000-000000000002")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}
