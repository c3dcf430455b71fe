package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/rentiva/discovery-service/internal/search"
	"github.com/rentiva/discovery-service/internal/search/dto"
)

type SearchHandler struct {
	uc     search.UseCase
	logger *zap.Logger
}

func NewSearchHandler(uc search.UseCase, log *zap.Logger) *SearchHandler {
	return &SearchHandler{
		uc:     uc,
		logger: log,
	}
}

// Search handles POST /api/v1/search.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	var input dto.SearchInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	result, err := h.uc.Search(r.Context(), &input)
	if err != nil {
		h.handleError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *SearchHandler) handleError(w http.ResponseWriter, err error) {
	if errors.Is(err, search.ErrValidation) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	h.logger.Error("search failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
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
