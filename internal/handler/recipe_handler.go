package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pantry-api/internal/service"
)

type RecipeHandler struct {
	service *service.RecipeService
}

func NewRecipeHandler(service *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{service: service}
}

func (h *RecipeHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	doc, err := decodeDocumentBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	recipe, err := h.service.Create(r.Context(), doc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, recipe, nil)
}

func (h *RecipeHandler) Get(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, recipe, nil)
}

func (h *RecipeHandler) List(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, recipes, nil)
}

func (h *RecipeHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	doc, err := decodeDocumentBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	recipe, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), doc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, recipe, nil)
}

func (h *RecipeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
