package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"pantry-api/internal/service"
)

type StoreHandler struct {
	service *service.StoreService
}

func NewStoreHandler(service *service.StoreService) *StoreHandler {
	return &StoreHandler{service: service}
}

func (h *StoreHandler) Create(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	doc, err := decodeDocumentBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	store, err := h.service.Create(r.Context(), doc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusCreated, store, nil)
}

func (h *StoreHandler) Get(w http.ResponseWriter, r *http.Request) {
	store, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, store, nil)
}

func (h *StoreHandler) List(w http.ResponseWriter, r *http.Request) {
	stores, err := h.service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, stores, nil)
}

func (h *StoreHandler) Update(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	doc, err := decodeDocumentBody(r)
	if err != nil {
		writeError(w, err)
		return
	}

	store, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), doc)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, store, nil)
}

func (h *StoreHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]any{"deleted": true}, nil)
}
