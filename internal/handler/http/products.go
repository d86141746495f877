package http

import (
	"net/http"

	"github.com/MKhiriev/go-drink-ledger/internal/service"
	"github.com/MKhiriev/go-drink-ledger/models"
)

func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.services.ProductService.ListProducts(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if products == nil {
		products = []models.Product{}
	}
	writeJSON(w, r, products, http.StatusOK)
}

func (h *Handler) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	product, err := h.services.ProductService.GetProduct(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, product, http.StatusOK)
}

func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	var req models.CreateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Price == nil {
		writeError(w, r, service.ErrMissingPrice)
		return
	}

	product, err := h.services.ProductService.CreateProduct(r.Context(), req.Product())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, product, http.StatusCreated)
}

func (h *Handler) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var update models.ProductUpdate
	if err = decodeJSON(r, &update); err != nil {
		writeError(w, r, err)
		return
	}
	update.ID = id

	product, err := h.services.ProductService.UpdateProduct(r.Context(), update)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, product, http.StatusOK)
}

func (h *Handler) setPrice(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	var req models.SetPriceRequest
	if err = decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.Price == nil {
		writeError(w, r, service.ErrMissingPrice)
		return
	}

	product, err := h.services.ProductService.SetPrice(r.Context(), id, *req.Price)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, product, http.StatusOK)
}

func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	if err = h.services.ProductService.DeleteProduct(r.Context(), id); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
