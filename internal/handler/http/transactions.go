// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/models"
)

func (h *Handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	transactions, err := h.services.LedgerService.ListTransactions(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, nonNilTransactions(transactions), http.StatusOK)
}

func (h *Handler) listUserTransactions(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	transactions, err := h.services.LedgerService.ListUserTransactions(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, nonNilTransactions(transactions), http.StatusOK)
}

// recordPurchase books one item. Client supplied name and price are ignored.
func (h *Handler) recordPurchase(w http.ResponseWriter, r *http.Request) {
	var req models.PurchaseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, r, err)
		return
	}
	if req.UserID <= 0 || req.ProductID <= 0 {
		writeError(w, r, ErrMissingPurchase)
		return
	}

	transaction, err := h.services.LedgerService.RecordPurchase(r.Context(), req.UserID, req.ProductID)
	if err != nil {
		writeError(w, r, err)
		return
	}

	logger.FromRequest(r).Info().
		Int64("user_id", transaction.UserID).
		Int64("product_id", transaction.ProductID).
		Msg("purchase recorded")

	writeJSON(w, r, transaction, http.StatusCreated)
}

func (h *Handler) settleUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	settlement, err := h.services.LedgerService.SettleUser(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, settlement, http.StatusOK)
}

func (h *Handler) settleAll(w http.ResponseWriter, r *http.Request) {
	settlement, err := h.services.LedgerService.SettleAll(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, settlement, http.StatusOK)
}

func nonNilTransactions(transactions []models.Transaction) []models.Transaction {
	if transactions == nil {
		return []models.Transaction{}
	}
	return transactions
}
