package http

import (
	"net/http"

	"github.com/MKhiriev/go-drink-ledger/internal/logger"
	"github.com/MKhiriev/go-drink-ledger/internal/utils"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/go-chi/chi/v5"
)

func (h *Handler) listHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.services.ReportService.History(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, nonNilHistory(history), http.StatusOK)
}

func (h *Handler) listUserHistory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, r, err)
		return
	}

	history, err := h.services.ReportService.UserHistory(r.Context(), id)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, nonNilHistory(history), http.StatusOK)
}

func (h *Handler) listMonths(w http.ResponseWriter, r *http.Request) {
	months, err := h.services.ReportService.Months(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if months == nil {
		months = []string{}
	}
	writeJSON(w, r, months, http.StatusOK)
}

func (h *Handler) listMonthHistory(w http.ResponseWriter, r *http.Request) {
	history, err := h.services.ReportService.MonthHistory(r.Context(), chi.URLParam(r, "month"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, nonNilHistory(history), http.StatusOK)
}

// exportMonth streams the month's history as an XLSX attachment.
func (h *Handler) exportMonth(w http.ResponseWriter, r *http.Request) {
	month := chi.URLParam(r, "month")

	data, err := h.services.ReportService.ExportMonth(r.Context(), month)
	if err != nil {
		writeError(w, r, err)
		return
	}

	if _, err = utils.WriteAttachment(w, data, utils.XLSXContentType, "purchase-history-"+month+".xlsx"); err != nil {
		logger.FromRequest(r).Err(err).Str("month", month).Msg("error writing export")
	}
}

func nonNilHistory(history []models.PurchaseHistory) []models.PurchaseHistory {
	if history == nil {
		return []models.PurchaseHistory{}
	}
	return history
}
