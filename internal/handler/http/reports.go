package http

import (
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-drink-ledger/models"
)

func (h *Handler) getBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.services.ReportService.Balances(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if balances == nil {
		balances = []models.Balance{}
	}
	writeJSON(w, r, balances, http.StatusOK)
}

// getRanking answers GET /api/reports/ranking?limit=n. A missing limit lets
// the service apply its default.
func (h *Handler) getRanking(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, r, ErrInvalidLimit)
			return
		}
		limit = n
	}

	ranking, err := h.services.ReportService.Ranking(r.Context(), limit)
	if err != nil {
		writeError(w, r, err)
		return
	}
	if ranking == nil {
		ranking = []models.RankingEntry{}
	}
	writeJSON(w, r, ranking, http.StatusOK)
}

func (h *Handler) getCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.ReportService.Categories(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	if categories == nil {
		categories = []models.CategoryCount{}
	}
	writeJSON(w, r, categories, http.StatusOK)
}

func (h *Handler) getHours(w http.ResponseWriter, r *http.Request) {
	hours, err := h.services.ReportService.Hours(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, hours, http.StatusOK)
}

func (h *Handler) getSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.services.ReportService.Summary(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, r, summary, http.StatusOK)
}
