package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-drink-ledger/internal/service"
	"github.com/MKhiriev/go-drink-ledger/internal/utils"
	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestListHistory(t *testing.T) {
	env := newTestEnv(t)
	env.reports.EXPECT().History(gomock.Any()).
		Return([]models.PurchaseHistory{{ID: 2, Month: "2025-01"}, {ID: 1, Month: "2025-01"}}, nil)

	rec := env.do(http.MethodGet, "/api/history", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.PurchaseHistory](t, rec), 2)
}

func TestListUserHistory_BadID(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/history/user/zero", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListMonths(t *testing.T) {
	env := newTestEnv(t)
	env.reports.EXPECT().Months(gomock.Any()).Return([]string{"2025-02", "2025-01"}, nil)

	rec := env.do(http.MethodGet, "/api/history/months", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `["2025-02","2025-01"]`, rec.Body.String())
}

func TestListMonthHistory_InvalidMonth(t *testing.T) {
	env := newTestEnv(t)
	env.reports.EXPECT().MonthHistory(gomock.Any(), "2025-13").Return(nil, service.ErrInvalidMonth)

	rec := env.do(http.MethodGet, "/api/history/month/2025-13", "", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExportMonth(t *testing.T) {
	env := newTestEnv(t)
	env.reports.EXPECT().ExportMonth(gomock.Any(), "2025-01").Return([]byte("PK-workbook"), nil)

	rec := env.do(http.MethodGet, "/api/history/month/2025-01/export", adminBearer, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, utils.XLSXContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "purchase-history-2025-01.xlsx")
	assert.Equal(t, "PK-workbook", rec.Body.String())
}
