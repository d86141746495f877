package http

import (
	"net/http"
	"testing"

	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestGetRanking(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		setup      func(env *testEnv)
		wantStatus int
	}{
		{
			name: "default limit",
			setup: func(env *testEnv) {
				env.reports.EXPECT().Ranking(gomock.Any(), 0).Return(nil, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:  "explicit limit",
			query: "?limit=3",
			setup: func(env *testEnv) {
				env.reports.EXPECT().Ranking(gomock.Any(), 3).
					Return([]models.RankingEntry{{UserID: 1, Name: "Ana", Count: 4, Spent: decimal.NewFromInt(16)}}, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "invalid limit",
			query:      "?limit=many",
			setup:      func(env *testEnv) {},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			tt.setup(env)

			rec := env.do(http.MethodGet, "/api/reports/ranking"+tt.query, "", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestGetBalances(t *testing.T) {
	env := newTestEnv(t)
	env.reports.EXPECT().Balances(gomock.Any()).Return([]models.Balance{
		{UserID: 1, UserName: "Ana", Balance: decimal.RequireFromString("7.5"), Items: 2},
	}, nil)

	rec := env.do(http.MethodGet, "/api/reports/balances", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	balances := decodeBody[[]models.Balance](t, rec)
	if assert.Len(t, balances, 1) {
		assert.True(t, balances[0].Balance.Equal(decimal.RequireFromString("7.5")))
	}
}

func TestGetCategories(t *testing.T) {
	env := newTestEnv(t)
	env.reports.EXPECT().Categories(gomock.Any()).Return([]models.CategoryCount{
		{Type: models.ProductTypeMonster, Count: 1},
		{Type: models.ProductTypeCoke, Count: 2},
		{Type: models.ProductTypeOther, Count: 0},
	}, nil)

	rec := env.do(http.MethodGet, "/api/reports/categories", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]models.CategoryCount](t, rec), 3)
}

func TestGetHours(t *testing.T) {
	env := newTestEnv(t)
	var hist models.HourlyHistogram
	hist[14] = 3
	env.reports.EXPECT().Hours(gomock.Any()).Return(hist, nil)

	rec := env.do(http.MethodGet, "/api/reports/hours", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	got := decodeBody[[]int](t, rec)
	if assert.Len(t, got, 24) {
		assert.Equal(t, 3, got[14])
	}
}

func TestGetSummary(t *testing.T) {
	env := newTestEnv(t)
	env.reports.EXPECT().Summary(gomock.Any()).
		Return(models.Summary{TotalRevenue: decimal.NewFromInt(20), TotalItems: 5}, nil)

	rec := env.do(http.MethodGet, "/api/reports/summary", "", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	summary := decodeBody[models.Summary](t, rec)
	assert.Equal(t, 5, summary.TotalItems)
}
