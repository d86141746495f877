package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/MKhiriev/go-drink-ledger/models"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObservePurchase(t *testing.T) {
	m := New()

	m.ObservePurchase(models.ProductTypeCoke, decimal.RequireFromString("5.00"))
	m.ObservePurchase(models.ProductTypeCoke, decimal.RequireFromString("5.50"))
	m.ObservePurchase("tea", decimal.RequireFromString("3"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.purchases.WithLabelValues("coke")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.purchases.WithLabelValues("other")))
	assert.InDelta(t, 10.5, testutil.ToFloat64(m.purchasedAmount.WithLabelValues("coke")), 1e-9)
}

func TestObserveSettlement(t *testing.T) {
	m := New()

	m.ObserveSettlement(3)
	m.ObserveSettlement(0)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.settlements))
	assert.Equal(t, float64(3), testutil.ToFloat64(m.settledRows))
}

func TestObserveRequest(t *testing.T) {
	m := New()

	m.ObserveRequest(http.MethodGet, "/api/users/{id}", http.StatusOK, 15*time.Millisecond)
	m.ObserveRequest(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	assert.Equal(t, 2, testutil.CollectAndCount(m.requestDurations))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	m := New()
	m.ObservePurchase(models.ProductTypeMonster, decimal.RequireFromString("7"))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, `drink_ledger_purchases_total{product_type="monster"} 1`)
	assert.Contains(t, body, "go_goroutines")
}

func TestNew_IndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveSettlement(1)

	assert.Equal(t, float64(0), testutil.ToFloat64(b.settlements))
	assert.NotSame(t, a.Registry(), b.Registry())
}
