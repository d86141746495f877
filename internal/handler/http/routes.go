package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init registers every route. Reads, purchases and logins are open (kiosk
// mode); catalog, registry, settlement and export writes need an admin token.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging, h.withMetrics, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	if h.metrics != nil && h.metricsPath != "" {
		router.Method("GET", h.metricsPath, h.metrics.Handler())
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/api/version", h.getServerVersion)

		r.Post("/api/admin/login", h.adminLogin)
		r.Post("/api/users/login", h.pinLogin)

		r.Get("/api/users", h.listUsers)
		r.Get("/api/users/{id}", h.getUser)
		r.Get("/api/users/{id}/balance", h.getBalance)

		r.Get("/api/products", h.listProducts)
		r.Get("/api/products/{id}", h.getProduct)

		r.Get("/api/transactions", h.listTransactions)
		r.Get("/api/transactions/user/{id}", h.listUserTransactions)
		r.Post("/api/transactions", h.recordPurchase)

		r.Get("/api/history", h.listHistory)
		r.Get("/api/history/user/{id}", h.listUserHistory)
		r.Get("/api/history/months", h.listMonths)
		r.Get("/api/history/month/{month}", h.listMonthHistory)

		r.Get("/api/reports/balances", h.getBalances)
		r.Get("/api/reports/ranking", h.getRanking)
		r.Get("/api/reports/categories", h.getCategories)
		r.Get("/api/reports/hours", h.getHours)
		r.Get("/api/reports/summary", h.getSummary)
	})

	// routes for the user themself or an admin
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/users/{id}/reset-pin", h.resetPIN)
	})

	// admin routes
	router.Group(func(r chi.Router) {
		r.Use(h.auth, h.adminOnly)

		r.Post("/api/users", h.createUser)
		r.Patch("/api/users/{id}", h.renameUser)
		r.Delete("/api/users/{id}", h.deleteUser)

		r.Post("/api/products", h.createProduct)
		r.Patch("/api/products/{id}", h.updateProduct)
		r.Patch("/api/products/{id}/price", h.setPrice)
		r.Delete("/api/products/{id}", h.deleteProduct)

		r.Delete("/api/transactions/user/{id}", h.settleUser)
		r.Delete("/api/transactions", h.settleAll)

		r.Get("/api/history/month/{month}/export", h.exportMonth)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
