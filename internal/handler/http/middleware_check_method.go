// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// CheckHTTPMethod returns the handler registered as the router's
// MethodNotAllowed handler.
//
// When a request path matches a route but the method is not registered for
// it, chi would answer 405. This handler answers 404 with the usual JSON
// error body instead, so unsupported methods do not reveal which routes
// exist. Registered methods are forwarded to the router.
//
// Only exact pattern matches are considered; parameterised segments are not
// expanded, so any method miss on a parameterised route is a 404 as well.
func CheckHTTPMethod(router *chi.Mux) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		var foundRoute chi.Route
		for _, route := range router.Routes() {
			if route.Pattern == r.URL.Path {
				foundRoute = route
				break
			}
		}

		if _, ok := foundRoute.Handlers[r.Method]; !ok {
			writeError(w, r, ErrRouteNotFound)
			return
		}

		router.ServeHTTP(w, r)
	}
}
