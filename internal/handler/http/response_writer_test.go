package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseWriter_WriteHeader_FirstWins(t *testing.T) {
	tests := []struct {
		name           string
		statusCodes    []int
		expectedStatus int
	}{
		{"single", []int{http.StatusCreated}, http.StatusCreated},
		{"double call", []int{http.StatusAccepted, http.StatusBadRequest}, http.StatusAccepted},
		{"triple call", []int{http.StatusOK, http.StatusCreated, http.StatusNotFound}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			w := wrapResponseWriter(rr)

			for _, code := range tt.statusCodes {
				w.WriteHeader(code)
			}

			assert.Equal(t, tt.expectedStatus, w.status)
			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.True(t, w.wroteHeader)
		})
	}
}

func TestResponseWriter_Write_ImplicitOK(t *testing.T) {
	rr := httptest.NewRecorder()
	w := wrapResponseWriter(rr)

	n, err := w.Write([]byte("hello"))
	require.NoError(t, err)
	_, err = w.Write([]byte(" world"))
	require.NoError(t, err)

	assert.Equal(t, 5, n)
	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, 11, w.size)
	assert.Equal(t, "hello world", rr.Body.String())
}

func TestResponseWriter_StatusOrOK(t *testing.T) {
	w := wrapResponseWriter(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, w.statusOrOK())

	w.WriteHeader(http.StatusNoContent)
	assert.Equal(t, http.StatusNoContent, w.statusOrOK())
}

func TestWrapResponseWriter_ReusesWrapper(t *testing.T) {
	inner := wrapResponseWriter(httptest.NewRecorder())

	assert.Same(t, inner, wrapResponseWriter(inner))
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rr := httptest.NewRecorder()

	assert.Equal(t, http.ResponseWriter(rr), wrapResponseWriter(rr).Unwrap())
}
