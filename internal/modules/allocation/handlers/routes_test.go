package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/aristath/strategy-builder/internal/modules/allocation"
	testingpkg "github.com/aristath/strategy-builder/internal/testing"
)

func TestRegisterRoutes(t *testing.T) {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	service := allocation.NewService(testingpkg.NewMockStrategyProvider(), nil, nil, logger)
	handler := NewHandler(service, logger)

	router := chi.NewRouter()

	// Should not panic
	assert.NotPanics(t, func() {
		handler.RegisterRoutes(router)
	}, "RegisterRoutes should not panic")

	routes := []struct {
		method string
		path   string
		body   string
	}{
		{http.MethodGet, "/allocation/", ""},
		{http.MethodDelete, "/allocation/", ""},
		{http.MethodPost, "/allocation/strategies", `{"id":"x"}`},
		{http.MethodPut, "/allocation/strategies/x", `{"allocation":10}`},
		{http.MethodDelete, "/allocation/strategies/x", ""},
		{http.MethodPost, "/allocation/balance/equal", ""},
	}

	for _, rt := range routes {
		t.Run(rt.method+" "+rt.path, func(t *testing.T) {
			req := httptest.NewRequest(rt.method, rt.path, strings.NewReader(rt.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)
			// Unregistered routes fall through to chi's plain-text 404/405
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"), "route should be registered")
			assert.NotEqual(t, http.StatusMethodNotAllowed, w.Code)
		})
	}
}
