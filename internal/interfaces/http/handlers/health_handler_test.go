package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthRouter(h *HealthHandler) *gin.Engine {
	r := gin.New()
	h.RegisterRoutes(r)
	return r
}

func ok(name string) HealthChecker {
	return CheckFunc{ComponentName: name, Fn: func(context.Context) error { return nil }}
}

func failing(name string) HealthChecker {
	return CheckFunc{ComponentName: name, Fn: func(context.Context) error { return fmt.Errorf("%s unreachable", name) }}
}

func TestHealthHandler_Liveness(t *testing.T) {
	r := healthRouter(NewHealthHandler("1.2.0", failing("postgres")))

	w := do(r, http.MethodGet, "/healthz", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got LivenessResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "alive", got.Status)
	assert.Equal(t, "1.2.0", got.Version)
}

func TestHealthHandler_Readiness(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []HealthChecker
		wantStatus int
		wantBody   string
	}{
		{"no checkers", nil, http.StatusOK, "ready"},
		{"all healthy", []HealthChecker{ok("postgres"), ok("redis")}, http.StatusOK, "ready"},
		{"one down", []HealthChecker{ok("postgres"), failing("kafka")}, http.StatusServiceUnavailable, "not_ready"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(healthRouter(NewHealthHandler("dev", tt.checkers...)), http.MethodGet, "/readyz", "", nil)
			assert.Equal(t, tt.wantStatus, w.Code)

			var got ReadinessResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.Equal(t, tt.wantBody, got.Status)
			assert.Len(t, got.Components, len(tt.checkers))
		})
	}
}

func TestHealthHandler_Detailed(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]bool{}
	h := NewHealthHandler("dev", ok("minio"), failing("redis")).OnCheck(func(component string, healthy bool) {
		mu.Lock()
		seen[component] = healthy
		mu.Unlock()
	})

	w := do(healthRouter(h), http.MethodGet, "/healthz/detail", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	var got DetailedResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "degraded", got.Status)
	assert.Equal(t, "healthy", got.Components["minio"].Status)
	assert.Equal(t, "redis unreachable", got.Components["redis"].Error)
	assert.Equal(t, map[string]bool{"minio": true, "redis": false}, seen)
}

//Personal.AI order the ending
