package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func TestHealthHandler(t *testing.T) {
	ok := pingFunc(func(context.Context) error { return nil })
	down := pingFunc(func(context.Context) error { return errors.New("connection refused") })

	tests := []struct {
		name           string
		checks         map[string]HealthChecker
		expectedStatus int
		expectedState  string
		expectedDeps   map[string]string
	}{
		{
			name:           "all dependencies reachable",
			checks:         map[string]HealthChecker{"database": ok, "cache": ok},
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
			expectedDeps:   map[string]string{"database": "connected", "cache": "connected"},
		},
		{
			name:           "cache down",
			checks:         map[string]HealthChecker{"database": ok, "cache": down},
			expectedStatus: http.StatusServiceUnavailable,
			expectedState:  "unhealthy",
			expectedDeps:   map[string]string{"database": "connected", "cache": "unreachable"},
		},
		{
			name:           "no dependencies",
			checks:         nil,
			expectedStatus: http.StatusOK,
			expectedState:  "healthy",
			expectedDeps:   map[string]string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			srv := New("127.0.0.1:0", "release", tc.checks)

			req := httptest.NewRequest(http.MethodGet, "/health", nil)
			resp := httptest.NewRecorder()
			srv.Engine.ServeHTTP(resp, req)

			require.Equal(t, tc.expectedStatus, resp.Code)

			var body struct {
				Status       string            `json:"status"`
				Dependencies map[string]string `json:"dependencies"`
			}
			require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
			require.Equal(t, tc.expectedState, body.Status)
			require.Equal(t, tc.expectedDeps, body.Dependencies)
		})
	}
}
