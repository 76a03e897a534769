package api

import (
	"net/http"
	"testing"
	"time"

	"github.com/tarok-klub/tarok-backend/pkg/jwt"
)

func TestJWTAuth(t *testing.T) {
	jwtService := jwt.NewService("test-secret", time.Hour)
	ts := newTestServerWithJWT(nil, nil, nil, jwtService)
	defer ts.Close()

	get := func(t *testing.T, token string) int {
		t.Helper()
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/v1/games", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close()
		return resp.StatusCode
	}

	t.Run("missing token", func(t *testing.T) {
		if got := get(t, ""); got != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", got)
		}
	})

	t.Run("garbage token", func(t *testing.T) {
		if got := get(t, "not.a.jwt"); got != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", got)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := jwt.NewService("other-secret", time.Hour)
		token, err := other.GenerateToken("user-1", "Ana", jwt.RoleScorer, 0)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if got := get(t, token); got != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", got)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := jwtService.GenerateToken("user-1", "Ana", jwt.RoleScorer, 0)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if got := get(t, token); got != http.StatusOK {
			t.Errorf("status = %d, want 200", got)
		}
	})

	t.Run("health endpoint stays open", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatalf("GET /healthz: %v", err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Errorf("status = %d, want 200", resp.StatusCode)
		}
	})
}

func TestCorrelationIDMiddleware(t *testing.T) {
	ts := newTestServer(nil, nil, nil)
	defer ts.Close()

	t.Run("echoes caller id", func(t *testing.T) {
		req, err := http.NewRequest(http.MethodGet, ts.URL+"/healthz", nil)
		if err != nil {
			t.Fatalf("new request: %v", err)
		}
		req.Header.Set("X-Correlation-ID", "corr-1234")
		resp, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("request: %v", err)
		}
		resp.Body.Close()
		if got := resp.Header.Get("X-Correlation-ID"); got != "corr-1234" {
			t.Errorf("correlation id = %q, want corr-1234", got)
		}
	})

	t.Run("mints one when absent", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/healthz")
		if err != nil {
			t.Fatalf("GET: %v", err)
		}
		resp.Body.Close()
		if resp.Header.Get("X-Correlation-ID") == "" {
			t.Errorf("expected a minted correlation id")
		}
	})
}
