package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aandrewjuan1/planner-api/internal/middleware"
)

type stubResolver struct {
	resolveFn func(ctx context.Context, sub string) (string, error)
}

func (s *stubResolver) ResolveUserID(ctx context.Context, sub string) (string, error) {
	return s.resolveFn(ctx, sub)
}

func okHandler(sawUser *string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*sawUser = middleware.GetUserID(r)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthRequiresResolverOutsideDevMode(t *testing.T) {
	_, err := middleware.NewAuth(middleware.AuthConfig{DevMode: false})
	if err == nil {
		t.Fatal("expected error when resolver and JWKS client are missing")
	}
}

func TestAuthDevMode(t *testing.T) {
	auth, err := middleware.NewAuth(middleware.AuthConfig{DevMode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawUser string
	handler := auth.Middleware(okHandler(&sawUser))

	// Without the header the request is rejected.
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/v1/feed", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without X-User-ID, got %d", rec.Code)
	}

	// With the header it passes and the user lands in context.
	req := httptest.NewRequest("GET", "/api/v1/feed", nil)
	req.Header.Set("X-User-ID", "user-1")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if sawUser != "user-1" {
		t.Errorf("expected user-1 in context, got %q", sawUser)
	}
}

func TestAuthSkipsPublicPaths(t *testing.T) {
	auth, err := middleware.NewAuth(middleware.AuthConfig{DevMode: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawUser string
	handler := auth.Middleware(okHandler(&sawUser))

	for _, path := range []string{"/health", "/api/v1/auth/login"} {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest("POST", path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("path %s: expected auth skip, got %d", path, rec.Code)
		}
	}
}

func TestAuthRejectsMissingBearer(t *testing.T) {
	auth, err := middleware.NewAuth(middleware.AuthConfig{
		DevMode:      false,
		JWKSClient:   middleware.NewJWKSClient("http://127.0.0.1:0/jwks.json"),
		Issuer:       "https://issuer.example.com",
		AppClientID:  "client-1",
		UserResolver: &stubResolver{resolveFn: func(ctx context.Context, sub string) (string, error) { return "", nil }},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var sawUser string
	handler := auth.Middleware(okHandler(&sawUser))

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"wrong scheme", "Basic abc"},
		{"garbage token", "Bearer not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/api/v1/feed", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Errorf("expected 401, got %d", rec.Code)
			}
		})
	}
}
