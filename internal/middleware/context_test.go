package middleware_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/aandrewjuan1/planner-api/internal/middleware"
)

func TestUserIDContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	if got := middleware.GetUserID(r); got != "" {
		t.Errorf("expected empty user ID on bare request, got %q", got)
	}

	ctx := middleware.SetUserID(context.Background(), "user-1")
	r = r.WithContext(ctx)

	if got := middleware.GetUserID(r); got != "user-1" {
		t.Errorf("expected user-1, got %q", got)
	}
}

func TestRequestIDContext(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)

	if got := middleware.GetRequestID(r); got != "" {
		t.Errorf("expected empty request ID on bare request, got %q", got)
	}

	ctx := middleware.SetRequestID(context.Background(), "req-1")
	r = r.WithContext(ctx)

	if got := middleware.GetRequestID(r); got != "req-1" {
		t.Errorf("expected req-1, got %q", got)
	}
}
