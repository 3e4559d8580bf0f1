package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgAuth "github.com/minjaepark/commerce-backend/pkg/auth"
	"github.com/minjaepark/commerce-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret-key-for-auth-middleware",
		Issuer:            "commerce-test",
		ExpirationMinutes: 15,
	}
}

func TestAuthAcceptsValidBearerToken(t *testing.T) {
	cfg := testJWTConfig()
	userID := uuid.New()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID:  userID,
		LoginID: "tester",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var gotUser uuid.UUID
	var gotLogin string
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotLogin = LoginIDFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotUser != userID {
		t.Fatalf("expected user id in context, got %s", gotUser)
	}
	if gotLogin != "tester" {
		t.Fatalf("expected login id in context, got %q", gotLogin)
	}
}

func TestAuthRejectsMissingAndInvalidTokens(t *testing.T) {
	cfg := testJWTConfig()
	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	cases := []struct {
		name   string
		header string
	}{
		{"missing header", ""},
		{"empty bearer", "Bearer "},
		{"garbage token", "Bearer not-a-jwt"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

func TestAuthRejectsExpiredToken(t *testing.T) {
	cfg := testJWTConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now().Add(-2*time.Hour), pkgAuth.AccessTokenPayload{
		UserID:  uuid.New(),
		LoginID: "tester",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	handler := Auth(cfg, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler should not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
