package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

type stubTokens struct {
	adapter.TokenService
	userID uuid.UUID
}

func (s *stubTokens) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	switch token {
	case "good":
		return &adapter.TokenClaims{UserID: s.userID, Email: "a@example.com"}, nil
	case "old":
		return nil, domainerror.ErrExpiredToken
	default:
		return nil, domainerror.ErrInvalidToken
	}
}

func TestAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	userID := uuid.New()

	router := gin.New()
	router.GET("/me", NewAuthMiddleware(&stubTokens{userID: userID}).Authenticate(), func(c *gin.Context) {
		id, _ := GetUserIDFromContext(c)
		c.String(http.StatusOK, id.String())
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", http.StatusOK, userID.String()},
		{"lowercase scheme", "bearer good", http.StatusOK, userID.String()},
		{"missing header", "", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"empty token", "Bearer ", http.StatusUnauthorized, string(domainerror.ErrCodeMissingToken)},
		{"expired token", "Bearer old", http.StatusUnauthorized, string(domainerror.ErrCodeExpiredToken)},
		{"invalid token", "Bearer nope", http.StatusUnauthorized, string(domainerror.ErrCodeInvalidToken)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if !strings.Contains(rec.Body.String(), tt.wantBody) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.wantBody)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("limits per route and resets after the window", func(t *testing.T) {
		now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		rl := NewRateLimiter(2, time.Minute)
		rl.now = func() time.Time { return now }

		router := gin.New()
		router.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })
		router.POST("/register", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

		call := func(path string) *httptest.ResponseRecorder {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, path, nil))
			return rec
		}

		for i := 0; i < 2; i++ {
			if rec := call("/login"); rec.Code != http.StatusOK {
				t.Fatalf("attempt %d status = %d, want 200", i+1, rec.Code)
			}
		}
		rec := call("/login")
		if rec.Code != http.StatusTooManyRequests {
			t.Fatalf("third attempt status = %d, want 429", rec.Code)
		}
		if rec.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
		}
		if rec := call("/register"); rec.Code != http.StatusOK {
			t.Errorf("other route status = %d, want 200", rec.Code)
		}

		now = now.Add(time.Minute)
		if rec := call("/login"); rec.Code != http.StatusOK {
			t.Errorf("after window status = %d, want 200", rec.Code)
		}
	})

	t.Run("disabled limiter passes everything", func(t *testing.T) {
		rl := NewRateLimiter(1, time.Minute).Disable()
		router := gin.New()
		router.POST("/login", rl.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

		for i := 0; i < 3; i++ {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/login", nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("attempt %d status = %d, want 200", i+1, rec.Code)
			}
		}
	})
}
