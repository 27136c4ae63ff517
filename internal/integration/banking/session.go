// Package banking implements the open-banking provider client.
package banking

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"
)

type tokenResponse struct {
	Access         string `json:"access"`
	AccessExpires  int    `json:"access_expires"`
	Refresh        string `json:"refresh"`
	RefreshExpires int    `json:"refresh_expires"`
}

// Session holds the provider access and refresh tokens. Token refreshes the
// access token when it is within leeway of expiring and requests a new pair
// when the refresh token has expired too. A Session is safe for concurrent use.
type Session struct {
	httpClient *http.Client
	baseURL    string
	secretID   string
	secretKey  string
	leeway     time.Duration
	now        func() time.Time

	mu            sync.Mutex
	access        string
	accessExpiry  time.Time
	refresh       string
	refreshExpiry time.Time
}

// NewSession creates a session for the given provider credentials.
func NewSession(httpClient *http.Client, baseURL, secretID, secretKey string, leeway time.Duration) *Session {
	return &Session{
		httpClient: httpClient,
		baseURL:    baseURL,
		secretID:   secretID,
		secretKey:  secretKey,
		leeway:     leeway,
		now:        time.Now,
	}
}

// Token returns a valid access token.
func (s *Session) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if s.access != "" && now.Add(s.leeway).Before(s.accessExpiry) {
		return s.access, nil
	}

	if s.refresh != "" && now.Add(s.leeway).Before(s.refreshExpiry) {
		if err := s.renew(ctx, now); err == nil {
			return s.access, nil
		}
		// A rejected refresh token falls through to a new pair.
	}

	if err := s.issue(ctx, now); err != nil {
		return "", err
	}
	return s.access, nil
}

// Invalidate drops the access token so the next Token call renews it.
func (s *Session) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.access = ""
	s.accessExpiry = time.Time{}
}

func (s *Session) issue(ctx context.Context, now time.Time) error {
	var out tokenResponse
	body := map[string]string{"secret_id": s.secretID, "secret_key": s.secretKey}
	if err := postJSON(ctx, s.httpClient, s.baseURL+"/token/new/", "", body, &out); err != nil {
		return fmt.Errorf("failed to issue provider token: %w", err)
	}
	if out.Access == "" {
		return fmt.Errorf("failed to issue provider token: response has no access token")
	}

	s.access = out.Access
	s.accessExpiry = now.Add(time.Duration(out.AccessExpires) * time.Second)
	s.refresh = out.Refresh
	s.refreshExpiry = now.Add(time.Duration(out.RefreshExpires) * time.Second)
	return nil
}

func (s *Session) renew(ctx context.Context, now time.Time) error {
	var out tokenResponse
	body := map[string]string{"refresh": s.refresh}
	if err := postJSON(ctx, s.httpClient, s.baseURL+"/token/refresh/", "", body, &out); err != nil {
		return err
	}
	if out.Access == "" {
		return fmt.Errorf("refresh response has no access token")
	}

	s.access = out.Access
	s.accessExpiry = now.Add(time.Duration(out.AccessExpires) * time.Second)
	return nil
}
