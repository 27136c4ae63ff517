package adapters

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestUserLockers(t *testing.T) {
	_, client := newTestRedis(t)

	lockers := map[string]adapter.UserLocker{
		"redis":  NewRedisLocker(client, time.Minute),
		"memory": NewMemoryLocker(),
	}

	for name, locker := range lockers {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			userID := uuid.New()

			unlock, err := locker.Lock(ctx, userID)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if _, err := locker.Lock(ctx, userID); !errors.Is(err, domainerror.ErrResolverBusy) {
				t.Errorf("expected ErrResolverBusy, got %v", err)
			}

			otherUnlock, err := locker.Lock(ctx, uuid.New())
			if err != nil {
				t.Errorf("other users must not be blocked: %v", err)
			} else {
				otherUnlock()
			}

			unlock()

			again, err := locker.Lock(ctx, userID)
			if err != nil {
				t.Fatalf("lock should be free after unlock: %v", err)
			}
			again()
		})
	}
}

func TestRedisLocker_ExpiredLockIsNotReleasedByOldHolder(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	locker := NewRedisLocker(client, time.Second)
	userID := uuid.New()

	staleUnlock, err := locker.Lock(ctx, userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mr.FastForward(2 * time.Second)

	freshUnlock, err := locker.Lock(ctx, userID)
	if err != nil {
		t.Fatalf("expired lock should be acquirable: %v", err)
	}
	defer freshUnlock()

	staleUnlock()

	if _, err := locker.Lock(ctx, userID); !errors.Is(err, domainerror.ErrResolverBusy) {
		t.Errorf("old holder released the new lock, got %v", err)
	}
}

type memoryTokens struct {
	active map[string]bool
}

func (m *memoryTokens) SaveRefreshToken(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	m.active[token] = true
	return nil
}

func (m *memoryTokens) IsRefreshTokenActive(ctx context.Context, token string) (bool, error) {
	return m.active[token], nil
}

func (m *memoryTokens) RevokeRefreshToken(ctx context.Context, token string) error {
	m.active[token] = false
	return nil
}

func TestTokenService(t *testing.T) {
	ctx := context.Background()
	store := &memoryTokens{active: map[string]bool{}}
	svc := NewTokenService("secret", time.Minute, time.Hour, store)
	userID := uuid.New()

	pair, err := svc.GenerateTokenPair(ctx, userID, "elliot@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("access token", func(t *testing.T) {
		claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if claims.UserID != userID || claims.Email != "elliot@example.com" {
			t.Errorf("unexpected claims %+v", claims)
		}
	})

	t.Run("token types are not interchangeable", func(t *testing.T) {
		if _, err := svc.ValidateAccessToken(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("refresh token accepted as access token: %v", err)
		}
		if _, err := svc.ValidateRefreshToken(ctx, pair.AccessToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("access token accepted as refresh token: %v", err)
		}
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenService("other", time.Minute, time.Hour, store)
		if _, err := other.ValidateAccessToken(ctx, pair.AccessToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		short := NewTokenService("secret", -time.Minute, time.Hour, store)
		expired, err := short.GenerateTokenPair(ctx, userID, "elliot@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ValidateAccessToken(ctx, expired.AccessToken); !errors.Is(err, domainerror.ErrExpiredToken) {
			t.Errorf("expected ErrExpiredToken, got %v", err)
		}
	})

	t.Run("revoked refresh token", func(t *testing.T) {
		if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := svc.InvalidateRefreshToken(ctx, pair.RefreshToken); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); !errors.Is(err, domainerror.ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestPasswordService(t *testing.T) {
	svc := NewPasswordService(4)

	tests := []struct {
		password string
		valid    bool
	}{
		{"abc123", false},
		{"abcdefgh", false},
		{"12345678", false},
		{"abcdefg1", true},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := svc.ValidatePasswordStrength(tt.password)
			if (err == nil) != tt.valid {
				t.Errorf("expected valid=%v, got %v", tt.valid, err)
			}
		})
	}

	hash, err := svc.HashPassword("abcdefg1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.VerifyPassword(hash, "abcdefg1"); err != nil {
		t.Errorf("expected password to verify: %v", err)
	}
	if err := svc.VerifyPassword(hash, "abcdefg2"); err == nil {
		t.Error("expected mismatch")
	}
}
