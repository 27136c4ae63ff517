package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/elliotJHarding/transactions/internal/application/adapter"
	"github.com/elliotJHarding/transactions/internal/domain/entity"
	domainerror "github.com/elliotJHarding/transactions/internal/domain/error"
)

type fakeUserRepo struct {
	users []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users = append(r.users, user)
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, err := r.FindByEmail(ctx, email)
	return err == nil, nil
}

type fakePasswords struct{}

func (fakePasswords) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswords) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswords) ValidatePasswordStrength(password string) error {
	if len(password) < 8 {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokens struct {
	issued  int
	revoked map[string]bool
	owners  map[string]uuid.UUID
}

func newFakeTokens() *fakeTokens {
	return &fakeTokens{revoked: map[string]bool{}, owners: map[string]uuid.UUID{}}
}

func (f *fakeTokens) GenerateTokenPair(ctx context.Context, userID uuid.UUID, email string) (*adapter.TokenPair, error) {
	f.issued++
	refresh := "refresh-" + uuid.NewString()
	f.owners[refresh] = userID
	return &adapter.TokenPair{AccessToken: "access-" + email, RefreshToken: refresh}, nil
}

func (f *fakeTokens) ValidateAccessToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	return nil, domainerror.ErrInvalidToken
}

func (f *fakeTokens) ValidateRefreshToken(ctx context.Context, token string) (*adapter.TokenClaims, error) {
	owner, ok := f.owners[token]
	if !ok || f.revoked[token] {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: owner}, nil
}

func (f *fakeTokens) InvalidateRefreshToken(ctx context.Context, token string) error {
	f.revoked[token] = true
	return nil
}

func TestRegisterUseCase(t *testing.T) {
	tests := []struct {
		name     string
		input    RegisterInput
		existing bool
		wantErr  error
		wantCode domainerror.AuthErrorCode
	}{
		{
			name:  "registers and signs in",
			input: RegisterInput{Email: "  Elliot@Example.com ", Name: "Elliot", Password: "correcthorse"},
		},
		{
			name:     "missing fields",
			input:    RegisterInput{Email: "elliot@example.com", Password: "correcthorse"},
			wantCode: domainerror.ErrCodeMissingFields,
		},
		{
			name:     "invalid email",
			input:    RegisterInput{Email: "not-an-email", Name: "Elliot", Password: "correcthorse"},
			wantErr:  domainerror.ErrInvalidEmail,
			wantCode: domainerror.ErrCodeInvalidEmail,
		},
		{
			name:     "weak password",
			input:    RegisterInput{Email: "elliot@example.com", Name: "Elliot", Password: "short"},
			wantErr:  domainerror.ErrWeakPassword,
			wantCode: domainerror.ErrCodeWeakPassword,
		},
		{
			name:     "email taken",
			input:    RegisterInput{Email: "elliot@example.com", Name: "Elliot", Password: "correcthorse"},
			existing: true,
			wantErr:  domainerror.ErrEmailAlreadyExists,
			wantCode: domainerror.ErrCodeEmailExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUserRepo{}
			if tt.existing {
				users.users = append(users.users, entity.NewUser("elliot@example.com", "Other", "x"))
			}
			uc := NewRegisterUseCase(users, fakePasswords{}, newFakeTokens())

			output, err := uc.Execute(context.Background(), tt.input)

			if tt.wantCode != "" {
				var authErr *domainerror.AuthError
				if !errors.As(err, &authErr) || authErr.Code != tt.wantCode {
					t.Fatalf("expected code %s, got %v", tt.wantCode, err)
				}
				if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if output.User.Email != "elliot@example.com" {
				t.Errorf("expected normalized email, got %q", output.User.Email)
			}
			if !strings.HasPrefix(output.User.PasswordHash, "hashed:") {
				t.Error("password should be stored hashed")
			}
			if output.AccessToken == "" || output.RefreshToken == "" {
				t.Error("expected a token pair")
			}
		})
	}
}

func TestLoginUseCase(t *testing.T) {
	users := &fakeUserRepo{users: []*entity.User{
		entity.NewUser("elliot@example.com", "Elliot", "hashed:correcthorse"),
	}}
	uc := NewLoginUseCase(users, fakePasswords{}, newFakeTokens())

	t.Run("valid credentials", func(t *testing.T) {
		output, err := uc.Execute(context.Background(), LoginInput{Email: "ELLIOT@example.com", Password: "correcthorse"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if output.User.Name != "Elliot" {
			t.Errorf("unexpected user %+v", output.User)
		}
	})

	for _, input := range []LoginInput{
		{Email: "elliot@example.com", Password: "wrong"},
		{Email: "nobody@example.com", Password: "correcthorse"},
	} {
		t.Run("rejects "+input.Email+"/"+input.Password, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), input)
			if !errors.Is(err, domainerror.ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestRefreshUseCase(t *testing.T) {
	ctx := context.Background()
	user := entity.NewUser("elliot@example.com", "Elliot", "hashed:correcthorse")
	users := &fakeUserRepo{users: []*entity.User{user}}
	tokens := newFakeTokens()

	session, err := startSession(ctx, tokens, user)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	uc := NewRefreshUseCase(users, tokens)
	rotated, err := uc.Execute(ctx, RefreshInput{RefreshToken: session.RefreshToken})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rotated.RefreshToken == session.RefreshToken {
		t.Error("expected a new refresh token")
	}

	if _, err := uc.Execute(ctx, RefreshInput{RefreshToken: session.RefreshToken}); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("reusing a rotated token should fail, got %v", err)
	}

	if err := NewLogoutUseCase(tokens).Execute(ctx, rotated.RefreshToken); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := uc.Execute(ctx, RefreshInput{RefreshToken: rotated.RefreshToken}); !errors.Is(err, domainerror.ErrInvalidToken) {
		t.Errorf("logged out token should fail, got %v", err)
	}
}
