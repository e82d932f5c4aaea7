package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/config"
	"github.com/kuldeep27396/prime-backend/internal/dtos"
	"github.com/kuldeep27396/prime-backend/internal/models"
	"github.com/kuldeep27396/prime-backend/internal/utils"
)

func newTestAuthService() (*AuthService, *fakeUserStore) {
	users := newFakeUserStore()
	cfg := &config.Config{
		JWTSecret:       "0123456789abcdef0123456789abcdef",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
	}
	return NewAuthService(users, cfg), users
}

func TestRegister(t *testing.T) {
	tests := []struct {
		name     string
		role     string
		wantRole models.UserRole
	}{
		{name: "defaults to candidate", role: "", wantRole: models.UserRoleCandidate},
		{name: "explicit candidate", role: "candidate", wantRole: models.UserRoleCandidate},
		{name: "explicit mentor", role: "mentor", wantRole: models.UserRoleMentor},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, _ := newTestAuthService()

			resp, err := svc.Register(context.Background(), dtos.RegisterRequest{
				Email:    "Dev@Example.com",
				Name:     "Dev",
				Password: "hunter2hunter2",
				Role:     test.role,
			})
			if err != nil {
				t.Fatalf("Register() error = %v", err)
			}
			if resp.User.Role != string(test.wantRole) {
				t.Errorf("role = %q, want %q", resp.User.Role, test.wantRole)
			}
			if resp.User.Email != "dev@example.com" {
				t.Errorf("email = %q, want lowercased", resp.User.Email)
			}
			if resp.AccessToken == "" || resp.RefreshToken == "" {
				t.Error("token pair missing")
			}
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestAuthService()
	req := dtos.RegisterRequest{Email: "dev@example.com", Name: "Dev", Password: "hunter2hunter2"}

	if _, err := svc.Register(context.Background(), req); err != nil {
		t.Fatalf("first Register() error = %v", err)
	}
	_, err := svc.Register(context.Background(), req)
	if !errors.Is(err, apperrors.ErrEmailExists) {
		t.Fatalf("second Register() error = %v, want ErrEmailExists", err)
	}
}

// Unknown email and wrong password collapse into one error.
func TestLogin(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{name: "valid credentials", email: "dev@example.com", password: "hunter2hunter2"},
		{name: "wrong password", email: "dev@example.com", password: "wrong-password", wantErr: apperrors.ErrInvalidCredentials},
		{name: "unknown email", email: "nobody@example.com", password: "hunter2hunter2", wantErr: apperrors.ErrInvalidCredentials},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			svc, _ := newTestAuthService()
			if _, err := svc.Register(context.Background(), dtos.RegisterRequest{
				Email:    "dev@example.com",
				Name:     "Dev",
				Password: "hunter2hunter2",
			}); err != nil {
				t.Fatalf("Register() error = %v", err)
			}

			resp, err := svc.Login(context.Background(), dtos.LoginRequest{Email: test.email, Password: test.password})

			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Login() error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Login() error = %v", err)
			}
			if resp.AccessToken == "" {
				t.Error("access token missing")
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	svc, _ := newTestAuthService()

	registered, err := svc.Register(context.Background(), dtos.RegisterRequest{
		Email:    "dev@example.com",
		Name:     "Dev",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}

	resp, err := svc.Refresh(context.Background(), dtos.RefreshRequest{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if resp.User.ID != registered.User.ID {
		t.Error("refresh returned a different user")
	}

	claims, err := utils.ParseAccessToken(resp.AccessToken, svc.cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != registered.User.ID {
		t.Error("access token carries wrong user id")
	}
}

// A role change since issuance must land in the refreshed access token.
func TestRefresh_PicksUpRoleChange(t *testing.T) {
	svc, users := newTestAuthService()

	registered, err := svc.Register(context.Background(), dtos.RegisterRequest{
		Email:    "dev@example.com",
		Name:     "Dev",
		Password: "hunter2hunter2",
	})
	if err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := users.PromoteToMentor(context.Background(), registered.User.ID); err != nil {
		t.Fatalf("PromoteToMentor() error = %v", err)
	}

	resp, err := svc.Refresh(context.Background(), dtos.RefreshRequest{RefreshToken: registered.RefreshToken})
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	claims, err := utils.ParseAccessToken(resp.AccessToken, svc.cfg.JWTSecret)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.Role != models.UserRoleMentor {
		t.Errorf("refreshed role = %q, want mentor", claims.Role)
	}
}

func TestRefresh_RejectsGarbageToken(t *testing.T) {
	svc, _ := newTestAuthService()

	_, err := svc.Refresh(context.Background(), dtos.RefreshRequest{RefreshToken: "not-a-token"})
	if !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Fatalf("Refresh() error = %v, want ErrInvalidToken", err)
	}
}
