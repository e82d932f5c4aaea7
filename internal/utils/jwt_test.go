package utils

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/kuldeep27396/prime-backend/internal/apperrors"
	"github.com/kuldeep27396/prime-backend/internal/models"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestAccessTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateAccessToken(userID, models.UserRoleMentor, testSecret, time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	claims, err := ParseAccessToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseAccessToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Role != models.UserRoleMentor {
		t.Errorf("Role = %v, want mentor", claims.Role)
	}
}

func TestParseAccessToken_Rejections(t *testing.T) {
	userID := uuid.New()

	expired, err := GenerateAccessToken(userID, models.UserRoleCandidate, testSecret, -time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}
	wrongKey, err := GenerateAccessToken(userID, models.UserRoleCandidate, "another-secret-another-secret!!!", time.Minute)
	if err != nil {
		t.Fatalf("GenerateAccessToken() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired token", token: expired},
		{name: "wrong signing key", token: wrongKey},
		{name: "garbage", token: "definitely.not.a-jwt"},
		{name: "empty", token: ""},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if _, err := ParseAccessToken(test.token, testSecret); !errors.Is(err, apperrors.ErrInvalidToken) {
				t.Errorf("ParseAccessToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	userID := uuid.New()

	token, err := GenerateRefreshToken(userID, testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	claims, err := ParseRefreshToken(token, testSecret)
	if err != nil {
		t.Fatalf("ParseRefreshToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
}

func TestParseRefreshToken_Tampered(t *testing.T) {
	token, err := GenerateRefreshToken(uuid.New(), testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	tampered := token[:len(token)-2] + "xx"
	if _, err := ParseRefreshToken(tampered, testSecret); !errors.Is(err, apperrors.ErrInvalidToken) {
		t.Errorf("ParseRefreshToken() error = %v, want ErrInvalidToken", err)
	}
}
