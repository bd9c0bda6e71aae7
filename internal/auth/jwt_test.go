package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestJWTFlow(t *testing.T) {
	tokens, err := NewTokenManager("test-secret-key-12345", time.Hour)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}

	user := &User{
		ID:       uuid.New().String(),
		Email:    "test@example.com",
		Username: "tester",
		Role:     RoleAdmin,
	}

	token, err := tokens.Generate(user)
	if err != nil {
		t.Fatalf("Failed to generate token: %v", err)
	}

	claims, err := tokens.Validate(token)
	if err != nil {
		t.Fatalf("Failed to validate token: %v", err)
	}

	if claims.UserID != user.ID {
		t.Fatalf("Expected userID %s, got %s", user.ID, claims.UserID)
	}
	if claims.Email != user.Email || claims.Username != user.Username || claims.Role != RoleAdmin {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Fatal("expected error for empty secret")
	}
}

func TestGenerate_RequiresUserID(t *testing.T) {
	tokens, _ := NewTokenManager("secret", time.Hour)
	if _, err := tokens.Generate(&User{}); err == nil {
		t.Fatal("expected error for empty user id")
	}
}

func TestValidate_Rejects(t *testing.T) {
	tokens, _ := NewTokenManager("secret", time.Hour)
	user := &User{ID: uuid.New().String()}

	t.Run("expired", func(t *testing.T) {
		past, _ := NewTokenManager("secret", time.Hour)
		past.now = func() time.Time { return time.Now().Add(-48 * time.Hour) }

		token, err := past.Generate(user)
		if err != nil {
			t.Fatalf("generate: %v", err)
		}
		if _, err := tokens.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("other secret", func(t *testing.T) {
		other, _ := NewTokenManager("another-secret", time.Hour)
		token, _ := other.Generate(user)
		if _, err := tokens.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("unsigned", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"userID": user.ID})
		s, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
		if err != nil {
			t.Fatalf("sign: %v", err)
		}
		if _, err := tokens.Validate(s); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		if _, err := tokens.Validate("invalid_token_xyz"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
