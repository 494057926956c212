package jwt

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestTokenRoundTrip(t *testing.T) {
	userID := uuid.New()
	permissions := map[string]bool{"assets": true, "stock": false}

	token, err := GenerateToken(userID, "jdoe", "User", permissions)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	claims, err := ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("UserID = %v, want %v", claims.UserID, userID)
	}
	if claims.Username != "jdoe" || claims.Role != "User" {
		t.Errorf("claims = %q/%q, want jdoe/User", claims.Username, claims.Role)
	}
	if !claims.Permissions["assets"] || claims.Permissions["stock"] {
		t.Errorf("permissions = %v", claims.Permissions)
	}
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "not a jwt", token: "abc.def.ghi"},
		{name: "tampered", token: func() string {
			tok, _ := GenerateToken(uuid.New(), "jdoe", "User", nil)
			return tok + "x"
		}()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("ValidateToken() error = %v, want ErrInvalidToken", err)
			}
		})
	}
}
