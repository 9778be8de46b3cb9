package auth

import (
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/models"
)

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Name:  "Alice",
		Email: "alice@example.com",
		Role:  models.RoleAdmin,
	}
}

func TestGenerateAndParse_Success(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")
	user := testUser()

	tok, err := GenerateToken(user, secret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	claims, err := ParseToken(tok, secret)
	if err != nil {
		t.Fatalf("ParseToken error: %v", err)
	}
	if claims.UserID != user.ID.Hex() {
		t.Fatalf("user id mismatch: got %q want %q", claims.UserID, user.ID.Hex())
	}
	if claims.Email != user.Email {
		t.Fatalf("email mismatch: got %q want %q", claims.Email, user.Email)
	}
	if claims.Role != models.RoleAdmin {
		t.Fatalf("role mismatch: got %q", claims.Role)
	}
}

func TestParseToken_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := GenerateToken(testUser(), secret, -1*time.Second)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, secret); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseToken_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := GenerateToken(testUser(), []byte("right"), time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken error: %v", err)
	}

	if _, err := ParseToken(tok, []byte("wrong")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestParseToken_Garbage(t *testing.T) {
	t.Parallel()

	if _, err := ParseToken("not-a-token", []byte("s")); !errors.Is(err, common.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for garbage input, got %v", err)
	}
}
