package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard/internal/server/models"
)

func TestUserCreate_PasswordNeverStoredPlain(t *testing.T) {
	_, us, _, _, _ := newTestServices(t)

	const plain = "sup3rsecret"
	created, err := us.Create(context.Background(), "Alice", "alice@example.com", plain, "")
	require.NoError(t, err)
	assert.NotEqual(t, plain, created.Password)
	assert.Equal(t, models.RoleUser, created.Role)

	// Login with the original plaintext must succeed afterward.
	res, err := us.Login(context.Background(), "alice@example.com", plain)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, created.ID, res.User.ID)
}

func TestUserCreate_Validation(t *testing.T) {
	_, us, _, _, _ := newTestServices(t)
	ctx := context.Background()

	tests := []struct {
		name, uname, email, password, role, wantSubstr string
	}{
		{"missing fields", "", "a@b.co", "secret1", "", "Name, email, and password are required"},
		{"bad email", "A", "not-an-email", "secret1", "", "Invalid email format"},
		{"bad role", "A", "a@b.co", "secret1", "root", "Invalid role"},
		{"short password", "A", "a@b.co", "12345", "", "at least 6 characters"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := us.Create(ctx, tc.uname, tc.email, tc.password, tc.role)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantSubstr)
		})
	}
}

func TestUserCreate_DuplicateEmail(t *testing.T) {
	_, us, _, _, _ := newTestServices(t)
	ctx := context.Background()

	_, err := us.Create(ctx, "Alice", "alice@example.com", "secret1", "")
	require.NoError(t, err)

	_, err = us.Create(ctx, "Other", "alice@example.com", "secret2", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User with this email already exists")
}

func TestUserCreate_ExplicitRoleIsKept(t *testing.T) {
	_, us, _, _, _ := newTestServices(t)

	created, err := us.Create(context.Background(), "Root", "root@example.com", "secret1", "admin")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, created.Role)
}

func TestLogin_IdenticalFailureForUnknownEmailAndWrongPassword(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	seedUser(t, store, "Alice", "alice@example.com", "correct1", models.RoleUser)

	_, errWrongPw := us.Login(context.Background(), "alice@example.com", "incorrect")
	_, errNoUser := us.Login(context.Background(), "ghost@example.com", "whatever")

	require.Error(t, errWrongPw)
	require.Error(t, errNoUser)
	assert.Equal(t, errWrongPw.Error(), errNoUser.Error())
	assert.Contains(t, errWrongPw.Error(), "Invalid email or password")
}

func TestUserQueries_RequireAdmin(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)

	// No identity: authentication error.
	_, err := us.GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "You must be logged in")

	// Non-admin identity: authorization error.
	_, err = us.GetAll(userCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Only admin")

	// Admin succeeds.
	users, err := us.GetAll(adminCtx())
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserGetByID(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	u := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)

	got, err := us.GetByID(adminCtx(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, u.Email, got.Email)

	_, err = us.GetByID(adminCtx(), "zzz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid user ID format")

	_, err = us.GetByID(adminCtx(), "507f1f77bcf86cd799439011")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestUserUpdate(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	u := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	oldHash := u.Password

	// Omitted password leaves the stored hash untouched.
	updated, err := us.Update(adminCtx(), u.ID.Hex(), "Alice B", "aliceb@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", updated.Name)
	assert.Equal(t, "aliceb@example.com", updated.Email)
	assert.Equal(t, oldHash, updated.Password)

	// A supplied password replaces the hash.
	updated, err = us.Update(adminCtx(), u.ID.Hex(), "Alice B", "aliceb@example.com", "newsecret")
	require.NoError(t, err)
	assert.NotEqual(t, oldHash, updated.Password)

	// Name and email must be re-supplied.
	_, err = us.Update(adminCtx(), u.ID.Hex(), "", "aliceb@example.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Name is required")
}

func TestUserUpdate_EmailInUse(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	bob := seedUser(t, store, "Bob", "bob@example.com", "secret1", models.RoleUser)

	_, err := us.Update(adminCtx(), bob.ID.Hex(), "Bob", "alice@example.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email is already in use by another user")
}

func TestUserDelete(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	u := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)

	deleted, err := us.Delete(adminCtx(), u.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, u.ID, deleted.ID)

	_, err = us.Delete(adminCtx(), u.ID.Hex())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestDeleteAllUsers_PreservesAdmins(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	admin := seedUser(t, store, "Root", "root@example.com", "secret1", models.RoleAdmin)
	seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)
	seedUser(t, store, "Bob", "bob@example.com", "secret1", models.RoleUser)

	msg, err := us.DeleteAll(adminCtx())
	require.NoError(t, err)
	assert.Contains(t, msg, "2 users")

	// The admin record survives.
	remaining, err := store.Users().GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, admin.ID, remaining[0].ID)
}

func TestDeleteAllUsers_FailureModes(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)

	// Empty store.
	_, err := us.DeleteAll(adminCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No users to delete")

	// Only admins: nothing deleted, distinct message.
	seedUser(t, store, "Root", "root@example.com", "secret1", models.RoleAdmin)
	_, err = us.DeleteAll(adminCtx())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No user was deleted")
}

func TestRequestPasswordReset(t *testing.T) {
	store, us, _, _, mailer := newTestServices(t)
	u := seedUser(t, store, "Alice", "alice@example.com", "secret1", models.RoleUser)

	msg, err := us.RequestPasswordReset(context.Background(), "alice@example.com")
	require.NoError(t, err)
	assert.Contains(t, msg, "alice@example.com")

	require.Len(t, mailer.tokens, 1)
	token := mailer.tokens[0]
	assert.Len(t, token, 64)

	stored, err := store.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, token, stored.ResetToken)
	require.NotNil(t, stored.ResetTokenExpiry)
	assert.True(t, stored.ResetTokenExpiry.After(time.Now()))
}

func TestRequestPasswordReset_UnknownEmail(t *testing.T) {
	_, us, _, _, mailer := newTestServices(t)

	_, err := us.RequestPasswordReset(context.Background(), "ghost@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User with this email does not exist")
	assert.Empty(t, mailer.tokens)
}

func TestResetPassword_FullFlow(t *testing.T) {
	store, us, _, _, mailer := newTestServices(t)
	u := seedUser(t, store, "Alice", "alice@example.com", "oldsecret", models.RoleUser)

	_, err := us.RequestPasswordReset(context.Background(), "alice@example.com")
	require.NoError(t, err)
	token := mailer.tokens[0]

	msg, err := us.ResetPassword(context.Background(), token, "oldsecret", "newsecret", "newsecret")
	require.NoError(t, err)
	assert.Contains(t, msg, "successfully reset")

	// The new password is live, the token is cleared.
	_, err = us.Login(context.Background(), "alice@example.com", "newsecret")
	require.NoError(t, err)
	_, err = us.Login(context.Background(), "alice@example.com", "oldsecret")
	require.Error(t, err)

	stored, err := store.Users().GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.ResetToken)
	assert.Nil(t, stored.ResetTokenExpiry)
}

func TestResetPassword_Validation(t *testing.T) {
	store, us, _, _, mailer := newTestServices(t)
	seedUser(t, store, "Alice", "alice@example.com", "oldsecret", models.RoleUser)
	_, err := us.RequestPasswordReset(context.Background(), "alice@example.com")
	require.NoError(t, err)
	token := mailer.tokens[0]

	_, err = us.ResetPassword(context.Background(), token, "oldsecret", "newsecret", "different")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "do not match")

	_, err = us.ResetPassword(context.Background(), token, "oldsecret", "12345", "12345")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 6 characters")

	_, err = us.ResetPassword(context.Background(), token, "wrongold", "newsecret", "newsecret")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid old password")
}

func TestResetPassword_ExpiredOrUnknownToken(t *testing.T) {
	store, us, _, _, _ := newTestServices(t)
	u := seedUser(t, store, "Alice", "alice@example.com", "oldsecret", models.RoleUser)

	// Unknown token.
	_, err := us.ResetPassword(context.Background(), strings.Repeat("ab", 32), "oldsecret", "newsecret", "newsecret")
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired reset token", err.Error())

	// Expired token: same failure regardless of the other arguments.
	expired := time.Now().Add(-1 * time.Minute)
	u.ResetToken = strings.Repeat("cd", 32)
	u.ResetTokenExpiry = &expired
	_, err = store.Users().Update(context.Background(), u)
	require.NoError(t, err)

	_, err = us.ResetPassword(context.Background(), u.ResetToken, "oldsecret", "newsecret", "newsecret")
	require.Error(t, err)
	assert.Equal(t, "Invalid or expired reset token", err.Error())
}
