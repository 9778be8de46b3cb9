// Package services contains the domain operations. Every operation follows
// the same shape: authorize, validate, read/write the store, return the
// entity or a descriptive failure.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskboard/taskboard/internal/common"
	"github.com/taskboard/taskboard/internal/server/auth"
	"github.com/taskboard/taskboard/internal/server/config"
	"github.com/taskboard/taskboard/internal/server/email"
	"github.com/taskboard/taskboard/internal/server/models"
	"github.com/taskboard/taskboard/internal/server/storage"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// oid converts an already format-validated identifier.
func oid(s string) primitive.ObjectID {
	v, _ := primitive.ObjectIDFromHex(s)
	return v
}

// LoginResult bundles the authenticated user with the issued token.
type LoginResult struct {
	User  *models.User
	Token string
}

// UserService implements the user domain operations: CRUD, login and the
// password-reset flow.
type UserService struct {
	store              storage.Store
	mailer             email.Mailer
	jwtSecret          []byte
	tokenValidity      time.Duration
	resetTokenValidity time.Duration
}

// NewUserService constructs a UserService from the store, the mail
// collaborator and server config.
func NewUserService(store storage.Store, mailer email.Mailer, cfg *config.Config) *UserService {
	return &UserService{
		store:              store,
		mailer:             mailer,
		jwtSecret:          []byte(cfg.SecretKey),
		tokenValidity:      cfg.TokenValidityDuration,
		resetTokenValidity: cfg.ResetTokenValidityDuration,
	}
}

// GetAll returns every user. Admin only.
func (s *UserService) GetAll(ctx context.Context) ([]*models.User, error) {
	if err := auth.Check(ctx, []models.Role{models.RoleAdmin}, auth.Messages{
		Authentication: "You must be logged in to view users.",
		Authorization:  "Unauthorized: Only admin can view users.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to fetch users: %w", err)
	}

	users, err := s.store.Users().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("Failed to fetch users: %w", err)
	}
	if len(users) == 0 {
		return nil, errors.New("Failed to fetch users: No users found")
	}
	return users, nil
}

// GetByID returns one user by identifier. Admin only.
func (s *UserService) GetByID(ctx context.Context, id string) (*models.User, error) {
	if err := auth.Check(ctx, []models.Role{models.RoleAdmin}, auth.Messages{
		Authentication: "You must be logged in to view user details.",
		Authorization:  "Unauthorized: Only admin can view user details.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to fetch user: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to fetch user: Invalid user ID format")
	}

	user, err := s.store.Users().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to fetch user: User with ID %s not found", id)
		}
		return nil, fmt.Errorf("Failed to fetch user: %w", err)
	}
	return user, nil
}

// Create registers a new user. No authentication required; the role
// defaults to user and is never elevated implicitly.
func (s *UserService) Create(ctx context.Context, name, emailAddr, password, role string) (*models.User, error) {
	if name == "" || emailAddr == "" || password == "" {
		return nil, errors.New("Failed to create user: Name, email, and password are required")
	}
	if !emailPattern.MatchString(emailAddr) {
		return nil, errors.New("Failed to create user: Invalid email format")
	}

	userRole := models.RoleUser
	if role != "" {
		userRole = models.Role(role)
		if !userRole.Valid() {
			return nil, fmt.Errorf("Failed to create user: Invalid role: %s. Allowed values are admin, user", role)
		}
	}

	if _, err := s.store.Users().GetByEmail(ctx, emailAddr); err == nil {
		return nil, errors.New("Failed to create user: User with this email already exists")
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("Failed to create user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("Failed to create user: %w", err)
	}

	user := &models.User{
		Name:     name,
		Email:    emailAddr,
		Password: hash,
		Role:     userRole,
	}
	created, err := s.store.Users().Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("Failed to create user: %w", err)
	}
	return created, nil
}

// Update modifies a user's name, email and optionally password. Name and
// email must be re-supplied even when unchanged; an omitted password leaves
// the stored hash untouched. Admin only.
func (s *UserService) Update(ctx context.Context, id, name, emailAddr, password string) (*models.User, error) {
	if err := auth.Check(ctx, []models.Role{models.RoleAdmin}, auth.Messages{
		Authentication: "You must be logged in to update users.",
		Authorization:  "Unauthorized: Only admin can update users.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to update user: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to update user: Invalid user ID format")
	}

	user, err := s.store.Users().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to update user: User with ID %s not found", id)
		}
		return nil, fmt.Errorf("Failed to update user: %w", err)
	}

	if strings.TrimSpace(name) == "" {
		return nil, errors.New("Failed to update user: Name is required")
	}
	if strings.TrimSpace(emailAddr) == "" {
		return nil, errors.New("Failed to update user: Email is required")
	}
	if !emailPattern.MatchString(emailAddr) {
		return nil, errors.New("Failed to update user: Invalid email format")
	}

	// The address may not belong to a different account.
	if existing, err := s.store.Users().GetByEmail(ctx, emailAddr); err == nil {
		if existing.ID != user.ID {
			return nil, errors.New("Failed to update user: Email is already in use by another user")
		}
	} else if !errors.Is(err, common.ErrorNotFound) {
		return nil, fmt.Errorf("Failed to update user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("Failed to update user: %w", err)
	}

	user.Name = name
	user.Email = emailAddr
	if hash != "" {
		user.Password = hash
	}

	updated, err := s.store.Users().Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("Failed to update user: %w", err)
	}
	return updated, nil
}

// Delete removes one user by identifier and returns the deleted record.
// Admin only.
func (s *UserService) Delete(ctx context.Context, id string) (*models.User, error) {
	if err := auth.Check(ctx, []models.Role{models.RoleAdmin}, auth.Messages{
		Authentication: "Authentication required to delete a user.",
		Authorization:  "Unauthorized: Only admin can delete users.",
	}); err != nil {
		return nil, fmt.Errorf("Failed to delete user: %w", err)
	}

	if !models.IsValidID(id) {
		return nil, errors.New("Failed to delete user: Invalid user ID format")
	}

	user, err := s.store.Users().GetByID(ctx, oid(id))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("Failed to delete user: User with ID %s not found", id)
		}
		return nil, fmt.Errorf("Failed to delete user: %w", err)
	}

	if err := s.store.Users().Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("Failed to delete user: %w", err)
	}
	return user, nil
}

// DeleteAll removes every non-admin user. Fails if the store was empty and,
// distinctly, if nothing was deleted. Admin only.
func (s *UserService) DeleteAll(ctx context.Context) (string, error) {
	if err := auth.Check(ctx, []models.Role{models.RoleAdmin}, auth.Messages{
		Authentication: "Authentication required to delete a user.",
		Authorization:  "Unauthorized: Only admin can delete users.",
	}); err != nil {
		return "", fmt.Errorf("Failed to delete all users: %w", err)
	}

	count, err := s.store.Users().Count(ctx)
	if err != nil {
		return "", fmt.Errorf("Failed to delete all users: %w", err)
	}
	if count == 0 {
		return "", errors.New("Failed to delete all users: No users to delete")
	}

	deleted, err := s.store.Users().DeleteAllExceptRole(ctx, models.RoleAdmin)
	if err != nil {
		return "", fmt.Errorf("Failed to delete all users: %w", err)
	}
	if deleted == 0 {
		return "", errors.New("Failed to delete all users: No user was deleted")
	}

	return fmt.Sprintf("Successfully deleted %d users.", deleted), nil
}

// Login verifies the credentials and issues a signed, time-limited token
// carrying the user's id, email and role. Missing accounts and wrong
// passwords produce the identical failure.
func (s *UserService) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	user, err := s.store.Users().GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, errors.New("Login failed: Invalid email or password")
		}
		return nil, fmt.Errorf("Login failed: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		return nil, errors.New("Login failed: Invalid email or password")
	}

	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenValidity)
	if err != nil {
		return nil, fmt.Errorf("Login failed: %w", err)
	}

	return &LoginResult{User: user, Token: token}, nil
}

// RequestPasswordReset stores a fresh high-entropy reset token on the user
// record and dispatches it via the mail collaborator.
func (s *UserService) RequestPasswordReset(ctx context.Context, emailAddr string) (string, error) {
	user, err := s.store.Users().GetByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", errors.New("User with this email does not exist")
		}
		return "", fmt.Errorf("Failed to request password reset: %w", err)
	}

	token, err := common.MakeRandHexString(32)
	if err != nil {
		return "", fmt.Errorf("Failed to request password reset: %w", err)
	}

	expiry := time.Now().Add(s.resetTokenValidity)
	user.ResetToken = token
	user.ResetTokenExpiry = &expiry
	if _, err := s.store.Users().Update(ctx, user); err != nil {
		return "", fmt.Errorf("Failed to request password reset: %w", err)
	}

	if err := s.mailer.SendResetToken(ctx, user.Email, token); err != nil {
		return "", fmt.Errorf("Failed to request password reset: %w", err)
	}

	return fmt.Sprintf("A password reset token has been sent to %s. The token is valid for 1 hour.", emailAddr), nil
}

// ResetPassword verifies the reset token and the old password, then stores
// the new password hash and clears the token and its expiry.
func (s *UserService) ResetPassword(ctx context.Context, token, oldPassword, newPassword, confirmPassword string) (string, error) {
	if newPassword != confirmPassword {
		return "", errors.New("New password and confirm password do not match.")
	}
	if len(newPassword) < 6 {
		return "", errors.New("Password must be at least 6 characters long.")
	}

	user, err := s.store.Users().GetByResetToken(ctx, token, time.Now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", errors.New("Invalid or expired reset token")
		}
		return "", fmt.Errorf("Failed to reset password: %w", err)
	}

	if !auth.CheckPassword(user.Password, oldPassword) {
		return "", errors.New("Invalid old password.")
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("Failed to reset password: %w", err)
	}

	user.Password = hash
	user.ResetToken = ""
	user.ResetTokenExpiry = nil
	if _, err := s.store.Users().Update(ctx, user); err != nil {
		return "", fmt.Errorf("Failed to reset password: %w", err)
	}

	return "Your password has been successfully reset.", nil
}
