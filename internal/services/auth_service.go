package services

import (
	"errors"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"sportsbook/internal/models"
)

// ErrInvalidCredentials is returned when the email/password pair does not
// match a registered user.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrEmailTaken is returned when registering an already registered email.
var ErrEmailTaken = errors.New("email already registered")

// AuthService handles registration and login business logic.
type AuthService struct {
	db         *gorm.DB
	audit      *AuditService
	adminEmail string
}

// NewAuthService creates a new AuthService. Users registering with adminEmail
// are granted the admin role automatically.
func NewAuthService(db *gorm.DB, audit *AuditService, adminEmail string) *AuthService {
	return &AuthService{db: db, audit: audit, adminEmail: adminEmail}
}

// Register creates a new user account.
func (s *AuthService) Register(email, password, timeZone string) (*models.User, error) {
	var existing models.User
	if err := s.db.Where("email = ?", email).First(&existing).Error; err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("database error: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if timeZone == "" {
		timeZone = "UTC"
	}

	user := models.User{
		Email:        email,
		PasswordHash: string(hash),
		TimeZone:     timeZone,
		IsAdmin:      s.adminEmail != "" && email == s.adminEmail,
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.audit.Record(&user.ID, "Register", fmt.Sprintf("Email: %s", user.Email), nil)
	log.Printf("New user registered: %s (ID: %d)", user.Email, user.ID)
	return &user, nil
}

// Login verifies an email/password pair and returns the user.
func (s *AuthService) Login(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// GetUserByID retrieves a user by their ID.
func (s *AuthService) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	if err := s.db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ResetPassword sets a new password for the given user on behalf of an admin.
func (s *AuthService) ResetPassword(actorID uint, email, newPassword string) error {
	var user models.User
	if err := s.db.Where("email = ?", email).First(&user).Error; err != nil {
		return fmt.Errorf("user not found: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.audit.Record(&actorID, "Reset Password",
		fmt.Sprintf("Password reset for %s", user.Email), nil)
	return nil
}
