package services

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/keynertyc/Fullstack-Test-01/internal/auth"
	"github.com/keynertyc/Fullstack-Test-01/internal/constants"
	"github.com/keynertyc/Fullstack-Test-01/internal/models"
	"github.com/keynertyc/Fullstack-Test-01/internal/repository"
)

var (
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrPasswordTooShort     = errors.New("password too short")
	ErrNameTooShort         = errors.New("name too short")
	ErrUserNotFound         = errors.New("user not found")
	ErrFailedToHashPassword = errors.New("failed to hash password")
)

// AuthService handles registration, login and token issuance.
type AuthService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Email    string
	Password string
	Name     string
}

// Register creates a new user and returns it with a signed token.
func (s *AuthService) Register(input RegisterInput) (*models.User, string, error) {
	email := strings.TrimSpace(strings.ToLower(input.Email))
	if len(input.Password) < constants.MinPasswordLength {
		return nil, "", ErrPasswordTooShort
	}
	if len(strings.TrimSpace(input.Name)) < constants.MinNameLength {
		return nil, "", ErrNameTooShort
	}

	if _, err := s.userRepo.FindByEmail(email); err == nil {
		return nil, "", ErrEmailTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check email: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hashedPassword),
		Name:         strings.TrimSpace(input.Name),
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, token, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Email    string
	Password string
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(input LoginInput) (*models.User, string, error) {
	user, err := s.userRepo.FindByEmail(strings.TrimSpace(strings.ToLower(input.Email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign token: %w", err)
	}

	return user, token, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id uint64) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	return user, nil
}
