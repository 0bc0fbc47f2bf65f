package services

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"log"
	"time"

	"etalase/internal/apperrors"
	"etalase/internal/models"
	"etalase/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles admin registration, login, and token validation.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	adminKey   string        // shared provisioning secret gating registration
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret, adminKey string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		adminKey:   adminKey,
		tokenDurat: 24 * time.Hour, // Token valid for 24 hours
	}
}

// RegisterInput carries the fields of an admin registration request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// RegisterAdmin provisions a new admin identity. The supplied key must match
// the configured provisioning secret, and the email must be unused. The
// password is bcrypt-hashed before it touches the store.
func (s *AuthService) RegisterAdmin(input RegisterInput, adminKey string) (*models.User, error) {
	if subtle.ConstantTimeCompare([]byte(adminKey), []byte(s.adminKey)) != 1 {
		return nil, apperrors.ErrInvalidAdminKey
	}

	existing, err := s.userRepo.GetByEmail(input.Email)
	if err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, apperrors.ErrEmailTaken
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     models.RoleAdmin,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to register admin: %w", err)
	}
	return user, nil
}

// Login authenticates an admin by email and password and returns a signed
// JWT. The caller is never told whether the email or the password was wrong.
func (s *AuthService) Login(email, password string) (string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return "", apperrors.ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"name":    user.Name,
		"role":    user.Role,
		"exp":     time.Now().Add(s.tokenDurat).Unix(),
		"iat":     time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT, returning the session it carries.
func (s *AuthService) ValidateToken(tokenString string) (*models.Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	session := &models.Session{}
	if v, ok := claims["user_id"].(string); ok {
		session.UserID = v
	}
	if v, ok := claims["email"].(string); ok {
		session.Email = v
	}
	if v, ok := claims["name"].(string); ok {
		session.Name = v
	}
	if v, ok := claims["role"].(string); ok {
		session.Role = v
	}
	return session, nil
}
