package service

import (
	"context"
	"errors"
	"fmt"

	"delivery-management-api/apperr"
	"delivery-management-api/auth"
	"delivery-management-api/models"
	"delivery-management-api/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	Email    string      `json:"email" validate:"account_email"`
	Password string      `json:"password" validate:"min=4,max=10"`
	Role     models.Role `json:"role" validate:"enum"`
}

type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

var registerMessages = map[string]string{
	"email":    "Invalid email format",
	"password": "Password must be between 4 and 10 characters long",
	"role":     "Invalid role. It must be one of admin, user, or driver",
}

// AuthService registers accounts and exchanges credentials for tokens
type AuthService struct {
	store    store.Store
	tokens   *auth.TokenManager
	hashCost int
	log      *zap.Logger
}

func NewAuthService(st store.Store, tokens *auth.TokenManager, log *zap.Logger) *AuthService {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthService{store: st, tokens: tokens, hashCost: bcrypt.DefaultCost, log: log}
}

// Register creates a user with a bcrypt-hashed password
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if _, err := s.store.Users().FindByEmail(ctx, in.Email); err == nil {
		return nil, apperr.New(apperr.Conflict, "User already exists")
	} else if !errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("find user: %w", err)
	}

	if err := validateInput(in, registerMessages); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         in.Role,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperr.New(apperr.Conflict, "User already exists")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.log.Info("user registered", zap.String("user_id", user.ID), zap.String("role", string(user.Role)))
	return user, nil
}

// Login verifies the credentials and returns a signed token for the user
func (s *AuthService) Login(ctx context.Context, in LoginInput) (string, *models.User, error) {
	user, err := s.store.Users().FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", nil, apperr.New(apperr.Validation, "Invalid credentials")
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return "", nil, apperr.New(apperr.Validation, "Invalid credentials")
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}
	return token, user, nil
}
