package services

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"bookstore-api/auth"
	"bookstore-api/models"
	"bookstore-api/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService covers registration, login, and the user admin surface.
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, *ServiceError)
	Login(ctx context.Context, req *models.LoginRequest) (string, *ServiceError)
	ListUsers(ctx context.Context, id auth.Identity) ([]models.UserProfile, *ServiceError)
	GetUser(ctx context.Context, id auth.Identity, userID uuid.UUID) (*models.UserProfile, *ServiceError)
}

type authServiceImpl struct {
	store  repository.Store
	tokens TokenService
	logger *zap.Logger
}

func NewAuthService(store repository.Store, tokens TokenService, logger *zap.Logger) AuthService {
	return &authServiceImpl{store: store, tokens: tokens, logger: logger}
}

func (s *authServiceImpl) Register(ctx context.Context, req *models.RegisterRequest) (*models.UserProfile, *ServiceError) {
	if !passwordAcceptable(req.Password) {
		return nil, &ServiceError{StatusCode: 400, Message: "Password must be at least 8 characters long and contain a number."}
	}

	email := strings.ToLower(req.Email)
	if _, err := s.store.Users().FindByEmail(ctx, email); err == nil {
		return nil, &ServiceError{StatusCode: 400, Message: "Email already in use"}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, internalError("An error occurred during registration.", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, internalError("An error occurred during registration.", err)
	}

	user := &models.User{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    email,
		Password: string(hashed),
		Role:     req.Role,
	}
	if err := s.store.Users().Create(ctx, user); err != nil {
		s.logger.Error("Failed to create user", zap.Error(err))
		return nil, internalError("An error occurred during registration.", err)
	}

	s.logger.Info("User registered", zap.String("email", user.Email), zap.String("role", string(user.Role)))
	profile := user.Profile()
	return &profile, nil
}

func (s *authServiceImpl) Login(ctx context.Context, req *models.LoginRequest) (string, *ServiceError) {
	user, err := s.store.Users().FindByEmail(ctx, req.Email)
	if err != nil {
		return "", &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", &ServiceError{StatusCode: 401, Message: "Invalid credentials"}
	}

	token, err := s.tokens.Generate(user)
	if err != nil {
		s.logger.Error("Failed to sign token", zap.Error(err))
		return "", internalError("An error occurred during login.", err)
	}
	return token, nil
}

func (s *authServiceImpl) ListUsers(ctx context.Context, id auth.Identity) ([]models.UserProfile, *ServiceError) {
	if svcErr := requireRole(id, models.RoleAdmin); svcErr != nil {
		return nil, svcErr
	}

	users, err := s.store.Users().FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list users", zap.Error(err))
		return nil, internalError("An error occurred while retrieving users.", err)
	}

	profiles := make([]models.UserProfile, 0, len(users))
	for i := range users {
		profiles = append(profiles, users[i].Profile())
	}
	return profiles, nil
}

// GetUser returns the caller's own record. Other users' records are
// reported as absent.
func (s *authServiceImpl) GetUser(ctx context.Context, id auth.Identity, userID uuid.UUID) (*models.UserProfile, *ServiceError) {
	if svcErr := requireRole(id, models.RoleUser); svcErr != nil {
		return nil, svcErr
	}
	if userID != id.UserID {
		return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
	}

	user, err := s.store.Users().FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &ServiceError{StatusCode: 404, Message: "User not found"}
		}
		s.logger.Error("Failed to fetch user", zap.Error(err))
		return nil, internalError("An error occurred while retrieving user information.", err)
	}

	profile := user.Profile()
	return &profile, nil
}

func passwordAcceptable(password string) bool {
	if len(password) < 8 {
		return false
	}
	for _, r := range password {
		if unicode.IsDigit(r) {
			return true
		}
	}
	return false
}
