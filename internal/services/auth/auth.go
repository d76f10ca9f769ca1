// Package auth реализует регистрацию и вход пользователей.
// Пароли хранятся как bcrypt-хеши, при входе выдается JWT с ролью.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/fieldray/fieldops/internal/lib/jwt"
	"github.com/fieldray/fieldops/internal/lib/password"
	"github.com/fieldray/fieldops/internal/lib/sl"
	"github.com/fieldray/fieldops/internal/models"
	"github.com/fieldray/fieldops/internal/storage/repository"
)

// ErrInvalidCredentials возвращается при неверной паре логин/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// UserRepository описывает методы хранилища для пользователей.
type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) error
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// AuthService сервис регистрации и входа.
type AuthService struct {
	repo  UserRepository
	maker jwt.Maker
	log   *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(repo UserRepository, maker jwt.Maker, log *slog.Logger) *AuthService {
	return &AuthService{repo: repo, maker: maker, log: log}
}

// Register создаёт пользователя с ролью диспетчера. Возвращает uid.
func (s *AuthService) Register(ctx context.Context, req models.DummyRegisterUser) (string, error) {
	const op = "services.auth.Register"

	hash, err := password.GetHash(req.Password)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	user := models.User{
		UID:          uuid.NewString(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         models.RoleDispatcher,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("user registered", slog.String("username", user.Username))
	return user.UID, nil
}

// Login проверяет пару логин/пароль и выдает JWT.
func (s *AuthService) Login(ctx context.Context, req models.DummyLoginUser) (string, error) {
	const op = "services.auth.Login"

	user, err := s.repo.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := password.CompareHash(user.PasswordHash, req.Password); err != nil {
		s.log.Warn("login failed", slog.String("username", req.Username), sl.Err(err))
		return "", ErrInvalidCredentials
	}

	token, err := s.maker.GenerateToken(user.Username, user.Role, user.UID)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}
