package service

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"deskhive/internal/db"
	"deskhive/internal/repository"
)

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
	CreateUser(ctx context.Context, orgID int64, email, password string) error
}

type authService struct {
	users *repository.UserRepository
}

func NewAuthService(users *repository.UserRepository) AuthService {
	return &authService{users: users}
}

func (s *authService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", errors.New("invalid credentials")
		}
		return "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", errors.New("invalid credentials")
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		return "", errors.New("JWT_SECRET not set")
	}

	claims := jwt.MapClaims{
		"user_id": user.ID,
		"org_id":  user.OrgID,
		"email":   user.Email,
		"exp":     time.Now().Add(12 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func (s *authService) CreateUser(ctx context.Context, orgID int64, email, password string) error {
	if email == "" || password == "" {
		return errors.New("email and password cannot be empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user := &db.User{OrgID: orgID, Email: email, PasswordHash: string(hash)}
	return s.users.Create(ctx, user)
}
