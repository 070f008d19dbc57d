package users

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type service struct {
	repo   Repository
	logger *zap.SugaredLogger
}

var _ Service = &service{}

func NewService(repo Repository, logger *zap.SugaredLogger) (Service, error) {
	return &service{
		repo:   repo,
		logger: logger,
	}, nil
}

func (s *service) Register(ctx context.Context, registration Registration) (*User, error) {
	if err := registration.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(registration.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := registration.Role
	if role == "" {
		role = RolePatient
	}

	username := strings.TrimSpace(registration.Username)
	user := User{
		Username:     username,
		UsernameKey:  UsernameKey(username),
		PasswordHash: string(hash),
		Role:         role,
		CreatedTime:  time.Now(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Infow("registered user", "username", created.Username, "role", created.Role)
	return created, nil
}

func (s *service) Authenticate(ctx context.Context, username string, password string) (*User, error) {
	user, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if err == ErrNotFound {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(strings.TrimSpace(password))); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *service) Get(ctx context.Context, username string) (*User, error) {
	return s.repo.GetByUsername(ctx, username)
}
