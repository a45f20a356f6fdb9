package service

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/WillBBHM/ProgrammationWeb/pkg/auth"
	"github.com/WillBBHM/ProgrammationWeb/pkg/httperr"
	"github.com/WillBBHM/ProgrammationWeb/services/auth-service/internal/domain"
	"github.com/WillBBHM/ProgrammationWeb/services/auth-service/internal/repository"
)

type AuthSvc struct {
	repo       *repository.UserRepo
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewAuthSvc(r *repository.UserRepo, accessTTL, refreshTTL time.Duration) *AuthSvc {
	return &AuthSvc{repo: r, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

func (s *AuthSvc) Register(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, httperr.Validation("username and password are required")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &domain.User{Username: username, PasswordHash: string(hash)}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, httperr.Conflict("username already taken")
		}
		return nil, err
	}
	return u, nil
}

// dummyHash keeps the unknown-user path as slow as the wrong-password path.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("placeholder"), bcrypt.DefaultCost)

// Login verifies the credentials and mints access/refresh tokens. The same
// 401 message covers unknown user and wrong password; bcrypt comparison
// runs either way so timing does not reveal which one failed.
func (s *AuthSvc) Login(ctx context.Context, username, password string) (*domain.User, string, string, error) {
	if username == "" || password == "" {
		return nil, "", "", httperr.Validation("username and password are required")
	}
	badCreds := httperr.Unauthorized("invalid username or password")

	u, err := s.repo.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, "", "", badCreds
		}
		return nil, "", "", err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, "", "", badCreds
	}
	access, err := auth.CreateAccessToken(u.ID, u.Username, s.accessTTL)
	if err != nil {
		return nil, "", "", err
	}
	refresh, err := auth.CreateAccessToken(u.ID, u.Username, s.refreshTTL)
	if err != nil {
		return nil, "", "", err
	}
	return u, access, refresh, nil
}
