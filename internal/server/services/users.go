// Package services contains server-side business logic. This file implements
// UserService: signup, login, token-based user resolution, password updates,
// and the admin-only role and account management operations.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/ysolovyov/knorozov/internal/common"
	"github.com/ysolovyov/knorozov/internal/dbx"
	"github.com/ysolovyov/knorozov/internal/server/auth"
	"github.com/ysolovyov/knorozov/internal/server/config"
	"github.com/ysolovyov/knorozov/internal/server/models"
	"github.com/ysolovyov/knorozov/internal/server/repositories/repomanager"
	"github.com/ysolovyov/knorozov/internal/server/roles"
)

// TokenPair bundles a short-lived access token and a long-lived refresh
// token. The refresh token is issued for clients to hold; no operation
// redeems it yet.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type UserService struct {
	db                           *sql.DB
	repomanager                  repomanager.RepositoryManager
	accessSecret                 []byte
	refreshSecret                []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		repomanager:                  m,
		accessSecret:                 []byte(cfg.AccessSecretKey),
		refreshSecret:                []byte(cfg.RefreshSecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// SignUp creates a new user. The first user ever created is granted the
// admin role; everyone after that starts with no roles. A taken login yields
// ErrorAlreadyExists.
func (s *UserService) SignUp(ctx context.Context, login string, password string) (*models.User, error) {

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, common.ErrorInternal
	}

	var created *models.User

	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetByLogin(ctx, login)
		if err == nil {
			return common.ErrorAlreadyExists
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return fmt.Errorf("error checking login: %w", err)
		}

		count, err := repo.Count(ctx)
		if err != nil {
			return fmt.Errorf("error counting users: %w", err)
		}

		userRoles := []string{}
		if count == 0 {
			userRoles = []string{roles.Admin}
		}

		created, err = repo.Create(ctx, &models.User{
			Login:        login,
			PasswordHash: passwordHash,
			Roles:        userRoles,
		})
		if err != nil {
			return fmt.Errorf("error creating user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Login verifies the credentials and, on success, returns a new TokenPair.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, login string, password string) (*TokenPair, error) {

	repo := s.repomanager.Users(s.db)

	user, err := repo.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	return s.generateTokenPair(user.Login)
}

// Authenticate resolves a bearer access token to the full user record:
// signature check, then expiry check, then user lookup. Every protected
// operation runs through this before any mutation is attempted.
func (s *UserService) Authenticate(ctx context.Context, token string) (*models.User, error) {

	subject, expires, err := auth.DecodeToken(token, s.accessSecret)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	if expires.Before(time.Now()) {
		return nil, common.ErrTokenExpired
	}

	user, err := s.repomanager.Users(s.db).GetByLogin(ctx, subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, common.ErrorInternal
	}

	return user, nil
}

// GetUser returns the user with the given login.
func (s *UserService) GetUser(ctx context.Context, login string) (*models.User, error) {
	user, err := s.repomanager.Users(s.db).GetByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users; admin only.
func (s *UserService) ListUsers(ctx context.Context, actor *models.User) ([]*models.User, error) {
	if !roles.CanManage(actor.Roles) {
		return nil, common.ErrorForbidden
	}
	return s.repomanager.Users(s.db).List(ctx)
}

// UpdatePassword re-hashes and stores a new password for the acting user.
func (s *UserService) UpdatePassword(ctx context.Context, actor *models.User, password string) error {
	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return common.ErrorInternal
	}
	return s.repomanager.Users(s.db).UpdatePassword(ctx, actor.Login, passwordHash)
}

// DeleteUser removes a user; admin only. A user holding the admin role can
// never be deleted through this path.
func (s *UserService) DeleteUser(ctx context.Context, actor *models.User, login string) error {
	if !roles.CanManage(actor.Roles) {
		return common.ErrorForbidden
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		target, err := repo.GetByLogin(ctx, login)
		if err != nil {
			return err
		}

		if roles.IsAdmin(target.Roles) {
			return common.ErrorForbidden
		}

		return repo.Delete(ctx, login)
	})
}

// SetRoles replaces the target's role set with the de-duplicated requested set.
func (s *UserService) SetRoles(ctx context.Context, actor *models.User, login string, codes []string) error {
	return s.mutateRoles(ctx, actor, login, codes, func(existing, requested []string) []string {
		return requested
	})
}

// AddRoles merges the requested codes into the target's role set.
func (s *UserService) AddRoles(ctx context.Context, actor *models.User, login string, codes []string) error {
	return s.mutateRoles(ctx, actor, login, codes, func(existing, requested []string) []string {
		return append(existing, requested...)
	})
}

// RemoveRoles removes the requested codes from the target's role set.
func (s *UserService) RemoveRoles(ctx context.Context, actor *models.User, login string, codes []string) error {
	return s.mutateRoles(ctx, actor, login, codes, func(existing, requested []string) []string {
		drop := make(map[string]struct{}, len(requested))
		for _, c := range requested {
			drop[c] = struct{}{}
		}
		kept := []string{}
		for _, c := range existing {
			if _, ok := drop[c]; !ok {
				kept = append(kept, c)
			}
		}
		return kept
	})
}

// mutateRoles applies the shared role-mutation contract: the actor must be
// admin, the target must exist and must not itself be admin, and every
// requested code must name a registered language (first unknown code wins,
// in input order). The combined result is stored de-duplicated.
func (s *UserService) mutateRoles(ctx context.Context, actor *models.User, login string, codes []string, combine func(existing, requested []string) []string) error {
	if !roles.CanManage(actor.Roles) {
		return common.ErrorForbidden
	}

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		target, err := repo.GetByLogin(ctx, login)
		if err != nil {
			return err
		}

		if roles.IsAdmin(target.Roles) {
			return common.ErrorForbidden
		}

		known, err := s.repomanager.Languages(tx).List(ctx)
		if err != nil {
			return fmt.Errorf("error listing languages: %w", err)
		}
		knownCodes := make(map[string]struct{}, len(known))
		for _, l := range known {
			knownCodes[l.Code] = struct{}{}
		}
		for _, code := range codes {
			if _, ok := knownCodes[code]; !ok {
				return &common.UnknownLanguageError{Code: code}
			}
		}

		newRoles := dedupe(combine(target.Roles, codes))

		return repo.UpdateRoles(ctx, login, newRoles)
	})
}

// dedupe collapses duplicates and sorts; role sets carry no order.
func dedupe(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		result = append(result, c)
	}
	sort.Strings(result)
	return result
}

func (s *UserService) generateTokenPair(login string) (*TokenPair, error) {
	accessToken, err := auth.IssueToken(login, s.accessSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := auth.IssueToken(login, s.refreshSecret, s.refreshTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}
