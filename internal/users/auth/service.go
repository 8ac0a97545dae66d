// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package auth

import (
	"context"
	"log/slog"
	"time"

	"github.com/tdnguyen/apologia/internal/platform/apperr"
	"github.com/tdnguyen/apologia/internal/platform/sec"
	"github.com/tdnguyen/apologia/internal/platform/validate"
	"github.com/tdnguyen/apologia/pkg/uuid"
)

// TokenProvider abstracts JWT generation so the service can be tested
// without RSA key material.
type TokenProvider interface {
	GenerateAccessToken(userID, username, role string, overrides []string, timeToLive time.Duration) (string, error)
}

// TokenPair is what a successful login or refresh hands back.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"-"` // Delivered via HttpOnly cookie, never in the body.
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

type Service struct {
	accounts AccountRepository
	sessions SessionRepository
	tokens   TokenProvider
	logger   *slog.Logger
}

func NewService(accounts AccountRepository, sessions SessionRepository, tokens TokenProvider, logger *slog.Logger) *Service {
	return &Service{
		accounts: accounts,
		sessions: sessions,
		tokens:   tokens,
		logger:   logger,
	}
}

// # Session Lifecycle

// Login verifies credentials and opens a refresh session.
//
// Lookup failures and password mismatches collapse into the same
// Unauthorized error so the endpoint does not leak which usernames exist.
func (service *Service) Login(context context.Context, login, password, userAgent, ipAddress string) (*TokenPair, *Account, error) {
	account, err := service.accounts.FindByLogin(context, login)
	if err != nil {
		return nil, nil, apperr.Unauthorized("Invalid credentials")
	}

	if !sec.CheckPasswordHash(password, account.PasswordHash) {
		service.logger.Warn("login_failed", slog.String("login", login))
		return nil, nil, apperr.Unauthorized("Invalid credentials")
	}

	pair, err := service.openSession(context, account, userAgent, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("login_succeeded",
		slog.String("user_id", account.ID),
		slog.String("username", account.Username),
	)
	return pair, account, nil
}

// Refresh rotates a refresh session: the presented token is consumed and a
// new pair is issued. A token that was already used (or never existed) is
// rejected, which also surfaces token theft.
func (service *Service) Refresh(context context.Context, refreshToken, userAgent, ipAddress string) (*TokenPair, *Account, error) {
	tokenHash := sec.HashToken(refreshToken)

	session, err := service.sessions.Get(context, tokenHash)
	if err != nil {
		return nil, nil, err
	}

	// Consume before reissue so the old token is single-use.
	if err := service.sessions.Delete(context, tokenHash); err != nil {
		return nil, nil, err
	}

	account, err := service.accounts.FindByID(context, session.UserID)
	if err != nil {
		return nil, nil, apperr.Unauthorized("Account no longer exists")
	}

	pair, err := service.openSession(context, account, userAgent, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	service.logger.Info("session_refreshed", slog.String("user_id", account.ID))
	return pair, account, nil
}

// Logout terminates the presented refresh session. Unknown tokens are a
// no-op: logout must be idempotent.
func (service *Service) Logout(context context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return service.sessions.Delete(context, sec.HashToken(refreshToken))
}

func (service *Service) openSession(context context.Context, account *Account, userAgent, ipAddress string) (*TokenPair, error) {
	accessToken, err := service.tokens.GenerateAccessToken(
		account.ID, account.Username, string(account.Role), account.Overrides, AccessTokenTTL)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	refreshToken, err := sec.GenerateSecureToken(RefreshTokenLength)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	session := &Session{
		UserID:    account.ID,
		UserAgent: userAgent,
		IPAddress: ipAddress,
		CreatedAt: time.Now(),
	}
	if err := service.sessions.Set(context, sec.HashToken(refreshToken), session, RefreshTokenTTL); err != nil {
		return nil, apperr.Internal(err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(AccessTokenTTL.Seconds()),
	}, nil
}

// # Account Management

// GetAccount returns one operator account.
func (service *Service) GetAccount(context context.Context, id string) (*Account, error) {
	return service.accounts.FindByID(context, id)
}

// ListAccounts returns every operator account.
func (service *Service) ListAccounts(context context.Context) ([]*Account, error) {
	return service.accounts.List(context)
}

// CreateAccount provisions a new operator. The route is gated on
// users:manage, so only administrators reach this.
func (service *Service) CreateAccount(context context.Context, account *Account, password string) error {
	validator := &validate.Validator{}
	validator.Required(FieldUsername, account.Username).
		MinLen(FieldUsername, account.Username, 3).
		MaxLen(FieldUsername, account.Username, 50)
	validator.Required(FieldEmail, account.Email).Email(FieldEmail, account.Email)
	validator.MaxLen(FieldDisplayName, account.DisplayName, 100)
	validator.Required(FieldPassword, password).MinLen(FieldPassword, password, PasswordMinLength)
	validator.OneOf(FieldRole, string(account.Role),
		string(sec.RoleAdmin), string(sec.RoleContentManager), string(sec.RoleViewer))
	for _, override := range account.Overrides {
		validator.Custom(FieldOverrides, !knownCapability(override),
			"unknown capability: "+override)
	}
	if err := validator.Err(); err != nil {
		return err
	}

	passwordHash, err := sec.HashPassword(password)
	if err != nil {
		return apperr.Internal(err)
	}

	account.ID = uuid.New()
	account.PasswordHash = passwordHash

	if err := service.accounts.Create(context, account); err != nil {
		return err
	}

	service.logger.Info("account_provisioned",
		slog.String("user_id", account.ID),
		slog.String("username", account.Username),
		slog.String("role", string(account.Role)),
	)
	return nil
}

// ChangePassword verifies the current password before replacing it.
// Existing refresh sessions stay valid; access tokens expire on their own.
func (service *Service) ChangePassword(context context.Context, accountID, currentPassword, newPassword string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, currentPassword)
	validator.Required(FieldNewPassword, newPassword).
		MinLen(FieldNewPassword, newPassword, PasswordMinLength)
	if err := validator.Err(); err != nil {
		return err
	}

	account, err := service.accounts.FindByID(context, accountID)
	if err != nil {
		return err
	}

	if !sec.CheckPasswordHash(currentPassword, account.PasswordHash) {
		return apperr.Unauthorized("Current password is incorrect")
	}

	newHash, err := sec.HashPassword(newPassword)
	if err != nil {
		return apperr.Internal(err)
	}
	if err := service.accounts.UpdatePassword(context, accountID, newHash); err != nil {
		return err
	}

	service.logger.Info("password_changed", slog.String("user_id", accountID))
	return nil
}

func knownCapability(candidate string) bool {
	switch sec.Capability(candidate) {
	case sec.CapContentRead, sec.CapContentWrite, sec.CapContentPublish,
		sec.CapSyncManage, sec.CapUsersManage, sec.CapExportRead:
		return true
	}
	return false
}
