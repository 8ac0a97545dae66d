package auth_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tdnguyen/apologia/internal/platform/apperr"
	"github.com/tdnguyen/apologia/internal/platform/sec"
	"github.com/tdnguyen/apologia/internal/users/auth"
)

type fakeAccountRepository struct {
	accounts map[string]*auth.Account
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.Account, error) {
	account, ok := f.accounts[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	return account, nil
}

func (f *fakeAccountRepository) FindByLogin(_ context.Context, login string) (*auth.Account, error) {
	for _, account := range f.accounts {
		if account.Username == login || account.Email == login {
			return account, nil
		}
	}
	return nil, apperr.NotFound("Account")
}

func (f *fakeAccountRepository) Create(_ context.Context, account *auth.Account) error {
	f.accounts[account.ID] = account
	return nil
}

func (f *fakeAccountRepository) List(_ context.Context) ([]*auth.Account, error) {
	out := []*auth.Account{}
	for _, account := range f.accounts {
		out = append(out, account)
	}
	return out, nil
}

func (f *fakeAccountRepository) UpdatePassword(_ context.Context, id, passwordHash string) error {
	account, ok := f.accounts[id]
	if !ok {
		return apperr.NotFound("Account")
	}
	account.PasswordHash = passwordHash
	return nil
}

// fakeSessionRepository mirrors the Redis store: Get on an unknown hash is an
// auth failure, Delete on an unknown hash is a no-op.
type fakeSessionRepository struct {
	sessions map[string]*auth.Session
}

func (f *fakeSessionRepository) Set(_ context.Context, tokenHash string, session *auth.Session, _ time.Duration) error {
	f.sessions[tokenHash] = session
	return nil
}

func (f *fakeSessionRepository) Get(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := f.sessions[tokenHash]
	if !ok {
		return nil, apperr.Unauthorized("Session is invalid or expired")
	}
	return session, nil
}

func (f *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(f.sessions, tokenHash)
	return nil
}

type fakeTokenProvider struct{}

func (fakeTokenProvider) GenerateAccessToken(userID, _, _ string, _ []string, _ time.Duration) (string, error) {
	return "access-token-for-" + userID, nil
}

func newFixture(t *testing.T) (*auth.Service, *fakeAccountRepository, *fakeSessionRepository) {
	t.Helper()

	passwordHash, err := sec.HashPassword("rat-vung-chac")
	require.NoError(t, err)

	accounts := &fakeAccountRepository{accounts: map[string]*auth.Account{
		"u1": {
			ID:           "u1",
			Username:     "tam",
			Email:        "tam@apologia.app",
			PasswordHash: passwordHash,
			Role:         sec.RoleAdmin,
		},
	}}
	sessions := &fakeSessionRepository{sessions: map[string]*auth.Session{}}

	service := auth.NewService(accounts, sessions, fakeTokenProvider{},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	return service, accounts, sessions
}

/*
TestLogin_CollapsesFailures verifies that an unknown login and a wrong
password are indistinguishable to the caller.
*/
func TestLogin_CollapsesFailures(t *testing.T) {
	service, _, _ := newFixture(t)

	_, _, unknownErr := service.Login(context.Background(), "nobody", "whatever", "", "")
	_, _, wrongErr := service.Login(context.Background(), "tam", "wrong-password", "", "")

	require.Error(t, unknownErr)
	require.Error(t, wrongErr)
	assert.Equal(t, apperr.As(unknownErr).Message, apperr.As(wrongErr).Message)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(wrongErr).Code)
}

/*
TestLogin_StoresSessionByDigest verifies that the refresh token itself never
reaches the session store, only its hash.
*/
func TestLogin_StoresSessionByDigest(t *testing.T) {
	service, _, sessions := newFixture(t)

	pair, account, err := service.Login(context.Background(), "tam", "rat-vung-chac", "test-agent", "10.0.0.1")
	require.NoError(t, err)
	require.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "u1", account.ID)

	_, storedRaw := sessions.sessions[pair.RefreshToken]
	assert.False(t, storedRaw, "raw refresh token must not be a session key")

	session, ok := sessions.sessions[sec.HashToken(pair.RefreshToken)]
	require.True(t, ok)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "test-agent", session.UserAgent)
}

/*
TestRefresh_IsSingleUse verifies rotation: the presented token is consumed,
so replaying it fails while the newly issued one works.
*/
func TestRefresh_IsSingleUse(t *testing.T) {
	service, _, _ := newFixture(t)

	pair, _, err := service.Login(context.Background(), "tam", "rat-vung-chac", "", "")
	require.NoError(t, err)

	rotated, _, err := service.Refresh(context.Background(), pair.RefreshToken, "", "")
	require.NoError(t, err)
	assert.NotEqual(t, pair.RefreshToken, rotated.RefreshToken)

	_, _, err = service.Refresh(context.Background(), pair.RefreshToken, "", "")
	require.Error(t, err, "a consumed refresh token must be rejected")
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	_, _, err = service.Refresh(context.Background(), rotated.RefreshToken, "", "")
	assert.NoError(t, err)
}

/*
TestLogout_IsIdempotent covers the empty-cookie and already-logged-out paths.
*/
func TestLogout_IsIdempotent(t *testing.T) {
	service, _, _ := newFixture(t)

	assert.NoError(t, service.Logout(context.Background(), ""))
	assert.NoError(t, service.Logout(context.Background(), "never-issued"))

	pair, _, err := service.Login(context.Background(), "tam", "rat-vung-chac", "", "")
	require.NoError(t, err)
	assert.NoError(t, service.Logout(context.Background(), pair.RefreshToken))
	assert.NoError(t, service.Logout(context.Background(), pair.RefreshToken))
}

/*
TestCreateAccount_Validation covers the provisioning rejection paths.
*/
func TestCreateAccount_Validation(t *testing.T) {
	tests := []struct {
		name     string
		account  *auth.Account
		password string
	}{
		{
			"unknown_role",
			&auth.Account{Username: "linh", Email: "linh@apologia.app", Role: "superuser"},
			"mat-khau-dai-du",
		},
		{
			"short_password",
			&auth.Account{Username: "linh", Email: "linh@apologia.app", Role: sec.RoleViewer},
			"ngan",
		},
		{
			"unknown_override",
			&auth.Account{
				Username:  "linh",
				Email:     "linh@apologia.app",
				Role:      sec.RoleViewer,
				Overrides: []string{"content:destroy"},
			},
			"mat-khau-dai-du",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, _, _ := newFixture(t)

			err := service.CreateAccount(context.Background(), tt.account, tt.password)
			require.Error(t, err)
			assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
		})
	}
}

/*
TestCreateAccount_HashesPassword verifies the stored account carries a hash,
never the plaintext.
*/
func TestCreateAccount_HashesPassword(t *testing.T) {
	service, accounts, _ := newFixture(t)

	account := &auth.Account{
		Username: "linh",
		Email:    "linh@apologia.app",
		Role:     sec.RoleContentManager,
	}
	require.NoError(t, service.CreateAccount(context.Background(), account, "mat-khau-dai-du"))

	stored := accounts.accounts[account.ID]
	require.NotNil(t, stored)
	assert.NotEqual(t, "mat-khau-dai-du", stored.PasswordHash)
	assert.True(t, sec.CheckPasswordHash("mat-khau-dai-du", stored.PasswordHash))
}

/*
TestChangePassword_RequiresCurrent verifies the current password gate and
that a successful change takes effect for the next login.
*/
func TestChangePassword_RequiresCurrent(t *testing.T) {
	service, _, _ := newFixture(t)

	err := service.ChangePassword(context.Background(), "u1", "wrong-password", "mat-khau-moi-dai")
	require.Error(t, err)
	assert.Equal(t, "UNAUTHORIZED", apperr.As(err).Code)

	require.NoError(t, service.ChangePassword(context.Background(), "u1", "rat-vung-chac", "mat-khau-moi-dai"))

	_, _, err = service.Login(context.Background(), "tam", "mat-khau-moi-dai", "", "")
	assert.NoError(t, err)
}
