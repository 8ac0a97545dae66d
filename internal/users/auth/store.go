// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package auth

import (
	"context"
	"time"
)

// # Account Data Access

// AccountRepository defines the data access contract for operator accounts.
type AccountRepository interface {
	// FindByID returns the account with the given ID.
	FindByID(context context.Context, id string) (*Account, error)

	// FindByLogin resolves a login identifier, which may be either the
	// username or the email address.
	FindByLogin(context context.Context, login string) (*Account, error)

	// Create persists a newly provisioned operator account.
	Create(context context.Context, account *Account) error

	// List returns all operator accounts ordered by creation time.
	List(context context.Context) ([]*Account, error)

	// UpdatePassword replaces only the account's password hash.
	UpdatePassword(context context.Context, accountID, newHash string) error
}

// # Session Data Access

// SessionRepository defines the contract for refresh-token sessions. Keys
// are token digests, never raw tokens; expiry is enforced by the store.
type SessionRepository interface {
	// Set stores a session under the token digest for the given duration.
	Set(context context.Context, tokenHash string, session *Session, ttl time.Duration) error

	// Get returns the session for a token digest, or an Unauthorized error
	// when the digest is unknown or expired.
	Get(context context.Context, tokenHash string) (*Session, error)

	// Delete removes a single session (logout, or rotation of a used token).
	Delete(context context.Context, tokenHash string) error
}
