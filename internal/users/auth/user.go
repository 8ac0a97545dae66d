// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

/*
Package auth implements operator identity and session management for the CMS.

Operators are provisioned by an administrator; there is no self-registration
and mobile readers never authenticate at all (the sync feed is public).
Identity is carried in short-lived RS256 access tokens; long-lived refresh
sessions live in Redis and are rotated on every use.
*/
package auth

import (
	"time"

	"github.com/tdnguyen/apologia/internal/platform/sec"
)

// # Domain Entities

// Account represents a CMS operator.
type Account struct {
	ID           string       `json:"id"`
	Username     string       `json:"username"`
	Email        string       `json:"email"`
	PasswordHash string       `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string       `json:"display_name"`
	Role         sec.UserRole `json:"role"`

	// Overrides are per-account capability grants beyond the role default.
	// Empty for most accounts.
	Overrides []string `json:"capability_overrides,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Session represents an active refresh-token session held in Redis.
type Session struct {
	UserID    string    `json:"user_id"`
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername        = "username"
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldDisplayName     = "display_name"
	FieldLogin           = "login"
	FieldRole            = "role"
	FieldOverrides       = "capability_overrides"
	FieldCurrentPassword = "current_password"
	FieldNewPassword     = "new_password"
)
