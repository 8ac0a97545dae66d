// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package sec

// # Operator Roles

// UserRole represents the authorization level granted to a CMS operator account.
type UserRole string

const (
	// Unrestricted system access
	RoleAdmin UserRole = "admin"

	// Can author, publish, and export content and manage the sync feed
	RoleContentManager UserRole = "content_manager"

	// Read-only access to the CMS (reviewers, translators)
	RoleViewer UserRole = "viewer"
)

// # Capabilities

// Capability is a single named permission checked at the route level.
//
// Endpoints declare the capability they require; roles map to default
// capability sets. This replaces scattered role-string comparisons with one
// check function, [Allowed].
type Capability string

const (
	CapContentRead    Capability = "content:read"
	CapContentWrite   Capability = "content:write"
	CapContentPublish Capability = "content:publish"
	CapSyncManage     Capability = "sync:manage"
	CapUsersManage    Capability = "users:manage"
	CapExportRead     Capability = "export:read"
)

// roleCapabilities maps each role to its default capability set.
var roleCapabilities = map[UserRole][]Capability{
	RoleAdmin: {
		CapContentRead, CapContentWrite, CapContentPublish,
		CapSyncManage, CapUsersManage, CapExportRead,
	},
	RoleContentManager: {
		CapContentRead, CapContentWrite, CapContentPublish,
		CapSyncManage, CapExportRead,
	},
	RoleViewer: {
		CapContentRead, CapExportRead,
	},
}

// Defaults returns the default capability set for a role.
// Unknown roles carry no capabilities.
func (r UserRole) Defaults() []Capability {
	return roleCapabilities[r]
}

// Has reports whether the role's default set includes the capability.
func (r UserRole) Has(capability Capability) bool {
	for _, granted := range roleCapabilities[r] {
		if granted == capability {
			return true
		}
	}
	return false
}

// Allowed is the single authorization check for the administrative API.
//
// An operator is allowed if the capability is in their role's default set OR
// in their per-account override list. Overrides only ever widen access;
// revocation is done by changing the role.
func Allowed(role UserRole, overrides []string, capability Capability) bool {
	if role.Has(capability) {
		return true
	}
	for _, override := range overrides {
		if Capability(override) == capability {
			return true
		}
	}
	return false
}

// AllowedClaims applies [Allowed] to a verified token's claims.
func AllowedClaims(claims *AuthClaims, capability Capability) bool {
	if claims == nil {
		return false
	}
	return Allowed(UserRole(claims.Role), claims.Overrides, capability)
}
