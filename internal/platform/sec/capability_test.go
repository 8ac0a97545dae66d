// Copyright (c) 2026 Apologia. All rights reserved.
// Author: tam.nguyendinh.vn@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tdnguyen/apologia/internal/platform/sec"
)

/*
TestRole_Defaults verifies the default capability set of each role.
*/
func TestRole_Defaults(t *testing.T) {
	tests := []struct {
		name       string
		role       sec.UserRole
		capability sec.Capability
		allowed    bool
	}{
		{"admin_manages_users", sec.RoleAdmin, sec.CapUsersManage, true},
		{"admin_manages_sync", sec.RoleAdmin, sec.CapSyncManage, true},
		{"manager_publishes", sec.RoleContentManager, sec.CapContentPublish, true},
		{"manager_manages_sync", sec.RoleContentManager, sec.CapSyncManage, true},
		{"manager_cannot_manage_users", sec.RoleContentManager, sec.CapUsersManage, false},
		{"viewer_reads", sec.RoleViewer, sec.CapContentRead, true},
		{"viewer_exports", sec.RoleViewer, sec.CapExportRead, true},
		{"viewer_cannot_write", sec.RoleViewer, sec.CapContentWrite, false},
		{"viewer_cannot_publish", sec.RoleViewer, sec.CapContentPublish, false},
		{"unknown_role_has_nothing", sec.UserRole("reader"), sec.CapContentRead, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.role.Has(tt.capability))
		})
	}
}

/*
TestAllowed_Overrides verifies that per-account overrides widen access beyond
the role default, and never narrow it.
*/
func TestAllowed_Overrides(t *testing.T) {
	// Override grants a capability the role lacks.
	assert.True(t, sec.Allowed(sec.RoleViewer, []string{"content:write"}, sec.CapContentWrite))

	// Irrelevant overrides change nothing.
	assert.False(t, sec.Allowed(sec.RoleViewer, []string{"export:read"}, sec.CapContentWrite))

	// Role defaults still apply alongside overrides.
	assert.True(t, sec.Allowed(sec.RoleViewer, []string{"content:write"}, sec.CapContentRead))

	// Unknown capability strings in the override list are inert.
	assert.False(t, sec.Allowed(sec.RoleViewer, []string{"bogus"}, sec.CapUsersManage))
}

/*
TestAllowedClaims covers the nil-claims (anonymous request) path.
*/
func TestAllowedClaims(t *testing.T) {
	assert.False(t, sec.AllowedClaims(nil, sec.CapContentRead))

	claims := &sec.AuthClaims{Role: string(sec.RoleContentManager)}
	assert.True(t, sec.AllowedClaims(claims, sec.CapContentPublish))
	assert.False(t, sec.AllowedClaims(claims, sec.CapUsersManage))

	claims.Overrides = []string{string(sec.CapUsersManage)}
	assert.True(t, sec.AllowedClaims(claims, sec.CapUsersManage))
}
