package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantSettingsMerge(t *testing.T) {
	base := TenantSettings{"theme": "emerald", "grading_scale": "0-100"}

	merged := base.Merge(TenantSettings{"theme": "slate", "logo_url": "https://cdn.example.com/logo.png"})

	assert.Equal(t, "slate", merged["theme"])
	assert.Equal(t, "0-100", merged["grading_scale"])
	assert.Equal(t, "https://cdn.example.com/logo.png", merged["logo_url"])
	assert.Equal(t, "emerald", base["theme"], "the receiver is never mutated")
}

func TestTenantSettingsMergeNilPatch(t *testing.T) {
	base := TenantSettings{"theme": "emerald"}
	copied := base.Merge(nil)

	copied["theme"] = "slate"
	assert.Equal(t, "emerald", base["theme"])
}

func TestUserRoleValid(t *testing.T) {
	for _, role := range []UserRole{RoleSuperAdmin, RoleAdmin, RoleTeacher, RoleStudent, RoleParent} {
		assert.True(t, role.Valid(), string(role))
	}
	assert.False(t, UserRole("principal").Valid())
	assert.False(t, UserRole("").Valid())
	assert.False(t, UserRole("Admin").Valid(), "roles are lowercase")
}
