package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		in   string
		want Role
	}{
		{"student", RoleStudent},
		{"Student", RoleStudent},
		{"STUDENT", RoleStudent},
		{" company ", RoleCompany},
		{"Admin", RoleAdmin},
		{"admin", RoleAdmin},
		{"", RoleUnset},
		{"director", RoleUnset},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseRole(tt.in), "ParseRole(%q)", tt.in)
	}
}

func TestRoleDashboard(t *testing.T) {
	assert.Equal(t, "/student/dashboard", RoleStudent.Dashboard())
	assert.Equal(t, "/company/dashboard", RoleCompany.Dashboard())
	assert.Equal(t, "/admin/dashboard", RoleAdmin.Dashboard())
	assert.Equal(t, "/register/complete", RoleUnset.Dashboard())
}
