package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		in   string
		want Role
		ok   bool
	}{
		{"STUDENT", RoleStudent, true},
		{"student", RoleStudent, true},
		{"  Faculty  ", RoleFaculty, true},
		{"CORPORATE", RoleRecruiter, true},
		{"RECRUITER", RoleRecruiter, true},
		{"PLACEMENT", RolePlacementOffice, true},
		{"PLACEMENT_OFFICE", RolePlacementOffice, true},
		{"IC", RoleProgrammeCoordinator, true},
		{"PROGRAMME_COORDINATOR", RoleProgrammeCoordinator, true},
		{"ADMIN", RoleAdmin, true},
		{"", "", false},
		{"WIZARD", "", false},
	}

	for _, tc := range cases {
		got, ok := Normalize(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestMustNormalizePanicsOnUnknown(t *testing.T) {
	assert.Panics(t, func() { MustNormalize("INTERN") })
	assert.NotPanics(t, func() { MustNormalize("corporate") })
}

func TestParsePortalNamedSurfaces(t *testing.T) {
	p, roles, ok := ParsePortal("student")
	require.True(t, ok)
	assert.Equal(t, PortalStudent, p)
	assert.Equal(t, []Role{RoleStudent}, roles)

	p, roles, ok = ParsePortal("Corporate")
	require.True(t, ok)
	assert.Equal(t, PortalCorporate, p)
	assert.Equal(t, []Role{RoleRecruiter}, roles)

	_, roles, ok = ParsePortal("staff")
	require.True(t, ok)
	assert.Len(t, roles, 6)
}

func TestParsePortalRoleSelector(t *testing.T) {
	// A role selector acts as a single-role pseudo portal.
	p, roles, ok := ParsePortal("HOD")
	require.True(t, ok)
	assert.Equal(t, []Role{RoleHOD}, roles)
	assert.True(t, p.Allows(RoleHOD))
	assert.False(t, p.Allows(RoleFaculty))

	// Aliases resolve before matching.
	p, _, ok = ParsePortal("IC")
	require.True(t, ok)
	assert.True(t, p.Allows(RoleProgrammeCoordinator))

	_, _, ok = ParsePortal("wizard")
	assert.False(t, ok)
}

func TestPortalAllows(t *testing.T) {
	assert.True(t, PortalStudent.Allows(RoleStudent))
	assert.False(t, PortalStudent.Allows(RoleRecruiter))

	assert.True(t, PortalCorporate.Allows(RoleRecruiter))
	assert.False(t, PortalCorporate.Allows(RoleAdmin))

	for _, r := range []Role{RoleFaculty, RoleHOD, RolePlacementOffice, RolePlacementHead, RoleProgrammeCoordinator, RoleAdmin} {
		assert.True(t, PortalStaff.Allows(r), "staff portal should admit %s", r)
	}
	assert.False(t, PortalStaff.Allows(RoleStudent))
	assert.False(t, PortalStaff.Allows(RoleRecruiter))
}
