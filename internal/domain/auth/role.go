// internal/domain/auth/role.go
package auth

import "strings"

// Role is the canonical account role. Every authorization decision in the
// service compares canonical roles; legacy selectors from older clients
// are folded in at the boundary by Normalize and never stored or compared
// raw.
type Role string

const (
	RoleStudent              Role = "STUDENT"
	RoleFaculty              Role = "FACULTY"
	RoleHOD                  Role = "HOD"
	RoleRecruiter            Role = "RECRUITER"
	RolePlacementOffice      Role = "PLACEMENT_OFFICE"
	RolePlacementHead        Role = "PLACEMENT_HEAD"
	RoleProgrammeCoordinator Role = "PROGRAMME_COORDINATOR"
	RoleAdmin                Role = "ADMIN"
)

var roleAliases = map[string]Role{
	"STUDENT":               RoleStudent,
	"FACULTY":               RoleFaculty,
	"HOD":                   RoleHOD,
	"RECRUITER":             RoleRecruiter,
	"CORPORATE":             RoleRecruiter,
	"PLACEMENT_OFFICE":      RolePlacementOffice,
	"PLACEMENT":             RolePlacementOffice,
	"PLACEMENT_HEAD":        RolePlacementHead,
	"PROGRAMME_COORDINATOR": RoleProgrammeCoordinator,
	"IC":                    RoleProgrammeCoordinator,
	"ADMIN":                 RoleAdmin,
}

// Normalize resolves a role selector to its canonical role, alias-aware.
func Normalize(s string) (Role, bool) {
	r, ok := roleAliases[strings.ToUpper(strings.TrimSpace(s))]
	return r, ok
}

// MustNormalize is Normalize for trusted inputs (config, seeds). Unknown
// selectors panic.
func MustNormalize(s string) Role {
	r, ok := Normalize(s)
	if !ok {
		panic("auth: unknown role selector " + s)
	}
	return r
}

// Roles returns every canonical role.
func Roles() []Role {
	return []Role{
		RoleStudent, RoleFaculty, RoleHOD, RoleRecruiter,
		RolePlacementOffice, RolePlacementHead, RoleProgrammeCoordinator, RoleAdmin,
	}
}

// Portal is a login surface. Each portal admits a fixed set of roles;
// logging into the wrong portal is rejected even with valid credentials.
type Portal string

const (
	PortalStudent   Portal = "student"
	PortalCorporate Portal = "corporate"
	PortalStaff     Portal = "staff"
)

var portalRoles = map[Portal][]Role{
	PortalStudent:   {RoleStudent},
	PortalCorporate: {RoleRecruiter},
	PortalStaff: {
		RoleFaculty, RoleHOD, RolePlacementOffice, RolePlacementHead,
		RoleProgrammeCoordinator, RoleAdmin,
	},
}

// ParsePortal resolves a portal selector. Clients may also send an
// expected-role selector (e.g. "HOD") instead of a portal name; that
// resolves to a single-role pseudo portal.
func ParsePortal(s string) (Portal, []Role, bool) {
	sel := strings.ToLower(strings.TrimSpace(s))
	if roles, ok := portalRoles[Portal(sel)]; ok {
		return Portal(sel), roles, true
	}
	if r, ok := Normalize(s); ok {
		return Portal(sel), []Role{r}, true
	}
	return "", nil, false
}

// Allows reports whether the portal admits the role.
func (p Portal) Allows(role Role) bool {
	for _, r := range p.AllowedRoles() {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles returns the roles the portal admits. For a pseudo portal
// built from a role selector it is that single role.
func (p Portal) AllowedRoles() []Role {
	if roles, ok := portalRoles[p]; ok {
		return roles
	}
	if r, ok := Normalize(string(p)); ok {
		return []Role{r}
	}
	return nil
}

// Portals returns the named login surfaces.
func Portals() []Portal {
	return []Portal{PortalStudent, PortalCorporate, PortalStaff}
}
