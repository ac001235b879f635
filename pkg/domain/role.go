package domain

import dErrors "messhall/pkg/domain-errors"

// Role is the capability level of an authenticated actor. Admin bypasses
// ownership checks; it is always carried explicitly next to the actor id,
// never inferred from a missing value.
type Role string

const (
	RoleSoldier Role = "soldier"
	RoleAdmin   Role = "admin"
)

var validRoles = map[Role]bool{
	RoleSoldier: true,
	RoleAdmin:   true,
}

// ParseRole constructs a Role from external input (e.g. a token claim).
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !validRoles[r] {
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown role: %q", s)
	}
	return r, nil
}

func (r Role) String() string {
	return string(r)
}

func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
