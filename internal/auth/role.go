package auth

// Role is one of the two fixed user types.
type Role string

const (
	RoleStudent Role = "student"
	RoleWarden  Role = "warden"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleWarden
}
