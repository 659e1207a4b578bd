package identity

// Role is the four-level access tier attached to every principal.
type Role string

const (
	RoleGuest      Role = "guest"
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperadmin Role = "superadmin"
)

// rank gives the total order over roles. Access decisions compare ranks only.
var rank = map[Role]int{
	RoleGuest:      0,
	RoleUser:       1,
	RoleAdmin:      2,
	RoleSuperadmin: 3,
}

// Rank returns the numeric rank of a role. Unknown role strings rank as
// guest; this is deliberate policy, not a fallback accident: a token minted
// with a role this build does not know about gets the least privilege.
func Rank(r Role) int {
	if n, ok := rank[r]; ok {
		return n
	}
	return rank[RoleGuest]
}

// RequiredRank ranks a route's declared minimum role. An unknown required
// role defaults to user rank so that a typo in a route declaration never
// opens an endpoint to guests.
func RequiredRank(r Role) int {
	if n, ok := rank[r]; ok {
		return n
	}
	return rank[RoleUser]
}

// Allows reports whether a principal holding actual may use a route that
// requires required.
func Allows(actual, required Role) bool {
	return Rank(actual) >= RequiredRank(required)
}

// ParseRole maps a claim string onto a Role, defaulting to guest.
func ParseRole(s string) Role {
	r := Role(s)
	if _, ok := rank[r]; ok {
		return r
	}
	return RoleGuest
}

// Principal is the authenticated caller attached to a request after the
// access gate has passed it through.
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}
