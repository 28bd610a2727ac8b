package enums

type Role string

const (
	RoleNotPermitted Role = "NOT_PERMITTED"
	RoleLevel1       Role = "LEVEL_1"
	RoleLevel2       Role = "LEVEL_2"
	RoleLevel3       Role = "LEVEL_3"
	RoleManager      Role = "MANAGER"
	RoleAdmin        Role = "ADMIN"
)

func (r Role) Level() int {
	switch r {
	case RoleLevel1:
		return 1
	case RoleLevel2:
		return 2
	case RoleLevel3:
		return 3
	case RoleManager:
		return 4
	case RoleAdmin:
		return 5
	default:
		return 0
	}
}

// Verified reports whether the account has completed email verification.
func (r Role) Verified() bool {
	return r.Level() > 0
}

func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleNotPermitted, RoleLevel1, RoleLevel2, RoleLevel3, RoleManager, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}
