package auth

import "errors"

const (
	RoleProvider = "provider"
	RoleTalent   = "talent"
)

const (
	PermProfileWriteSelf   = "profile:write:self"
	PermStoriesWriteSelf   = "stories:write:self"
	PermPortfolioWriteSelf = "portfolio:write:self"
	PermDashboardRead      = "dashboard:read:self"
	PermRatingsWrite       = "ratings:write"
	PermUploadsWrite       = "uploads:write"
)

// Permissions - разрешения по ролям
var Permissions = map[string][]string{
	RoleProvider: {
		PermProfileWriteSelf,
		PermStoriesWriteSelf,
		PermDashboardRead,
		PermRatingsWrite,
		PermUploadsWrite,
	},
	RoleTalent: {
		PermProfileWriteSelf,
		PermPortfolioWriteSelf,
		PermRatingsWrite,
		PermUploadsWrite,
	},
}

func HasPermission(role, permission string) bool {
	for _, p := range Permissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

func CanPerformAction(claims *Claims, permission string) bool {
	return claims != nil && HasPermission(claims.Role, permission)
}

// IsOwner - токен принадлежит профилю с указанной ролью и id
func IsOwner(claims *Claims, role, id string) bool {
	return claims != nil && claims.Role == role && claims.UserID == id
}

func ValidateRole(role string) error {
	switch role {
	case RoleProvider, RoleTalent:
		return nil
	default:
		return errors.New("invalid role")
	}
}
