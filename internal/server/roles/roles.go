// Package roles implements the permission policy over a user's role set.
// A role is either the literal "admin" or a language code.
package roles

// Admin is the role granting full privileges.
const Admin = "admin"

// IsAdmin reports whether the role set contains the admin role.
func IsAdmin(roles []string) bool {
	for _, r := range roles {
		if r == Admin {
			return true
		}
	}
	return false
}

// CanEditLanguage reports whether the role set allows editing translations
// for the given language code.
func CanEditLanguage(roles []string, code string) bool {
	if IsAdmin(roles) {
		return true
	}
	for _, r := range roles {
		if r == code {
			return true
		}
	}
	return false
}

// CanManage reports whether the role set allows management operations:
// language/page/entry create and delete, role mutation, user deletion.
func CanManage(roles []string) bool {
	return IsAdmin(roles)
}
