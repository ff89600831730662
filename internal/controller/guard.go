package controller

import "pannel_backoffice/internal/models"

// Action is a mutating operation a controller can be asked to perform.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	// ActionManageUsers covers every mutation of the account entity.
	ActionManageUsers Action = "manage_users"
)

// grants is the single authorization table of the application. Every
// role check goes through Allows; no caller hard-codes role names.
var grants = map[string]map[Action]bool{
	models.RoleReport: {},
	models.RoleCreate: {
		ActionCreate: true,
		ActionUpdate: true,
		ActionDelete: true,
	},
	models.RoleAdmin: {
		ActionCreate:      true,
		ActionUpdate:      true,
		ActionDelete:      true,
		ActionManageUsers: true,
	},
}

// Allows reports whether the role may perform the action. Unknown roles
// get nothing.
func Allows(role string, action Action) bool {
	return grants[role][action]
}
