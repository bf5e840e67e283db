package utils

// Action is one gated operation in the obstacle workflow.
type Action string

const (
	ActionSubmit      Action = "obstacle:submit"
	ActionView        Action = "obstacle:view"
	ActionEdit        Action = "obstacle:edit"
	ActionReview      Action = "obstacle:review" // approve and decline
	ActionDelete      Action = "obstacle:delete"
	ActionExport      Action = "obstacle:export"
	ActionManageUsers Action = "user:manage"
)

// The three account roles. Role strings are stored on the user record and
// carried in the JWT claims.
const (
	RolePilot      = "Pilot"
	RoleCaseworker = "Caseworker"
	RoleAdmin      = "Admin"
)

// allowedRoles maps each action to the roles permitted to perform it.
// Submitting is open to every authenticated role, which is why it lists all
// three; authentication itself is the middleware's problem.
var allowedRoles = map[Action][]string{
	ActionSubmit:      {RolePilot, RoleCaseworker, RoleAdmin},
	ActionView:        {RolePilot, RoleCaseworker, RoleAdmin},
	ActionEdit:        {RolePilot, RoleCaseworker, RoleAdmin},
	ActionReview:      {RoleCaseworker, RoleAdmin},
	ActionDelete:      {RoleCaseworker, RoleAdmin},
	ActionExport:      {RoleCaseworker, RoleAdmin},
	ActionManageUsers: {RoleAdmin},
}

// RoleAllowed reports whether the given role may perform the action. Unknown
// roles and unknown actions are both denied.
func RoleAllowed(role string, action Action) bool {
	for _, allowed := range allowedRoles[action] {
		if role == allowed {
			return true
		}
	}
	return false
}

// KnownRole reports whether the role string is one of the three account roles.
func KnownRole(role string) bool {
	return role == RolePilot || role == RoleCaseworker || role == RoleAdmin
}
