package shared

// Role is the user type stored on usuarios.tipo. The Portuguese
// values are part of the wire contract.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleProfessor Role = "professor"
	RoleStudent   Role = "estudante"
	RoleVisitor   Role = "visitante"
)

// ValidRole reports whether s is one of the four known roles.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleProfessor, RoleStudent, RoleVisitor:
		return true
	}
	return false
}

// HomeRoute maps a role to its landing page. Unknown and anonymous
// principals land on the student/visitor area.
func (r Role) HomeRoute() string {
	switch r {
	case RoleAdmin:
		return "/admin"
	case RoleProfessor:
		return "/professor"
	default:
		return "/user"
	}
}

// Asynq task types.
const (
	TypeDeleteBookAssets  = "book:delete_assets"
	TypeSweepOrphans      = "assets:sweep_orphans"
	TypeSendRecoveryEmail = "email:send_recovery"
)

// Asynq queue names.
const (
	QueueDefault = "default"
	QueueLow     = "low"
)

// DeleteBookAssetsPayload is the body of a TypeDeleteBookAssets task.
type DeleteBookAssetsPayload struct {
	PDF   string  `json:"pdf"`
	Capa  *string `json:"capa,omitempty"`
	Thumb *string `json:"thumb,omitempty"`
}

// SendRecoveryEmailPayload is the body of a TypeSendRecoveryEmail task.
type SendRecoveryEmailPayload struct {
	Email        string `json:"email"`
	Link         string `json:"link"`
	ValidMinutes int    `json:"valid_minutes"`
}
