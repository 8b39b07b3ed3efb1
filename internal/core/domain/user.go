package domain

// UserRole distinguishes back-office administrators from network members.
type UserRole string

const (
	RoleAdmin  UserRole = "ADMIN"
	RoleMember UserRole = "MEMBER"
)

// User represents a user of the back office in the domain.
type User struct {
	UserID string   `json:"userID"` // Primary Key (e.g., UUID)
	Name   string   `json:"name"`
	Role   UserRole `json:"role"`
	AuditFields
}

// IsAdmin reports whether the user may perform adjudication.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
