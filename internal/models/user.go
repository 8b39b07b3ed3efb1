package models

// User represents a row of the users table.
type User struct {
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	Role   string `db:"role"`
	AuditFields
}
