package types

// Username identifies an account on the backend.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// Role is the backend role attached to an account.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleAdmin   Role = "admin"
)

// String returns the string form of the role.
func (r Role) String() string { return string(r) }

// CanManageContent reports whether the role may use the teacher surface.
func (r Role) CanManageContent() bool { return r == RoleTeacher || r == RoleAdmin }

// ID is a backend-issued identifier. The client never interprets it.
type ID string

// String returns the string form of the identifier.
func (id ID) String() string { return string(id) }
