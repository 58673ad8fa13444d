package types

import "time"

// Backup is a server-side snapshot of the content database.
type Backup struct {
	ID        ID        `json:"id"`
	Label     string    `json:"label,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	SizeBytes int64     `json:"size_bytes"`
}

// Invitation asks the backend to e-mail a sign-up link.
type Invitation struct {
	Email     string `json:"email" validate:"required,email"`
	Role      Role   `json:"role" validate:"required,oneof=student teacher"`
	SubjectID ID     `json:"subject_id,omitempty"`
}
