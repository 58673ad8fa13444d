// Package auth signs the user in and out.
//
// Login validates the credentials, calls the backend, hands the resulting
// tokens to the session manager (which persists them) and remembers the
// account for the next login prompt. Logout always clears the local session,
// even when the backend cannot be reached.
package auth
