// Package backend is the HTTP client for the organo REST backend.
//
// A single Client covers every endpoint the CLI uses: authentication,
// the subject/topic/epigraph/concept hierarchy, questions and answers, exam
// generation and grading, analytics, backups and invitations.
//
// All requests are JSON over HTTP and accept a context for cancellation and
// deadlines. Payloads are validated before anything is sent. Non-2xx statuses
// are returned as *APIError carrying the HTTP method, full URL, status and the
// server's message; IsUnauthorized, IsNotFound and IsNetwork classify them.
//
// Authentication is not handled here: give the Client an *http.Client whose
// transport is a session.Transport and bearer tokens and refreshes are taken
// care of below the client.
package backend
