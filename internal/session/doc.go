// Package session keeps the signed-in session and authenticates outgoing
// backend requests.
//
// The Manager owns the current access/refresh token pair. It attaches the
// bearer token to requests (AttachAuth) and, when the backend answers 401,
// runs a single in-flight refresh (HandleUnauthorized): the first caller
// performs the refresh while every concurrent caller waits in a FIFO queue
// and is released with the same new token. A failed refresh rejects the whole
// queue, clears the session (memory and store) and returns ErrSessionExpired,
// which callers treat as a forced logout.
//
// Transport plugs the Manager into net/http as a RoundTripper that replays a
// request once after a successful refresh. Login, logout and refresh calls
// are never retried.
package session
