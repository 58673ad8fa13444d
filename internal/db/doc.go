// Package db keeps the client's local history in SQLite: every evaluated
// voice command and every backend request. The schema is managed with
// embedded goose migrations and applied when the database is opened.
package db
