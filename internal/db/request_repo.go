package db

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"organo/internal/domain"
)

var _ domain.RequestRepository = (*Repository)(nil)

// dbRequest is a backend call as stored in the requests table.
type dbRequest struct {
	ID         uuid.UUID      `db:"id"`
	At         time.Time      `db:"at"`
	Method     string         `db:"method"`
	Path       string         `db:"path"`
	Status     int            `db:"status"`
	DurationMS int64          `db:"duration_ms"`
	Replayed   bool           `db:"replayed"`
	Error      sql.NullString `db:"error"`
}

func toDomainRequest(r dbRequest) domain.RequestRecord {
	rec := domain.RequestRecord{
		Method:   r.Method,
		Path:     r.Path,
		Status:   r.Status,
		Duration: time.Duration(r.DurationMS) * time.Millisecond,
		Replayed: r.Replayed,
		At:       r.At.UTC(),
	}
	if r.Error.Valid {
		rec.Err = r.Error.String
	}
	return rec
}

func fromDomainRequest(id uuid.UUID, rec domain.RequestRecord) dbRequest {
	r := dbRequest{
		ID:         id,
		At:         rec.At.UTC(),
		Method:     rec.Method,
		Path:       rec.Path,
		Status:     rec.Status,
		DurationMS: rec.Duration.Milliseconds(),
		Replayed:   rec.Replayed,
	}
	if rec.Err != "" {
		r.Error = sql.NullString{String: rec.Err, Valid: true}
	}
	return r
}

// InsertRequest stores one backend call.
func (repo *Repository) InsertRequest(rec domain.RequestRecord) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("creating request id: %w", err)
	}
	if rec.At.IsZero() {
		rec.At = time.Now()
	}
	query := `INSERT INTO requests (id, at, method, path, status, duration_ms, replayed, error)
	          VALUES (:id, :at, :method, :path, :status, :duration_ms, :replayed, :error)`
	if _, err := repo.dbConn.NamedExec(query, fromDomainRequest(id, rec)); err != nil {
		return fmt.Errorf("inserting request %s: %w", id, err)
	}
	return nil
}

// RecordRequest lets the repository back a backend.RecordingTransport.
func (repo *Repository) RecordRequest(rec domain.RequestRecord) error {
	return repo.InsertRequest(rec)
}

// ListRequests returns up to limit backend calls, newest first. limit <= 0 means all.
func (repo *Repository) ListRequests(limit int) ([]domain.RequestRecord, error) {
	var rows []dbRequest
	query := `SELECT * FROM requests ORDER BY at DESC, id DESC LIMIT ?`
	if err := repo.dbConn.Select(&rows, query, sqlLimit(limit)); err != nil {
		return nil, fmt.Errorf("fetching requests: %w", err)
	}
	out := make([]domain.RequestRecord, len(rows))
	for i, r := range rows {
		out[i] = toDomainRequest(r)
	}
	return out, nil
}
