package db

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"organo/internal/domain"
)

var _ domain.CommandRepository = (*Repository)(nil)

// dbCommand is a voice command as stored in the commands table.
type dbCommand struct {
	ID         uuid.UUID `db:"id"`
	At         time.Time `db:"at"`
	Screen     string    `db:"screen"`
	Transcript string    `db:"transcript"`
	Normalized string    `db:"normalized"`
	Intent     string    `db:"intent"`
	Topic      string    `db:"topic"`
}

func toDomainCommand(c dbCommand) domain.Command {
	return domain.Command{
		Transcript: c.Transcript,
		Normalized: c.Normalized,
		Screen:     domain.Screen(c.Screen),
		Intent:     domain.Intent(c.Intent),
		Topic:      c.Topic,
		At:         c.At.UTC(),
	}
}

func fromDomainCommand(id uuid.UUID, c domain.Command) dbCommand {
	return dbCommand{
		ID:         id,
		At:         c.At.UTC(),
		Screen:     string(c.Screen),
		Transcript: c.Transcript,
		Normalized: c.Normalized,
		Intent:     string(c.Intent),
		Topic:      c.Topic,
	}
}

// InsertCommand stores an evaluated voice command.
func (repo *Repository) InsertCommand(cmd domain.Command) error {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Errorf("creating command id: %w", err)
	}
	if cmd.At.IsZero() {
		cmd.At = time.Now()
	}
	query := `INSERT INTO commands (id, at, screen, transcript, normalized, intent, topic)
	          VALUES (:id, :at, :screen, :transcript, :normalized, :intent, :topic)`
	if _, err := repo.dbConn.NamedExec(query, fromDomainCommand(id, cmd)); err != nil {
		return fmt.Errorf("inserting command %s: %w", id, err)
	}
	return nil
}

// ListCommands returns up to limit commands, newest first. limit <= 0 means all.
func (repo *Repository) ListCommands(limit int) ([]domain.Command, error) {
	var rows []dbCommand
	query := `SELECT * FROM commands ORDER BY at DESC, id DESC LIMIT ?`
	if err := repo.dbConn.Select(&rows, query, sqlLimit(limit)); err != nil {
		return nil, fmt.Errorf("fetching commands: %w", err)
	}
	out := make([]domain.Command, len(rows))
	for i, r := range rows {
		out[i] = toDomainCommand(r)
	}
	return out, nil
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}
