package db

import (
	"embed"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// Repository implements the history repositories on top of one connection.
type Repository struct {
	dbConn *sqlx.DB
}

// NewRepository wraps an open database.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{dbConn: db}
}

// Close releases the database.
func (repo *Repository) Close() error {
	if err := repo.dbConn.Close(); err != nil {
		return fmt.Errorf("closing history db: %w", err)
	}
	return nil
}

// connPragmas are applied by the modernc driver to every new connection.
const connPragmas = "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"

// New opens the SQLite file at path with WAL and foreign keys enabled and
// applies pending migrations.
func New(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite", path+connPragmas)
	if err != nil {
		return nil, fmt.Errorf("connecting to db: %w", err)
	}
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(embedMigrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(string(goose.DialectSQLite3)); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting migration dialect: %w", err)
	}
	if err := goose.Up(db.DB, "migrations"); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying migrations: %w", err)
	}
	return db, nil
}

// Open is New followed by NewRepository.
func Open(path string) (*Repository, error) {
	conn, err := New(path)
	if err != nil {
		return nil, err
	}
	return NewRepository(conn), nil
}
