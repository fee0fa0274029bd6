package sqlite

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteDB struct {
	Conn   *sql.DB
	Ctx    context.Context
	Cancel context.CancelFunc
	Path   string
}

func NewSQLiteDB(path string) *SQLiteDB {
	ctx, cancel := context.WithCancel(context.Background())
	return &SQLiteDB{
		Ctx:    ctx,
		Cancel: cancel,
		Path:   path,
	}
}

func (s *SQLiteDB) Connect() error {
	conn, err := sql.Open("sqlite3", s.Path)
	if err != nil {
		return err
	}

	// the file store serializes writes itself; one connection avoids
	// SQLITE_BUSY under the app's single-user access pattern
	conn.SetMaxOpenConns(1)

	s.Conn = conn
	return s.Conn.Ping()
}

func (s *SQLiteDB) Disconnect() error {
	s.Cancel()
	if s.Conn != nil {
		return s.Conn.Close()
	}
	return nil
}

func (s *SQLiteDB) GetContext() context.Context {
	return s.Ctx
}
