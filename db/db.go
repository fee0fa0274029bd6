package db

import "context"

type DBType string

const (
	SQLite   DBType = "sqlite"
	Postgres DBType = "postgres"
)

type DB interface {
	Connect() error
	Disconnect() error
	GetContext() context.Context
}
