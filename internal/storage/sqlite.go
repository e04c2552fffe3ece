package storage

import (
	"gift-registry/internal/config"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteProvider struct {
	SQLProvider
}

func NewSQLiteProvider(config *config.Storage) (provider *SQLiteProvider) {
	dsn := config.SQLite.Path + "?_foreign_keys=on&_busy_timeout=5000"
	return &SQLiteProvider{
		SQLProvider: *NewSQLProvider(config, "sqlite3", dsn),
	}
}
