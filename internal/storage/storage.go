package storage

import (
	"net/url"
	"strings"
)

// IsPostgres reports whether config is a PostgreSQL connection string rather
// than a SQLite file path.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

// HasEmbeddedCredentials reports whether a PostgreSQL connection string
// carries a password inline. Those are rejected; credentials belong in the OS
// keyring, the environment, or .pgpass.
func HasEmbeddedCredentials(connStr string) bool {
	u, err := url.Parse(connStr)
	if err != nil {
		return false
	}
	if u.User == nil {
		return false
	}
	_, hasPassword := u.User.Password()
	return hasPassword
}

// NewProvider selects a backend from the config value: postgres:// and
// postgresql:// strings get the PostgreSQL store, anything else is treated as
// a SQLite file path.
func NewProvider(config string) Provider {
	if IsPostgres(config) {
		return NewPostgresStore(config)
	}
	return NewSQLiteStore(config)
}
