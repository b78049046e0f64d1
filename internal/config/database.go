// internal/config/database.go
package config

import (
	"fmt"
)

// DSN renders the libpq keyword/value form understood by pgx. Timestamps are
// always exchanged in UTC so order moments compare equal across hosts.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}
