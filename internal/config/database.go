// internal/config/database.go
package config

import (
	"fmt"
	"net"
)

func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// Addr returns the host:port address of the Redis instance.
func (r *RedisConfig) Addr() string {
	return net.JoinHostPort(r.Host, r.Port)
}
