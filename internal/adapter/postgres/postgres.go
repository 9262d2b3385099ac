// Package postgres reads the database server's clock over short-lived pgx connections.
package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pscheid92/sentidemo/internal/domain"
)

const (
	nowQuery     = "SELECT NOW()"
	closeTimeout = 2 * time.Second
)

// ConnString assembles a postgres:// URL. Credentials are escaped.
func ConnString(host string, port int, user, password, dbName, sslMode string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(user, password),
		Host:   net.JoinHostPort(host, strconv.Itoa(port)),
		Path:   "/" + dbName,
	}
	if sslMode != "" {
		u.RawQuery = url.Values{"sslmode": {sslMode}}.Encode()
	}
	return u.String()
}

// Clock opens one connection per call and closes it before returning.
type Clock struct {
	connConfig *pgx.ConnConfig
}

// NewClock parses connString once. connectTimeout bounds each dial.
func NewClock(connString string, connectTimeout time.Duration) (*Clock, error) {
	cfg, err := pgx.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}
	cfg.ConnectTimeout = connectTimeout

	slog.Info("Database target", "host", cfg.Host, "port", cfg.Port, "database", cfg.Database, "tls", cfg.TLSConfig != nil)
	return &Clock{connConfig: cfg}, nil
}

// Now returns the server's current time as text.
func (c *Clock) Now(ctx context.Context) (string, error) {
	var now time.Time
	err := c.withConn(ctx, func(conn *pgx.Conn) error {
		if err := conn.QueryRow(ctx, nowQuery).Scan(&now); err != nil {
			return fmt.Errorf("failed to query server time: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return FormatTimestamp(now), nil
}

// Ping verifies that a connection can be opened and answers.
func (c *Clock) Ping(ctx context.Context) error {
	return c.withConn(ctx, func(conn *pgx.Conn) error {
		if err := conn.Ping(ctx); err != nil {
			return fmt.Errorf("failed to ping database: %w", err)
		}
		return nil
	})
}

func (c *Clock) withConn(ctx context.Context, fn func(conn *pgx.Conn) error) error {
	conn, err := pgx.ConnectConfig(ctx, c.connConfig.Copy())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), closeTimeout)
		defer cancel()
		if err := conn.Close(closeCtx); err != nil {
			slog.Warn("Failed to close database connection", "error", err)
		}
	}()

	return fn(conn)
}

// FormatTimestamp renders t the way PostgreSQL prints a timestamptz: microseconds only
// when non-zero, and a ±hh:mm offset.
func FormatTimestamp(t time.Time) string {
	if t.Nanosecond()/int(time.Microsecond) == 0 {
		return t.Format("2006-01-02 15:04:05-07:00")
	}
	return t.Format("2006-01-02 15:04:05.000000-07:00")
}

var _ domain.DBClock = (*Clock)(nil)
