package mysql

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"

	mysqldriver "github.com/go-sql-driver/mysql"

	"github.com/edvin/grantsync/internal/config"
)

// Row is a single scannable result row.
type Row interface {
	Scan(dest ...any) error
}

// Rows is a scannable result set.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}

// DB is the narrow database surface the executor needs.
type DB interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, query string, args ...any) Row
}

// Conn adapts *sql.DB to the DB interface.
type Conn struct {
	db *sql.DB
}

// Connect opens a connection to the target server and verifies it with a
// ping, so driver or credential problems surface before any statement runs.
func Connect(ctx context.Context, cfg *config.Config) (*Conn, error) {
	mc := mysqldriver.NewConfig()
	mc.User = cfg.LoginUser
	mc.Passwd = cfg.LoginPassword
	if cfg.LoginSocket != "" {
		mc.Net = "unix"
		mc.Addr = cfg.LoginSocket
	} else {
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.LoginHost, strconv.Itoa(cfg.LoginPort))
	}
	// Account statements (CREATE USER, GRANT, ...) cannot be prepared
	// server-side, so placeholders are bound client-side by the driver.
	mc.InterpolateParams = true
	mc.AllowNativePasswords = true

	db, err := sql.Open("mysql", mc.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open mysql connection: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to mysql at %s as %s: %w", mc.Addr, mc.User, err)
	}

	return &Conn{db: db}, nil
}

func (c *Conn) Exec(ctx context.Context, query string, args ...any) error {
	_, err := c.db.ExecContext(ctx, query, args...)
	return err
}

func (c *Conn) Query(ctx context.Context, query string, args ...any) (Rows, error) {
	return c.db.QueryContext(ctx, query, args...)
}

func (c *Conn) QueryRow(ctx context.Context, query string, args ...any) Row {
	return c.db.QueryRowContext(ctx, query, args...)
}

func (c *Conn) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *Conn) Close() error {
	return c.db.Close()
}
