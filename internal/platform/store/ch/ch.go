// Package ch provides a clickhouse client
package ch

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Config configures clickhouse client
type Config struct {
	URL string
	// Role tags the connection in system.query_log (api, indexer, ...)
	Role string
}

// Rows is the minimal result set iteration for ch
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
	Columns() []string
}

// CH wraps a native clickhouse connection
type CH struct {
	conn driver.Conn
}

// Open connects using a clickhouse:// style URL
// (host:port/database?username=u&password=p)
func Open(ctx context.Context, cfg Config) (*CH, error) {
	opts, err := optionsFromURL(cfg.URL)
	if err != nil {
		return nil, err
	}
	opts.ClientInfo = BuildClientInfo(cfg.Role, "")

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("ch open: %w", err)
	}
	pctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := conn.Ping(pctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("ch ping: %w", err)
	}
	return &CH{conn: conn}, nil
}

func optionsFromURL(raw string) (*clickhouse.Options, error) {
	if raw == "" {
		return nil, errors.New("ch: empty url")
	}
	if !strings.Contains(raw, "://") {
		raw = "clickhouse://" + raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("ch: bad url: %w", err)
	}
	db := strings.TrimPrefix(u.Path, "/")
	if db == "" {
		db = "default"
	}
	user := u.Query().Get("username")
	pass := u.Query().Get("password")
	if u.User != nil {
		user = u.User.Username()
		if p, ok := u.User.Password(); ok {
			pass = p
		}
	}
	if user == "" {
		user = "default"
	}
	return &clickhouse.Options{
		Addr: []string{u.Host},
		Auth: clickhouse.Auth{Database: db, Username: user, Password: pass},
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
		DialTimeout: 5 * time.Second,
	}, nil
}

// Insert appends rows to a table via a prepared batch.
// table carries the full INSERT target, e.g.
// "assessment_events (event_time, comment_id, decision)".
// data must be [][]any with values in column order
func (c *CH) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return errors.New("ch: unsupported insert shape (want [][]any)")
	}
	if len(rows) == 0 {
		return nil
	}
	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("ch prepare batch: %w", err)
	}
	for _, row := range rows {
		if err := batch.Append(row...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("ch batch append: %w", err)
		}
	}
	return batch.Send()
}

// Query runs a query and returns ch.Rows
func (c *CH) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	r, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return &nativeRows{r: r}, nil
}

// Ping verifies connectivity
func (c *CH) Ping(ctx context.Context) error { return c.conn.Ping(ctx) }

// Close closes resources
func (c *CH) Close() error { return c.conn.Close() }

// nativeRows adapts driver.Rows to ch.Rows
type nativeRows struct {
	r   driver.Rows
	err error
}

func (n *nativeRows) Next() bool { return n.r.Next() }

func (n *nativeRows) Scan(dest ...any) error {
	if err := n.r.Scan(dest...); err != nil {
		n.err = err
		return err
	}
	return nil
}

func (n *nativeRows) Err() error {
	if n.err != nil {
		return n.err
	}
	return n.r.Err()
}

func (n *nativeRows) Close() error { return n.r.Close() }

func (n *nativeRows) Columns() []string { return n.r.Columns() }
