// Package testutil provides a stub database/sql driver that understands the
// statements issued by the postgres kv medium.
package testutil

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync/atomic"
)

var stubSeq uint64

// StubConn records statements and keeps kv rows in memory.
type StubConn struct {
	Execs     []string
	Queries   []string
	Rows      map[string][]byte
	FailExec  bool
	FailPing  bool
	FailQuery bool
}

// NewStubDB registers a sql.DB backed by an in-memory stub connection.
func NewStubDB() (*sql.DB, *StubConn) {
	conn := &StubConn{Rows: make(map[string][]byte)}
	name := fmt.Sprintf("stubpgkv%d", atomic.AddUint64(&stubSeq, 1))
	sql.Register(name, &stubDriver{conn: conn})
	db, err := sql.Open(name, "stub")
	if err != nil {
		panic(err)
	}
	return db, conn
}

type stubDriver struct {
	conn *StubConn
}

func (d *stubDriver) Open(string) (driver.Conn, error) {
	return d.conn, nil
}

// Prepare implements driver.Conn.
func (c *StubConn) Prepare(string) (driver.Stmt, error) { return nil, fmt.Errorf("not implemented") }

// Close implements driver.Conn.
func (c *StubConn) Close() error { return nil }

// Begin implements driver.Conn.
func (c *StubConn) Begin() (driver.Tx, error) { return nil, fmt.Errorf("transactions not supported") }

// Ping implements driver.Pinger.
func (c *StubConn) Ping(_ context.Context) error {
	if c.FailPing {
		return fmt.Errorf("ping fail")
	}
	return nil
}

// ExecContext implements driver.ExecerContext.
func (c *StubConn) ExecContext(_ context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	c.Execs = append(c.Execs, query)
	if c.FailExec {
		return nil, fmt.Errorf("exec fail")
	}
	up := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(up, "CREATE TABLE"):
		return driver.RowsAffected(0), nil
	case strings.HasPrefix(up, "INSERT INTO KV"):
		if len(args) != 2 {
			return nil, fmt.Errorf("insert expects 2 args, got %d", len(args))
		}
		key, _ := args[0].Value.(string)
		payload, _ := args[1].Value.([]byte)
		c.Rows[key] = append([]byte(nil), payload...)
		return driver.RowsAffected(1), nil
	case strings.HasPrefix(up, "DELETE FROM KV WHERE"):
		if len(args) == 0 {
			return nil, fmt.Errorf("missing args for delete")
		}
		key, _ := args[0].Value.(string)
		if _, ok := c.Rows[key]; !ok {
			return driver.RowsAffected(0), nil
		}
		delete(c.Rows, key)
		return driver.RowsAffected(1), nil
	case strings.HasPrefix(up, "DELETE FROM KV"):
		n := len(c.Rows)
		c.Rows = make(map[string][]byte)
		return driver.RowsAffected(int64(n)), nil
	}
	return nil, fmt.Errorf("unsupported statement: %s", query)
}

// QueryContext implements driver.QueryerContext.
func (c *StubConn) QueryContext(_ context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	if c.FailQuery {
		return nil, fmt.Errorf("query fail")
	}
	c.Queries = append(c.Queries, query)
	up := strings.ToUpper(strings.TrimSpace(query))
	switch {
	case strings.HasPrefix(up, "SELECT PAYLOAD FROM KV"):
		if len(args) == 0 {
			return nil, fmt.Errorf("missing args for select")
		}
		key, _ := args[0].Value.(string)
		rows := &stubRows{cols: []string{"payload"}}
		if v, ok := c.Rows[key]; ok {
			rows.rows = [][]driver.Value{{append([]byte(nil), v...)}}
		}
		return rows, nil
	case strings.HasPrefix(up, "SELECT KEY FROM KV"):
		var prefix string
		if strings.Contains(up, "STARTS_WITH(KEY") && len(args) > 0 {
			prefix, _ = args[0].Value.(string)
		}
		keys := make([]string, 0, len(c.Rows))
		for k := range c.Rows {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		rows := &stubRows{cols: []string{"key"}}
		for _, k := range keys {
			rows.rows = append(rows.rows, []driver.Value{k})
		}
		return rows, nil
	}
	return nil, fmt.Errorf("unsupported query: %s", query)
}

type stubRows struct {
	cols []string
	rows [][]driver.Value
	idx  int
}

func (r *stubRows) Columns() []string { return r.cols }
func (r *stubRows) Close() error      { return nil }

func (r *stubRows) Next(dest []driver.Value) error {
	if r.idx >= len(r.rows) {
		return io.EOF
	}
	copy(dest, r.rows[r.idx])
	r.idx++
	return nil
}
