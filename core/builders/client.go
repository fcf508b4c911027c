package builders

import (
	"context"
	"database/sql"
	"fmt"

	"tablesync/core"
)

// default sql client used by the engine-specific gateways
type Client struct {
	db *sql.DB
}

func NewClient(db *sql.DB) *Client {
	return &Client{
		db: db,
	}
}

// DB exposes the underlying pool for operations that need transactions
// (bulk loads run inside one).
func (c *Client) DB() *sql.DB {
	return c.db
}

// Conn checks a single connection out of the pool.
func (c *Client) Conn(ctx context.Context) (*Conn, error) {
	conn, err := c.db.Conn(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConnection, err)
	}

	return &Conn{conn: conn}, nil
}

func (c *Client) Close() {
	c.db.Close()
}

// connection to use for execution
type Conn struct {
	conn *sql.Conn
}

func (c *Conn) Close() error {
	return c.conn.Close()
}

// Exec executes a statement and returns the number of affected rows.
func (c *Conn) Exec(ctx context.Context, query string) (int64, error) {
	res, err := c.conn.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", core.ErrQuery, err)
	}

	// not every driver reports affected rows; treat that as zero
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, nil
	}

	return affected, nil
}

// Query executes a query on a connection and returns a result stream.
func (c *Conn) Query(ctx context.Context, query string) (core.ResultStream, error) {
	dbRows, err := c.conn.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrQuery, err)
	}

	header, err := dbRows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrQuery, err)
	}

	// a driver failure mid-iteration also makes Next return false; keep the
	// error around and report end-of-stream only when iteration ended clean
	var iterErr error

	hasNextFunc := func() bool {
		if dbRows.Next() {
			return true
		}
		if dbRows.NextResultSet() && dbRows.Next() {
			return true
		}

		iterErr = dbRows.Err()
		return iterErr != nil
	}

	nextFunc := func() (core.Row, error) {
		if iterErr != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrQuery, iterErr)
		}

		columns := make([]any, len(header))
		columnPointers := make([]any, len(header))
		for i := range columns {
			columnPointers[i] = &columns[i]
		}

		if err := dbRows.Scan(columnPointers...); err != nil {
			return nil, fmt.Errorf("%w: %v", core.ErrQuery, err)
		}

		row := make(core.Row, len(header))
		for i := range header {
			val := *columnPointers[i].(*any)

			// most drivers hand text back as raw bytes
			if valb, ok := val.([]byte); ok {
				val = string(valb)
			}
			row[i] = val
		}

		return row, nil
	}

	rows := NewResult(header, nextFunc, hasNextFunc, func() {
		_ = dbRows.Close()
	})

	return rows, nil
}
