package adapters

import (
	"context"
	"database/sql"
	"fmt"
	nurl "net/url"
	"strings"

	mssql "github.com/microsoft/go-mssqldb"

	"tablesync/core"
	"tablesync/core/builders"
)

// Register adapter
func init() {
	_ = register(&SQLServer{}, "sqlserver", "mssql")
}

var _ core.Adapter = (*SQLServer)(nil)

type SQLServer struct{}

func (s *SQLServer) Connect(url string) (core.Gateway, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	db, err := sql.Open("sqlserver", u.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConnection, err)
	}

	return &sqlServerGateway{
		c: builders.NewClient(db),
	}, nil
}

var _ core.Gateway = (*sqlServerGateway)(nil)

type sqlServerGateway struct {
	c *builders.Client
}

// bracketIdent quotes an identifier the sqlserver way.
func bracketIdent(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

func (g *sqlServerGateway) Export(ctx context.Context, table string) (*core.Buffer, error) {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stream, err := conn.Query(ctx, fmt.Sprintf("SELECT * FROM %s", bracketIdent(table)))
	if err != nil {
		return nil, err
	}

	return core.FromStream(stream)
}

func (g *sqlServerGateway) Truncate(ctx context.Context, table string) error {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s", bracketIdent(table)))
	return err
}

// BulkWrite uses the TDS bulk copy protocol inside a single transaction.
func (g *sqlServerGateway) BulkWrite(ctx context.Context, table string, buf *core.Buffer) error {
	if buf.IsEmpty() {
		return nil
	}

	tx, err := g.c.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrConnection, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, mssql.CopyIn(table, mssql.BulkOptions{}, buf.Header()...))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}

	for _, row := range buf.Rows() {
		_, err = stmt.ExecContext(ctx, row...)
		if err != nil {
			return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
		}
	}

	res, err := stmt.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}

	// the final exec reports how many rows the server accepted
	copied, err := res.RowsAffected()
	if err == nil && copied != int64(buf.Len()) {
		return fmt.Errorf("%w: sent %d rows, server accepted %d", core.ErrBulkLoad, buf.Len(), copied)
	}

	err = stmt.Close()
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}

	return nil
}

func (g *sqlServerGateway) Close() {
	g.c.Close()
}
