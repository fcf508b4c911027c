//go:build (darwin && (amd64 || arm64)) || (freebsd && (386 || amd64 || arm || arm64)) || (linux && (386 || amd64 || arm || arm64 || ppc64le || riscv64 || s390x)) || (netbsd && amd64) || (openbsd && (amd64 || arm64)) || (windows && (amd64 || arm64))

package adapters

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "modernc.org/sqlite"

	"tablesync/core"
	"tablesync/core/builders"
)

// Register adapter
func init() {
	_ = register(&SQLite{}, "sqlite", "sqlite3")
}

var _ core.Adapter = (*SQLite)(nil)

type SQLite struct{}

func (s *SQLite) Connect(url string) (core.Gateway, error) {
	db, err := sql.Open("sqlite", url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConnection, err)
	}

	return &sqliteGateway{
		c: builders.NewClient(db),
	}, nil
}

var _ core.Gateway = (*sqliteGateway)(nil)

type sqliteGateway struct {
	c *builders.Client
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (g *sqliteGateway) Export(ctx context.Context, table string) (*core.Buffer, error) {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stream, err := conn.Query(ctx, fmt.Sprintf("SELECT * FROM %s", quoteIdent(table)))
	if err != nil {
		return nil, err
	}

	return core.FromStream(stream)
}

func (g *sqliteGateway) Truncate(ctx context.Context, table string) error {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec(ctx, fmt.Sprintf("DELETE FROM %s", quoteIdent(table)))
	if err != nil {
		return err
	}

	// reset the autoincrement counter; the bookkeeping table only exists
	// once some table declared AUTOINCREMENT
	name := strings.ReplaceAll(table, "'", "''")
	_, err = conn.Exec(ctx, fmt.Sprintf("DELETE FROM sqlite_sequence WHERE name = '%s'", name))
	if err != nil && !strings.Contains(err.Error(), "no such table") {
		return err
	}

	return nil
}

// BulkWrite runs one prepared insert per row inside a single transaction,
// which is the closest thing sqlite has to a bulk path.
func (g *sqliteGateway) BulkWrite(ctx context.Context, table string, buf *core.Buffer) error {
	if buf.IsEmpty() {
		return nil
	}

	tx, err := g.c.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrConnection, err)
	}
	defer tx.Rollback()

	columns := make([]string, len(buf.Header()))
	placeholders := make([]string, len(buf.Header()))
	for i, name := range buf.Header() {
		columns[i] = quoteIdent(name)
		placeholders[i] = "?"
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)",
		quoteIdent(table), strings.Join(columns, ", "), strings.Join(placeholders, ", "),
	))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}
	defer stmt.Close()

	for _, row := range buf.Rows() {
		_, err = stmt.ExecContext(ctx, row...)
		if err != nil {
			return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
		}
	}

	err = tx.Commit()
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}

	return nil
}

func (g *sqliteGateway) Close() {
	g.c.Close()
}
