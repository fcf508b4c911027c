package adapters

import (
	"context"
	"database/sql"
	"fmt"
	nurl "net/url"

	"github.com/lib/pq"

	"tablesync/core"
	"tablesync/core/builders"
)

// Register adapter
func init() {
	_ = register(&Postgres{}, "postgres", "postgresql", "pg")
}

var _ core.Adapter = (*Postgres)(nil)

type Postgres struct{}

func (p *Postgres) Connect(url string) (core.Gateway, error) {
	u, err := nurl.Parse(url)
	if err != nil {
		return nil, fmt.Errorf("could not parse db connection string: %w", err)
	}

	db, err := sql.Open("postgres", u.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConnection, err)
	}

	return &postgresGateway{
		c: builders.NewClient(db),
	}, nil
}

var _ core.Gateway = (*postgresGateway)(nil)

type postgresGateway struct {
	c *builders.Client
}

func (g *postgresGateway) Export(ctx context.Context, table string) (*core.Buffer, error) {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stream, err := conn.Query(ctx, fmt.Sprintf("SELECT * FROM %s", pq.QuoteIdentifier(table)))
	if err != nil {
		return nil, err
	}

	return core.FromStream(stream)
}

func (g *postgresGateway) Truncate(ctx context.Context, table string) error {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", pq.QuoteIdentifier(table)))
	return err
}

// BulkWrite streams the buffer through COPY FROM STDIN inside a single
// transaction, so a failed load leaves no partial rows behind.
func (g *postgresGateway) BulkWrite(ctx context.Context, table string, buf *core.Buffer) error {
	if buf.IsEmpty() {
		return nil
	}

	tx, err := g.c.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrConnection, err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn(table, buf.Header()...))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}

	for _, row := range buf.Rows() {
		_, err = stmt.ExecContext(ctx, row...)
		if err != nil {
			return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
		}
	}

	// final empty exec flushes the copy buffer
	_, err = stmt.ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
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

func (g *postgresGateway) Close() {
	g.c.Close()
}
