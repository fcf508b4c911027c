package adapters

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/csv"
	"fmt"
	"io"
	"regexp"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"tablesync/core"
	"tablesync/core/builders"
)

// Register adapter
func init() {
	_ = register(&MySQL{}, "mysql")
}

var _ core.Adapter = (*MySQL)(nil)

type MySQL struct{}

func (m *MySQL) Connect(url string) (core.Gateway, error) {
	// LOAD DATA LOCAL INFILE needs the local-infile capability on the
	// client side; append it when the caller didn't set it. Only in-process
	// "Reader::" handles are ever loaded, never filesystem paths.
	url, err := appendDSNParam(url, "allowAllFiles", "true")
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("mysql", url)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrConnection, err)
	}

	return &mysqlGateway{
		c: builders.NewClient(db),
	}, nil
}

// appendDSNParam adds key=value to a mysql DSN unless the key is present.
func appendDSNParam(url, key, value string) (string, error) {
	match, err := regexp.MatchString(`[\?&]`+key+`=`, url)
	if err != nil {
		return "", err
	}
	if match {
		return url, nil
	}

	// pick the right separator depending on existing parameters
	match, err = regexp.MatchString(`[\?][\w]+=[\w-]+`, url)
	if err != nil {
		return "", err
	}
	sep := "?"
	if match {
		sep = "&"
	}

	return url + sep + key + "=" + value, nil
}

var _ core.Gateway = (*mysqlGateway)(nil)

type mysqlGateway struct {
	c *builders.Client
}

func (g *mysqlGateway) Export(ctx context.Context, table string) (*core.Buffer, error) {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	stream, err := conn.Query(ctx, fmt.Sprintf("SELECT * FROM `%s`", table))
	if err != nil {
		return nil, err
	}

	return core.FromStream(stream)
}

func (g *mysqlGateway) Truncate(ctx context.Context, table string) error {
	conn, err := g.c.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE `%s`", table))
	return err
}

// BulkWrite stages the buffer as CSV behind an in-process reader handle and
// loads it with LOAD DATA LOCAL INFILE. Any warning the server reports after
// the load (truncated values, lost data) fails the whole operation.
func (g *mysqlGateway) BulkWrite(ctx context.Context, table string, buf *core.Buffer) error {
	if buf.IsEmpty() {
		return nil
	}

	staged, err := stageCSV(buf)
	if err != nil {
		return err
	}

	handle := uuid.New().String()
	mysql.RegisterReaderHandler(handle, func() io.Reader {
		return bytes.NewReader(staged)
	})
	defer mysql.DeregisterReaderHandler(handle)

	conn, err := g.c.Conn(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	_, err = conn.Exec(ctx, fmt.Sprintf(
		"LOAD DATA LOCAL INFILE 'Reader::%s' INTO TABLE `%s` FIELDS TERMINATED BY ',' OPTIONALLY ENCLOSED BY '\"' LINES TERMINATED BY '\\n'",
		handle, table,
	))
	if err != nil {
		return fmt.Errorf("%w: %v", core.ErrBulkLoad, err)
	}

	return g.checkWarnings(ctx, conn)
}

func (g *mysqlGateway) checkWarnings(ctx context.Context, conn *builders.Conn) error {
	stream, err := conn.Query(ctx, "SHOW WARNINGS")
	if err != nil {
		return err
	}

	warnings, err := core.FromStream(stream)
	if err != nil {
		return err
	}

	if !warnings.IsEmpty() {
		return fmt.Errorf("%w: server reported %d warnings, first: %v",
			core.ErrBulkLoad, warnings.Len(), warnings.Rows()[0])
	}

	return nil
}

func (g *mysqlGateway) Close() {
	g.c.Close()
}

// stageCSV renders the buffer rows (no header) in the shape the LOAD DATA
// statement above expects. NULL travels as unquoted \N.
func stageCSV(buf *core.Buffer) ([]byte, error) {
	b := new(bytes.Buffer)
	w := csv.NewWriter(b)

	for _, row := range buf.Rows() {
		record := make([]string, len(row))
		for i, val := range row {
			switch v := val.(type) {
			case nil:
				record[i] = `\N`
			case []byte:
				record[i] = string(v)
			default:
				record[i] = fmt.Sprint(v)
			}
		}

		err := w.Write(record)
		if err != nil {
			return nil, fmt.Errorf("w.Write: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("w.Error: %w", err)
	}

	return b.Bytes(), nil
}
