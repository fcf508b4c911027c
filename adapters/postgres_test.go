package adapters

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablesync/core"
	"tablesync/core/builders"
)

func newPostgresMock(t *testing.T) (*postgresGateway, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gateway := &postgresGateway{c: builders.NewClient(db)}
	t.Cleanup(gateway.Close)

	return gateway, mock
}

func TestPostgresExport(t *testing.T) {
	gateway, mock := newPostgresMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "t1"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "a").
			AddRow(2, "b"))

	buf, err := gateway.Export(context.Background(), "t1")
	require.NoError(t, err)

	assert.Equal(t, core.Header{"id", "name"}, buf.Header())
	assert.Equal(t, 2, buf.Len())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresTruncateRestartsIdentity(t *testing.T) {
	gateway, mock := newPostgresMock(t)

	mock.ExpectExec(regexp.QuoteMeta(`TRUNCATE TABLE "t1" RESTART IDENTITY`)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, gateway.Truncate(context.Background(), "t1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBulkWrite(t *testing.T) {
	gateway, mock := newPostgresMock(t)

	buf, err := core.NewBuffer(
		core.Header{"id", "name"},
		[]core.Row{{"3", "c"}, {"4", "d"}},
	)
	require.NoError(t, err)

	copyStmt := regexp.QuoteMeta(pq.CopyIn("t1", "id", "name"))

	mock.ExpectBegin()
	mock.ExpectPrepare(copyStmt)
	mock.ExpectExec(copyStmt).WithArgs("3", "c").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(copyStmt).WithArgs("4", "d").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(copyStmt).WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	require.NoError(t, gateway.BulkWrite(context.Background(), "t1", buf))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBulkWriteEmptyBufferIsNoop(t *testing.T) {
	gateway, mock := newPostgresMock(t)

	buf, err := core.NewBuffer(core.Header{"id"}, nil)
	require.NoError(t, err)

	require.NoError(t, gateway.BulkWrite(context.Background(), "t1", buf))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresBulkWriteRollsBackOnError(t *testing.T) {
	gateway, mock := newPostgresMock(t)

	buf, err := core.NewBuffer(
		core.Header{"id", "name"},
		[]core.Row{{"3", "c"}},
	)
	require.NoError(t, err)

	copyStmt := regexp.QuoteMeta(pq.CopyIn("t1", "id", "name"))

	mock.ExpectBegin()
	mock.ExpectPrepare(copyStmt)
	mock.ExpectExec(copyStmt).WithArgs("3", "c").WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err = gateway.BulkWrite(context.Background(), "t1", buf)
	assert.ErrorIs(t, err, core.ErrBulkLoad)
	assert.NoError(t, mock.ExpectationsWereMet())
}
