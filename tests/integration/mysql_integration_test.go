package integration

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	tsuite "github.com/stretchr/testify/suite"
	tc "github.com/testcontainers/testcontainers-go"

	"tablesync/config"
	"tablesync/syncer"
	th "tablesync/tests/testhelpers"
)

var fixedClock = func() time.Time {
	return time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
}

// MySQLTestSuite runs the sync loop against a real MySQL server.
type MySQLTestSuite struct {
	tsuite.Suite
	ctr *th.MySQLContainer
	ctx context.Context
}

func TestMySQLTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
	tsuite.Run(t, new(MySQLTestSuite))
}

func (suite *MySQLTestSuite) SetupSuite() {
	suite.ctx = context.Background()
	ctr, err := th.NewMySQLContainer(suite.ctx)
	if err != nil {
		log.Fatal(err)
	}

	suite.ctr = ctr
}

func (suite *MySQLTestSuite) TeardownSuite() {
	tc.CleanupContainer(suite.T(), suite.ctr)
}

func (suite *MySQLTestSuite) TestExportsSeededTable() {
	t := suite.T()
	folder := t.TempDir()

	cfg := &config.Config{
		Source: config.Connection{Type: "mysql", URL: suite.ctr.ConnURL},
		Tables: []string{"t1", "empty_table"},
		Folder: folder,
		Format: config.FormatCSV,
		Mode:   config.ModeExport,
	}

	s, err := syncer.New(cfg, syncer.WithClock(fixedClock))
	require.NoError(t, err)
	require.NoError(t, s.Run(suite.ctx))

	got, err := os.ReadFile(filepath.Join(folder, "t1_20240501.csv"))
	require.NoError(t, err)
	assert.Equal(t, "id,name\n1,a\n2,b\n", string(got))

	// empty tables are skipped, no file
	_, err = os.Stat(filepath.Join(folder, "empty_table_20240501.csv"))
	assert.True(t, os.IsNotExist(err))
}

func (suite *MySQLTestSuite) TestImportReplacesTable() {
	t := suite.T()
	folder := t.TempDir()

	path := filepath.Join(folder, "t1_20240501.csv")
	require.NoError(t, os.WriteFile(path, []byte("id,name\n3,c\n"), 0o644))

	cfg := &config.Config{
		Destination: config.Connection{Type: "mysql", URL: suite.ctr.ConnURL},
		Tables:      []string{"t1"},
		Folder:      folder,
		Format:      config.FormatCSV,
		Mode:        config.ModeImport,
	}

	s, err := syncer.New(cfg, syncer.WithClock(fixedClock))
	require.NoError(t, err)
	require.NoError(t, s.Run(suite.ctx))

	gateway, err := suite.ctr.NewGateway()
	require.NoError(t, err)
	defer gateway.Close()

	buf, err := gateway.Export(suite.ctx, "t1")
	require.NoError(t, err)

	// prior contents are gone, not merged
	require.Equal(t, 1, buf.Len())
	assert.Equal(t, "3", buf.Rows()[0][0])
	assert.Equal(t, "c", buf.Rows()[0][1])
}
