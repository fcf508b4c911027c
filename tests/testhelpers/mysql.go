package testhelpers

import (
	"context"

	tcmysql "github.com/testcontainers/testcontainers-go/modules/mysql"

	"tablesync/adapters"
	"tablesync/core"
)

type MySQLContainer struct {
	*tcmysql.MySQLContainer
	ConnURL string
}

// NewMySQLContainer starts a seeded MySQL container.
// The seed script also enables local_infile, which the bulk load path needs
// on the server side.
func NewMySQLContainer(ctx context.Context) (*MySQLContainer, error) {
	seedFile, err := GetTestDataFile("mysql_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcmysql.Run(
		ctx,
		"mysql:9.2.0",
		tcmysql.WithDatabase("dev"),
		tcmysql.WithUsername("root"),
		tcmysql.WithPassword("password"),
		tcmysql.WithScripts(seedFile.Name()),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "tls=skip-verify")
	if err != nil {
		return nil, err
	}

	return &MySQLContainer{
		MySQLContainer: ctr,
		ConnURL:        connURL,
	}, nil
}

// NewGateway opens a fresh gateway against the container.
func (c *MySQLContainer) NewGateway() (core.Gateway, error) {
	return adapters.Connect("mysql", c.ConnURL)
}
