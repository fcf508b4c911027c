package testhelpers

import (
	"context"

	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"

	"tablesync/adapters"
	"tablesync/core"
)

type PostgresContainer struct {
	*tcpostgres.PostgresContainer
	ConnURL string
}

// NewPostgresContainer starts a seeded Postgres container.
func NewPostgresContainer(ctx context.Context) (*PostgresContainer, error) {
	seedFile, err := GetTestDataFile("postgres_seed.sql")
	if err != nil {
		return nil, err
	}
	defer seedFile.Close()

	ctr, err := tcpostgres.Run(
		ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("dev"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("password"),
		tcpostgres.WithInitScripts(seedFile.Name()),
		tcpostgres.BasicWaitStrategies(),
	)
	if err != nil {
		return nil, err
	}

	connURL, err := ctr.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, err
	}

	return &PostgresContainer{
		PostgresContainer: ctr,
		ConnURL:           connURL,
	}, nil
}

// NewGateway opens a fresh gateway against the container.
func (c *PostgresContainer) NewGateway() (core.Gateway, error) {
	return adapters.Connect("postgres", c.ConnURL)
}
