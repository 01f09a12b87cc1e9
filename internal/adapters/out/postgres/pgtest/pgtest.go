// Package pgtest starts a disposable postgres for integration suites.
package pgtest

import (
	"context"
	"time"

	pgadapter "parcels/internal/adapters/out/postgres"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"
)

// Database is a postgres container with every store table migrated.
type Database struct {
	Container *postgres.PostgresContainer
	DB        *gorm.DB
	Stores    *pgadapter.Stores
}

func Start(ctx context.Context) (*Database, error) {
	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(context.Background())
		return nil, err
	}

	db, err := pgadapter.Open(dsn)
	if err != nil {
		_ = container.Terminate(context.Background())
		return nil, err
	}

	stores := pgadapter.NewStores(db)
	if err = stores.Migrate(ctx); err != nil {
		_ = container.Terminate(context.Background())
		return nil, err
	}

	return &Database{Container: container, DB: db, Stores: stores}, nil
}

// Truncate empties every store table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE users, riders, parcels, payments, tracking_entries").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}
