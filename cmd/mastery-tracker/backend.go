package main

import (
	"context"
	"fmt"

	"Mansoor88-6/mastery-tracker/internal/config"
	"Mansoor88-6/mastery-tracker/internal/database"
	"Mansoor88-6/mastery-tracker/internal/repository"
	"Mansoor88-6/mastery-tracker/internal/repository/postgres"
	"Mansoor88-6/mastery-tracker/internal/service"

	pgxTransactor "github.com/Thiht/transactor/pgx"
	txStdLib "github.com/Thiht/transactor/stdlib"
	"go.uber.org/zap"
)

// backend bundles the stores and transactor of the configured database driver
type backend struct {
	tx      service.Transactor
	tasks   service.TaskStore
	entries service.TimeEntryStore
	journal service.JournalStore
	close   func()
}

// openBackend connects to the configured database and applies pending migrations
func openBackend(ctx context.Context, cfg config.Database, logger *zap.Logger) (*backend, error) {
	switch cfg.Driver {
	case config.DriverSQLite:
		db, err := database.New(cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		tx, dbGetter := txStdLib.NewTransactor(db.DB, txStdLib.NestedTransactionsSavepoints)
		return &backend{
			tx:      tx,
			tasks:   repository.NewTaskRepository(dbGetter),
			entries: repository.NewTimeEntryRepository(dbGetter),
			journal: repository.NewJournalRepository(dbGetter),
			close: func() {
				if err := db.Close(); err != nil {
					logger.Error("Failed to close database", zap.Error(err))
				}
			},
		}, nil

	case config.DriverPostgres:
		pool, err := database.NewPostgres(ctx, cfg.DSN, logger)
		if err != nil {
			return nil, err
		}
		tx, dbGetter := pgxTransactor.NewTransactorFromPool(pool)
		return &backend{
			tx:      tx,
			tasks:   postgres.NewTaskStore(dbGetter),
			entries: postgres.NewTimeEntryStore(dbGetter),
			journal: postgres.NewJournalStore(dbGetter),
			close:   pool.Close,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}
