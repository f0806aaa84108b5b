package main

import (
	"context"
	"fmt"

	"boxfactory/internal/config"
	v1 "boxfactory/internal/infrastructure/http/v1"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/memory"
	"boxfactory/internal/infrastructure/storage/postgres"
	"boxfactory/internal/infrastructure/storage/postgres/catalog_repo"
	"boxfactory/internal/infrastructure/storage/postgres/document_repo"
	"boxfactory/internal/infrastructure/storage/postgres/report_repo"
	"boxfactory/pkg/logger"
)

// openStorage connects to Postgres and prepares the schema. When the
// database is unreachable and fallback is enabled it serves from memory
// instead, with a nil pool.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*postgres.Pool, v1.Backend, error) {
	log = log.WithComponent("storage")
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.ConnectTimeout = cfg.Database.ConnectTimeout
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		if !cfg.Database.Fallback {
			return nil, v1.Backend{}, fmt.Errorf("connect database: %w", err)
		}
		log.Warnw("database unreachable, serving from memory; data will not persist", "error", err)
		storage.MarkDegraded()
		return nil, memoryBackend(memory.NewStore()), nil
	}
	log.Info("database connection established")

	txm := postgres.NewTxManager(pool)
	if err := postgres.EnsureSchema(ctx, txm); err != nil {
		pool.Close()
		return nil, v1.Backend{}, fmt.Errorf("ensure schema: %w", err)
	}

	backend, err := postgresBackend(txm)
	if err != nil {
		pool.Close()
		return nil, v1.Backend{}, err
	}
	return pool, backend, nil
}

func postgresBackend(txm *postgres.TxManager) (v1.Backend, error) {
	auditLog, err := postgres.NewAuditLog(txm)
	if err != nil {
		return v1.Backend{}, fmt.Errorf("audit log: %w", err)
	}
	return v1.Backend{
		TxManager: txm,
		Clients:   catalog_repo.NewClientRepo(txm),
		Branches:  catalog_repo.NewBranchRepo(txm),
		Materials: catalog_repo.NewMaterialRepo(txm),
		Products:  catalog_repo.NewProductRepo(txm),
		Orders:    document_repo.NewOrderRepo(txm),
		Invoices:  document_repo.NewInvoiceRepo(txm),
		Payments:  document_repo.NewPaymentRepo(txm),
		Shipments: document_repo.NewShipmentRepo(txm),
		Audit:     auditLog,
		Dashboard: report_repo.NewDashboardRepo(txm),
	}, nil
}

func memoryBackend(s *memory.Store) v1.Backend {
	return v1.Backend{
		TxManager: s.TxManager,
		Clients:   s.Clients,
		Branches:  s.Branches,
		Materials: s.Materials,
		Products:  s.Products,
		Orders:    s.Orders,
		Invoices:  s.Invoices,
		Payments:  s.Payments,
		Shipments: s.Shipments,
		Audit:     s.Audit,
		Dashboard: s.Dashboard,
	}
}
