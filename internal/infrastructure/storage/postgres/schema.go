package postgres

import (
	"context"
	"fmt"

	"boxfactory/pkg/logger"
)

// schema creates every table when missing. Constraint names match
// storage.UniqueKeys so duplicates map to field-level errors.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS clients (
		id          UUID PRIMARY KEY,
		version     INT NOT NULL DEFAULT 1,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		name        TEXT NOT NULL,
		email       TEXT NOT NULL CONSTRAINT clients_email_key UNIQUE,
		phone       TEXT NOT NULL DEFAULT '',
		address     TEXT NOT NULL DEFAULT '',
		city        TEXT NOT NULL DEFAULT '',
		state       TEXT NOT NULL DEFAULT '',
		zip_code    TEXT NOT NULL DEFAULT '',
		status      TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS branches (
		id          UUID PRIMARY KEY,
		version     INT NOT NULL DEFAULT 1,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		name        TEXT NOT NULL,
		location    TEXT NOT NULL DEFAULT '',
		manager     TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		client_id   UUID NOT NULL,
		status      TEXT NOT NULL DEFAULT 'active'
	)`,
	`CREATE TABLE IF NOT EXISTS materials (
		id                  UUID PRIMARY KEY,
		version             INT NOT NULL DEFAULT 1,
		created_at          TIMESTAMPTZ NOT NULL,
		updated_at          TIMESTAMPTZ NOT NULL,
		name                TEXT NOT NULL,
		description         TEXT NOT NULL DEFAULT '',
		unit                TEXT NOT NULL,
		current_stock       DOUBLE PRECISION NOT NULL DEFAULT 0,
		price               DOUBLE PRECISION NOT NULL DEFAULT 0,
		low_stock_threshold DOUBLE PRECISION NOT NULL DEFAULT 10,
		status              TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS products (
		id          UUID PRIMARY KEY,
		version     INT NOT NULL DEFAULT 1,
		created_at  TIMESTAMPTZ NOT NULL,
		updated_at  TIMESTAMPTZ NOT NULL,
		name        TEXT NOT NULL,
		description TEXT NOT NULL DEFAULT '',
		price       DOUBLE PRECISION NOT NULL DEFAULT 0,
		status      TEXT NOT NULL,
		materials   JSONB NOT NULL DEFAULT '[]'
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		id            UUID PRIMARY KEY,
		version       INT NOT NULL DEFAULT 1,
		created_at    TIMESTAMPTZ NOT NULL,
		updated_at    TIMESTAMPTZ NOT NULL,
		notes         TEXT NOT NULL DEFAULT '',
		client_id     UUID NOT NULL,
		client_name   TEXT NOT NULL DEFAULT '',
		order_date    TIMESTAMPTZ NOT NULL,
		delivery_date TIMESTAMPTZ NOT NULL,
		status        TEXT NOT NULL,
		priority      TEXT NOT NULL,
		order_source  TEXT NOT NULL,
		items         JSONB NOT NULL DEFAULT '[]',
		total_amount  DOUBLE PRECISION NOT NULL DEFAULT 0
	)`,
	`CREATE INDEX IF NOT EXISTS orders_items_gin ON orders USING GIN (items jsonb_path_ops)`,
	`CREATE TABLE IF NOT EXISTS invoices (
		id             UUID PRIMARY KEY,
		version        INT NOT NULL DEFAULT 1,
		created_at     TIMESTAMPTZ NOT NULL,
		updated_at     TIMESTAMPTZ NOT NULL,
		notes          TEXT NOT NULL DEFAULT '',
		client_id      UUID NOT NULL,
		client_name    TEXT NOT NULL DEFAULT '',
		invoice_number TEXT NOT NULL CONSTRAINT invoices_invoice_number_key UNIQUE,
		order_id       UUID,
		amount         DOUBLE PRECISION NOT NULL,
		invoice_date   TIMESTAMPTZ NOT NULL,
		due_date       TIMESTAMPTZ,
		status         TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		id               UUID PRIMARY KEY,
		version          INT NOT NULL DEFAULT 1,
		created_at       TIMESTAMPTZ NOT NULL,
		updated_at       TIMESTAMPTZ NOT NULL,
		notes            TEXT NOT NULL DEFAULT '',
		client_id        UUID NOT NULL,
		client_name      TEXT NOT NULL DEFAULT '',
		payment_number   TEXT NOT NULL CONSTRAINT payments_payment_number_key UNIQUE,
		invoice_id       UUID,
		amount           DOUBLE PRECISION NOT NULL,
		date             TIMESTAMPTZ NOT NULL,
		payment_method   TEXT NOT NULL,
		status           TEXT NOT NULL,
		reference_number TEXT NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS shipments (
		id                 UUID PRIMARY KEY,
		version            INT NOT NULL DEFAULT 1,
		created_at         TIMESTAMPTZ NOT NULL,
		updated_at         TIMESTAMPTZ NOT NULL,
		notes              TEXT NOT NULL DEFAULT '',
		client_id          UUID NOT NULL,
		client_name        TEXT NOT NULL DEFAULT '',
		shipment_number    TEXT NOT NULL CONSTRAINT shipments_shipment_number_key UNIQUE,
		order_id           UUID,
		tracking_number    TEXT NOT NULL,
		shipment_date      TIMESTAMPTZ NOT NULL,
		estimated_delivery TIMESTAMPTZ,
		status             TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS sys_audit (
		id                 UUID PRIMARY KEY,
		entity_type        TEXT NOT NULL,
		entity_id          UUID NOT NULL,
		action             TEXT NOT NULL,
		changes            JSONB,
		changes_compressed BYTEA,
		compression_algo   TEXT,
		created_at         TIMESTAMPTZ NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS sys_audit_entity_idx ON sys_audit (entity_type, entity_id, created_at DESC)`,
}

// EnsureSchema creates missing tables and indexes in one transaction.
func EnsureSchema(ctx context.Context, txm *TxManager) error {
	return txm.RunInTransaction(ctx, func(ctx context.Context) error {
		q := txm.GetQuerier(ctx)
		for i, stmt := range schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return fmt.Errorf("schema statement %d: %w", i+1, err)
			}
		}
		logger.Info(ctx, "schema ensured", "statements", len(schema))
		return nil
	})
}
