package postgres

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/domain/documents/order"
	"boxfactory/internal/domain/documents/shipment"
	"boxfactory/internal/infrastructure/storage"
)

func tableDDL(t *testing.T, table string) string {
	t.Helper()
	for _, stmt := range schema {
		if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			return stmt
		}
	}
	t.Fatalf("no DDL for %s", table)
	return ""
}

func TestSchema_CoversMappedColumns(t *testing.T) {
	tests := []struct {
		table string
		cols  []string
	}{
		{storage.TableClients, storage.ExtractDBColumns[client.Client]()},
		{storage.TableMaterials, storage.ExtractDBColumns[material.Material]()},
		{storage.TableProducts, storage.ExtractDBColumns[product.Product]()},
		{storage.TableOrders, storage.ExtractDBColumns[order.Order]()},
		{storage.TableShipments, storage.ExtractDBColumns[shipment.Shipment]()},
	}
	for _, tt := range tests {
		t.Run(tt.table, func(t *testing.T) {
			ddl := tableDDL(t, tt.table)
			for _, col := range tt.cols {
				assert.Contains(t, ddl, "\n\t\t"+col+" ", "column %s", col)
			}
		})
	}
}

func TestSchema_UniqueConstraintNames(t *testing.T) {
	for table, keys := range storage.UniqueKeys {
		ddl := tableDDL(t, table)
		for _, k := range keys {
			assert.Contains(t, ddl, "CONSTRAINT "+k.Constraint+" UNIQUE")
		}
	}
}
