package postgres

import (
	"errors"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/apperror"
	"boxfactory/internal/infrastructure/storage"
)

func TestMapWriteError(t *testing.T) {
	t.Run("unique violation", func(t *testing.T) {
		err := MapWriteError(storage.TableInvoices, "Invoice", "insert", &pgconn.PgError{
			Code:           "23505",
			ConstraintName: "invoices_invoice_number_key",
		})
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeDuplicate, appErr.Code)
		assert.Equal(t, "Invoice with this invoiceNumber already exists", appErr.Message)
	})

	t.Run("foreign key violation", func(t *testing.T) {
		err := MapWriteError(storage.TableClients, "Client", "delete", &pgconn.PgError{Code: "23503"})
		assert.Equal(t, 409, apperror.GetHTTPStatus(err))
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		cause := errors.New("connection reset")
		err := MapWriteError(storage.TableOrders, "Order", "update", cause)
		assert.ErrorIs(t, err, cause)
		assert.False(t, apperror.IsAppError(err))
	})

	assert.NoError(t, MapWriteError("t", "T", "op", nil))
}
