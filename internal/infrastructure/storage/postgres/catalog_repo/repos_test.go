package catalog_repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"boxfactory/internal/core/id"
)

func TestProductRepo_SelectsMaterialsColumn(t *testing.T) {
	repo := NewProductRepo(nil)

	sql, args, err := repo.BaseSelect().Where("id = ?", id.Nil()).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "materials")
	assert.Contains(t, sql, "FROM products WHERE id = $1")
	assert.Len(t, args, 1)
}

func TestClientRepo_Table(t *testing.T) {
	assert.Equal(t, "clients", NewClientRepo(nil).TableName())
	assert.Equal(t, "branches", NewBranchRepo(nil).TableName())
	assert.Equal(t, "materials", NewMaterialRepo(nil).TableName())
}
