package catalog_repo

import (
	"boxfactory/internal/domain/catalogs/branch"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/catalogs/product"
	"boxfactory/internal/infrastructure/storage"
	"boxfactory/internal/infrastructure/storage/postgres"
)

// ClientRepo implements client.Repository. Email uniqueness is a table constraint.
type ClientRepo struct {
	*BaseCatalogRepo[*client.Client]
}

var _ client.Repository = (*ClientRepo)(nil)

// NewClientRepo creates a new client repository.
func NewClientRepo(txm *postgres.TxManager) *ClientRepo {
	return &ClientRepo{NewBaseCatalogRepo[client.Client](txm, storage.TableClients, client.EntityName)}
}

// BranchRepo implements branch.Repository.
type BranchRepo struct {
	*BaseCatalogRepo[*branch.Branch]
}

var _ branch.Repository = (*BranchRepo)(nil)

// NewBranchRepo creates a new branch repository.
func NewBranchRepo(txm *postgres.TxManager) *BranchRepo {
	return &BranchRepo{NewBaseCatalogRepo[branch.Branch](txm, storage.TableBranches, branch.EntityName)}
}

// MaterialRepo implements material.Repository.
type MaterialRepo struct {
	*BaseCatalogRepo[*material.Material]
}

var _ material.Repository = (*MaterialRepo)(nil)

// NewMaterialRepo creates a new material repository.
func NewMaterialRepo(txm *postgres.TxManager) *MaterialRepo {
	return &MaterialRepo{NewBaseCatalogRepo[material.Material](txm, storage.TableMaterials, material.EntityName)}
}

// ProductRepo implements product.Repository. The bill of materials is a jsonb column.
type ProductRepo struct {
	*BaseCatalogRepo[*product.Product]
}

var _ product.Repository = (*ProductRepo)(nil)

// NewProductRepo creates a new product repository.
func NewProductRepo(txm *postgres.TxManager) *ProductRepo {
	return &ProductRepo{NewBaseCatalogRepo[product.Product](txm, storage.TableProducts, product.EntityName)}
}
