package dto

import (
	"boxfactory/internal/domain/catalogs/branch"
	"boxfactory/internal/domain/catalogs/client"
	"boxfactory/internal/domain/catalogs/material"
	"boxfactory/internal/domain/catalogs/product"
)

// --- Client ---

type CreateClientRequest struct {
	Name    string `json:"name" binding:"max=200"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address" binding:"max=500"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zipCode"`
	Status  string `json:"status"`
}

func (r CreateClientRequest) ToEntity() (*client.Client, error) {
	c := client.NewClient(r.Name, r.Email)
	c.Phone, c.Address, c.City, c.State, c.ZipCode = r.Phone, r.Address, r.City, r.State, r.ZipCode
	if r.Status != "" {
		c.Status = client.Status(r.Status)
	}
	return c, nil
}

type UpdateClientRequest struct {
	Name    *string `json:"name" binding:"omitempty,max=200"`
	Email   *string `json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address" binding:"omitempty,max=500"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	ZipCode *string `json:"zipCode"`
	Status  *string `json:"status"`
}

func (r UpdateClientRequest) ApplyTo(prev *client.Client) (*client.Client, error) {
	next := *prev
	setString(&next.Name, r.Name)
	setString(&next.Email, r.Email)
	setString(&next.Phone, r.Phone)
	setString(&next.Address, r.Address)
	setString(&next.City, r.City)
	setString(&next.State, r.State)
	setString(&next.ZipCode, r.ZipCode)
	if r.Status != nil {
		next.Status = client.Status(*r.Status)
	}
	return &next, nil
}

// --- Branch ---

type CreateBranchRequest struct {
	Name     string `json:"name" binding:"max=200"`
	Location string `json:"location"`
	Manager  string `json:"manager"`
	Phone    string `json:"phone"`
	ClientID string `json:"clientId"`
	Status   string `json:"status"`
}

func (r CreateBranchRequest) ToEntity() (*branch.Branch, error) {
	clientID, err := parseRef(r.ClientID, client.EntityName, "clientId")
	if err != nil {
		return nil, err
	}
	b := branch.NewBranch(r.Name, clientID)
	b.Location, b.Manager, b.Phone = r.Location, r.Manager, r.Phone
	if r.Status != "" {
		b.Status = branch.Status(r.Status)
	}
	return b, nil
}

type UpdateBranchRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=200"`
	Location *string `json:"location"`
	Manager  *string `json:"manager"`
	Phone    *string `json:"phone"`
	ClientID *string `json:"clientId"`
	Status   *string `json:"status"`
}

func (r UpdateBranchRequest) ApplyTo(prev *branch.Branch) (*branch.Branch, error) {
	next := *prev
	setString(&next.Name, r.Name)
	setString(&next.Location, r.Location)
	setString(&next.Manager, r.Manager)
	setString(&next.Phone, r.Phone)
	if r.ClientID != nil {
		clientID, err := parseRef(*r.ClientID, client.EntityName, "clientId")
		if err != nil {
			return nil, err
		}
		next.ClientID = clientID
	}
	if r.Status != nil {
		next.Status = branch.Status(*r.Status)
	}
	return &next, nil
}

// --- Material ---

// CreateMaterialRequest has no status field: stock status is derived.
type CreateMaterialRequest struct {
	Name              string   `json:"name" binding:"max=200"`
	Description       string   `json:"description" binding:"max=2000"`
	Unit              string   `json:"unit"`
	CurrentStock      float64  `json:"currentStock"`
	Price             float64  `json:"price"`
	LowStockThreshold *float64 `json:"lowStockThreshold"`
}

func (r CreateMaterialRequest) ToEntity() (*material.Material, error) {
	m := material.NewMaterial(r.Name, material.Unit(r.Unit))
	m.Description, m.CurrentStock, m.Price = r.Description, r.CurrentStock, r.Price
	setFloat(&m.LowStockThreshold, r.LowStockThreshold)
	return m, nil
}

type UpdateMaterialRequest struct {
	Name              *string  `json:"name" binding:"omitempty,max=200"`
	Description       *string  `json:"description" binding:"omitempty,max=2000"`
	Unit              *string  `json:"unit"`
	CurrentStock      *float64 `json:"currentStock"`
	Price             *float64 `json:"price"`
	LowStockThreshold *float64 `json:"lowStockThreshold"`
}

func (r UpdateMaterialRequest) ApplyTo(prev *material.Material) (*material.Material, error) {
	next := *prev
	setString(&next.Name, r.Name)
	setString(&next.Description, r.Description)
	if r.Unit != nil {
		next.Unit = material.Unit(*r.Unit)
	}
	setFloat(&next.CurrentStock, r.CurrentStock)
	setFloat(&next.Price, r.Price)
	setFloat(&next.LowStockThreshold, r.LowStockThreshold)
	return &next, nil
}

// --- Product ---

// MaterialLineRequest is one bill-of-materials entry. The material name and
// unit are copied from the material itself.
type MaterialLineRequest struct {
	MaterialID string  `json:"materialId"`
	Quantity   float64 `json:"quantity"`
	UnitPrice  float64 `json:"unitPrice"`
}

func materialLines(in []MaterialLineRequest) ([]product.MaterialLine, error) {
	out := make([]product.MaterialLine, 0, len(in))
	for _, l := range in {
		materialID, err := parseLineRef(l.MaterialID, material.EntityName, "materials.materialId")
		if err != nil {
			return nil, err
		}
		out = append(out, product.MaterialLine{MaterialID: materialID, Quantity: l.Quantity, UnitPrice: l.UnitPrice})
	}
	return out, nil
}

type CreateProductRequest struct {
	Name        string                `json:"name" binding:"max=200"`
	Description string                `json:"description" binding:"max=2000"`
	Price       float64               `json:"price"`
	Status      string                `json:"status"`
	Materials   []MaterialLineRequest `json:"materials" binding:"dive"`
}

func (r CreateProductRequest) ToEntity() (*product.Product, error) {
	p := product.NewProduct(r.Name, r.Description)
	p.Price = r.Price
	if r.Status != "" {
		p.Status = product.Status(r.Status)
	}
	lines, err := materialLines(r.Materials)
	if err != nil {
		return nil, err
	}
	p.ReplaceMaterials(lines)
	return p, nil
}

type UpdateProductRequest struct {
	Name        *string                `json:"name" binding:"omitempty,max=200"`
	Description *string                `json:"description" binding:"omitempty,max=2000"`
	Price       *float64               `json:"price"`
	Status      *string                `json:"status"`
	Materials   *[]MaterialLineRequest `json:"materials" binding:"omitempty,dive"`
}

func (r UpdateProductRequest) ApplyTo(prev *product.Product) (*product.Product, error) {
	next := *prev
	setString(&next.Name, r.Name)
	setString(&next.Description, r.Description)
	setFloat(&next.Price, r.Price)
	if r.Status != nil {
		next.Status = product.Status(*r.Status)
	}
	if r.Materials != nil {
		lines, err := materialLines(*r.Materials)
		if err != nil {
			return nil, err
		}
		next.ReplaceMaterials(lines)
	}
	return &next, nil
}
