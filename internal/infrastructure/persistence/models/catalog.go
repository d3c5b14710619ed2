package models

import (
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/catalog"
)

// ProductModel is the persistence model for the Product aggregate.
type ProductModel struct {
	AggregateModel
	Code           string                `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name           string                `gorm:"type:varchar(200);not null"`
	Barcode        string                `gorm:"type:varchar(100);index"`
	Price          decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Stock          int                   `gorm:"not null;default:0"`
	AllowBackorder bool                  `gorm:"not null;default:false"`
	Status         catalog.ProductStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product aggregate.
func (m *ProductModel) ToDomain() *catalog.Product {
	return &catalog.Product{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Barcode:           m.Barcode,
		Price:             m.Price,
		Stock:             m.Stock,
		AllowBackorder:    m.AllowBackorder,
		Status:            m.Status,
	}
}

// FromDomain populates the persistence model from a domain Product.
func (m *ProductModel) FromDomain(p *catalog.Product) {
	m.FromDomainAggregateRoot(p.BaseAggregateRoot)
	m.Code = p.Code
	m.Name = p.Name
	m.Barcode = p.Barcode
	m.Price = p.Price
	m.Stock = p.Stock
	m.AllowBackorder = p.AllowBackorder
	m.Status = p.Status
}

// ProductModelFromDomain creates a new persistence model from a domain Product.
func ProductModelFromDomain(p *catalog.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}
