package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusInactive ProductStatus = "inactive"
)

// IsValid checks if the status is a valid ProductStatus
func (s ProductStatus) IsValid() bool {
	return s == ProductStatusActive || s == ProductStatusInactive
}

// Product represents a sellable item in the store catalog.
// It is the aggregate root for catalog operations.
type Product struct {
	shared.BaseAggregateRoot
	Code           string          `json:"code"`
	Name           string          `json:"name"`
	Barcode        string          `json:"barcode,omitempty"`
	Price          decimal.Decimal `json:"price"`
	Stock          int             `json:"stock"`
	AllowBackorder bool            `json:"allow_backorder"`
	Status         ProductStatus   `json:"status"`
}

// NewProduct creates a new active product
func NewProduct(code, name string, price valueobject.Money, stock int, allowBackorder bool) (*Product, error) {
	if err := validateProductCode(code); err != nil {
		return nil, err
	}
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Product stock cannot be negative")
	}

	product := &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.ToUpper(code),
		Name:              name,
		Price:             price.Round().Amount(),
		Stock:             stock,
		AllowBackorder:    allowBackorder,
		Status:            ProductStatusActive,
	}
	product.AddDomainEvent(NewProductCreatedEvent(product))
	return product, nil
}

// Update updates the product's basic information
func (p *Product) Update(name, barcode string) error {
	if err := validateProductName(name); err != nil {
		return err
	}
	if barcode != "" && len(barcode) > 50 {
		return shared.NewDomainError("INVALID_BARCODE", "Barcode cannot exceed 50 characters")
	}

	p.Name = name
	p.Barcode = barcode
	p.UpdatedAt = time.Now()
	return nil
}

// SetPrice changes the selling price
func (p *Product) SetPrice(price valueobject.Money) error {
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}
	p.Price = price.Round().Amount()
	p.UpdatedAt = time.Now()
	return nil
}

// DecrementStock removes sold quantity from stock. Backorder products may go
// negative; everything else is rejected when stock runs short.
func (p *Product) DecrementStock(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	if p.Status != ProductStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot sell an inactive product")
	}
	if !p.AllowBackorder && p.Stock < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Product %s has %d in stock, %d requested", p.Code, p.Stock, quantity))
	}

	p.Stock -= quantity
	p.UpdatedAt = time.Now()
	if p.Stock < 0 {
		p.AddDomainEvent(NewProductBackorderedEvent(p))
	}
	return nil
}

// RestoreStock returns quantity to stock, used when a sale is cancelled
func (p *Product) RestoreStock(quantity int) error {
	if quantity < 1 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be at least 1")
	}
	p.Stock += quantity
	p.UpdatedAt = time.Now()
	return nil
}

// Deactivate removes the product from sale without deleting its history
func (p *Product) Deactivate() {
	p.Status = ProductStatusInactive
	p.UpdatedAt = time.Now()
}

// Activate puts the product back on sale
func (p *Product) Activate() {
	p.Status = ProductStatusActive
	p.UpdatedAt = time.Now()
}

// GetPriceMoney returns the selling price as Money
func (p *Product) GetPriceMoney() valueobject.Money {
	return valueobject.NewMoney(p.Price)
}

func validateProductCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot be empty")
	}
	if len(code) > 50 {
		return shared.NewDomainError("INVALID_CODE", "Product code cannot exceed 50 characters")
	}
	return nil
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
