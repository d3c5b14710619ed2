package catalog

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ProductCreatedEvent is raised when a new product is created
type ProductCreatedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID       `json:"product_id"`
	Code      string          `json:"code"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
}

// EventType returns the event type name
func (e *ProductCreatedEvent) EventType() string {
	return "ProductCreated"
}

// NewProductCreatedEvent creates a new ProductCreatedEvent
func NewProductCreatedEvent(p *Product) *ProductCreatedEvent {
	return &ProductCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProductCreated", "Product", p.ID),
		ProductID:       p.ID,
		Code:            p.Code,
		Name:            p.Name,
		Price:           p.Price,
	}
}

// ProductBackorderedEvent is raised when a sale drives stock below zero
type ProductBackorderedEvent struct {
	shared.BaseDomainEvent
	ProductID uuid.UUID `json:"product_id"`
	Code      string    `json:"code"`
	Stock     int       `json:"stock"`
}

// EventType returns the event type name
func (e *ProductBackorderedEvent) EventType() string {
	return "ProductBackordered"
}

// NewProductBackorderedEvent creates a new ProductBackorderedEvent
func NewProductBackorderedEvent(p *Product) *ProductBackorderedEvent {
	return &ProductBackorderedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ProductBackordered", "Product", p.ID),
		ProductID:       p.ID,
		Code:            p.Code,
		Stock:           p.Stock,
	}
}
