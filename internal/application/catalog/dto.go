package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/catalog"
)

// CreateProductRequest registers a product in the catalog
type CreateProductRequest struct {
	Code           string  `json:"code" binding:"required,min=1,max=50"`
	Name           string  `json:"name" binding:"required,min=1,max=200"`
	Barcode        string  `json:"barcode" binding:"max=100"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	Stock          int     `json:"stock" binding:"gte=0"`
	AllowBackorder bool    `json:"allow_backorder"`
}

// UpdateProductRequest updates a product's mutable fields
type UpdateProductRequest struct {
	Name    *string  `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Barcode *string  `json:"barcode,omitempty" binding:"omitempty,max=100"`
	Price   *float64 `json:"price,omitempty" binding:"omitempty,gt=0"`
}

// AdjustStockRequest moves stock in or out by a signed quantity
type AdjustStockRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

// ProductListFilter filters the product listing
type ProductListFilter struct {
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
	Search   string  `form:"search"`
	Status   *string `form:"status"`
	InStock  *bool   `form:"in_stock"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir"`
}

// ProductResponse is the API view of a product
type ProductResponse struct {
	ID             uuid.UUID `json:"id"`
	Code           string    `json:"code"`
	Name           string    `json:"name"`
	Barcode        string    `json:"barcode,omitempty"`
	Price          string    `json:"price"`
	Stock          int       `json:"stock"`
	AllowBackorder bool      `json:"allow_backorder"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ToProductResponse maps a domain product to its response
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:             p.ID,
		Code:           p.Code,
		Name:           p.Name,
		Barcode:        p.Barcode,
		Price:          p.Price.StringFixed(2),
		Stock:          p.Stock,
		AllowBackorder: p.AllowBackorder,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

// ToProductResponses maps a product slice to responses
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, ToProductResponse(&products[i]))
	}
	return out
}
