package partner

import (
	"time"

	"github.com/google/uuid"

	"github.com/pos/backend/internal/domain/partner"
)

// CreateCustomerRequest registers a customer
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required,min=1,max=200"`
	Phone   string `json:"phone" binding:"max=50"`
	Email   string `json:"email" binding:"omitempty,email,max=200"`
	Address string `json:"address" binding:"max=500"`
	Notes   string `json:"notes"`
}

// UpdateCustomerRequest updates a customer's mutable fields
type UpdateCustomerRequest struct {
	Name            *string  `json:"name,omitempty" binding:"omitempty,min=1,max=200"`
	Phone           *string  `json:"phone,omitempty" binding:"omitempty,max=50"`
	Email           *string  `json:"email,omitempty" binding:"omitempty,email,max=200"`
	Address         *string  `json:"address,omitempty" binding:"omitempty,max=500"`
	Notes           *string  `json:"notes,omitempty"`
	DiscountPercent *float64 `json:"discount_percent,omitempty" binding:"omitempty,gte=0,lte=100"`
}

// CustomerListFilter filters the customer listing
type CustomerListFilter struct {
	Page     int     `form:"page"`
	PageSize int     `form:"page_size"`
	Search   string  `form:"search"`
	Status   *string `form:"status"`
	OrderBy  string  `form:"order_by"`
	OrderDir string  `form:"order_dir"`
}

// CustomerResponse is the API view of a customer
type CustomerResponse struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone,omitempty"`
	Email           string    `json:"email,omitempty"`
	Address         string    `json:"address,omitempty"`
	DiscountPercent string    `json:"discount_percent"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToCustomerResponse maps a domain customer to its response
func ToCustomerResponse(c *partner.Customer) CustomerResponse {
	return CustomerResponse{
		ID:              c.ID,
		Name:            c.Name,
		Phone:           c.Phone,
		Email:           c.Email,
		Address:         c.Address,
		DiscountPercent: c.DiscountPercent.String(),
		Status:          string(c.Status),
		Notes:           c.Notes,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

// ToCustomerResponses maps a customer slice to responses
func ToCustomerResponses(customers []partner.Customer) []CustomerResponse {
	out := make([]CustomerResponse, 0, len(customers))
	for i := range customers {
		out = append(out, ToCustomerResponse(&customers[i]))
	}
	return out
}
