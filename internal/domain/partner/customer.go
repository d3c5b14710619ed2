package partner

import (
	"regexp"
	"time"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// CustomerStatus represents the status of a customer
type CustomerStatus string

const (
	CustomerStatusActive    CustomerStatus = "active"
	CustomerStatusInactive  CustomerStatus = "inactive"
	CustomerStatusSuspended CustomerStatus = "suspended" // Suspended due to unpaid installments
)

// IsValid checks if the status is a valid CustomerStatus
func (s CustomerStatus) IsValid() bool {
	switch s {
	case CustomerStatusActive, CustomerStatusInactive, CustomerStatusSuspended:
		return true
	}
	return false
}

var phonePattern = regexp.MustCompile(`^[\d\s()+-]{8,20}$`)
var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer represents a store customer with an optional standing discount.
// It is the aggregate root for customer operations.
type Customer struct {
	shared.BaseAggregateRoot
	Name            string          `json:"name"`
	Phone           string          `json:"phone,omitempty"`
	Email           string          `json:"email,omitempty"`
	Address         string          `json:"address,omitempty"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	Status          CustomerStatus  `json:"status"`
	Notes           string          `json:"notes,omitempty"`
}

// NewCustomer creates a new active customer
func NewCustomer(name, phone, email string) (*Customer, error) {
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return nil, shared.NewDomainError("INVALID_PHONE", "Phone number format is not valid")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return nil, shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}

	customer := &Customer{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Phone:             phone,
		Email:             email,
		DiscountPercent:   decimal.Zero,
		Status:            CustomerStatusActive,
	}
	customer.AddDomainEvent(NewCustomerCreatedEvent(customer))
	return customer, nil
}

// Update updates the customer's contact information
func (c *Customer) Update(name, phone, email, address string) error {
	if err := validateCustomerName(name); err != nil {
		return err
	}
	if phone != "" && !phonePattern.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Phone number format is not valid")
	}
	if email != "" && !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is not valid")
	}

	c.Name = name
	c.Phone = phone
	c.Email = email
	c.Address = address
	c.UpdatedAt = time.Now()
	return nil
}

// SetDiscount sets the customer's standing discount applied to new sales
func (c *Customer) SetDiscount(percent decimal.Decimal) error {
	if percent.IsNegative() || percent.GreaterThan(decimal.NewFromInt(100)) {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	c.DiscountPercent = percent
	c.UpdatedAt = time.Now()
	return nil
}

// Suspend blocks the customer from new installment sales
func (c *Customer) Suspend() error {
	if c.Status == CustomerStatusSuspended {
		return shared.NewDomainError("INVALID_STATE", "Customer is already suspended")
	}
	c.Status = CustomerStatusSuspended
	c.UpdatedAt = time.Now()
	return nil
}

// Reactivate restores a suspended or inactive customer
func (c *Customer) Reactivate() {
	c.Status = CustomerStatusActive
	c.UpdatedAt = time.Now()
}

// CanBuyOnInstallments reports whether new installment sales are allowed
func (c *Customer) CanBuyOnInstallments() bool {
	return c.Status == CustomerStatusActive
}

func validateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Customer name cannot exceed 200 characters")
	}
	return nil
}
