package models

import (
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/partner"
)

// CustomerModel is the persistence model for the Customer aggregate.
type CustomerModel struct {
	AggregateModel
	Name            string                 `gorm:"type:varchar(200);not null"`
	Phone           string                 `gorm:"type:varchar(50);index"`
	Email           string                 `gorm:"type:varchar(200);index"`
	Address         string                 `gorm:"type:text"`
	DiscountPercent decimal.Decimal        `gorm:"type:decimal(7,4);not null;default:0"`
	Status          partner.CustomerStatus `gorm:"type:varchar(20);not null;default:'active';index"`
	Notes           string                 `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer aggregate.
func (m *CustomerModel) ToDomain() *partner.Customer {
	return &partner.Customer{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Name:              m.Name,
		Phone:             m.Phone,
		Email:             m.Email,
		Address:           m.Address,
		DiscountPercent:   m.DiscountPercent,
		Status:            m.Status,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Customer.
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainAggregateRoot(c.BaseAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Address = c.Address
	m.DiscountPercent = c.DiscountPercent
	m.Status = c.Status
	m.Notes = c.Notes
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer.
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
