package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/shared"
)

// SaleModel is the persistence model for the Sale aggregate.
type SaleModel struct {
	AggregateModel
	Number                 string            `gorm:"type:varchar(50);not null;uniqueIndex"`
	CustomerID             *uuid.UUID        `gorm:"type:uuid;index"`
	CustomerName           string            `gorm:"type:varchar(200);not null"`
	Items                  []SaleItemModel   `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	Subtotal               decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	DiscountPercent        decimal.Decimal   `gorm:"type:decimal(7,4);not null;default:0"`
	DiscountAmount         decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Total                  decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	NetTotal               decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	PaidAmount             decimal.Decimal   `gorm:"type:decimal(18,2);not null;default:0"`
	Status                 ledger.SaleStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	InstallmentPlan        int               `gorm:"not null;default:1"`
	FixedInstallmentAmount *decimal.Decimal  `gorm:"type:decimal(18,2)"`
	PaymentDay             int               `gorm:"not null"`
	SaleDate               time.Time         `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (SaleModel) TableName() string {
	return "sales"
}

// SaleItemModel is the persistence model for a sale line item.
type SaleItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	SaleID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductName string          `gorm:"type:varchar(200);not null"`
	Quantity    int             `gorm:"not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,2);not null"`
	Total       decimal.Decimal `gorm:"type:decimal(18,2);not null"`
}

// TableName returns the table name for GORM
func (SaleItemModel) TableName() string {
	return "sale_items"
}

// ToDomain converts the persistence model to a domain Sale aggregate.
func (m *SaleModel) ToDomain() *ledger.Sale {
	items := make([]ledger.SaleItem, len(m.Items))
	for i, item := range m.Items {
		items[i] = ledger.SaleItem{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}
	return &ledger.Sale{
		BaseAggregateRoot:      m.ToDomainAggregateRoot(),
		Number:                 m.Number,
		CustomerID:             m.CustomerID,
		CustomerName:           m.CustomerName,
		Items:                  items,
		Subtotal:               m.Subtotal,
		DiscountPercent:        m.DiscountPercent,
		DiscountAmount:         m.DiscountAmount,
		Total:                  m.Total,
		NetTotal:               m.NetTotal,
		PaidAmount:             m.PaidAmount,
		Status:                 m.Status,
		InstallmentPlan:        m.InstallmentPlan,
		FixedInstallmentAmount: m.FixedInstallmentAmount,
		PaymentDay:             m.PaymentDay,
		SaleDate:               m.SaleDate,
	}
}

// FromDomain populates the persistence model from a domain Sale aggregate.
func (m *SaleModel) FromDomain(s *ledger.Sale) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.Number = s.Number
	m.CustomerID = s.CustomerID
	m.CustomerName = s.CustomerName
	m.Subtotal = s.Subtotal
	m.DiscountPercent = s.DiscountPercent
	m.DiscountAmount = s.DiscountAmount
	m.Total = s.Total
	m.NetTotal = s.NetTotal
	m.PaidAmount = s.PaidAmount
	m.Status = s.Status
	m.InstallmentPlan = s.InstallmentPlan
	m.FixedInstallmentAmount = s.FixedInstallmentAmount
	m.PaymentDay = s.PaymentDay
	m.SaleDate = s.SaleDate

	m.Items = make([]SaleItemModel, len(s.Items))
	for i, item := range s.Items {
		m.Items[i] = SaleItemModel{
			ID:          item.ID,
			SaleID:      s.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Total:       item.Total,
		}
	}
}

// SaleModelFromDomain creates a new persistence model from a domain Sale.
func SaleModelFromDomain(s *ledger.Sale) *SaleModel {
	m := &SaleModel{}
	m.FromDomain(s)
	return m
}

// ReceivableModel is the persistence model for the Receivable aggregate.
type ReceivableModel struct {
	AggregateModel
	SaleID      uuid.UUID               `gorm:"type:uuid;not null;index"`
	Installment int                     `gorm:"not null"`
	Amount      decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	PaidAmount  decimal.Decimal         `gorm:"type:decimal(18,2);not null;default:0"`
	DueDate     time.Time               `gorm:"not null;index"`
	Status      ledger.ReceivableStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	PaidAt      *time.Time
}

// TableName returns the table name for GORM
func (ReceivableModel) TableName() string {
	return "receivables"
}

// ToDomain converts the persistence model to a domain Receivable aggregate.
func (m *ReceivableModel) ToDomain() *ledger.Receivable {
	return &ledger.Receivable{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		SaleID:            m.SaleID,
		Installment:       m.Installment,
		Amount:            m.Amount,
		PaidAmount:        m.PaidAmount,
		DueDate:           m.DueDate,
		Status:            m.Status,
		PaidAt:            m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Receivable.
func (m *ReceivableModel) FromDomain(r *ledger.Receivable) {
	m.FromDomainAggregateRoot(r.BaseAggregateRoot)
	m.SaleID = r.SaleID
	m.Installment = r.Installment
	m.Amount = r.Amount
	m.PaidAmount = r.PaidAmount
	m.DueDate = r.DueDate
	m.Status = r.Status
	m.PaidAt = r.PaidAt
}

// ReceivableModelFromDomain creates a new persistence model from a domain Receivable.
func ReceivableModelFromDomain(r *ledger.Receivable) *ReceivableModel {
	m := &ReceivableModel{}
	m.FromDomain(r)
	return m
}

// PaymentModel is the persistence model for the append-only Payment record.
type PaymentModel struct {
	BaseModel
	SaleID           uuid.UUID            `gorm:"type:uuid;not null;index"`
	Method           ledger.PaymentMethod `gorm:"type:varchar(20);not null"`
	Amount           decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	FeePercent       decimal.Decimal      `gorm:"type:decimal(7,4);not null;default:0"`
	FeeAmount        decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	FeeAbsorber      ledger.FeeAbsorber   `gorm:"type:varchar(20);not null;default:'seller'"`
	CardInstallments int                  `gorm:"not null;default:0"`
	PaidAt           time.Time            `gorm:"not null;index"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment record.
func (m *PaymentModel) ToDomain() *ledger.Payment {
	return &ledger.Payment{
		BaseEntity: shared.BaseEntity{
			ID:        m.ID,
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		},
		SaleID:           m.SaleID,
		Method:           m.Method,
		Amount:           m.Amount,
		FeePercent:       m.FeePercent,
		FeeAmount:        m.FeeAmount,
		FeeAbsorber:      m.FeeAbsorber,
		CardInstallments: m.CardInstallments,
		PaidAt:           m.PaidAt,
	}
}

// FromDomain populates the persistence model from a domain Payment.
func (m *PaymentModel) FromDomain(p *ledger.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.SaleID = p.SaleID
	m.Method = p.Method
	m.Amount = p.Amount
	m.FeePercent = p.FeePercent
	m.FeeAmount = p.FeeAmount
	m.FeeAbsorber = p.FeeAbsorber
	m.CardInstallments = p.CardInstallments
	m.PaidAt = p.PaidAt
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *ledger.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
