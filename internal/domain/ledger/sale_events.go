package ledger

import (
	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleCreatedEvent is raised when a new sale is created
type SaleCreatedEvent struct {
	shared.BaseDomainEvent
	SaleID          uuid.UUID       `json:"sale_id"`
	Number          string          `json:"number"`
	CustomerID      *uuid.UUID      `json:"customer_id,omitempty"`
	Total           decimal.Decimal `json:"total"`
	InstallmentPlan int             `json:"installment_plan"`
}

// EventType returns the event type name
func (e *SaleCreatedEvent) EventType() string {
	return "SaleCreated"
}

// NewSaleCreatedEvent creates a new SaleCreatedEvent
func NewSaleCreatedEvent(s *Sale) *SaleCreatedEvent {
	return &SaleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCreated", "Sale", s.ID),
		SaleID:          s.ID,
		Number:          s.Number,
		CustomerID:      s.CustomerID,
		Total:           s.Total,
		InstallmentPlan: s.InstallmentPlan,
	}
}

// SaleAmendedEvent is raised when items are added to an open sale and the
// receivable schedule is reshaped
type SaleAmendedEvent struct {
	shared.BaseDomainEvent
	SaleID      uuid.UUID       `json:"sale_id"`
	Number      string          `json:"number"`
	AddedAmount decimal.Decimal `json:"added_amount"`
	NewTotal    decimal.Decimal `json:"new_total"`
	PlanCount   int             `json:"plan_count"`
}

// EventType returns the event type name
func (e *SaleAmendedEvent) EventType() string {
	return "SaleAmended"
}

// NewSaleAmendedEvent creates a new SaleAmendedEvent
func NewSaleAmendedEvent(s *Sale, added decimal.Decimal) *SaleAmendedEvent {
	return &SaleAmendedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleAmended", "Sale", s.ID),
		SaleID:          s.ID,
		Number:          s.Number,
		AddedAmount:     added,
		NewTotal:        s.Total,
		PlanCount:       s.InstallmentPlan,
	}
}

// SalePaymentRegisteredEvent is raised when a payment is registered against a sale
type SalePaymentRegisteredEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	PaymentID  uuid.UUID       `json:"payment_id"`
	Amount     decimal.Decimal `json:"amount"`
	Method     PaymentMethod   `json:"method"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// EventType returns the event type name
func (e *SalePaymentRegisteredEvent) EventType() string {
	return "SalePaymentRegistered"
}

// NewSalePaymentRegisteredEvent creates a new SalePaymentRegisteredEvent
func NewSalePaymentRegisteredEvent(s *Sale, p *Payment) *SalePaymentRegisteredEvent {
	return &SalePaymentRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SalePaymentRegistered", "Sale", s.ID),
		SaleID:          s.ID,
		PaymentID:       p.ID,
		Amount:          p.Amount,
		Method:          p.Method,
		PaidAmount:      s.PaidAmount,
	}
}

// SaleCompletedEvent is raised when every receivable of a sale is paid
type SaleCompletedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID       `json:"sale_id"`
	Number     string          `json:"number"`
	Total      decimal.Decimal `json:"total"`
	PaidAmount decimal.Decimal `json:"paid_amount"`
}

// EventType returns the event type name
func (e *SaleCompletedEvent) EventType() string {
	return "SaleCompleted"
}

// NewSaleCompletedEvent creates a new SaleCompletedEvent
func NewSaleCompletedEvent(s *Sale) *SaleCompletedEvent {
	return &SaleCompletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCompleted", "Sale", s.ID),
		SaleID:          s.ID,
		Number:          s.Number,
		Total:           s.Total,
		PaidAmount:      s.PaidAmount,
	}
}

// SaleCancelledEvent is raised when a sale is cancelled and its stock restored
type SaleCancelledEvent struct {
	shared.BaseDomainEvent
	SaleID uuid.UUID `json:"sale_id"`
	Number string    `json:"number"`
}

// EventType returns the event type name
func (e *SaleCancelledEvent) EventType() string {
	return "SaleCancelled"
}

// NewSaleCancelledEvent creates a new SaleCancelledEvent
func NewSaleCancelledEvent(s *Sale) *SaleCancelledEvent {
	return &SaleCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("SaleCancelled", "Sale", s.ID),
		SaleID:          s.ID,
		Number:          s.Number,
	}
}
