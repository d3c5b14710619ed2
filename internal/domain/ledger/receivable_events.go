package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// ReceivablePaidEvent is raised when an installment is fully paid
type ReceivablePaidEvent struct {
	shared.BaseDomainEvent
	ReceivableID uuid.UUID       `json:"receivable_id"`
	SaleID       uuid.UUID       `json:"sale_id"`
	Installment  int             `json:"installment"`
	Amount       decimal.Decimal `json:"amount"`
	PaidAt       time.Time       `json:"paid_at"`
}

// EventType returns the event type name
func (e *ReceivablePaidEvent) EventType() string {
	return "ReceivablePaid"
}

// NewReceivablePaidEvent creates a new ReceivablePaidEvent
func NewReceivablePaidEvent(r *Receivable) *ReceivablePaidEvent {
	paidAt := time.Now()
	if r.PaidAt != nil {
		paidAt = *r.PaidAt
	}
	return &ReceivablePaidEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceivablePaid", "Receivable", r.ID),
		ReceivableID:    r.ID,
		SaleID:          r.SaleID,
		Installment:     r.Installment,
		Amount:          r.Amount,
		PaidAt:          paidAt,
	}
}

// ReceivableCancelledEvent is raised when an installment is cancelled
type ReceivableCancelledEvent struct {
	shared.BaseDomainEvent
	ReceivableID uuid.UUID `json:"receivable_id"`
	SaleID       uuid.UUID `json:"sale_id"`
	Installment  int       `json:"installment"`
}

// EventType returns the event type name
func (e *ReceivableCancelledEvent) EventType() string {
	return "ReceivableCancelled"
}

// NewReceivableCancelledEvent creates a new ReceivableCancelledEvent
func NewReceivableCancelledEvent(r *Receivable) *ReceivableCancelledEvent {
	return &ReceivableCancelledEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent("ReceivableCancelled", "Receivable", r.ID),
		ReceivableID:    r.ID,
		SaleID:          r.SaleID,
		Installment:     r.Installment,
	}
}
