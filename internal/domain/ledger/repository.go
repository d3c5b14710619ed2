package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
)

// SaleRepository provides access to Sale aggregates
type SaleRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Sale, error)
	FindByNumber(ctx context.Context, number string) (*Sale, error)
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)
	Count(ctx context.Context, filter shared.Filter) (int64, error)
	Create(ctx context.Context, sale *Sale) error
	// Save persists the sale with an optimistic-lock version check and
	// returns shared.ErrConcurrencyConflict when the row moved underneath
	Save(ctx context.Context, sale *Sale) error
}

// ReceivableRepository provides access to Receivable aggregates
type ReceivableRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Receivable, error)
	// FindBySale returns every receivable of a sale ordered by installment
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]*Receivable, error)
	FindDueBetween(ctx context.Context, from, to time.Time, filter shared.Filter) ([]*Receivable, error)
	CreateBatch(ctx context.Context, receivables []*Receivable) error
	Save(ctx context.Context, receivable *Receivable) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error
}

// PaymentRepository provides append-only access to Payment audit records
type PaymentRepository interface {
	Create(ctx context.Context, payment *Payment) error
	FindBySale(ctx context.Context, saleID uuid.UUID) ([]*Payment, error)
}
