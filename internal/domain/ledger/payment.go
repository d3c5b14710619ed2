package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how the money was received
type PaymentMethod string

const (
	PaymentMethodCash       PaymentMethod = "CASH"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodPix        PaymentMethod = "PIX"
	PaymentMethodTransfer   PaymentMethod = "TRANSFER"
)

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodDebitCard, PaymentMethodCreditCard,
		PaymentMethodPix, PaymentMethodTransfer:
		return true
	}
	return false
}

// FeeAbsorber indicates who bears a payment method's fee
type FeeAbsorber string

const (
	// FeeAbsorberSeller deducts the fee from the store's proceeds
	FeeAbsorberSeller FeeAbsorber = "SELLER"
	// FeeAbsorberClient discloses the fee without deducting it from the credited amount
	FeeAbsorberClient FeeAbsorber = "CLIENT"
)

// IsValid checks if the fee absorber is valid
func (f FeeAbsorber) IsValid() bool {
	return f == FeeAbsorberSeller || f == FeeAbsorberClient
}

// Payment is an append-only audit record of money received against a sale.
// It is attributed to the sale, not to specific receivables; that mapping is
// implicit in the allocator's sweep at the moment of application.
type Payment struct {
	shared.BaseEntity
	SaleID           uuid.UUID       `json:"sale_id"`
	Method           PaymentMethod   `json:"method"`
	Amount           decimal.Decimal `json:"amount"`
	FeePercent       decimal.Decimal `json:"fee_percent"`
	FeeAmount        decimal.Decimal `json:"fee_amount"`
	FeeAbsorber      FeeAbsorber     `json:"fee_absorber"`
	CardInstallments int             `json:"card_installments"`
	PaidAt           time.Time       `json:"paid_at"`
}

// NewPayment creates a new payment audit record. The fee amount is derived
// from the fee percent and rounded to the minor unit.
func NewPayment(saleID uuid.UUID, method PaymentMethod, amount valueobject.Money,
	feePercent decimal.Decimal, absorber FeeAbsorber, cardInstallments int) (*Payment, error) {
	if saleID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_SALE", "Sale ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", "Payment method is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Payment amount must be positive")
	}
	if feePercent.IsNegative() {
		return nil, shared.NewDomainError("INVALID_FEE", "Fee percent cannot be negative")
	}
	if absorber == "" {
		absorber = FeeAbsorberSeller
	}
	if !absorber.IsValid() {
		return nil, shared.NewDomainError("INVALID_FEE_ABSORBER", "Fee absorber is not valid")
	}
	if cardInstallments < 0 {
		return nil, shared.NewDomainError("INVALID_CARD_INSTALLMENTS", "Card installments cannot be negative")
	}

	fee := amount.CalculatePercentage(feePercent).Round()
	return &Payment{
		BaseEntity:       shared.NewBaseEntity(),
		SaleID:           saleID,
		Method:           method,
		Amount:           amount.Round().Amount(),
		FeePercent:       feePercent,
		FeeAmount:        fee.Amount(),
		FeeAbsorber:      absorber,
		CardInstallments: cardInstallments,
		PaidAt:           time.Now(),
	}, nil
}

// NetAmount returns what the store actually keeps from this payment
func (p *Payment) NetAmount() valueobject.Money {
	if p.FeeAbsorber == FeeAbsorberSeller {
		return valueobject.NewMoney(p.Amount.Sub(p.FeeAmount))
	}
	return valueobject.NewMoney(p.Amount)
}

// GetAmountMoney returns the received amount as Money
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoney(p.Amount)
}
