package ledger

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleStatus represents the lifecycle state of a sale
type SaleStatus string

const (
	SaleStatusPending   SaleStatus = "PENDING"   // Open balance remains
	SaleStatusCompleted SaleStatus = "COMPLETED" // Fully paid
	SaleStatusCancelled SaleStatus = "CANCELLED" // Reversed, stock restored
)

// IsValid checks if the status is a valid SaleStatus
func (s SaleStatus) IsValid() bool {
	switch s {
	case SaleStatusPending, SaleStatusCompleted, SaleStatusCancelled:
		return true
	}
	return false
}

// String returns the string representation of SaleStatus
func (s SaleStatus) String() string {
	return string(s)
}

// DefaultPaymentDay is used when the operator does not choose a day-of-month
// for installment due dates
const DefaultPaymentDay = 10

// SaleItem is a line item within a sale
type SaleItem struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// NewSaleItem creates a new sale line item
func NewSaleItem(productID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (SaleItem, error) {
	if productID == uuid.Nil {
		return SaleItem{}, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if quantity < 1 {
		return SaleItem{}, shared.NewDomainError("INVALID_QUANTITY", "Item quantity must be at least 1")
	}
	if unitPrice.IsNegative() {
		return SaleItem{}, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}
	total := unitPrice.Multiply(decimal.NewFromInt(int64(quantity))).Round()
	return SaleItem{
		ID:          uuid.New(),
		ProductID:   productID,
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		Total:       total.Amount(),
	}, nil
}

// Sale represents one checkout transaction. Its open balance is tracked by
// the receivable schedule; PaidAmount and NetTotal are caches re-derived from
// the receivable and payment sets on every mutation, never incremented.
type Sale struct {
	shared.BaseAggregateRoot
	Number                 string           `json:"number"`
	CustomerID             *uuid.UUID       `json:"customer_id,omitempty"`
	CustomerName           string           `json:"customer_name"`
	Items                  []SaleItem       `json:"items"`
	Subtotal               decimal.Decimal  `json:"subtotal"`
	DiscountPercent        decimal.Decimal  `json:"discount_percent"`
	DiscountAmount         decimal.Decimal  `json:"discount_amount"`
	Total                  decimal.Decimal  `json:"total"`
	NetTotal               decimal.Decimal  `json:"net_total"`
	PaidAmount             decimal.Decimal  `json:"paid_amount"`
	Status                 SaleStatus       `json:"status"`
	InstallmentPlan        int              `json:"installment_plan"`
	FixedInstallmentAmount *decimal.Decimal `json:"fixed_installment_amount,omitempty"`
	PaymentDay             int              `json:"payment_day"`
	SaleDate               time.Time        `json:"sale_date"`
}

// NewSale creates a new pending sale from its line items
func NewSale(number string, customerID *uuid.UUID, customerName string, items []SaleItem,
	discountPercent decimal.Decimal, installmentPlan, paymentDay int, saleDate time.Time) (*Sale, error) {
	if number == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if len(items) == 0 {
		return nil, shared.NewDomainError("INVALID_ITEMS", "Sale must have at least one item")
	}
	if discountPercent.IsNegative() || discountPercent.GreaterThan(decimal.NewFromInt(100)) {
		return nil, shared.NewDomainError("INVALID_DISCOUNT", "Discount percent must be between 0 and 100")
	}
	if installmentPlan < 1 {
		installmentPlan = 1
	}
	if paymentDay == 0 {
		paymentDay = DefaultPaymentDay
	}
	if err := validatePaymentDay(paymentDay); err != nil {
		return nil, err
	}
	if saleDate.IsZero() {
		saleDate = time.Now()
	}

	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	discountAmount := valueobject.NewMoney(subtotal).CalculatePercentage(discountPercent).Round().Amount()
	total := subtotal.Sub(discountAmount)

	s := &Sale{
		BaseAggregateRoot:      shared.NewBaseAggregateRoot(),
		Number:                 number,
		CustomerID:             customerID,
		CustomerName:           customerName,
		Items:                  items,
		Subtotal:               subtotal,
		DiscountPercent:        discountPercent,
		DiscountAmount:         discountAmount,
		Total:                  total,
		NetTotal:               total,
		PaidAmount:             decimal.Zero,
		Status:                 SaleStatusPending,
		InstallmentPlan:        installmentPlan,
		PaymentDay:             paymentDay,
		SaleDate:               saleDate,
	}
	s.AddDomainEvent(NewSaleCreatedEvent(s))
	return s, nil
}

// AddItems appends line items to a pending sale and returns the discounted
// total of the added items (the amount the receivable schedule must absorb)
func (s *Sale) AddItems(items []SaleItem) (valueobject.Money, error) {
	if s.Status != SaleStatusPending {
		return valueobject.Zero(), shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot add items to a %s sale", s.Status))
	}
	if len(items) == 0 {
		return valueobject.Zero(), shared.NewDomainError("INVALID_ITEMS", "No items to add")
	}

	addedSubtotal := decimal.Zero
	for _, it := range items {
		addedSubtotal = addedSubtotal.Add(it.Total)
	}
	addedDiscount := valueobject.NewMoney(addedSubtotal).CalculatePercentage(s.DiscountPercent).Round().Amount()
	delta := addedSubtotal.Sub(addedDiscount)

	s.Items = append(s.Items, items...)
	s.Subtotal = s.Subtotal.Add(addedSubtotal)
	s.DiscountAmount = s.DiscountAmount.Add(addedDiscount)
	s.Total = s.Total.Add(delta)
	s.NetTotal = s.NetTotal.Add(delta)
	s.UpdatedAt = time.Now()

	return valueobject.NewMoney(delta), nil
}

// OpenBalance returns the amount not yet covered by payments
func (s *Sale) OpenBalance() valueobject.Money {
	return valueobject.NewMoney(s.Total.Sub(s.PaidAmount))
}

// ApplyScheduleShape records the installment plan shape produced by schedule
// generation or amendment
func (s *Sale) ApplyScheduleShape(planCount int, fixedAmount *decimal.Decimal) {
	if planCount > 0 {
		s.InstallmentPlan = planCount
	}
	if fixedAmount != nil {
		rounded := fixedAmount.Round(2)
		s.FixedInstallmentAmount = &rounded
	}
	s.UpdatedAt = time.Now()
}

// RefreshPaymentState re-derives PaidAmount from the receivable set (the
// single source of truth) and completes the sale when every non-cancelled
// receivable is paid. It must be called after every allocator run.
func (s *Sale) RefreshPaymentState(receivables []*Receivable) {
	paid := decimal.Zero
	allPaid := true
	active := 0
	for _, r := range receivables {
		if r.Status == ReceivableStatusCancelled {
			continue
		}
		active++
		paid = paid.Add(r.PaidAmount)
		if r.Status != ReceivableStatusPaid {
			allPaid = false
		}
	}

	s.PaidAmount = paid
	if s.Status == SaleStatusPending && active > 0 && allPaid {
		s.Status = SaleStatusCompleted
		s.AddDomainEvent(NewSaleCompletedEvent(s))
	}
	s.UpdatedAt = time.Now()
}

// MarkCompleted completes a sale that never had an open balance
func (s *Sale) MarkCompleted() error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot complete a %s sale", s.Status))
	}
	if !s.OpenBalance().LessThanOrEqual(valueobject.Zero()) {
		return shared.NewDomainError("INVALID_STATE", "Sale still has an open balance")
	}
	s.Status = SaleStatusCompleted
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewSaleCompletedEvent(s))
	return nil
}

// DeductFee lowers the net total by a seller-absorbed payment fee
func (s *Sale) DeductFee(fee valueobject.Money) {
	if !fee.IsPositive() {
		return
	}
	s.NetTotal = s.NetTotal.Sub(fee.Amount())
	s.UpdatedAt = time.Now()
}

// Cancel cancels a pending sale. Sales with payments cannot be cancelled;
// the money would have to be refunded first.
func (s *Sale) Cancel() error {
	if s.Status != SaleStatusPending {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot cancel a %s sale", s.Status))
	}
	if s.PaidAmount.IsPositive() {
		return shared.NewDomainError("HAS_PAYMENTS", "Cannot cancel a sale with registered payments")
	}
	s.Status = SaleStatusCancelled
	s.UpdatedAt = time.Now()
	s.AddDomainEvent(NewSaleCancelledEvent(s))
	return nil
}

// GetTotalMoney returns the sale total as Money
func (s *Sale) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoney(s.Total)
}

// GetPaidAmountMoney returns the paid amount as Money
func (s *Sale) GetPaidAmountMoney() valueobject.Money {
	return valueobject.NewMoney(s.PaidAmount)
}
