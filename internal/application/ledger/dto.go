package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/ledger"
)

// SaleItemRequest is one line item of a sale or amendment
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  int       `json:"quantity" binding:"required,min=1"`
	// UnitPrice overrides the catalog price when set (manager discount at the counter)
	UnitPrice *float64 `json:"unit_price,omitempty" binding:"omitempty,gt=0"`
}

// CreateSaleRequest creates a sale and generates its installment schedule
type CreateSaleRequest struct {
	CustomerID      *uuid.UUID        `json:"customer_id,omitempty"`
	Items           []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	DiscountPercent *float64          `json:"discount_percent,omitempty" binding:"omitempty,gte=0,lte=100"`
	Installments    int               `json:"installments" binding:"omitempty,min=1"`
	// FixedInstallmentAmount derives the installment count from a per-slice
	// value instead of a count
	FixedInstallmentAmount *float64   `json:"fixed_installment_amount,omitempty" binding:"omitempty,gt=0"`
	PaymentDay             int        `json:"payment_day" binding:"omitempty,min=1,max=31"`
	StartMonth             *int       `json:"start_month,omitempty" binding:"omitempty,min=1,max=12"`
	StartYear              *int       `json:"start_year,omitempty" binding:"omitempty,min=2000"`
	SaleDate               *time.Time `json:"sale_date,omitempty"`
}

// AmendSaleRequest adds items to an open sale and reshapes its schedule
type AmendSaleRequest struct {
	Items []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	// Mode is one of append_fixed, inflate_all, inflate_from, recalculate
	Mode            string   `json:"mode" binding:"required,oneof=append_fixed inflate_all inflate_from recalculate"`
	FixedAmount     *float64 `json:"fixed_amount,omitempty" binding:"omitempty,gt=0"`
	FromInstallment *int     `json:"from_installment,omitempty" binding:"omitempty,min=1"`
	TargetAmount    *float64 `json:"target_amount,omitempty" binding:"omitempty,gt=0"`
	TargetCount     *int     `json:"target_count,omitempty" binding:"omitempty,min=1"`
	StartFrom       *int     `json:"start_from,omitempty" binding:"omitempty,min=1"`
}

// RegisterPaymentRequest applies money to a sale's receivables
type RegisterPaymentRequest struct {
	Amount           float64 `json:"amount" binding:"required,gt=0"`
	Method           string  `json:"method" binding:"required"`
	FeePercent       float64 `json:"fee_percent" binding:"omitempty,gte=0"`
	FeeAbsorber      string  `json:"fee_absorber" binding:"omitempty,oneof=SELLER CLIENT"`
	CardInstallments int     `json:"card_installments" binding:"omitempty,min=0"`
	// ReceivableID targets one installment; without it the amount sweeps the
	// schedule oldest installment first
	ReceivableID *uuid.UUID `json:"receivable_id,omitempty"`
}

// RescheduleReceivableRequest moves one installment's due date
type RescheduleReceivableRequest struct {
	DueDate time.Time `json:"due_date" binding:"required"`
}

// SaleListFilter filters the sale listing
type SaleListFilter struct {
	Page       int        `form:"page"`
	PageSize   int        `form:"page_size"`
	Search     string     `form:"search"`
	Status     *string    `form:"status"`
	CustomerID *uuid.UUID `form:"customer_id"`
	OrderBy    string     `form:"order_by"`
	OrderDir   string     `form:"order_dir"`
}

// SaleItemResponse is one line item in a sale response
type SaleItemResponse struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"product_id"`
	ProductName string    `json:"product_name"`
	Quantity    int       `json:"quantity"`
	UnitPrice   string    `json:"unit_price"`
	Total       string    `json:"total"`
}

// ReceivableResponse is one installment in a sale response
type ReceivableResponse struct {
	ID          uuid.UUID  `json:"id"`
	SaleID      uuid.UUID  `json:"sale_id"`
	Installment int        `json:"installment"`
	Amount      string     `json:"amount"`
	PaidAmount  string     `json:"paid_amount"`
	Outstanding string     `json:"outstanding"`
	DueDate     time.Time  `json:"due_date"`
	Status      string     `json:"status"`
	PaidAt      *time.Time `json:"paid_at,omitempty"`
}

// PaymentResponse is one payment audit record in a sale response
type PaymentResponse struct {
	ID               uuid.UUID `json:"id"`
	Method           string    `json:"method"`
	Amount           string    `json:"amount"`
	FeeAmount        string    `json:"fee_amount"`
	FeeAbsorber      string    `json:"fee_absorber"`
	CardInstallments int       `json:"card_installments"`
	PaidAt           time.Time `json:"paid_at"`
}

// AllocationResponse reports how a payment spread across installments
type AllocationResponse struct {
	ReceivableID uuid.UUID `json:"receivable_id"`
	Installment  int       `json:"installment"`
	Applied      string    `json:"applied"`
	Status       string    `json:"status"`
}

// SaleResponse is the full sale view with its schedule and payments
type SaleResponse struct {
	ID                     uuid.UUID            `json:"id"`
	Number                 string               `json:"number"`
	CustomerID             *uuid.UUID           `json:"customer_id,omitempty"`
	CustomerName           string               `json:"customer_name,omitempty"`
	Items                  []SaleItemResponse   `json:"items"`
	Subtotal               string               `json:"subtotal"`
	DiscountPercent        string               `json:"discount_percent"`
	DiscountAmount         string               `json:"discount_amount"`
	Total                  string               `json:"total"`
	NetTotal               string               `json:"net_total"`
	PaidAmount             string               `json:"paid_amount"`
	OpenBalance            string               `json:"open_balance"`
	Status                 string               `json:"status"`
	InstallmentPlan        int                  `json:"installment_plan"`
	FixedInstallmentAmount *string              `json:"fixed_installment_amount,omitempty"`
	PaymentDay             int                  `json:"payment_day"`
	SaleDate               time.Time            `json:"sale_date"`
	Receivables            []ReceivableResponse `json:"receivables,omitempty"`
	Payments               []PaymentResponse    `json:"payments,omitempty"`
	CreatedAt              time.Time            `json:"created_at"`
	UpdatedAt              time.Time            `json:"updated_at"`
}

// SaleListItemResponse is the compact listing view of a sale
type SaleListItemResponse struct {
	ID              uuid.UUID `json:"id"`
	Number          string    `json:"number"`
	CustomerName    string    `json:"customer_name,omitempty"`
	Total           string    `json:"total"`
	PaidAmount      string    `json:"paid_amount"`
	Status          string    `json:"status"`
	InstallmentPlan int       `json:"installment_plan"`
	SaleDate        time.Time `json:"sale_date"`
}

// PaymentResultResponse is returned by RegisterPayment
type PaymentResultResponse struct {
	Payment     PaymentResponse      `json:"payment"`
	Allocations []AllocationResponse `json:"allocations"`
	Sale        SaleResponse         `json:"sale"`
}

// ToSaleItemResponse maps a domain sale item to its response
func ToSaleItemResponse(it ledger.SaleItem) SaleItemResponse {
	return SaleItemResponse{
		ID:          it.ID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Quantity:    it.Quantity,
		UnitPrice:   it.UnitPrice.StringFixed(2),
		Total:       it.Total.StringFixed(2),
	}
}

// ToReceivableResponse maps a domain receivable to its response
func ToReceivableResponse(r *ledger.Receivable) ReceivableResponse {
	return ReceivableResponse{
		ID:          r.ID,
		SaleID:      r.SaleID,
		Installment: r.Installment,
		Amount:      r.Amount.StringFixed(2),
		PaidAmount:  r.PaidAmount.StringFixed(2),
		Outstanding: r.Outstanding().String(),
		DueDate:     r.DueDate,
		Status:      r.Status.String(),
		PaidAt:      r.PaidAt,
	}
}

// ToReceivableResponses maps a receivable slice to responses
func ToReceivableResponses(receivables []*ledger.Receivable) []ReceivableResponse {
	out := make([]ReceivableResponse, 0, len(receivables))
	for _, r := range receivables {
		out = append(out, ToReceivableResponse(r))
	}
	return out
}

// ToPaymentResponse maps a domain payment to its response
func ToPaymentResponse(p *ledger.Payment) PaymentResponse {
	return PaymentResponse{
		ID:               p.ID,
		Method:           string(p.Method),
		Amount:           p.Amount.StringFixed(2),
		FeeAmount:        p.FeeAmount.StringFixed(2),
		FeeAbsorber:      string(p.FeeAbsorber),
		CardInstallments: p.CardInstallments,
		PaidAt:           p.PaidAt,
	}
}

// ToAllocationResponses maps allocator output to responses
func ToAllocationResponses(allocations []ledger.Allocation) []AllocationResponse {
	out := make([]AllocationResponse, 0, len(allocations))
	for _, a := range allocations {
		out = append(out, AllocationResponse{
			ReceivableID: a.ReceivableID,
			Installment:  a.Installment,
			Applied:      a.Applied.String(),
			Status:       a.Status.String(),
		})
	}
	return out
}

// ToSaleResponse maps a sale with its schedule and payments to the full view
func ToSaleResponse(s *ledger.Sale, receivables []*ledger.Receivable, payments []*ledger.Payment) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ToSaleItemResponse(it))
	}

	var fixed *string
	if s.FixedInstallmentAmount != nil {
		v := s.FixedInstallmentAmount.StringFixed(2)
		fixed = &v
	}

	resp := SaleResponse{
		ID:                     s.ID,
		Number:                 s.Number,
		CustomerID:             s.CustomerID,
		CustomerName:           s.CustomerName,
		Items:                  items,
		Subtotal:               s.Subtotal.StringFixed(2),
		DiscountPercent:        s.DiscountPercent.String(),
		DiscountAmount:         s.DiscountAmount.StringFixed(2),
		Total:                  s.Total.StringFixed(2),
		NetTotal:               s.NetTotal.StringFixed(2),
		PaidAmount:             s.PaidAmount.StringFixed(2),
		OpenBalance:            s.OpenBalance().String(),
		Status:                 s.Status.String(),
		InstallmentPlan:        s.InstallmentPlan,
		FixedInstallmentAmount: fixed,
		PaymentDay:             s.PaymentDay,
		SaleDate:               s.SaleDate,
		CreatedAt:              s.CreatedAt,
		UpdatedAt:              s.UpdatedAt,
	}
	if receivables != nil {
		resp.Receivables = ToReceivableResponses(receivables)
	}
	for _, p := range payments {
		resp.Payments = append(resp.Payments, ToPaymentResponse(p))
	}
	return resp
}

// ToSaleListItemResponses maps sales to their compact listing view
func ToSaleListItemResponses(sales []ledger.Sale) []SaleListItemResponse {
	out := make([]SaleListItemResponse, 0, len(sales))
	for i := range sales {
		s := &sales[i]
		out = append(out, SaleListItemResponse{
			ID:              s.ID,
			Number:          s.Number,
			CustomerName:    s.CustomerName,
			Total:           s.Total.StringFixed(2),
			PaidAmount:      s.PaidAmount.StringFixed(2),
			Status:          s.Status.String(),
			InstallmentPlan: s.InstallmentPlan,
			SaleDate:        s.SaleDate,
		})
	}
	return out
}
