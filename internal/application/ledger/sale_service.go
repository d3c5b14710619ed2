package ledger

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/partner"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// SaleService handles sale, schedule and payment operations
type SaleService struct {
	scope          TransactionScope
	saleRepo       ledger.SaleRepository
	receivableRepo ledger.ReceivableRepository
	paymentRepo    ledger.PaymentRepository
	customerRepo   partner.CustomerRepository
	engine         *ledger.AmendmentEngine
	allocator      *ledger.PaymentAllocator
	eventPublisher shared.EventPublisher

	defaultInstallments int
	defaultPaymentDay   int
}

// NewSaleService creates a new SaleService
func NewSaleService(
	scope TransactionScope,
	saleRepo ledger.SaleRepository,
	receivableRepo ledger.ReceivableRepository,
	paymentRepo ledger.PaymentRepository,
	customerRepo partner.CustomerRepository,
) *SaleService {
	return &SaleService{
		scope:          scope,
		saleRepo:       saleRepo,
		receivableRepo: receivableRepo,
		paymentRepo:    paymentRepo,
		customerRepo:   customerRepo,
		engine:         ledger.NewAmendmentEngine(),
		allocator:      ledger.NewPaymentAllocator(),
	}
}

// SetEventPublisher sets the event publisher for cross-context integration
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetScheduleDefaults sets the plan length and payment day used when a
// checkout request leaves them blank. Zero keeps the domain defaults.
func (s *SaleService) SetScheduleDefaults(installments, paymentDay int) {
	s.defaultInstallments = installments
	s.defaultPaymentDay = paymentDay
}

// Create creates a sale, reserves stock and generates its installment schedule
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	var customerName string
	discountPercent := decimal.Zero
	if req.CustomerID != nil {
		customer, err := s.customerRepo.FindByID(ctx, *req.CustomerID)
		if err != nil {
			return nil, err
		}
		if !customer.CanBuyOnInstallments() {
			return nil, shared.NewDomainError("CUSTOMER_SUSPENDED",
				"Customer is not allowed to buy on installments")
		}
		customerName = customer.Name
		discountPercent = customer.DiscountPercent
	}
	if req.DiscountPercent != nil {
		discountPercent = decimal.NewFromFloat(*req.DiscountPercent)
	}

	var (
		sale        *ledger.Sale
		receivables []*ledger.Receivable
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		items, err := buildSaleItems(ctx, repos.ProductRepo(), req.Items)
		if err != nil {
			return err
		}

		saleDate := time.Now()
		if req.SaleDate != nil {
			saleDate = *req.SaleDate
		}

		plan := req.Installments
		if plan == 0 {
			plan = s.defaultInstallments
		}
		paymentDay := req.PaymentDay
		if paymentDay == 0 {
			paymentDay = s.defaultPaymentDay
		}
		var fixedAmount *decimal.Decimal
		if req.FixedInstallmentAmount != nil {
			fixed := decimal.NewFromFloat(*req.FixedInstallmentAmount).Round(2)
			total := itemsTotal(items, discountPercent)
			if total.IsPositive() && fixed.GreaterThanOrEqual(valueobject.MinimumSlice) {
				plan = int(total.Div(fixed).Ceil().IntPart())
			}
			fixedAmount = &fixed
		}

		sale, err = ledger.NewSale(generateSaleNumber(saleDate), req.CustomerID, customerName,
			items, discountPercent, plan, paymentDay, saleDate)
		if err != nil {
			return err
		}

		receivables, err = ledger.BuildSchedule(sale.ID, ledger.ScheduleParams{
			OpenBalance:  sale.OpenBalance(),
			Installments: sale.InstallmentPlan,
			PaymentDay:   sale.PaymentDay,
			Reference:    sale.SaleDate,
			StartMonth:   req.StartMonth,
			StartYear:    req.StartYear,
		})
		if err != nil {
			return err
		}

		if len(receivables) == 0 {
			if err := sale.MarkCompleted(); err != nil {
				return err
			}
		} else {
			sale.ApplyScheduleShape(len(receivables), fixedAmount)
		}

		if err := repos.SaleRepo().Create(ctx, sale); err != nil {
			return err
		}
		return repos.ReceivableRepo().CreateBatch(ctx, receivables)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	resp := ToSaleResponse(sale, receivables, nil)
	return &resp, nil
}

// GetByID retrieves a sale with its schedule and payment history
func (s *SaleService) GetByID(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	receivables, err := s.receivableRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	resp := ToSaleResponse(sale, receivables, payments)
	return &resp, nil
}

// GetByNumber retrieves a sale by its human-facing number
func (s *SaleService) GetByNumber(ctx context.Context, number string) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByNumber(ctx, number)
	if err != nil {
		return nil, err
	}
	return s.GetByID(ctx, sale.ID)
}

// List retrieves sales with filtering and pagination
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleListItemResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	if filter.OrderBy == "" {
		filter.OrderBy = "created_at"
	}
	if filter.OrderDir == "" {
		filter.OrderDir = "desc"
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  filter.OrderBy,
		OrderDir: filter.OrderDir,
		Search:   filter.Search,
		Filters:  make(map[string]interface{}),
	}
	if filter.Status != nil {
		domainFilter.Filters["status"] = *filter.Status
	}
	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}

	sales, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	return ToSaleListItemResponses(sales), total, nil
}

// Amend adds items to an open sale and reshapes its installment schedule
// under the selected mode
func (s *SaleService) Amend(ctx context.Context, saleID uuid.UUID, req AmendSaleRequest) (*SaleResponse, error) {
	mode, err := parseAmendMode(req)
	if err != nil {
		return nil, err
	}

	var (
		sale        *ledger.Sale
		receivables []*ledger.Receivable
	)
	err = s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		sale, err = repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		current, err := repos.ReceivableRepo().FindBySale(ctx, saleID)
		if err != nil {
			return err
		}

		items, err := buildSaleItems(ctx, repos.ProductRepo(), req.Items)
		if err != nil {
			return err
		}
		delta, err := sale.AddItems(items)
		if err != nil {
			return err
		}

		result, err := s.engine.Amend(sale, current, delta, mode, time.Now())
		if err != nil {
			return err
		}

		for _, r := range result.Updated {
			if err := repos.ReceivableRepo().Save(ctx, r); err != nil {
				return err
			}
		}
		if len(result.DeletedIDs) > 0 {
			if err := repos.ReceivableRepo().DeleteBatch(ctx, result.DeletedIDs); err != nil {
				return err
			}
		}
		if len(result.NewReceivables) > 0 {
			if err := repos.ReceivableRepo().CreateBatch(ctx, result.NewReceivables); err != nil {
				return err
			}
		}

		sale.ApplyScheduleShape(result.PlanCount, result.FixedAmount)
		sale.AddDomainEvent(ledger.NewSaleAmendedEvent(sale, delta.Amount()))
		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		receivables, err = repos.ReceivableRepo().FindBySale(ctx, saleID)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	resp := ToSaleResponse(sale, receivables, nil)
	return &resp, nil
}

// RegisterPayment applies money against a sale's receivables, either sweeping
// the schedule oldest installment first or targeting one installment
func (s *SaleService) RegisterPayment(ctx context.Context, saleID uuid.UUID, req RegisterPaymentRequest) (*PaymentResultResponse, error) {
	var (
		sale        *ledger.Sale
		receivables []*ledger.Receivable
		payment     *ledger.Payment
		allocations []ledger.Allocation
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		if sale.Status == ledger.SaleStatusCancelled {
			return shared.NewDomainError("INVALID_STATE", "Cannot register payment on a cancelled sale")
		}
		receivables, err = repos.ReceivableRepo().FindBySale(ctx, saleID)
		if err != nil {
			return err
		}

		amount := valueobject.NewMoneyFromFloat(req.Amount)
		payment, err = ledger.NewPayment(saleID, ledger.PaymentMethod(req.Method), amount,
			decimal.NewFromFloat(req.FeePercent), ledger.FeeAbsorber(req.FeeAbsorber), req.CardInstallments)
		if err != nil {
			return err
		}

		if req.ReceivableID != nil {
			target := findReceivable(receivables, *req.ReceivableID)
			if target == nil {
				return shared.ErrNotFound
			}
			allocation, err := s.allocator.ApplyToReceivable(target, amount)
			if err != nil {
				return err
			}
			allocations = []ledger.Allocation{allocation}
		} else {
			allocations, err = s.allocator.Sweep(receivables, amount)
			if err != nil {
				return err
			}
		}

		for _, a := range allocations {
			r := findReceivable(receivables, a.ReceivableID)
			if err := repos.ReceivableRepo().Save(ctx, r); err != nil {
				return err
			}
		}

		sale.RefreshPaymentState(receivables)
		if payment.FeeAbsorber == ledger.FeeAbsorberSeller && payment.FeeAmount.IsPositive() {
			sale.DeductFee(valueobject.NewMoney(payment.FeeAmount))
		}
		sale.AddDomainEvent(ledger.NewSalePaymentRegisteredEvent(sale, payment))

		if err := repos.PaymentRepo().Create(ctx, payment); err != nil {
			return err
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	events := sale.GetDomainEvents()
	for _, r := range receivables {
		events = append(events, r.GetDomainEvents()...)
		r.ClearDomainEvents()
	}
	s.publishEvents(ctx, events)
	sale.ClearDomainEvents()

	return &PaymentResultResponse{
		Payment:     ToPaymentResponse(payment),
		Allocations: ToAllocationResponses(allocations),
		Sale:        ToSaleResponse(sale, receivables, nil),
	}, nil
}

// Cancel cancels a pending, unpaid sale, cancels its schedule and restores
// the sold stock
func (s *SaleService) Cancel(ctx context.Context, saleID uuid.UUID) (*SaleResponse, error) {
	var (
		sale        *ledger.Sale
		receivables []*ledger.Receivable
	)
	err := s.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByID(ctx, saleID)
		if err != nil {
			return err
		}
		receivables, err = repos.ReceivableRepo().FindBySale(ctx, saleID)
		if err != nil {
			return err
		}

		if err := sale.Cancel(); err != nil {
			return err
		}
		for _, r := range receivables {
			if !r.Status.IsOpen() {
				continue
			}
			if err := r.Cancel(); err != nil {
				return err
			}
			if err := repos.ReceivableRepo().Save(ctx, r); err != nil {
				return err
			}
		}

		for _, it := range sale.Items {
			product, err := repos.ProductRepo().FindByID(ctx, it.ProductID)
			if err != nil {
				return err
			}
			if err := product.RestoreStock(it.Quantity); err != nil {
				return err
			}
			if err := repos.ProductRepo().Save(ctx, product); err != nil {
				return err
			}
		}
		return repos.SaleRepo().Save(ctx, sale)
	})
	if err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale.GetDomainEvents())
	sale.ClearDomainEvents()

	resp := ToSaleResponse(sale, receivables, nil)
	return &resp, nil
}

// RescheduleReceivable moves one installment's due date without touching
// amounts or ordering of the rest of the schedule
func (s *SaleService) RescheduleReceivable(ctx context.Context, receivableID uuid.UUID, req RescheduleReceivableRequest) (*ReceivableResponse, error) {
	receivable, err := s.receivableRepo.FindByID(ctx, receivableID)
	if err != nil {
		return nil, err
	}
	if err := receivable.Reschedule(req.DueDate); err != nil {
		return nil, err
	}
	if err := s.receivableRepo.Save(ctx, receivable); err != nil {
		return nil, err
	}
	resp := ToReceivableResponse(receivable)
	return &resp, nil
}

// ListReceivablesDueBetween lists receivables due in a window, for collection
// follow-up and the payments agenda
func (s *SaleService) ListReceivablesDueBetween(ctx context.Context, from, to time.Time) ([]ReceivableResponse, error) {
	receivables, err := s.receivableRepo.FindDueBetween(ctx, from, to, shared.DefaultFilter())
	if err != nil {
		return nil, err
	}
	return ToReceivableResponses(receivables), nil
}

func (s *SaleService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.eventPublisher == nil || len(events) == 0 {
		return
	}
	// Event delivery is best effort; the transaction already committed
	_ = s.eventPublisher.Publish(ctx, events...)
}

// buildSaleItems resolves products, decrements their stock and produces the
// domain line items
func buildSaleItems(ctx context.Context, productRepo catalog.ProductRepository, reqs []SaleItemRequest) ([]ledger.SaleItem, error) {
	items := make([]ledger.SaleItem, 0, len(reqs))
	for _, req := range reqs {
		product, err := productRepo.FindByID(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}

		price := product.GetPriceMoney()
		if req.UnitPrice != nil {
			price = valueobject.NewMoneyFromFloat(*req.UnitPrice)
		}
		item, err := ledger.NewSaleItem(product.ID, product.Name, req.Quantity, price)
		if err != nil {
			return nil, err
		}

		if err := product.DecrementStock(req.Quantity); err != nil {
			return nil, err
		}
		if err := productRepo.Save(ctx, product); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func itemsTotal(items []ledger.SaleItem, discountPercent decimal.Decimal) decimal.Decimal {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(it.Total)
	}
	discount := valueobject.NewMoney(subtotal).CalculatePercentage(discountPercent).Round().Amount()
	return subtotal.Sub(discount)
}

func findReceivable(receivables []*ledger.Receivable, id uuid.UUID) *ledger.Receivable {
	for _, r := range receivables {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// parseAmendMode maps the request's mode selector to the engine's mode variant
func parseAmendMode(req AmendSaleRequest) (ledger.AmendMode, error) {
	switch req.Mode {
	case "append_fixed":
		return ledger.AppendFixed{Amount: moneyPtr(req.FixedAmount)}, nil
	case "inflate_all":
		return ledger.InflateAll{}, nil
	case "inflate_from":
		if req.FromInstallment == nil {
			return nil, shared.NewDomainError("INVALID_MODE", "inflate_from requires from_installment")
		}
		return ledger.InflateFrom{
			Installment:  *req.FromInstallment,
			TargetAmount: moneyPtr(req.TargetAmount),
		}, nil
	case "recalculate":
		if req.TargetAmount != nil && req.TargetCount != nil {
			return nil, shared.NewDomainError("INVALID_MODE",
				"recalculate accepts target_amount or target_count, not both")
		}
		return ledger.Recalculate{
			TargetAmount: moneyPtr(req.TargetAmount),
			TargetCount:  req.TargetCount,
			StartFrom:    req.StartFrom,
		}, nil
	default:
		return nil, shared.NewDomainError("INVALID_MODE",
			fmt.Sprintf("Unknown amendment mode %q", req.Mode))
	}
}

func moneyPtr(v *float64) *valueobject.Money {
	if v == nil {
		return nil
	}
	m := valueobject.NewMoneyFromFloat(*v)
	return &m
}

func generateSaleNumber(at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("V-%s-%s", at.Format("20060102"), suffix)
}
