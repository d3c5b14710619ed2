package ledger

import (
	"context"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/ledger"
)

// TransactionScope provides transactional access to the repositories a sale
// operation touches. Everything executed within one scope commits or rolls
// back atomically; the schedule invariants depend on that.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to all repositories within a
// transaction. All repositories returned share the same underlying database
// transaction.
type TransactionalRepositories interface {
	// SaleRepo returns the sale repository scoped to the current transaction
	SaleRepo() ledger.SaleRepository
	// ReceivableRepo returns the receivable repository scoped to the current transaction
	ReceivableRepo() ledger.ReceivableRepository
	// PaymentRepo returns the payment repository scoped to the current transaction
	PaymentRepo() ledger.PaymentRepository
	// ProductRepo returns the product repository scoped to the current transaction
	ProductRepo() catalog.ProductRepository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions, for tests and in-memory wiring.
type NoOpTransactionScope struct {
	saleRepo       ledger.SaleRepository
	receivableRepo ledger.ReceivableRepository
	paymentRepo    ledger.PaymentRepository
	productRepo    catalog.ProductRepository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories
func NewNoOpTransactionScope(
	saleRepo ledger.SaleRepository,
	receivableRepo ledger.ReceivableRepository,
	paymentRepo ledger.PaymentRepository,
	productRepo catalog.ProductRepository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		saleRepo:       saleRepo,
		receivableRepo: receivableRepo,
		paymentRepo:    paymentRepo,
		productRepo:    productRepo,
	}
}

// Execute runs the function without a real transaction
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// SaleRepo returns the sale repository
func (s *NoOpTransactionScope) SaleRepo() ledger.SaleRepository { return s.saleRepo }

// ReceivableRepo returns the receivable repository
func (s *NoOpTransactionScope) ReceivableRepo() ledger.ReceivableRepository {
	return s.receivableRepo
}

// PaymentRepo returns the payment repository
func (s *NoOpTransactionScope) PaymentRepo() ledger.PaymentRepository { return s.paymentRepo }

// ProductRepo returns the product repository
func (s *NoOpTransactionScope) ProductRepo() catalog.ProductRepository { return s.productRepo }

var _ TransactionScope = (*NoOpTransactionScope)(nil)
var _ TransactionalRepositories = (*NoOpTransactionScope)(nil)
