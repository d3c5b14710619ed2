package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/shared"
)

func newPersistedReceivables(t *testing.T, saleID uuid.UUID, amounts ...string) []*ledger.Receivable {
	t.Helper()
	receivables := make([]*ledger.Receivable, len(amounts))
	for i, amount := range amounts {
		due := time.Date(2026, time.April+time.Month(i), 10, 0, 0, 0, 0, time.UTC)
		r, err := ledger.NewReceivable(saleID, i+1, testMoney(t, amount), due)
		require.NoError(t, err)
		receivables[i] = r
	}
	return receivables
}

func TestGormReceivableRepository_CreateBatchAndFindBySale(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceivableRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	receivables := newPersistedReceivables(t, saleID, "100.00", "100.00", "100.00")
	require.NoError(t, repo.CreateBatch(ctx, receivables))

	found, err := repo.FindBySale(ctx, saleID)
	require.NoError(t, err)
	require.Len(t, found, 3)
	for i, r := range found {
		assert.Equal(t, i+1, r.Installment)
		assert.True(t, r.Amount.Equal(decimal.RequireFromString("100")))
	}

	other, err := repo.FindBySale(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestGormReceivableRepository_CreateBatchEmptyIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceivableRepository(db)

	require.NoError(t, repo.CreateBatch(context.Background(), nil))
}

func TestGormReceivableRepository_FindDueBetween(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceivableRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	receivables := newPersistedReceivables(t, saleID, "100.00", "100.00", "100.00")
	require.NoError(t, repo.CreateBatch(ctx, receivables))

	from := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.May, 31, 0, 0, 0, 0, time.UTC)

	due, err := repo.FindDueBetween(ctx, from, to, shared.DefaultFilter())
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 2, due[0].Installment)
}

func TestGormReceivableRepository_FindDueBetweenStatusFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceivableRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	receivables := newPersistedReceivables(t, saleID, "100.00", "100.00")
	require.NoError(t, receivables[0].ApplyPayment(testMoney(t, "100.00")))
	require.NoError(t, repo.CreateBatch(ctx, receivables))

	from := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(ledger.ReceivableStatusPending)

	due, err := repo.FindDueBetween(ctx, from, to, filter)
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, 2, due[0].Installment)
}

func TestGormReceivableRepository_SavePersistsPayment(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceivableRepository(db)
	ctx := context.Background()

	receivables := newPersistedReceivables(t, uuid.New(), "100.00")
	require.NoError(t, repo.CreateBatch(ctx, receivables))

	r := receivables[0]
	require.NoError(t, r.ApplyPayment(testMoney(t, "40.00")))
	require.NoError(t, repo.Save(ctx, r))

	found, err := repo.FindByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, ledger.ReceivableStatusPartial, found.Status)
	assert.True(t, found.PaidAmount.Equal(decimal.RequireFromString("40")))
	assert.Equal(t, 2, found.Version)
}

func TestGormReceivableRepository_SaveRejectsStaleVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceivableRepository(db)
	ctx := context.Background()

	receivables := newPersistedReceivables(t, uuid.New(), "100.00")
	require.NoError(t, repo.CreateBatch(ctx, receivables))
	id := receivables[0].ID

	fresh, err := repo.FindByID(ctx, id)
	require.NoError(t, err)
	stale, err := repo.FindByID(ctx, id)
	require.NoError(t, err)

	require.NoError(t, fresh.ApplyPayment(testMoney(t, "40.00")))
	require.NoError(t, repo.Save(ctx, fresh))

	require.NoError(t, stale.ApplyPayment(testMoney(t, "60.00")))
	err = repo.Save(ctx, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestGormReceivableRepository_DeleteBatch(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormReceivableRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	receivables := newPersistedReceivables(t, saleID, "100.00", "100.00", "100.00")
	require.NoError(t, repo.CreateBatch(ctx, receivables))

	require.NoError(t, repo.DeleteBatch(ctx, []uuid.UUID{receivables[1].ID, receivables[2].ID}))

	found, err := repo.FindBySale(ctx, saleID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, 1, found[0].Installment)

	require.NoError(t, repo.DeleteBatch(ctx, nil))
}

func TestGormPaymentRepository_CreateAndFindBySale(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormPaymentRepository(db)
	ctx := context.Background()

	saleID := uuid.New()
	first, err := ledger.NewPayment(saleID, ledger.PaymentMethodCash, testMoney(t, "50.00"),
		decimal.Zero, ledger.FeeAbsorberSeller, 0)
	require.NoError(t, err)
	second, err := ledger.NewPayment(saleID, ledger.PaymentMethodCreditCard, testMoney(t, "100.00"),
		decimal.RequireFromString("3.5"), ledger.FeeAbsorberSeller, 3)
	require.NoError(t, err)

	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	payments, err := repo.FindBySale(ctx, saleID)
	require.NoError(t, err)
	require.Len(t, payments, 2)
	assert.Equal(t, ledger.PaymentMethodCash, payments[0].Method)
	assert.True(t, payments[1].FeeAmount.Equal(decimal.RequireFromString("3.50")))
}
