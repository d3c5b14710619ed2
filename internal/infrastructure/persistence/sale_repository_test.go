package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/pos/backend/internal/domain/ledger"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.SaleModel{},
		&models.SaleItemModel{},
		&models.ReceivableModel{},
		&models.PaymentModel{},
		&models.ProductModel{},
		&models.CustomerModel{},
		&models.UserModel{},
	)
	require.NoError(t, err)

	return db
}

func testMoney(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func newPersistedSale(t *testing.T, number string) *ledger.Sale {
	t.Helper()
	item, err := ledger.NewSaleItem(uuid.New(), "Fridge", 1, testMoney(t, "300.00"))
	require.NoError(t, err)

	sale, err := ledger.NewSale(number, nil, "Walk-in", []ledger.SaleItem{item},
		decimal.Zero, 3, 10, time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return sale
}

func TestGormSaleRepository_CreateAndFindByID(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	sale := newPersistedSale(t, "V-20260315-AAA00001")
	require.NoError(t, repo.Create(ctx, sale))

	found, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Number, found.Number)
	assert.Equal(t, ledger.SaleStatusPending, found.Status)
	assert.True(t, found.Total.Equal(decimal.RequireFromString("300")))
	require.Len(t, found.Items, 1)
	assert.Equal(t, "Fridge", found.Items[0].ProductName)
}

func TestGormSaleRepository_FindByID_NotFound(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSaleRepository_FindByNumber(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	sale := newPersistedSale(t, "V-20260315-BBB00002")
	require.NoError(t, repo.Create(ctx, sale))

	found, err := repo.FindByNumber(ctx, "V-20260315-BBB00002")
	require.NoError(t, err)
	assert.Equal(t, sale.ID, found.ID)

	_, err = repo.FindByNumber(ctx, "V-00000000-XXXXXXXX")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormSaleRepository_SavePersistsChanges(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	sale := newPersistedSale(t, "V-20260315-CCC00003")
	require.NoError(t, repo.Create(ctx, sale))

	sale.PaidAmount = decimal.RequireFromString("100.00")
	require.NoError(t, repo.Save(ctx, sale))

	found, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, found.PaidAmount.Equal(decimal.RequireFromString("100")))
	assert.Equal(t, 2, found.Version)
}

func TestGormSaleRepository_SaveRejectsStaleVersion(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	sale := newPersistedSale(t, "V-20260315-DDD00004")
	require.NoError(t, repo.Create(ctx, sale))

	fresh, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	stale, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)

	fresh.PaidAmount = decimal.RequireFromString("50.00")
	require.NoError(t, repo.Save(ctx, fresh))

	stale.PaidAmount = decimal.RequireFromString("80.00")
	err = repo.Save(ctx, stale)
	assert.ErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestGormSaleRepository_FindAllWithFilter(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	first := newPersistedSale(t, "V-20260315-EEE00005")
	second := newPersistedSale(t, "V-20260315-FFF00006")
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	second.Status = ledger.SaleStatusCompleted
	require.NoError(t, repo.Save(ctx, second))

	filter := shared.DefaultFilter()
	filter.Filters["status"] = string(ledger.SaleStatusCompleted)

	sales, err := repo.FindAll(ctx, filter)
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, second.Number, sales[0].Number)

	count, err := repo.Count(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	all, err := repo.FindAll(ctx, shared.DefaultFilter())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestGormSaleRepository_SaveResyncsItems(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormSaleRepository(db)
	ctx := context.Background()

	sale := newPersistedSale(t, "V-20260315-GGG00007")
	require.NoError(t, repo.Create(ctx, sale))

	extra, err := ledger.NewSaleItem(uuid.New(), "Blender", 2, testMoney(t, "45.00"))
	require.NoError(t, err)
	_, err = sale.AddItems([]ledger.SaleItem{extra})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, sale))

	found, err := repo.FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Len(t, found.Items, 2)
}
