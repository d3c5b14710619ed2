package persistence

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appledger "github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/domain/shared"
)

func TestGormTransactionScope_Commits(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	sale := newPersistedSale(t, "V-20260315-TXN00001")
	err := scope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		return repos.SaleRepo().Create(ctx, sale)
	})
	require.NoError(t, err)

	found, err := NewGormSaleRepository(db).FindByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.Number, found.Number)
}

func TestGormTransactionScope_RollsBackOnError(t *testing.T) {
	db := setupTestDB(t)
	scope := NewGormTransactionScope(db)
	ctx := context.Background()

	sale := newPersistedSale(t, "V-20260315-TXN00002")
	boom := errors.New("schedule generation failed")

	err := scope.Execute(ctx, func(repos appledger.TransactionalRepositories) error {
		if err := repos.SaleRepo().Create(ctx, sale); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewGormSaleRepository(db).FindByID(ctx, sale.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}
