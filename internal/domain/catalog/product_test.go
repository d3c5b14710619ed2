package catalog

import (
	"testing"

	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(t *testing.T, s string) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyFromString(s)
	require.NoError(t, err)
	return m
}

func TestNewProduct(t *testing.T) {
	p, err := NewProduct("shoe-01", "Running Shoes", price(t, "199.90"), 10, false)
	require.NoError(t, err)

	assert.Equal(t, "SHOE-01", p.Code)
	assert.Equal(t, "199.90", p.Price.StringFixed(2))
	assert.Equal(t, 10, p.Stock)
	assert.Equal(t, ProductStatusActive, p.Status)
	require.Len(t, p.GetDomainEvents(), 1)

	_, err = NewProduct("", "Running Shoes", price(t, "199.90"), 10, false)
	assert.Error(t, err)
	_, err = NewProduct("SHOE-01", "", price(t, "199.90"), 10, false)
	assert.Error(t, err)
	_, err = NewProduct("SHOE-01", "Running Shoes", price(t, "-1.00"), 10, false)
	assert.Error(t, err)
	_, err = NewProduct("SHOE-01", "Running Shoes", price(t, "199.90"), -1, false)
	assert.Error(t, err)
}

func TestProduct_DecrementStock(t *testing.T) {
	p, err := NewProduct("SHOE-01", "Running Shoes", price(t, "199.90"), 5, false)
	require.NoError(t, err)

	require.NoError(t, p.DecrementStock(3))
	assert.Equal(t, 2, p.Stock)

	err = p.DecrementStock(3)
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
	assert.Equal(t, 2, p.Stock)

	assert.Error(t, p.DecrementStock(0))
}

func TestProduct_BackorderGoesNegative(t *testing.T) {
	p, err := NewProduct("SOFA-01", "Corner Sofa", price(t, "2500.00"), 1, true)
	require.NoError(t, err)
	p.ClearDomainEvents()

	require.NoError(t, p.DecrementStock(3))
	assert.Equal(t, -2, p.Stock)

	events := p.GetDomainEvents()
	require.Len(t, events, 1)
	assert.Equal(t, "ProductBackordered", events[0].EventType())
}

func TestProduct_DecrementInactiveRejected(t *testing.T) {
	p, err := NewProduct("SHOE-01", "Running Shoes", price(t, "199.90"), 5, false)
	require.NoError(t, err)

	p.Deactivate()
	assert.Error(t, p.DecrementStock(1))

	p.Activate()
	assert.NoError(t, p.DecrementStock(1))
}

func TestProduct_RestoreStock(t *testing.T) {
	p, err := NewProduct("SHOE-01", "Running Shoes", price(t, "199.90"), 5, false)
	require.NoError(t, err)

	require.NoError(t, p.DecrementStock(4))
	require.NoError(t, p.RestoreStock(4))
	assert.Equal(t, 5, p.Stock)

	assert.Error(t, p.RestoreStock(0))
}

func TestProduct_SetPrice(t *testing.T) {
	p, err := NewProduct("SHOE-01", "Running Shoes", price(t, "199.90"), 5, false)
	require.NoError(t, err)

	require.NoError(t, p.SetPrice(price(t, "149.995")))
	assert.Equal(t, "150.00", p.Price.StringFixed(2))

	assert.Error(t, p.SetPrice(price(t, "-10.00")))
}
