package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pos/backend/internal/domain/catalog"
	"github.com/pos/backend/internal/domain/shared"
	"github.com/pos/backend/internal/domain/shared/valueobject"
)

type fakeProductRepo struct {
	products map[uuid.UUID]*catalog.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[uuid.UUID]*catalog.Product)}
}

func (r *fakeProductRepo) FindByID(_ context.Context, id uuid.UUID) (*catalog.Product, error) {
	if p, ok := r.products[id]; ok {
		clone := *p
		return &clone, nil
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindByCode(_ context.Context, code string) (*catalog.Product, error) {
	for _, p := range r.products {
		if p.Code == code {
			clone := *p
			return &clone, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (r *fakeProductRepo) FindAll(_ context.Context, _ shared.Filter) ([]catalog.Product, error) {
	out := make([]catalog.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProductRepo) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.products)), nil
}

func (r *fakeProductRepo) Create(_ context.Context, p *catalog.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func (r *fakeProductRepo) Save(_ context.Context, p *catalog.Product) error {
	clone := *p
	r.products[p.ID] = &clone
	return nil
}

func TestProductService_Create(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	resp, err := svc.Create(ctx, CreateProductRequest{
		Code:  "tv-55",
		Name:  "55 inch TV",
		Price: 2499.90,
		Stock: 4,
	})
	require.NoError(t, err)
	assert.Equal(t, "TV-55", resp.Code)
	assert.Equal(t, "2499.90", resp.Price)
	assert.Equal(t, 4, resp.Stock)
}

func TestProductService_CreateRejectsDuplicateCode(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateProductRequest{Code: "TV-55", Name: "TV", Price: 100, Stock: 1})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateProductRequest{Code: "tv-55", Name: "Other TV", Price: 200, Stock: 1})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestProductService_Update(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Code: "TV-55", Name: "TV", Price: 100, Stock: 1})
	require.NoError(t, err)

	name := "Smart TV"
	price := 149.90
	updated, err := svc.Update(ctx, created.ID, UpdateProductRequest{Name: &name, Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "Smart TV", updated.Name)
	assert.Equal(t, "149.90", updated.Price)
}

func TestProductService_AdjustStock(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Code: "TV-55", Name: "TV", Price: 100, Stock: 5})
	require.NoError(t, err)

	resp, err := svc.AdjustStock(ctx, created.ID, -3)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Stock)

	resp, err = svc.AdjustStock(ctx, created.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, resp.Stock)

	_, err = svc.AdjustStock(ctx, created.ID, 0)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_QUANTITY", domainErr.Code)
}

func TestProductService_AdjustStockRejectsOverdraw(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Code: "TV-55", Name: "TV", Price: 100, Stock: 2})
	require.NoError(t, err)

	_, err = svc.AdjustStock(ctx, created.ID, -3)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INSUFFICIENT_STOCK", domainErr.Code)
}

func TestProductService_DeactivateAndActivate(t *testing.T) {
	repo := newFakeProductRepo()
	svc := NewProductService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateProductRequest{Code: "TV-55", Name: "TV", Price: 100, Stock: 1})
	require.NoError(t, err)

	require.NoError(t, svc.Deactivate(ctx, created.ID))
	found, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(catalog.ProductStatusInactive), found.Status)

	require.NoError(t, svc.Activate(ctx, created.ID))
	found, err = svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(catalog.ProductStatusActive), found.Status)
}

func TestToProductResponse(t *testing.T) {
	product, err := catalog.NewProduct("MW-100", "Microwave", valueobject.NewMoneyFromFloat(99.9), 3, false)
	require.NoError(t, err)

	resp := ToProductResponse(product)
	assert.Equal(t, "99.90", resp.Price)
	assert.Equal(t, "MW-100", resp.Code)
}
