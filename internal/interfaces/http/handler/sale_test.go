package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	catalogapp "github.com/pos/backend/internal/application/catalog"
	ledgerapp "github.com/pos/backend/internal/application/ledger"
	"github.com/pos/backend/internal/infrastructure/persistence"
	"github.com/pos/backend/internal/infrastructure/persistence/models"
	"github.com/pos/backend/internal/interfaces/http/router"
)

// passthrough stands in for the auth guards in tests
func passthrough(c *gin.Context) { c.Next() }

type saleFixture struct {
	engine    *gin.Engine
	productID string
}

func newSaleFixture(t *testing.T) *saleFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.SaleModel{},
		&models.SaleItemModel{},
		&models.ReceivableModel{},
		&models.PaymentModel{},
		&models.ProductModel{},
		&models.CustomerModel{},
	))

	saleRepo := persistence.NewGormSaleRepository(db)
	receivableRepo := persistence.NewGormReceivableRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	scope := persistence.NewGormTransactionScope(db)

	saleService := ledgerapp.NewSaleService(scope, saleRepo, receivableRepo, paymentRepo, customerRepo)
	productService := catalogapp.NewProductService(productRepo)

	product, err := productService.Create(t.Context(), catalogapp.CreateProductRequest{
		Code:  "FRIDGE-1",
		Name:  "Fridge",
		Price: 300,
		Stock: 10,
	})
	require.NoError(t, err)

	engine := gin.New()
	router.New(engine).Register(
		NewSaleHandler(saleService, passthrough, passthrough, passthrough),
		NewReceivableHandler(saleService, passthrough),
	).Setup()

	return &saleFixture{engine: engine, productID: product.ID.String()}
}

func (f *saleFixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *saleFixture) createSale(t *testing.T, installments int) map[string]any {
	t.Helper()
	body := fmt.Sprintf(`{
		"items": [{"product_id": %q, "quantity": 1}],
		"installments": %d,
		"payment_day": 10
	}`, f.productID, installments)

	w := f.do(t, http.MethodPost, "/api/v1/sales", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var envelope struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.True(t, envelope.Success)
	return envelope.Data
}

func TestSaleHandler_CreateGeneratesSchedule(t *testing.T) {
	f := newSaleFixture(t)

	sale := f.createSale(t, 3)

	assert.Equal(t, "PENDING", sale["status"])
	assert.Equal(t, "300.00", sale["total"])
	receivables := sale["receivables"].([]any)
	assert.Len(t, receivables, 3)
	first := receivables[0].(map[string]any)
	assert.Equal(t, "100.00", first["amount"])
}

func TestSaleHandler_CreateRejectsUnknownProduct(t *testing.T) {
	f := newSaleFixture(t)

	body := `{
		"items": [{"product_id": "00000000-0000-0000-0000-000000000099", "quantity": 1}],
		"installments": 2,
		"payment_day": 10
	}`
	w := f.do(t, http.MethodPost, "/api/v1/sales", body)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSaleHandler_CreateValidatesBody(t *testing.T) {
	f := newSaleFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/sales", `{"items": []}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_GetAndList(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t, 2)

	w := f.do(t, http.MethodGet, "/api/v1/sales/"+sale["id"].(string), "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), sale["number"].(string))

	w = f.do(t, http.MethodGet, "/api/v1/sales?page=1&page_size=10", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var listEnvelope struct {
		Data []any `json:"data"`
		Meta struct {
			Total int64 `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listEnvelope))
	assert.Equal(t, int64(1), listEnvelope.Meta.Total)
}

func TestSaleHandler_GetMissingSale(t *testing.T) {
	f := newSaleFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/sales/00000000-0000-0000-0000-000000000001", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/sales/not-a-uuid", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSaleHandler_RegisterPaymentSweepsSchedule(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t, 3)

	body := `{"amount": 150, "method": "CASH"}`
	w := f.do(t, http.MethodPost, "/api/v1/sales/"+sale["id"].(string)+"/payments", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var envelope struct {
		Data struct {
			Allocations []map[string]any `json:"allocations"`
			Sale        map[string]any   `json:"sale"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data.Allocations, 2)
	assert.Equal(t, "PAID", envelope.Data.Allocations[0]["status"])
	assert.Equal(t, "PARTIAL", envelope.Data.Allocations[1]["status"])
	assert.Equal(t, "150.00", envelope.Data.Sale["paid_amount"])
}

func TestSaleHandler_Cancel(t *testing.T) {
	f := newSaleFixture(t)
	sale := f.createSale(t, 2)

	w := f.do(t, http.MethodPost, "/api/v1/sales/"+sale["id"].(string)+"/cancellation", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), "CANCELLED")
}

func TestReceivableHandler_DueWindowValidation(t *testing.T) {
	f := newSaleFixture(t)

	w := f.do(t, http.MethodGet, "/api/v1/receivables/due", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/receivables/due?from=2026-05-01&to=2026-04-01", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, http.MethodGet, "/api/v1/receivables/due?from=2026-01-01&to=2026-12-31", "")
	assert.Equal(t, http.StatusOK, w.Code)
}
