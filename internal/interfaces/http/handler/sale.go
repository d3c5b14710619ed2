package handler

import (
	"github.com/gin-gonic/gin"

	ledgerapp "github.com/pos/backend/internal/application/ledger"
)

// SaleHandler handles installment sale endpoints
type SaleHandler struct {
	BaseHandler
	saleService *ledgerapp.SaleService
	authGuard   gin.HandlerFunc
	adminGuard  gin.HandlerFunc
	idempotency gin.HandlerFunc
}

// NewSaleHandler creates a new SaleHandler. adminGuard protects schedule
// amendments and cancellations; idempotency dedupes retried payment posts.
func NewSaleHandler(saleService *ledgerapp.SaleService, authGuard, adminGuard, idempotency gin.HandlerFunc) *SaleHandler {
	return &SaleHandler{
		saleService: saleService,
		authGuard:   authGuard,
		adminGuard:  adminGuard,
		idempotency: idempotency,
	}
}

// RegisterRoutes registers sale routes
func (h *SaleHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sales", h.authGuard)
	group.POST("", h.Create)
	group.GET("", h.List)
	group.GET("/:id", h.Get)
	group.GET("/number/:number", h.GetByNumber)
	group.POST("/:id/amendments", h.adminGuard, h.Amend)
	group.POST("/:id/payments", h.idempotency, h.RegisterPayment)
	group.POST("/:id/cancellation", h.adminGuard, h.Cancel)
}

// Create opens a sale and generates its installment schedule
func (h *SaleHandler) Create(c *gin.Context) {
	var req ledgerapp.CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, sale)
}

// Get retrieves a sale with its schedule and payment history
func (h *SaleHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// GetByNumber retrieves a sale by its human-facing number
func (h *SaleHandler) GetByNumber(c *gin.Context) {
	number := c.Param("number")
	if number == "" {
		h.BadRequest(c, "Sale number is required")
		return
	}

	sale, err := h.saleService.GetByNumber(c.Request.Context(), number)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// List retrieves sales with filtering and pagination
func (h *SaleHandler) List(c *gin.Context) {
	var filter ledgerapp.SaleListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sales, total, err := h.saleService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	page := filter.Page
	if page <= 0 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, sales, total, page, pageSize)
}

// Amend adds items to an open sale and reshapes its schedule
func (h *SaleHandler) Amend(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req ledgerapp.AmendSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sale, err := h.saleService.Amend(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}

// RegisterPayment applies money against a sale's receivables
func (h *SaleHandler) RegisterPayment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	var req ledgerapp.RegisterPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.saleService.RegisterPayment(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// Cancel voids a pending sale, cancels its open installments and
// restores the sold stock
func (h *SaleHandler) Cancel(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid sale ID")
		return
	}

	sale, err := h.saleService.Cancel(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, sale)
}
