package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	ledgerapp "github.com/pos/backend/internal/application/ledger"
)

// ReceivableHandler handles the collections agenda endpoints
type ReceivableHandler struct {
	BaseHandler
	saleService *ledgerapp.SaleService
	authGuard   gin.HandlerFunc
}

// NewReceivableHandler creates a new ReceivableHandler
func NewReceivableHandler(saleService *ledgerapp.SaleService, authGuard gin.HandlerFunc) *ReceivableHandler {
	return &ReceivableHandler{saleService: saleService, authGuard: authGuard}
}

// RegisterRoutes registers receivable routes
func (h *ReceivableHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/receivables", h.authGuard)
	group.GET("/due", h.ListDue)
	group.PATCH("/:id/due-date", h.Reschedule)
}

// dueWindowRequest binds the collections agenda window
type dueWindowRequest struct {
	From time.Time `form:"from" binding:"required" time_format:"2006-01-02"`
	To   time.Time `form:"to" binding:"required" time_format:"2006-01-02"`
}

// ListDue lists installments falling due in a date window
func (h *ReceivableHandler) ListDue(c *gin.Context) {
	var req dueWindowRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}
	if req.To.Before(req.From) {
		h.BadRequest(c, "Window end must not precede its start")
		return
	}

	receivables, err := h.saleService.ListReceivablesDueBetween(c.Request.Context(), req.From, req.To)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivables)
}

// Reschedule moves one installment's due date
func (h *ReceivableHandler) Reschedule(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid receivable ID")
		return
	}

	var req ledgerapp.RescheduleReceivableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	receivable, err := h.saleService.RescheduleReceivable(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, receivable)
}
