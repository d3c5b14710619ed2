package handler

import (
	"github.com/gin-gonic/gin"

	identityapp "github.com/pos/backend/internal/application/identity"
)

// UserHandler handles user administration endpoints
type UserHandler struct {
	BaseHandler
	userService *identityapp.UserService
	authGuard   gin.HandlerFunc
	adminGuard  gin.HandlerFunc
}

// NewUserHandler creates a new UserHandler. All user administration is
// admin-only.
func NewUserHandler(userService *identityapp.UserService, authGuard, adminGuard gin.HandlerFunc) *UserHandler {
	return &UserHandler{
		userService: userService,
		authGuard:   authGuard,
		adminGuard:  adminGuard,
	}
}

// RegisterRoutes registers user administration routes
func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/users", h.authGuard, h.adminGuard)
	group.POST("", h.Create)
	group.GET("/:id", h.Get)
	group.POST("/:id/deactivation", h.Deactivate)
}

// Create registers a new user account
func (h *UserHandler) Create(c *gin.Context) {
	var req identityapp.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	user, err := h.userService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, user)
}

// Get retrieves a user account
func (h *UserHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	user, err := h.userService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, user)
}

// Deactivate blocks a user from logging in
func (h *UserHandler) Deactivate(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		h.BadRequest(c, "Invalid user ID")
		return
	}

	if err := h.userService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
