package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/service"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
	"github.com/veljkom/e-dnevnik-api/pkg/response"
)

type userService interface {
	List(ctx context.Context) ([]models.AdminUserRow, error)
	Create(ctx context.Context, req service.CreateUserRequest) (*models.AdminUserRow, error)
	Update(ctx context.Context, id string, req service.UpdateUserRequest) error
	Teachers(ctx context.Context) ([]models.TeacherOption, error)
	Me(ctx context.Context, claims *models.JWTClaims, ip string) (*service.MeResponse, error)
}

// UserHandler serves admin user management and the self profile.
type UserHandler struct {
	service userService
}

// NewUserHandler constructs a user handler.
func NewUserHandler(svc userService) *UserHandler {
	return &UserHandler{service: svc}
}

// List godoc
// @Summary List users for the admin table
// @Tags Admin
// @Produce json
// @Success 200 {array} models.AdminUserRow
// @Router /api/admin/users [get]
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, users)
}

// Create godoc
// @Summary Create a user
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateUserRequest true "User payload"
// @Success 201 {object} models.AdminUserRow
// @Router /api/admin/users [post]
func (h *UserHandler) Create(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	user, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, user)
}

// Update godoc
// @Summary Patch a user's role, name or classroom
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Param payload body service.UpdateUserRequest true "Fields to change"
// @Success 200 {object} map[string]bool
// @Router /api/admin/users/{id} [patch]
func (h *UserHandler) Update(c *gin.Context) {
	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.Update(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// Teachers godoc
// @Summary Teacher picklist for homeroom selection
// @Tags Admin
// @Produce json
// @Success 200 {array} models.TeacherOption
// @Router /api/admin/teachers [get]
func (h *UserHandler) Teachers(c *gin.Context) {
	teachers, err := h.service.Teachers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, teachers)
}

// Me godoc
// @Summary Self profile with detected IP
// @Tags Profile
// @Produce json
// @Success 200 {object} service.MeResponse
// @Router /api/me [get]
func (h *UserHandler) Me(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	profile, err := h.service.Me(c.Request.Context(), claims, clientIP(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, profile)
}
