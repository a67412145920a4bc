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

type assignmentService interface {
	List(ctx context.Context, claims *models.JWTClaims) ([]models.AssignmentDetail, error)
	Create(ctx context.Context, claims *models.JWTClaims, req service.CreateAssignmentRequest) (*models.AssignmentDetail, error)
	Delete(ctx context.Context, claims *models.JWTClaims, id string) error
}

// AssignmentHandler serves assignment listing and management.
type AssignmentHandler struct {
	service assignmentService
}

// NewAssignmentHandler constructs an assignment handler.
func NewAssignmentHandler(svc assignmentService) *AssignmentHandler {
	return &AssignmentHandler{service: svc}
}

// List godoc
// @Summary List assignments scoped to the caller's role
// @Tags Assignments
// @Produce json
// @Success 200 {array} models.AssignmentDetail
// @Router /api/assignments [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	assignments, err := h.service.List(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, assignments)
}

// Create godoc
// @Summary Create an assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param payload body service.CreateAssignmentRequest true "Assignment payload"
// @Success 201 {object} models.AssignmentDetail
// @Router /api/assignments [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	assignment, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Delete godoc
// @Summary Delete an assignment by query id
// @Tags Assignments
// @Produce json
// @Param id query string true "Assignment ID"
// @Success 200 {object} map[string]bool
// @Router /api/assignments [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	id := c.Query("id")
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id query parameter is required"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), claims, id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
