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

type classroomService interface {
	List(ctx context.Context) ([]models.ClassroomAdminRow, error)
	Create(ctx context.Context, req service.CreateClassroomRequest) (*models.Classroom, error)
	SetHomeroom(ctx context.Context, classroomID string, req service.SetHomeroomRequest) error
	MyClassroom(ctx context.Context, claims *models.JWTClaims) (*models.ClassroomDetail, error)
}

// ClassroomHandler serves classroom administration and the student view.
type ClassroomHandler struct {
	service classroomService
}

// NewClassroomHandler constructs a classroom handler.
func NewClassroomHandler(svc classroomService) *ClassroomHandler {
	return &ClassroomHandler{service: svc}
}

// List godoc
// @Summary List classrooms with homeroom teacher and student counts
// @Tags Admin
// @Produce json
// @Success 200 {array} models.ClassroomAdminRow
// @Router /api/admin/classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	classrooms, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, classrooms)
}

// Create godoc
// @Summary Create a classroom
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateClassroomRequest true "Classroom payload"
// @Success 201 {object} models.Classroom
// @Router /api/admin/classrooms [post]
func (h *ClassroomHandler) Create(c *gin.Context) {
	var req service.CreateClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	classroom, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, classroom)
}

// SetHomeroom godoc
// @Summary Assign or clear a classroom's homeroom teacher
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Classroom ID"
// @Param payload body service.SetHomeroomRequest true "Homeroom teacher"
// @Success 200 {object} map[string]bool
// @Router /api/admin/classrooms/{id} [patch]
func (h *ClassroomHandler) SetHomeroom(c *gin.Context) {
	var req service.SetHomeroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	if err := h.service.SetHomeroom(c.Request.Context(), c.Param("id"), req); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}

// MyClassroom godoc
// @Summary Classroom detail for the authenticated student
// @Tags Classrooms
// @Produce json
// @Success 200 {object} models.ClassroomDetail
// @Router /api/classrooms/me [get]
func (h *ClassroomHandler) MyClassroom(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	detail, err := h.service.MyClassroom(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, detail)
}
