package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veljkom/e-dnevnik-api/internal/service"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
	"github.com/veljkom/e-dnevnik-api/pkg/response"
)

// SubjectHandler serves the subject catalog.
type SubjectHandler struct {
	service *service.SubjectService
}

// NewSubjectHandler constructs a subject handler.
func NewSubjectHandler(svc *service.SubjectService) *SubjectHandler {
	return &SubjectHandler{service: svc}
}

// List godoc
// @Summary List subjects alphabetically
// @Tags Admin
// @Produce json
// @Success 200 {array} models.Subject
// @Router /api/admin/subjects [get]
func (h *SubjectHandler) List(c *gin.Context) {
	subjects, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, subjects)
}

// Create godoc
// @Summary Create a subject
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateSubjectRequest true "Subject payload"
// @Success 201 {object} models.Subject
// @Router /api/admin/subjects [post]
func (h *SubjectHandler) Create(c *gin.Context) {
	var req service.CreateSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	subject, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, subject)
}

// Delete godoc
// @Summary Delete a subject by query id
// @Tags Admin
// @Produce json
// @Param id query string true "Subject ID"
// @Success 200 {object} map[string]bool
// @Router /api/admin/subjects [delete]
func (h *SubjectHandler) Delete(c *gin.Context) {
	id := c.Query("id")
	if id == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "id query parameter is required"))
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, gin.H{"success": true})
}
