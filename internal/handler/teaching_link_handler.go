package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/veljkom/e-dnevnik-api/internal/service"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
	"github.com/veljkom/e-dnevnik-api/pkg/response"
)

// TeachingLinkHandler serves teacher-subject-classroom link management
// and the grading context lookup used by the grade entry screen.
type TeachingLinkHandler struct {
	service *service.TeachingLinkService
}

// NewTeachingLinkHandler constructs a teaching link handler.
func NewTeachingLinkHandler(svc *service.TeachingLinkService) *TeachingLinkHandler {
	return &TeachingLinkHandler{service: svc}
}

// List godoc
// @Summary List teaching links with resolved labels
// @Tags Admin
// @Produce json
// @Success 200 {array} models.TeachingLinkRow
// @Router /api/admin/teacher-subjects [get]
func (h *TeachingLinkHandler) List(c *gin.Context) {
	links, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, links)
}

// Create godoc
// @Summary Link a teacher to a subject in a classroom
// @Tags Admin
// @Accept json
// @Produce json
// @Param payload body service.CreateTeachingLinkRequest true "Link payload"
// @Success 201 {object} models.TeachingLinkRow
// @Router /api/admin/teacher-subjects [post]
func (h *TeachingLinkHandler) Create(c *gin.Context) {
	var req service.CreateTeachingLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	link, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, link)
}

// Delete godoc
// @Summary Remove a teaching link by query id
// @Tags Admin
// @Produce json
// @Param id query string true "Teaching link ID"
// @Success 200 {object} map[string]bool
// @Router /api/admin/teacher-subjects [delete]
func (h *TeachingLinkHandler) Delete(c *gin.Context) {
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

// GradingContext godoc
// @Summary Subjects and classroom rosters the caller may grade
// @Tags Grades
// @Produce json
// @Success 200 {object} service.GradingContext
// @Router /api/teacher/grades/context [get]
func (h *TeachingLinkHandler) GradingContext(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grading, err := h.service.GradingContext(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grading)
}
