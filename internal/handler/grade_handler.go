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

type gradeService interface {
	List(ctx context.Context, claims *models.JWTClaims) ([]models.GradeDetail, error)
	Create(ctx context.Context, claims *models.JWTClaims, req service.CreateGradeRequest) (*models.Grade, error)
	MyGrades(ctx context.Context, claims *models.JWTClaims) ([]models.SubjectGrades, error)
}

type gradeExportService interface {
	MyGradesReport(ctx context.Context, claims *models.JWTClaims, format string) (*service.ExportResult, error)
}

// GradeHandler serves grade listing, entry and the student views.
type GradeHandler struct {
	service gradeService
	exports gradeExportService
}

// NewGradeHandler constructs a grade handler.
func NewGradeHandler(svc gradeService, exports gradeExportService) *GradeHandler {
	return &GradeHandler{service: svc, exports: exports}
}

// List godoc
// @Summary List grades scoped to the caller's role
// @Tags Grades
// @Produce json
// @Success 200 {array} models.GradeDetail
// @Router /api/grades [get]
func (h *GradeHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grades, err := h.service.List(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grades)
}

// Create godoc
// @Summary Record a grade
// @Tags Grades
// @Accept json
// @Produce json
// @Param payload body service.CreateGradeRequest true "Grade payload"
// @Success 201 {object} models.Grade
// @Router /api/grades [post]
func (h *GradeHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.CreateGradeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	grade, err := h.service.Create(c.Request.Context(), claims, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, grade)
}

// MyGrades godoc
// @Summary Grades of the authenticated student grouped by subject
// @Tags Grades
// @Produce json
// @Success 200 {array} models.SubjectGrades
// @Router /api/grades/me [get]
func (h *GradeHandler) MyGrades(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	grades, err := h.service.MyGrades(c.Request.Context(), claims)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, grades)
}

// ExportMyGrades godoc
// @Summary Download the student's grades as PDF or CSV
// @Tags Grades
// @Produce application/pdf
// @Produce text/csv
// @Param format query string false "pdf or csv" default(pdf)
// @Success 200 {file} file
// @Router /api/grades/me/export [get]
func (h *GradeHandler) ExportMyGrades(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	result, err := h.exports.MyGradesReport(c.Request.Context(), claims, c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+result.Filename+`"`)
	c.Data(http.StatusOK, result.ContentType, result.Content)
}
