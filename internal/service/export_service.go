package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
	"github.com/veljkom/e-dnevnik-api/pkg/export"
)

type studentGradeReader interface {
	ListForStudent(ctx context.Context, studentID string) ([]models.StudentGradeRow, error)
}

// ExportService renders a student's own grades as a downloadable report.
type ExportService struct {
	grades studentGradeReader
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewExportService creates a new export service.
func NewExportService(grades studentGradeReader, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{
		grades: grades,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// ExportResult carries the rendered document and its metadata.
type ExportResult struct {
	Content     []byte
	ContentType string
	Filename    string
}

var gradeReportHeaders = []string{"Subject", "Grade", "Comment", "Date", "Teacher"}

// MyGradesReport renders the caller's grades as pdf (default) or csv.
func (s *ExportService) MyGradesReport(ctx context.Context, claims *models.JWTClaims, format string) (*ExportResult, error) {
	if format == "" {
		format = "pdf"
	}
	if format != "pdf" && format != "csv" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "format must be pdf or csv")
	}

	rows, err := s.grades.ListForStudent(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	data := export.Dataset{Headers: gradeReportHeaders}
	for _, row := range rows {
		comment := ""
		if row.Comment != nil {
			comment = *row.Comment
		}
		teacher := ""
		if row.TeacherName != nil {
			teacher = *row.TeacherName
		}
		data.Rows = append(data.Rows, map[string]string{
			"Subject": row.SubjectName,
			"Grade":   fmt.Sprintf("%d", row.Value),
			"Comment": comment,
			"Date":    row.Date.Format("2006-01-02"),
			"Teacher": teacher,
		})
	}

	if format == "csv" {
		content, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv report")
		}
		return &ExportResult{Content: content, ContentType: "text/csv", Filename: "grades.csv"}, nil
	}

	content, err := s.pdf.Render(data, "Grade report")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf report")
	}
	return &ExportResult{Content: content, ContentType: "application/pdf", Filename: "grades.pdf"}, nil
}
