package service

import (
	"context"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type gradeRepo interface {
	List(ctx context.Context, filter repository.GradeFilter) ([]models.GradeRow, error)
	ListForStudent(ctx context.Context, studentID string) ([]models.StudentGradeRow, error)
	Create(ctx context.Context, grade *models.Grade) error
}

type gradeLinkChecker interface {
	Exists(ctx context.Context, teacherID, subjectID, classroomID string) (bool, error)
}

// CreateGradeRequest is the grade create payload.
type CreateGradeRequest struct {
	Value       int     `json:"value"`
	Comment     *string `json:"comment"`
	StudentID   string  `json:"studentId" validate:"required"`
	SubjectID   string  `json:"subjectId" validate:"required"`
	ClassroomID string  `json:"classroomId" validate:"required"`
	TeacherID   string  `json:"teacherId"`
}

// GradeService applies role-dependent visibility and mutation rules for
// grades.
type GradeService struct {
	repo      gradeRepo
	links     gradeLinkChecker
	validator *validator.Validate
	logger    *zap.Logger
}

// NewGradeService creates a new grade service.
func NewGradeService(repo gradeRepo, links gradeLinkChecker, validate *validator.Validate, logger *zap.Logger) *GradeService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradeService{repo: repo, links: links, validator: validate, logger: logger}
}

// List returns grades visible to the caller: admins see all, teachers
// only the grades they gave, students only their own.
func (s *GradeService) List(ctx context.Context, claims *models.JWTClaims) ([]models.GradeDetail, error) {
	filter := repository.GradeFilter{}

	switch claims.Role {
	case models.RoleTeacher:
		filter.TeacherID = claims.UserID
	case models.RoleStudent:
		filter.StudentID = claims.UserID
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	details := make([]models.GradeDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.Detail())
	}
	return details, nil
}

// Create records a new grade. A teacher always grades in their own name
// and only within their teaching links; an admin must name the grading
// teacher explicitly. Values outside [1,5] are rejected for every role.
func (s *GradeService) Create(ctx context.Context, claims *models.JWTClaims, req CreateGradeRequest) (*models.Grade, error) {
	if claims.Role == models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "students are not allowed to add grades")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "studentId, subjectId and classroomId are required")
	}
	if req.Value < models.GradeMin || req.Value > models.GradeMax {
		return nil, appErrors.Clone(appErrors.ErrValidation, "grade value must be between 1 and 5")
	}

	var teacherID string
	switch claims.Role {
	case models.RoleTeacher:
		// a teacher cannot grade in another teacher's name; any
		// client-supplied teacherId is ignored
		teacherID = claims.UserID
		linked, err := s.links.Exists(ctx, teacherID, req.SubjectID, req.ClassroomID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teaching link")
		}
		if !linked {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "you do not teach this subject in that classroom")
		}
	default:
		if req.TeacherID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId is required when an administrator creates a grade")
		}
		teacherID = req.TeacherID
	}

	grade := &models.Grade{
		Value:       req.Value,
		Comment:     req.Comment,
		StudentID:   req.StudentID,
		TeacherID:   teacherID,
		SubjectID:   req.SubjectID,
		ClassroomID: req.ClassroomID,
	}
	if err := s.repo.Create(ctx, grade); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced student, teacher, subject or classroom does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create grade")
	}
	return grade, nil
}

// MyGrades returns the calling student's grades grouped by subject name,
// newest first within each subject.
func (s *GradeService) MyGrades(ctx context.Context, claims *models.JWTClaims) ([]models.SubjectGrades, error) {
	rows, err := s.repo.ListForStudent(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	index := map[string]int{}
	grouped := []models.SubjectGrades{}
	for _, row := range rows {
		i, seen := index[row.SubjectName]
		if !seen {
			i = len(grouped)
			index[row.SubjectName] = i
			grouped = append(grouped, models.SubjectGrades{Subject: row.SubjectName})
		}
		grouped[i].Grades = append(grouped[i].Grades, row.Value)
	}
	return grouped, nil
}
