package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type assignmentRepo interface {
	List(ctx context.Context, filter repository.AssignmentFilter) ([]models.AssignmentRow, error)
	FindByID(ctx context.Context, id string) (*models.Assignment, error)
	FindRow(ctx context.Context, id string) (*models.AssignmentRow, error)
	Create(ctx context.Context, assignment *models.Assignment) error
	Delete(ctx context.Context, id string) error
}

type assignmentLinkChecker interface {
	Exists(ctx context.Context, teacherID, subjectID, classroomID string) (bool, error)
}

type assignmentUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CreateAssignmentRequest is the assignment create payload. The due date
// accepts RFC 3339 or a plain YYYY-MM-DD date.
type CreateAssignmentRequest struct {
	Title       string  `json:"title" validate:"required"`
	Description *string `json:"description"`
	DueDate     string  `json:"dueDate" validate:"required"`
	SubjectID   string  `json:"subjectId" validate:"required"`
	ClassroomID string  `json:"classroomId" validate:"required"`
	TeacherID   string  `json:"teacherId"`
}

// AssignmentService applies role-dependent visibility and mutation rules
// for homework assignments.
type AssignmentService struct {
	repo      assignmentRepo
	links     assignmentLinkChecker
	users     assignmentUserReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService creates a new assignment service.
func NewAssignmentService(repo assignmentRepo, links assignmentLinkChecker, users assignmentUserReader, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, links: links, users: users, validator: validate, logger: logger}
}

// List returns assignments visible to the caller: admins see all,
// teachers their own, students those of their classroom. A student with
// no classroom gets an empty list, not an error.
func (s *AssignmentService) List(ctx context.Context, claims *models.JWTClaims) ([]models.AssignmentDetail, error) {
	filter := repository.AssignmentFilter{}

	switch claims.Role {
	case models.RoleTeacher:
		filter.TeacherID = claims.UserID
	case models.RoleStudent:
		user, err := s.users.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
		}
		if user.ClassroomID == nil {
			return []models.AssignmentDetail{}, nil
		}
		filter.ClassroomID = *user.ClassroomID
	}

	rows, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list assignments")
	}

	details := make([]models.AssignmentDetail, 0, len(rows))
	for _, row := range rows {
		details = append(details, row.Detail())
	}
	return details, nil
}

// Create adds a new assignment. A teacher always creates in their own
// name and only within their teaching links; an admin must name the
// owning teacher explicitly.
func (s *AssignmentService) Create(ctx context.Context, claims *models.JWTClaims, req CreateAssignmentRequest) (*models.AssignmentDetail, error) {
	if claims.Role == models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "students are not allowed to create assignments")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "title, dueDate, subjectId and classroomId are required")
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid due date")
	}

	var teacherID string
	switch claims.Role {
	case models.RoleTeacher:
		// a client-supplied teacherId is ignored on purpose
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
			return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId is required when an administrator creates an assignment")
		}
		teacherID = req.TeacherID
	}

	assignment := &models.Assignment{
		Title:       req.Title,
		Description: req.Description,
		DueDate:     dueDate,
		SubjectID:   req.SubjectID,
		ClassroomID: req.ClassroomID,
		TeacherID:   teacherID,
	}
	if err := s.repo.Create(ctx, assignment); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced subject, classroom or teacher does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create assignment")
	}

	row, err := s.repo.FindRow(ctx, assignment.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created assignment")
	}
	detail := row.Detail()
	return &detail, nil
}

// Delete removes an assignment. Existence is checked before ownership so
// a missing id is always 404, while a foreign teacher gets 403.
func (s *AssignmentService) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	if claims.Role == models.RoleStudent {
		return appErrors.Clone(appErrors.ErrForbidden, "students are not allowed to delete assignments")
	}
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "assignment id is required")
	}

	assignment, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load assignment")
	}

	if claims.Role == models.RoleTeacher && assignment.TeacherID != claims.UserID {
		return appErrors.Clone(appErrors.ErrForbidden, "you cannot delete another teacher's assignment")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete assignment")
	}
	return nil
}

func parseDueDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
