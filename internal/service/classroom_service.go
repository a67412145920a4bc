package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type classroomRepository interface {
	ListAdminRows(ctx context.Context) ([]models.ClassroomAdminRow, error)
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
	Create(ctx context.Context, classroom *models.Classroom) error
	SetHomeroomTeacher(ctx context.Context, classroomID string, teacherID *string) (int64, error)
	HomeroomTeacher(ctx context.Context, classroomID string) (*models.ClassroomMember, error)
	Roster(ctx context.Context, classroomID string) ([]models.ClassroomMember, error)
}

type classroomUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// CreateClassroomRequest carries the admin create payload. Classrooms
// are created with a name only; the homeroom teacher is set later.
type CreateClassroomRequest struct {
	Name string `json:"name" validate:"required"`
}

// SetHomeroomRequest assigns or clears the homeroom teacher.
type SetHomeroomRequest struct {
	HomeroomTeacherID *string `json:"homeroomTeacherId"`
}

// ClassroomService handles classroom administration and the student
// self-view.
type ClassroomService struct {
	repo      classroomRepository
	users     classroomUserReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassroomService creates a new classroom service.
func NewClassroomService(repo classroomRepository, users classroomUserReader, validate *validator.Validate, logger *zap.Logger) *ClassroomService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassroomService{repo: repo, users: users, validator: validate, logger: logger}
}

// List returns classrooms with homeroom teacher names and student counts.
func (s *ClassroomService) List(ctx context.Context) ([]models.ClassroomAdminRow, error) {
	rows, err := s.repo.ListAdminRows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list classrooms")
	}
	return rows, nil
}

// Create adds a new classroom with a unique trimmed name.
func (s *ClassroomService) Create(ctx context.Context, req CreateClassroomRequest) (*models.Classroom, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "classroom name is required")
	}

	classroom := &models.Classroom{Name: req.Name}
	if err := s.repo.Create(ctx, classroom); err != nil {
		if repository.IsUniqueViolation(err, "name") {
			return nil, appErrors.Clone(appErrors.ErrConflict, "classroom with that name already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create classroom")
	}
	return classroom, nil
}

// SetHomeroom assigns or clears the classroom's homeroom teacher. The
// one-classroom-per-teacher invariant is enforced by the store's unique
// constraint so concurrent assignments cannot both succeed; the losing
// writer gets the domain conflict message.
func (s *ClassroomService) SetHomeroom(ctx context.Context, classroomID string, req SetHomeroomRequest) error {
	affected, err := s.repo.SetHomeroomTeacher(ctx, classroomID, req.HomeroomTeacherID)
	if err != nil {
		if repository.IsUniqueViolation(err, "homeroom_teacher") {
			return appErrors.Clone(appErrors.ErrConflict, "a teacher can be the homeroom teacher of only one classroom")
		}
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrValidation, "referenced teacher does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update classroom")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	return nil
}

// MyClassroom returns the calling student's classroom with its homeroom
// teacher and peer roster. A student without a classroom gets a distinct
// not-found rather than an empty result.
func (s *ClassroomService) MyClassroom(ctx context.Context, claims *models.JWTClaims) (*models.ClassroomDetail, error) {
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load user")
	}
	if user.ClassroomID == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student is not assigned to any classroom")
	}

	return s.classroomDetail(ctx, *user.ClassroomID)
}

func (s *ClassroomService) classroomDetail(ctx context.Context, classroomID string) (*models.ClassroomDetail, error) {
	classroom, err := s.repo.FindByID(ctx, classroomID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
	}

	detail := &models.ClassroomDetail{ID: classroom.ID, Name: classroom.Name}

	if classroom.HomeroomTeacherID != nil {
		teacher, err := s.repo.HomeroomTeacher(ctx, classroom.ID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load homeroom teacher")
		}
		detail.HomeroomTeacher = teacher
	}

	students, err := s.repo.Roster(ctx, classroom.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom roster")
	}
	if students == nil {
		students = []models.ClassroomMember{}
	}
	detail.Students = students

	return detail, nil
}
