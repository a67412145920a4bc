package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type teachingLinkRepository interface {
	ListRows(ctx context.Context) ([]models.TeachingLinkRow, error)
	FindRow(ctx context.Context, id string) (*models.TeachingLinkRow, error)
	Exists(ctx context.Context, teacherID, subjectID, classroomID string) (bool, error)
	Create(ctx context.Context, link *models.TeachingLink) error
	Delete(ctx context.Context, id string) (int64, error)
	SubjectsForTeacher(ctx context.Context, teacherID string) ([]models.Subject, error)
	ClassroomsForTeacher(ctx context.Context, teacherID string) ([]models.Classroom, error)
}

type linkUserReader interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
}

type linkClassroomReader interface {
	HomeroomTeacher(ctx context.Context, classroomID string) (*models.ClassroomMember, error)
	Roster(ctx context.Context, classroomID string) ([]models.ClassroomMember, error)
}

// CreateTeachingLinkRequest requires all three foreign keys.
type CreateTeachingLinkRequest struct {
	TeacherID   string `json:"teacherId" validate:"required"`
	SubjectID   string `json:"subjectId" validate:"required"`
	ClassroomID string `json:"classroomId" validate:"required"`
}

// GradingContext is the option set a teacher picks from when creating a
// grade or assignment: exactly the subjects and classrooms reachable
// through their teaching links.
type GradingContext struct {
	Subjects   []models.NamedRef        `json:"subjects"`
	Classrooms []models.ClassroomDetail `json:"classrooms"`
}

// TeachingLinkService manages teacher-subject-classroom links and the
// teacher grading context derived from them.
type TeachingLinkService struct {
	repo       teachingLinkRepository
	users      linkUserReader
	classrooms linkClassroomReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewTeachingLinkService creates a new teaching link service.
func NewTeachingLinkService(repo teachingLinkRepository, users linkUserReader, classrooms linkClassroomReader, validate *validator.Validate, logger *zap.Logger) *TeachingLinkService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TeachingLinkService{repo: repo, users: users, classrooms: classrooms, validator: validate, logger: logger}
}

// List returns all links with resolved display labels.
func (s *TeachingLinkService) List(ctx context.Context) ([]models.TeachingLinkRow, error) {
	rows, err := s.repo.ListRows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teaching links")
	}
	return rows, nil
}

// Create links a teacher to a subject within a classroom. Exact
// duplicate triples are rejected before any write.
func (s *TeachingLinkService) Create(ctx context.Context, req CreateTeachingLinkRequest) (*models.TeachingLinkRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "teacherId, subjectId and classroomId are required")
	}

	teacher, err := s.users.FindByID(ctx, req.TeacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced teacher does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if teacher.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrValidation, "referenced user is not a teacher")
	}

	exists, err := s.repo.Exists(ctx, req.TeacherID, req.SubjectID, req.ClassroomID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teaching link")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "this teacher-subject-classroom link already exists")
	}

	link := &models.TeachingLink{
		TeacherID:   req.TeacherID,
		SubjectID:   req.SubjectID,
		ClassroomID: req.ClassroomID,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		if repository.IsUniqueViolation(err, "") {
			return nil, appErrors.Clone(appErrors.ErrConflict, "this teacher-subject-classroom link already exists")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced subject or classroom does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create teaching link")
	}

	row, err := s.repo.FindRow(ctx, link.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load created teaching link")
	}
	return row, nil
}

// Delete removes a link by id.
func (s *TeachingLinkService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "teaching link id is required")
	}
	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete teaching link")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "teaching link not found")
	}
	return nil
}

// GradingContext returns the distinct subjects and classrooms reachable
// through the caller's teaching links, each classroom with its roster
// and homeroom teacher. A classroom where the caller is only homeroom
// teacher does not appear.
func (s *TeachingLinkService) GradingContext(ctx context.Context, claims *models.JWTClaims) (*GradingContext, error) {
	subjects, err := s.repo.SubjectsForTeacher(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher subjects")
	}

	classrooms, err := s.repo.ClassroomsForTeacher(ctx, claims.UserID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher classrooms")
	}

	context := &GradingContext{
		Subjects:   make([]models.NamedRef, 0, len(subjects)),
		Classrooms: make([]models.ClassroomDetail, 0, len(classrooms)),
	}
	for _, subject := range subjects {
		context.Subjects = append(context.Subjects, models.NamedRef{ID: subject.ID, Name: subject.Name})
	}

	for _, classroom := range classrooms {
		detail := models.ClassroomDetail{ID: classroom.ID, Name: classroom.Name}

		if classroom.HomeroomTeacherID != nil {
			teacher, err := s.classrooms.HomeroomTeacher(ctx, classroom.ID)
			if err != nil && !errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load homeroom teacher")
			}
			detail.HomeroomTeacher = teacher
		}

		students, err := s.classrooms.Roster(ctx, classroom.ID)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom roster")
		}
		if students == nil {
			students = []models.ClassroomMember{}
		}
		detail.Students = students

		context.Classrooms = append(context.Classrooms, detail)
	}

	return context, nil
}
