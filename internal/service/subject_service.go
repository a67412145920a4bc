package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type subjectRepository interface {
	List(ctx context.Context) ([]models.Subject, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Create(ctx context.Context, subject *models.Subject) error
	Delete(ctx context.Context, id string) (int64, error)
}

// CreateSubjectRequest captures the admin create payload.
type CreateSubjectRequest struct {
	Name string `json:"name" validate:"required"`
}

// SubjectService handles subject administration.
type SubjectService struct {
	repo      subjectRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSubjectService creates a new subject service.
func NewSubjectService(repo subjectRepository, validate *validator.Validate, logger *zap.Logger) *SubjectService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SubjectService{repo: repo, validator: validate, logger: logger}
}

// List returns all subjects ordered by name.
func (s *SubjectService) List(ctx context.Context) ([]models.Subject, error) {
	subjects, err := s.repo.List(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}
	return subjects, nil
}

// Create adds a new subject, checking name uniqueness before the write.
func (s *SubjectService) Create(ctx context.Context, req CreateSubjectRequest) (*models.Subject, error) {
	req.Name = strings.TrimSpace(req.Name)
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject name is required")
	}

	exists, err := s.repo.ExistsByName(ctx, req.Name)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check subject name")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "subject with that name already exists")
	}

	subject := &models.Subject{Name: req.Name}
	if err := s.repo.Create(ctx, subject); err != nil {
		if repository.IsUniqueViolation(err, "name") {
			return nil, appErrors.Clone(appErrors.ErrConflict, "subject with that name already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create subject")
	}
	return subject, nil
}

// Delete removes a subject unless grades or assignments still reference
// it; referential integrity is not cascaded.
func (s *SubjectService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "subject id is required")
	}

	affected, err := s.repo.Delete(ctx, id)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrValidation, "cannot delete subject: it still has related grades or assignments")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete subject")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "subject not found")
	}
	return nil
}
