package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	ListAdminRows(ctx context.Context) ([]models.AdminUserRow, error)
	ListTeachers(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, patch repository.UserPatch) (int64, error)
}

type userClassroomReader interface {
	FindByID(ctx context.Context, id string) (*models.Classroom, error)
}

// CreateUserRequest captures fields for admin user creation.
type CreateUserRequest struct {
	Username    string  `json:"username" validate:"required"`
	Password    string  `json:"password" validate:"required"`
	Role        string  `json:"role" validate:"required"`
	FullName    *string `json:"full_name"`
	ClassroomID *string `json:"classroomId"`
}

// NullableString records whether its JSON key was present, so a PATCH
// payload can tell an explicit null apart from an absent field.
type NullableString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON runs only for keys present in the payload, including
// an explicit null.
func (n *NullableString) UnmarshalJSON(data []byte) error {
	n.Set = true
	return json.Unmarshal(data, &n.Value)
}

// UpdateUserRequest is a partial admin update. Absent fields stay
// untouched; a classroomId of null clears the assignment.
type UpdateUserRequest struct {
	Role        *string        `json:"role"`
	FullName    *string        `json:"full_name"`
	ClassroomID NullableString `json:"classroomId"`
}

// MeResponse is the self-profile payload including the best-effort
// caller IP resolved by the handler.
type MeResponse struct {
	ID        string           `json:"id"`
	Username  string           `json:"username"`
	FullName  *string          `json:"full_name"`
	Role      models.UserRole  `json:"role"`
	Classroom *models.NamedRef `json:"classroom"`
	IP        string           `json:"ip"`
}

// UserService handles admin user management and self-profile lookups.
type UserService struct {
	repo       userRepository
	classrooms userClassroomReader
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewUserService creates a new user service.
func NewUserService(repo userRepository, classrooms userClassroomReader, validate *validator.Validate, logger *zap.Logger) *UserService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserService{repo: repo, classrooms: classrooms, validator: validate, logger: logger}
}

// List returns all users for the admin table, falling back to the
// username when no display name is set.
func (s *UserService) List(ctx context.Context) ([]models.AdminUserRow, error) {
	rows, err := s.repo.ListAdminRows(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list users")
	}
	for i := range rows {
		if rows[i].FullName == nil {
			name := rows[i].Username
			rows[i].FullName = &name
		}
	}
	return rows, nil
}

// Create adds a new user with a hashed password.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*models.AdminUserRow, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "username, password and role are required")
	}
	if !models.ValidRole(req.Role) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid role")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	user := &models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Role:         models.UserRole(req.Role),
		ClassroomID:  req.ClassroomID,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if repository.IsUniqueViolation(err, "username") {
			return nil, appErrors.Clone(appErrors.ErrConflict, "username is already taken")
		}
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "referenced classroom does not exist")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create user")
	}

	return &models.AdminUserRow{
		ID:          user.ID,
		Username:    user.Username,
		FullName:    user.FullName,
		Role:        user.Role,
		ClassroomID: user.ClassroomID,
	}, nil
}

// Update applies a partial admin update. An empty patch is itself an
// error rather than a silent no-op.
func (s *UserService) Update(ctx context.Context, id string, req UpdateUserRequest) error {
	patch := repository.UserPatch{FullName: req.FullName}

	if req.Role != nil {
		if !models.ValidRole(*req.Role) {
			return appErrors.Clone(appErrors.ErrValidation, "invalid role")
		}
		role := models.UserRole(*req.Role)
		patch.Role = &role
	}
	if req.ClassroomID.Set {
		patch.SetClassroom = true
		patch.ClassroomID = req.ClassroomID.Value
	}

	if patch.Empty() {
		return appErrors.Clone(appErrors.ErrValidation, "no changes supplied for user")
	}

	affected, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		if repository.IsForeignKeyViolation(err) {
			return appErrors.Clone(appErrors.ErrValidation, "referenced classroom does not exist")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update user")
	}
	if affected == 0 {
		return appErrors.Clone(appErrors.ErrNotFound, "user not found")
	}
	return nil
}

// Teachers returns the teacher picklist used for homeroom selection.
func (s *UserService) Teachers(ctx context.Context) ([]models.TeacherOption, error) {
	teachers, err := s.repo.ListTeachers(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teachers")
	}
	options := make([]models.TeacherOption, 0, len(teachers))
	for _, t := range teachers {
		label := t.Username
		if t.FullName != nil && *t.FullName != "" {
			label = *t.FullName
		}
		options = append(options, models.TeacherOption{ID: t.ID, Label: label})
	}
	return options, nil
}

// Me resolves the caller's own record plus their classroom, if any.
func (s *UserService) Me(ctx context.Context, claims *models.JWTClaims, ip string) (*MeResponse, error) {
	user, err := s.repo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "user not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}

	resp := &MeResponse{
		ID:       user.ID,
		Username: user.Username,
		FullName: user.FullName,
		Role:     user.Role,
		IP:       ip,
	}

	if user.ClassroomID != nil {
		classroom, err := s.classrooms.FindByID(ctx, *user.ClassroomID)
		if err != nil && !errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load classroom")
		}
		if classroom != nil {
			resp.Classroom = &models.NamedRef{ID: classroom.ID, Name: classroom.Name}
		}
	}

	return resp, nil
}
