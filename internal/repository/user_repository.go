package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veljkom/e-dnevnik-api/internal/models"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new repository instance.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// FindByUsername returns a user by its unique username.
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, full_name, role, classroom_id, created_at, updated_at FROM users WHERE username = $1 LIMIT 1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, username); err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID returns a user by id.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const query = `SELECT id, username, password_hash, full_name, role, classroom_id, created_at, updated_at FROM users WHERE id = $1`
	var user models.User
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		return nil, err
	}
	return &user, nil
}

// ListAdminRows returns all users with their resolved classroom name.
func (r *UserRepository) ListAdminRows(ctx context.Context) ([]models.AdminUserRow, error) {
	const query = `
SELECT u.id, u.username, u.full_name, u.role, u.classroom_id, c.name AS classroom_name
FROM users u
LEFT JOIN classrooms c ON c.id = u.classroom_id
ORDER BY u.created_at ASC`
	var rows []models.AdminUserRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return rows, nil
}

// ListTeachers returns all users holding the TEACHER role ordered by name.
func (r *UserRepository) ListTeachers(ctx context.Context) ([]models.User, error) {
	const query = `SELECT id, username, password_hash, full_name, role, classroom_id, created_at, updated_at FROM users WHERE role = $1 ORDER BY full_name ASC NULLS LAST, username ASC`
	var teachers []models.User
	if err := r.db.SelectContext(ctx, &teachers, query, models.RoleTeacher); err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}
	return teachers, nil
}

// Create persists a new user. Duplicate usernames surface as a unique
// violation from the store.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	const query = `INSERT INTO users (id, username, password_hash, full_name, role, classroom_id, created_at, updated_at)
		VALUES (:id, :username, :password_hash, :full_name, :role, :classroom_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UserPatch carries the subset of mutable fields for an admin update.
// Only non-nil fields are applied; SetClassroom distinguishes "clear the
// classroom" from "leave it untouched".
type UserPatch struct {
	Role         *models.UserRole
	FullName     *string
	ClassroomID  *string
	SetClassroom bool
}

// Empty reports whether the patch carries no changes.
func (p UserPatch) Empty() bool {
	return p.Role == nil && p.FullName == nil && !p.SetClassroom
}

// Update applies the patch and reports how many rows were touched.
func (r *UserRepository) Update(ctx context.Context, id string, patch UserPatch) (int64, error) {
	sets := []string{}
	args := []interface{}{}

	if patch.Role != nil {
		sets = append(sets, fmt.Sprintf("role = $%d", len(args)+1))
		args = append(args, *patch.Role)
	}
	if patch.FullName != nil {
		sets = append(sets, fmt.Sprintf("full_name = $%d", len(args)+1))
		args = append(args, *patch.FullName)
	}
	if patch.SetClassroom {
		sets = append(sets, fmt.Sprintf("classroom_id = $%d", len(args)+1))
		args = append(args, patch.ClassroomID)
	}

	sets = append(sets, fmt.Sprintf("updated_at = $%d", len(args)+1))
	args = append(args, time.Now().UTC())

	query := fmt.Sprintf("UPDATE users SET %s WHERE id = $%d", strings.Join(sets, ", "), len(args)+1)
	args = append(args, id)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("update user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check updated user rows: %w", err)
	}
	return affected, nil
}
