package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veljkom/e-dnevnik-api/internal/models"
)

// ClassroomRepository handles persistence for classrooms.
type ClassroomRepository struct {
	db *sqlx.DB
}

// NewClassroomRepository creates a new repository instance.
func NewClassroomRepository(db *sqlx.DB) *ClassroomRepository {
	return &ClassroomRepository{db: db}
}

// ListAdminRows returns all classrooms with the resolved homeroom teacher
// name and a computed count of enrolled students.
func (r *ClassroomRepository) ListAdminRows(ctx context.Context) ([]models.ClassroomAdminRow, error) {
	const query = `
SELECT c.id, c.name, c.homeroom_teacher_id,
       t.full_name AS homeroom_teacher,
       COUNT(s.id) AS students_count
FROM classrooms c
LEFT JOIN users t ON t.id = c.homeroom_teacher_id
LEFT JOIN users s ON s.classroom_id = c.id AND s.role = 'STUDENT'
GROUP BY c.id, c.name, c.homeroom_teacher_id, t.full_name
ORDER BY c.name ASC`
	var rows []models.ClassroomAdminRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list classrooms: %w", err)
	}
	return rows, nil
}

// FindByID returns a classroom by id.
func (r *ClassroomRepository) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	const query = `SELECT id, name, homeroom_teacher_id, created_at FROM classrooms WHERE id = $1`
	var classroom models.Classroom
	if err := r.db.GetContext(ctx, &classroom, query, id); err != nil {
		return nil, err
	}
	return &classroom, nil
}

// Create persists a new classroom. A duplicate name surfaces as a unique
// violation from the store.
func (r *ClassroomRepository) Create(ctx context.Context, classroom *models.Classroom) error {
	if classroom.ID == "" {
		classroom.ID = uuid.NewString()
	}
	if classroom.CreatedAt.IsZero() {
		classroom.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO classrooms (id, name, homeroom_teacher_id, created_at)
		VALUES (:id, :name, :homeroom_teacher_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, classroom); err != nil {
		return fmt.Errorf("create classroom: %w", err)
	}
	return nil
}

// SetHomeroomTeacher updates the homeroom assignment. The one-classroom-
// per-teacher invariant is enforced atomically by the unique constraint;
// a violation propagates to the caller untranslated.
func (r *ClassroomRepository) SetHomeroomTeacher(ctx context.Context, classroomID string, teacherID *string) (int64, error) {
	const query = `UPDATE classrooms SET homeroom_teacher_id = $1 WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, teacherID, classroomID)
	if err != nil {
		return 0, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check updated classroom rows: %w", err)
	}
	return affected, nil
}

// HomeroomTeacher returns the homeroom teacher of a classroom, or nil
// when none is assigned.
func (r *ClassroomRepository) HomeroomTeacher(ctx context.Context, classroomID string) (*models.ClassroomMember, error) {
	const query = `
SELECT t.id, t.full_name, t.username
FROM classrooms c
JOIN users t ON t.id = c.homeroom_teacher_id
WHERE c.id = $1`
	var member models.ClassroomMember
	err := r.db.GetContext(ctx, &member, query, classroomID)
	if err != nil {
		return nil, err
	}
	return &member, nil
}

// Roster returns the students of a classroom ordered by name.
func (r *ClassroomRepository) Roster(ctx context.Context, classroomID string) ([]models.ClassroomMember, error) {
	const query = `
SELECT id, full_name, username
FROM users
WHERE classroom_id = $1 AND role = 'STUDENT'
ORDER BY full_name ASC NULLS LAST, username ASC`
	var members []models.ClassroomMember
	if err := r.db.SelectContext(ctx, &members, query, classroomID); err != nil {
		return nil, fmt.Errorf("list classroom roster: %w", err)
	}
	return members, nil
}
