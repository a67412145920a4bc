package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veljkom/e-dnevnik-api/internal/models"
)

// AssignmentRepository persists homework assignments.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// AssignmentFilter narrows the listing to an owner or a classroom. Zero
// values apply no filter (the admin view).
type AssignmentFilter struct {
	TeacherID   string
	ClassroomID string
}

const assignmentSelect = `
SELECT a.id, a.title, a.description, a.due_date,
       a.subject_id, s.name AS subject_name,
       a.classroom_id, c.name AS classroom_name,
       a.teacher_id, t.full_name AS teacher_name
FROM assignments a
JOIN subjects s ON s.id = a.subject_id
JOIN classrooms c ON c.id = a.classroom_id
JOIN users t ON t.id = a.teacher_id`

// List returns assignments matching the filter ordered by due date.
func (r *AssignmentRepository) List(ctx context.Context, filter AssignmentFilter) ([]models.AssignmentRow, error) {
	query := assignmentSelect
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("a.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.ClassroomID != "" {
		conditions = append(conditions, fmt.Sprintf("a.classroom_id = $%d", len(args)+1))
		args = append(args, filter.ClassroomID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += "\nWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += "\nORDER BY a.due_date ASC"

	var rows []models.AssignmentRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return rows, nil
}

// FindByID returns a bare assignment by id.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	const query = `SELECT id, title, description, due_date, subject_id, classroom_id, teacher_id, created_at FROM assignments WHERE id = $1`
	var assignment models.Assignment
	if err := r.db.GetContext(ctx, &assignment, query, id); err != nil {
		return nil, err
	}
	return &assignment, nil
}

// FindRow returns an assignment with resolved display fields.
func (r *AssignmentRepository) FindRow(ctx context.Context, id string) (*models.AssignmentRow, error) {
	query := assignmentSelect + "\nWHERE a.id = $1"
	var row models.AssignmentRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Create inserts a new assignment.
func (r *AssignmentRepository) Create(ctx context.Context, assignment *models.Assignment) error {
	if assignment.ID == "" {
		assignment.ID = uuid.NewString()
	}
	if assignment.CreatedAt.IsZero() {
		assignment.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO assignments (id, title, description, due_date, subject_id, classroom_id, teacher_id, created_at)
		VALUES (:id, :title, :description, :due_date, :subject_id, :classroom_id, :teacher_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, assignment); err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}
	return nil
}

// Delete removes an assignment by id.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	return nil
}
