package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veljkom/e-dnevnik-api/internal/models"
)

// GradeRepository persists grades. Grades are append-only; there is no
// update or delete path.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository constructs the repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

// GradeFilter narrows the listing to a grading teacher or a student.
// Zero values apply no filter (the admin view).
type GradeFilter struct {
	TeacherID string
	StudentID string
}

const gradeSelect = `
SELECT g.id, g.value, g.comment, g.date,
       g.student_id, st.full_name AS student_name,
       g.teacher_id, t.full_name AS teacher_name,
       g.subject_id, s.name AS subject_name,
       g.classroom_id, c.name AS classroom_name
FROM grades g
JOIN users st ON st.id = g.student_id
JOIN users t ON t.id = g.teacher_id
JOIN subjects s ON s.id = g.subject_id
JOIN classrooms c ON c.id = g.classroom_id`

// List returns grades matching the filter ordered by date, newest first.
func (r *GradeRepository) List(ctx context.Context, filter GradeFilter) ([]models.GradeRow, error) {
	query := gradeSelect
	var conditions []string
	var args []interface{}

	if filter.TeacherID != "" {
		conditions = append(conditions, fmt.Sprintf("g.teacher_id = $%d", len(args)+1))
		args = append(args, filter.TeacherID)
	}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("g.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += "\nWHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += "\nORDER BY g.date DESC"

	var rows []models.GradeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return rows, nil
}

// ListForStudent returns a student's own grades with subject and teacher
// display names, newest first.
func (r *GradeRepository) ListForStudent(ctx context.Context, studentID string) ([]models.StudentGradeRow, error) {
	const query = `
SELECT g.value, g.comment, g.date, s.name AS subject_name, t.full_name AS teacher_name
FROM grades g
JOIN subjects s ON s.id = g.subject_id
JOIN users t ON t.id = g.teacher_id
WHERE g.student_id = $1
ORDER BY g.date DESC`
	var rows []models.StudentGradeRow
	if err := r.db.SelectContext(ctx, &rows, query, studentID); err != nil {
		return nil, fmt.Errorf("list student grades: %w", err)
	}
	return rows, nil
}

// Create inserts a new grade.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	if grade.ID == "" {
		grade.ID = uuid.NewString()
	}
	if grade.Date.IsZero() {
		grade.Date = time.Now().UTC()
	}
	const query = `INSERT INTO grades (id, value, comment, date, student_id, teacher_id, subject_id, classroom_id)
		VALUES (:id, :value, :comment, :date, :student_id, :teacher_id, :subject_id, :classroom_id)`
	if _, err := r.db.NamedExecContext(ctx, query, grade); err != nil {
		return fmt.Errorf("create grade: %w", err)
	}
	return nil
}
