package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/veljkom/e-dnevnik-api/internal/models"
)

// TeachingLinkRepository persists teacher-subject-classroom links.
type TeachingLinkRepository struct {
	db *sqlx.DB
}

// NewTeachingLinkRepository constructs the repository.
func NewTeachingLinkRepository(db *sqlx.DB) *TeachingLinkRepository {
	return &TeachingLinkRepository{db: db}
}

// ListRows returns all links with resolved display labels, ordered by
// teacher, subject and classroom names.
func (r *TeachingLinkRepository) ListRows(ctx context.Context) ([]models.TeachingLinkRow, error) {
	const query = `
SELECT l.id, l.teacher_id, l.subject_id, l.classroom_id,
       COALESCE(t.full_name, t.username) AS teacher_label,
       s.name AS subject_name,
       c.name AS classroom_name
FROM teacher_subject_classrooms l
JOIN users t ON t.id = l.teacher_id
JOIN subjects s ON s.id = l.subject_id
JOIN classrooms c ON c.id = l.classroom_id
ORDER BY teacher_label ASC, s.name ASC, c.name ASC`
	var rows []models.TeachingLinkRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list teaching links: %w", err)
	}
	return rows, nil
}

// FindRow returns a single link with resolved labels.
func (r *TeachingLinkRepository) FindRow(ctx context.Context, id string) (*models.TeachingLinkRow, error) {
	const query = `
SELECT l.id, l.teacher_id, l.subject_id, l.classroom_id,
       COALESCE(t.full_name, t.username) AS teacher_label,
       s.name AS subject_name,
       c.name AS classroom_name
FROM teacher_subject_classrooms l
JOIN users t ON t.id = l.teacher_id
JOIN subjects s ON s.id = l.subject_id
JOIN classrooms c ON c.id = l.classroom_id
WHERE l.id = $1`
	var row models.TeachingLinkRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	return &row, nil
}

// Exists checks whether the exact teacher-subject-classroom triple is
// already linked.
func (r *TeachingLinkRepository) Exists(ctx context.Context, teacherID, subjectID, classroomID string) (bool, error) {
	const query = `SELECT 1 FROM teacher_subject_classrooms WHERE teacher_id = $1 AND subject_id = $2 AND classroom_id = $3 LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, teacherID, subjectID, classroomID); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check teaching link: %w", err)
	}
	return true, nil
}

// Create inserts a new link.
func (r *TeachingLinkRepository) Create(ctx context.Context, link *models.TeachingLink) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO teacher_subject_classrooms (id, teacher_id, subject_id, classroom_id, created_at)
		VALUES (:id, :teacher_id, :subject_id, :classroom_id, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, link); err != nil {
		return fmt.Errorf("create teaching link: %w", err)
	}
	return nil
}

// Delete removes a link by id.
func (r *TeachingLinkRepository) Delete(ctx context.Context, id string) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM teacher_subject_classrooms WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete teaching link: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("check deleted link rows: %w", err)
	}
	return affected, nil
}

// SubjectsForTeacher returns the distinct subjects reachable through the
// teacher's links, ordered by name.
func (r *TeachingLinkRepository) SubjectsForTeacher(ctx context.Context, teacherID string) ([]models.Subject, error) {
	const query = `
SELECT DISTINCT s.id, s.name, s.created_at
FROM subjects s
JOIN teacher_subject_classrooms l ON l.subject_id = s.id
WHERE l.teacher_id = $1
ORDER BY s.name ASC`
	var subjects []models.Subject
	if err := r.db.SelectContext(ctx, &subjects, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher subjects: %w", err)
	}
	return subjects, nil
}

// ClassroomsForTeacher returns the distinct classrooms reachable through
// the teacher's links, ordered by name. Homeroom-only classrooms without
// a teaching link do not appear.
func (r *TeachingLinkRepository) ClassroomsForTeacher(ctx context.Context, teacherID string) ([]models.Classroom, error) {
	const query = `
SELECT DISTINCT c.id, c.name, c.homeroom_teacher_id, c.created_at
FROM classrooms c
JOIN teacher_subject_classrooms l ON l.classroom_id = c.id
WHERE l.teacher_id = $1
ORDER BY c.name ASC`
	var classrooms []models.Classroom
	if err := r.db.SelectContext(ctx, &classrooms, query, teacherID); err != nil {
		return nil, fmt.Errorf("list teacher classrooms: %w", err)
	}
	return classrooms, nil
}
