package models

import "time"

// Assignment is a homework task owned by a teacher.
type Assignment struct {
	ID          string    `db:"id" json:"id"`
	Title       string    `db:"title" json:"title"`
	Description *string   `db:"description" json:"description"`
	DueDate     time.Time `db:"due_date" json:"dueDate"`
	SubjectID   string    `db:"subject_id" json:"subjectId"`
	ClassroomID string    `db:"classroom_id" json:"classroomId"`
	TeacherID   string    `db:"teacher_id" json:"teacherId"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// AssignmentRow is the flat scan target joining subject, classroom and
// teacher display fields.
type AssignmentRow struct {
	ID            string    `db:"id"`
	Title         string    `db:"title"`
	Description   *string   `db:"description"`
	DueDate       time.Time `db:"due_date"`
	SubjectID     string    `db:"subject_id"`
	SubjectName   string    `db:"subject_name"`
	ClassroomID   string    `db:"classroom_id"`
	ClassroomName string    `db:"classroom_name"`
	TeacherID     string    `db:"teacher_id"`
	TeacherName   *string   `db:"teacher_name"`
}

// AssignmentDetail is the wire shape with nested references.
type AssignmentDetail struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     time.Time `json:"dueDate"`
	Subject     NamedRef  `json:"subject"`
	Classroom   NamedRef  `json:"classroom"`
	Teacher     UserRef   `json:"teacher"`
}

// Detail converts a scanned row into the nested wire shape.
func (r AssignmentRow) Detail() AssignmentDetail {
	return AssignmentDetail{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		DueDate:     r.DueDate,
		Subject:     NamedRef{ID: r.SubjectID, Name: r.SubjectName},
		Classroom:   NamedRef{ID: r.ClassroomID, Name: r.ClassroomName},
		Teacher:     UserRef{ID: r.TeacherID, FullName: r.TeacherName},
	}
}
