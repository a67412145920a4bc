package models

import "time"

// Grade bounds; values outside [GradeMin, GradeMax] are rejected at
// creation regardless of caller role.
const (
	GradeMin = 1
	GradeMax = 5
)

// Grade is a single mark given by a teacher to a student. Grades are
// never updated or deleted.
type Grade struct {
	ID          string    `db:"id" json:"id"`
	Value       int       `db:"value" json:"value"`
	Comment     *string   `db:"comment" json:"comment"`
	Date        time.Time `db:"date" json:"date"`
	StudentID   string    `db:"student_id" json:"studentId"`
	TeacherID   string    `db:"teacher_id" json:"teacherId"`
	SubjectID   string    `db:"subject_id" json:"subjectId"`
	ClassroomID string    `db:"classroom_id" json:"classroomId"`
}

// GradeRow is the flat scan target for listing grades with display fields.
type GradeRow struct {
	ID            string    `db:"id"`
	Value         int       `db:"value"`
	Comment       *string   `db:"comment"`
	Date          time.Time `db:"date"`
	StudentID     string    `db:"student_id"`
	StudentName   *string   `db:"student_name"`
	TeacherID     string    `db:"teacher_id"`
	TeacherName   *string   `db:"teacher_name"`
	SubjectID     string    `db:"subject_id"`
	SubjectName   string    `db:"subject_name"`
	ClassroomID   string    `db:"classroom_id"`
	ClassroomName string    `db:"classroom_name"`
}

// GradeDetail is the wire shape with nested references.
type GradeDetail struct {
	ID        string    `json:"id"`
	Value     int       `json:"value"`
	Comment   *string   `json:"comment"`
	Date      time.Time `json:"date"`
	Student   UserRef   `json:"student"`
	Teacher   UserRef   `json:"teacher"`
	Subject   NamedRef  `json:"subject"`
	Classroom NamedRef  `json:"classroom"`
}

// Detail converts a scanned row into the nested wire shape.
func (r GradeRow) Detail() GradeDetail {
	return GradeDetail{
		ID:        r.ID,
		Value:     r.Value,
		Comment:   r.Comment,
		Date:      r.Date,
		Student:   UserRef{ID: r.StudentID, FullName: r.StudentName},
		Teacher:   UserRef{ID: r.TeacherID, FullName: r.TeacherName},
		Subject:   NamedRef{ID: r.SubjectID, Name: r.SubjectName},
		Classroom: NamedRef{ID: r.ClassroomID, Name: r.ClassroomName},
	}
}

// SubjectGrades groups a student's grade values under one subject name.
type SubjectGrades struct {
	Subject string `json:"subject"`
	Grades  []int  `json:"grades"`
}

// StudentGradeRow backs the student self-view and report export.
type StudentGradeRow struct {
	Value       int       `db:"value"`
	Comment     *string   `db:"comment"`
	Date        time.Time `db:"date"`
	SubjectName string    `db:"subject_name"`
	TeacherName *string   `db:"teacher_name"`
}
