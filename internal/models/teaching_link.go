package models

import "time"

// TeachingLink is a teacher-subject-classroom assignment. The triple is
// unique and is the sole source of truth for which teacher teaches which
// subject in which classroom.
type TeachingLink struct {
	ID          string    `db:"id" json:"id"`
	TeacherID   string    `db:"teacher_id" json:"teacherId"`
	SubjectID   string    `db:"subject_id" json:"subjectId"`
	ClassroomID string    `db:"classroom_id" json:"classroomId"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// TeachingLinkRow is the admin listing row with resolved display labels.
type TeachingLinkRow struct {
	ID            string `db:"id" json:"id"`
	TeacherID     string `db:"teacher_id" json:"teacherId"`
	SubjectID     string `db:"subject_id" json:"subjectId"`
	ClassroomID   string `db:"classroom_id" json:"classroomId"`
	TeacherLabel  string `db:"teacher_label" json:"teacherLabel"`
	SubjectName   string `db:"subject_name" json:"subjectName"`
	ClassroomName string `db:"classroom_name" json:"classroomName"`
}
