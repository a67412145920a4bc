package models

import "time"

// Classroom represents a homeroom class. At most one classroom may point
// at a given homeroom teacher; the store enforces this with a unique
// constraint on homeroom_teacher_id.
type Classroom struct {
	ID                string    `db:"id" json:"id"`
	Name              string    `db:"name" json:"name"`
	HomeroomTeacherID *string   `db:"homeroom_teacher_id" json:"homeroomTeacherId"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
}

// ClassroomAdminRow is the admin listing row with the resolved homeroom
// teacher name and the computed student count.
type ClassroomAdminRow struct {
	ID                string  `db:"id" json:"id"`
	Name              string  `db:"name" json:"name"`
	HomeroomTeacher   *string `db:"homeroom_teacher" json:"homeroomTeacher"`
	HomeroomTeacherID *string `db:"homeroom_teacher_id" json:"homeroomTeacherId"`
	StudentsCount     int     `db:"students_count" json:"studentsCount"`
}

// ClassroomMember is a roster entry (student or homeroom teacher).
type ClassroomMember struct {
	ID       string  `db:"id" json:"id"`
	FullName *string `db:"full_name" json:"full_name"`
	Username string  `db:"username" json:"username"`
}

// ClassroomDetail is a classroom with its homeroom teacher and full
// student roster, served to students and the teacher grading context.
type ClassroomDetail struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	HomeroomTeacher *ClassroomMember  `json:"homeroomTeacher"`
	Students        []ClassroomMember `json:"students"`
}

// NamedRef is a nested id+name reference for subjects and classrooms.
type NamedRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
