package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type assignmentRepoStub struct {
	rows       []models.AssignmentRow
	assignment *models.Assignment
	row        *models.AssignmentRow
	findErr    error
	createErr  error
	deleteErr  error
	created    *models.Assignment
	deleted    []string
	lastFilter repository.AssignmentFilter
}

func (s *assignmentRepoStub) List(ctx context.Context, filter repository.AssignmentFilter) ([]models.AssignmentRow, error) {
	s.lastFilter = filter
	return s.rows, nil
}

func (s *assignmentRepoStub) FindByID(ctx context.Context, id string) (*models.Assignment, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.assignment, nil
}

func (s *assignmentRepoStub) FindRow(ctx context.Context, id string) (*models.AssignmentRow, error) {
	if s.row == nil {
		return nil, sql.ErrNoRows
	}
	return s.row, nil
}

func (s *assignmentRepoStub) Create(ctx context.Context, assignment *models.Assignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	assignment.ID = "a-new"
	s.created = assignment
	s.row = &models.AssignmentRow{
		ID: assignment.ID, Title: assignment.Title, DueDate: assignment.DueDate,
		SubjectID: assignment.SubjectID, ClassroomID: assignment.ClassroomID,
		TeacherID: assignment.TeacherID,
	}
	return nil
}

func (s *assignmentRepoStub) Delete(ctx context.Context, id string) error {
	s.deleted = append(s.deleted, id)
	return s.deleteErr
}

func validAssignmentRequest() CreateAssignmentRequest {
	return CreateAssignmentRequest{
		Title: "Kontrolni", DueDate: "2026-09-15", SubjectID: "s1", ClassroomID: "c1",
	}
}

func TestAssignmentListStudentWithoutClassroom(t *testing.T) {
	repo := &assignmentRepoStub{}
	users := userReaderStub{user: &models.User{ID: "u1", Role: models.RoleStudent}}
	svc := NewAssignmentService(repo, &linkCheckerStub{}, users, nil, nil)

	assignments, err := svc.List(context.Background(), studentClaims())
	require.NoError(t, err)
	assert.NotNil(t, assignments)
	assert.Empty(t, assignments)
}

func TestAssignmentListScopesStudentToClassroom(t *testing.T) {
	classroomID := "c1"
	repo := &assignmentRepoStub{}
	users := userReaderStub{user: &models.User{ID: "u1", Role: models.RoleStudent, ClassroomID: &classroomID}}
	svc := NewAssignmentService(repo, &linkCheckerStub{}, users, nil, nil)

	_, err := svc.List(context.Background(), studentClaims())
	require.NoError(t, err)
	assert.Equal(t, "c1", repo.lastFilter.ClassroomID)
}

func TestAssignmentCreateRejectsStudent(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, &linkCheckerStub{}, userReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), studentClaims(), validAssignmentRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "students are not allowed to create assignments", appErr.Message)
}

func TestAssignmentCreateParsesPlainDate(t *testing.T) {
	repo := &assignmentRepoStub{}
	svc := NewAssignmentService(repo, &linkCheckerStub{linked: true}, userReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), teacherClaims(), validAssignmentRequest())
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC), repo.created.DueDate)
	assert.Equal(t, "t1", repo.created.TeacherID)
}

func TestAssignmentCreateParsesRFC3339(t *testing.T) {
	repo := &assignmentRepoStub{}
	svc := NewAssignmentService(repo, &linkCheckerStub{linked: true}, userReaderStub{}, nil, nil)

	req := validAssignmentRequest()
	req.DueDate = "2026-09-15T08:30:00Z"
	_, err := svc.Create(context.Background(), teacherClaims(), req)
	require.NoError(t, err)
	assert.Equal(t, 8, repo.created.DueDate.Hour())
}

func TestAssignmentCreateRejectsBadDate(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, &linkCheckerStub{linked: true}, userReaderStub{}, nil, nil)

	req := validAssignmentRequest()
	req.DueDate = "15.09.2026"
	_, err := svc.Create(context.Background(), teacherClaims(), req)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "invalid due date", appErr.Message)
}

func TestAssignmentCreateTeacherOutsideLink(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, &linkCheckerStub{linked: false}, userReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), teacherClaims(), validAssignmentRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "you do not teach this subject in that classroom", appErr.Message)
}

func TestAssignmentCreateAdminRequiresTeacherID(t *testing.T) {
	svc := NewAssignmentService(&assignmentRepoStub{}, &linkCheckerStub{}, userReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), adminClaims(), validAssignmentRequest())
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "teacherId is required when an administrator creates an assignment", appErr.Message)
}

func TestAssignmentDeleteMissingBeforeOwnership(t *testing.T) {
	repo := &assignmentRepoStub{findErr: sql.ErrNoRows}
	svc := NewAssignmentService(repo, &linkCheckerStub{}, userReaderStub{}, nil, nil)

	err := svc.Delete(context.Background(), teacherClaims(), "ghost")
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "assignment not found", appErr.Message)
}

func TestAssignmentDeleteForeignTeacher(t *testing.T) {
	repo := &assignmentRepoStub{assignment: &models.Assignment{ID: "a1", TeacherID: "t2"}}
	svc := NewAssignmentService(repo, &linkCheckerStub{}, userReaderStub{}, nil, nil)

	err := svc.Delete(context.Background(), teacherClaims(), "a1")
	appErr := appErrors.FromError(err)
	assert.Equal(t, 403, appErr.Status)
	assert.Equal(t, "you cannot delete another teacher's assignment", appErr.Message)
	assert.Empty(t, repo.deleted)
}

func TestAssignmentDeleteAdminBypassesOwnership(t *testing.T) {
	repo := &assignmentRepoStub{assignment: &models.Assignment{ID: "a1", TeacherID: "t2"}}
	svc := NewAssignmentService(repo, &linkCheckerStub{}, userReaderStub{}, nil, nil)

	err := svc.Delete(context.Background(), adminClaims(), "a1")
	require.NoError(t, err)
	assert.Equal(t, []string{"a1"}, repo.deleted)
}
