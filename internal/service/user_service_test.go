package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/repository"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type userRepoStub struct {
	user      *models.User
	rows      []models.AdminUserRow
	teachers  []models.User
	findErr   error
	createErr error
	updateErr error
	affected  int64
	created   *models.User
	lastPatch repository.UserPatch
}

func (s *userRepoStub) FindByID(ctx context.Context, id string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.user, nil
}

func (s *userRepoStub) ListAdminRows(ctx context.Context) ([]models.AdminUserRow, error) {
	return s.rows, nil
}

func (s *userRepoStub) ListTeachers(ctx context.Context) ([]models.User, error) {
	return s.teachers, nil
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = "u-new"
	s.created = user
	return nil
}

func (s *userRepoStub) Update(ctx context.Context, id string, patch repository.UserPatch) (int64, error) {
	s.lastPatch = patch
	return s.affected, s.updateErr
}

type classroomReaderStub struct {
	classroom *models.Classroom
	err       error
}

func (s classroomReaderStub) FindByID(ctx context.Context, id string) (*models.Classroom, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.classroom, nil
}

func TestUserListFallsBackToUsername(t *testing.T) {
	name := "Ana Anic"
	repo := &userRepoStub{rows: []models.AdminUserRow{
		{ID: "u1", Username: "ana", FullName: &name},
		{ID: "u2", Username: "boris"},
	}}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	rows, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Ana Anic", *rows[0].FullName)
	assert.Equal(t, "boris", *rows[1].FullName)
}

func TestUserCreateHashesPassword(t *testing.T) {
	repo := &userRepoStub{}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	row, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "jovana", Password: "lozinka", Role: "TEACHER",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleTeacher, row.Role)
	require.NotNil(t, repo.created)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("lozinka")))
}

func TestUserCreateRejectsUnknownRole(t *testing.T) {
	svc := NewUserService(&userRepoStub{}, classroomReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "x", Password: "y", Role: "PRINCIPAL",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "invalid role", appErr.Message)
}

func TestUserCreateDuplicateUsername(t *testing.T) {
	repo := &userRepoStub{createErr: &pq.Error{Code: "23505", Constraint: "users_username_key"}}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "mika", Password: "x", Role: "STUDENT",
	})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "username is already taken", appErr.Message)
}

func TestUserUpdateEmptyPatch(t *testing.T) {
	svc := NewUserService(&userRepoStub{}, classroomReaderStub{}, nil, nil)

	err := svc.Update(context.Background(), "u1", UpdateUserRequest{})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "no changes supplied for user", appErr.Message)
}

func TestUserUpdateMissingUser(t *testing.T) {
	repo := &userRepoStub{affected: 0}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	role := "TEACHER"
	err := svc.Update(context.Background(), "ghost", UpdateUserRequest{Role: &role})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
	assert.Equal(t, "user not found", appErr.Message)
}

func TestUserUpdateClearsClassroomWithExplicitNull(t *testing.T) {
	repo := &userRepoStub{affected: 1}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"classroomId":null}`), &req))
	require.True(t, req.ClassroomID.Set)
	require.Nil(t, req.ClassroomID.Value)

	err := svc.Update(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.True(t, repo.lastPatch.SetClassroom)
	assert.Nil(t, repo.lastPatch.ClassroomID)
}

func TestUserUpdateAbsentClassroomStaysUntouched(t *testing.T) {
	repo := &userRepoStub{affected: 1}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"role":"TEACHER"}`), &req))
	require.False(t, req.ClassroomID.Set)

	err := svc.Update(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.False(t, repo.lastPatch.SetClassroom)
	require.NotNil(t, repo.lastPatch.Role)
	assert.Equal(t, models.RoleTeacher, *repo.lastPatch.Role)
}

func TestUserUpdateAssignsClassroomFromPayload(t *testing.T) {
	repo := &userRepoStub{affected: 1}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	var req UpdateUserRequest
	require.NoError(t, json.Unmarshal([]byte(`{"classroomId":"c9"}`), &req))

	err := svc.Update(context.Background(), "u1", req)
	require.NoError(t, err)
	assert.True(t, repo.lastPatch.SetClassroom)
	require.NotNil(t, repo.lastPatch.ClassroomID)
	assert.Equal(t, "c9", *repo.lastPatch.ClassroomID)
}

func TestTeachersPicklistLabels(t *testing.T) {
	name := "Jovana Jovic"
	empty := ""
	repo := &userRepoStub{teachers: []models.User{
		{ID: "t1", Username: "jovana", FullName: &name, Role: models.RoleTeacher},
		{ID: "t2", Username: "marko", FullName: &empty, Role: models.RoleTeacher},
		{ID: "t3", Username: "vlada", Role: models.RoleTeacher},
	}}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	options, err := svc.Teachers(context.Background())
	require.NoError(t, err)
	require.Len(t, options, 3)
	assert.Equal(t, "Jovana Jovic", options[0].Label)
	assert.Equal(t, "marko", options[1].Label)
	assert.Equal(t, "vlada", options[2].Label)
}

func TestMeIncludesClassroomAndIP(t *testing.T) {
	classroomID := "c1"
	repo := &userRepoStub{user: &models.User{
		ID: "u1", Username: "ana", Role: models.RoleStudent, ClassroomID: &classroomID,
	}}
	classrooms := classroomReaderStub{classroom: &models.Classroom{ID: "c1", Name: "V-1"}}
	svc := NewUserService(repo, classrooms, nil, nil)

	me, err := svc.Me(context.Background(), &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}, "10.0.0.7")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.7", me.IP)
	require.NotNil(t, me.Classroom)
	assert.Equal(t, "V-1", me.Classroom.Name)
}

func TestMeMissingUser(t *testing.T) {
	repo := &userRepoStub{findErr: sql.ErrNoRows}
	svc := NewUserService(repo, classroomReaderStub{}, nil, nil)

	_, err := svc.Me(context.Background(), &models.JWTClaims{UserID: "ghost"}, "unknown")
	appErr := appErrors.FromError(err)
	assert.Equal(t, 404, appErr.Status)
}
