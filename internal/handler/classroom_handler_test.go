package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/service"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type classroomServiceMock struct {
	rows       []models.ClassroomAdminRow
	createResp *models.Classroom
	createErr  error
	setErr     error
	myResp     *models.ClassroomDetail
	myErr      error
	lastID     string
	lastSet    service.SetHomeroomRequest
}

func (m *classroomServiceMock) List(ctx context.Context) ([]models.ClassroomAdminRow, error) {
	return m.rows, nil
}

func (m *classroomServiceMock) Create(ctx context.Context, req service.CreateClassroomRequest) (*models.Classroom, error) {
	return m.createResp, m.createErr
}

func (m *classroomServiceMock) SetHomeroom(ctx context.Context, classroomID string, req service.SetHomeroomRequest) error {
	m.lastID = classroomID
	m.lastSet = req
	return m.setErr
}

func (m *classroomServiceMock) MyClassroom(ctx context.Context, claims *models.JWTClaims) (*models.ClassroomDetail, error) {
	if m.myErr != nil {
		return nil, m.myErr
	}
	return m.myResp, nil
}

func TestClassroomHandlerSetHomeroom(t *testing.T) {
	mockSvc := &classroomServiceMock{}
	h := NewClassroomHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	c, w := newGradeContext(t, http.MethodPatch, "/api/admin/classrooms/c7", `{"homeroomTeacherId":"t1"}`, claims)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "c7"})

	h.SetHomeroom(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "c7", mockSvc.lastID)
	require.NotNil(t, mockSvc.lastSet.HomeroomTeacherID)
	assert.Equal(t, "t1", *mockSvc.lastSet.HomeroomTeacherID)
}

func TestClassroomHandlerSetHomeroomNullClears(t *testing.T) {
	mockSvc := &classroomServiceMock{}
	h := NewClassroomHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	c, w := newGradeContext(t, http.MethodPatch, "/api/admin/classrooms/c7", `{"homeroomTeacherId":null}`, claims)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "c7"})

	h.SetHomeroom(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, mockSvc.lastSet.HomeroomTeacherID)
}

func TestClassroomHandlerSetHomeroomConflict(t *testing.T) {
	mockSvc := &classroomServiceMock{setErr: appErrors.Clone(appErrors.ErrConflict, "a teacher can be the homeroom teacher of only one classroom")}
	h := NewClassroomHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	c, w := newGradeContext(t, http.MethodPatch, "/api/admin/classrooms/c7", `{"homeroomTeacherId":"t1"}`, claims)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "c7"})

	h.SetHomeroom(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "a teacher can be the homeroom teacher of only one classroom", body["error"])
}

func TestClassroomHandlerMyClassroom(t *testing.T) {
	mockSvc := &classroomServiceMock{myResp: &models.ClassroomDetail{
		ID: "c1", Name: "V-1", Students: []models.ClassroomMember{},
	}}
	h := NewClassroomHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}
	c, w := newGradeContext(t, http.MethodGet, "/api/classrooms/me", "", claims)

	h.MyClassroom(c)
	require.Equal(t, http.StatusOK, w.Code)

	var body models.ClassroomDetail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "V-1", body.Name)
	assert.NotNil(t, body.Students)
}

func TestClassroomHandlerMyClassroomUnassigned(t *testing.T) {
	mockSvc := &classroomServiceMock{myErr: appErrors.Clone(appErrors.ErrNotFound, "student is not assigned to any classroom")}
	h := NewClassroomHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}
	c, w := newGradeContext(t, http.MethodGet, "/api/classrooms/me", "", claims)

	h.MyClassroom(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}
