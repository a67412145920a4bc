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

type userServiceMock struct {
	rows      []models.AdminUserRow
	createRow *models.AdminUserRow
	createErr error
	updateErr error
	teachers  []models.TeacherOption
	me        *service.MeResponse
	meErr     error
	lastIP     string
	lastID     string
	lastReq    service.CreateUserRequest
	lastUpdate service.UpdateUserRequest
}

func (m *userServiceMock) List(ctx context.Context) ([]models.AdminUserRow, error) {
	return m.rows, nil
}

func (m *userServiceMock) Create(ctx context.Context, req service.CreateUserRequest) (*models.AdminUserRow, error) {
	m.lastReq = req
	return m.createRow, m.createErr
}

func (m *userServiceMock) Update(ctx context.Context, id string, req service.UpdateUserRequest) error {
	m.lastID = id
	m.lastUpdate = req
	return m.updateErr
}

func (m *userServiceMock) Teachers(ctx context.Context) ([]models.TeacherOption, error) {
	return m.teachers, nil
}

func (m *userServiceMock) Me(ctx context.Context, claims *models.JWTClaims, ip string) (*service.MeResponse, error) {
	m.lastIP = ip
	if m.meErr != nil {
		return nil, m.meErr
	}
	return m.me, nil
}

func TestUserHandlerCreate(t *testing.T) {
	name := "Jovana Jovic"
	mockSvc := &userServiceMock{createRow: &models.AdminUserRow{ID: "u1", Username: "jovana", FullName: &name, Role: models.RoleTeacher}}
	h := NewUserHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	payload := `{"username":"jovana","password":"lozinka","role":"TEACHER","full_name":"Jovana Jovic"}`
	c, w := newGradeContext(t, http.MethodPost, "/api/admin/users", payload, claims)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "jovana", mockSvc.lastReq.Username)

	var body models.AdminUserRow
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "u1", body.ID)
}

func TestUserHandlerCreateConflict(t *testing.T) {
	mockSvc := &userServiceMock{createErr: appErrors.Clone(appErrors.ErrConflict, "username is already taken")}
	h := NewUserHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	payload := `{"username":"jovana","password":"x","role":"TEACHER"}`
	c, w := newGradeContext(t, http.MethodPost, "/api/admin/users", payload, claims)

	h.Create(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "username is already taken", body["error"])
}

func TestUserHandlerUpdateUsesPathID(t *testing.T) {
	mockSvc := &userServiceMock{}
	h := NewUserHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	c, w := newGradeContext(t, http.MethodPatch, "/api/admin/users/u42", `{"full_name":"Novo Ime"}`, claims)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "u42"})

	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "u42", mockSvc.lastID)
}

func TestUserHandlerUpdateBindsExplicitNullClassroom(t *testing.T) {
	mockSvc := &userServiceMock{}
	h := NewUserHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	c, w := newGradeContext(t, http.MethodPatch, "/api/admin/users/u42", `{"classroomId":null}`, claims)
	c.Params = append(c.Params, gin.Param{Key: "id", Value: "u42"})

	h.Update(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, mockSvc.lastUpdate.ClassroomID.Set)
	assert.Nil(t, mockSvc.lastUpdate.ClassroomID.Value)
}

func TestUserHandlerMePassesDetectedIP(t *testing.T) {
	mockSvc := &userServiceMock{me: &service.MeResponse{ID: "u1", Username: "ana", Role: models.RoleStudent}}
	h := NewUserHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}
	c, w := newGradeContext(t, http.MethodGet, "/api/me", "", claims)
	c.Request.Header.Set("x-forwarded-for", "203.0.113.9, 10.0.0.1")

	h.Me(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "203.0.113.9", mockSvc.lastIP)
}

func TestUserHandlerMeWithoutClaims(t *testing.T) {
	h := NewUserHandler(&userServiceMock{})

	c, w := newGradeContext(t, http.MethodGet, "/api/me", "", nil)

	h.Me(c)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientIPFallbackChain(t *testing.T) {
	claims := &models.JWTClaims{UserID: "u1", Role: models.RoleStudent}

	c, _ := newGradeContext(t, http.MethodGet, "/api/me", "", claims)
	c.Request.Header.Set("x-real-ip", "198.51.100.4")
	assert.Equal(t, "198.51.100.4", clientIP(c))

	c, _ = newGradeContext(t, http.MethodGet, "/api/me", "", claims)
	c.Request.Header.Set("x-forwarded-host", "edge.example.com")
	assert.Equal(t, "edge.example.com", clientIP(c))

	c, _ = newGradeContext(t, http.MethodGet, "/api/me", "", claims)
	c.Request.Host = ""
	assert.Equal(t, "unknown", clientIP(c))
}
