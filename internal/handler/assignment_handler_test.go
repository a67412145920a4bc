package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	"github.com/veljkom/e-dnevnik-api/internal/service"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type assignmentServiceMock struct {
	listResp   []models.AssignmentDetail
	listErr    error
	createResp *models.AssignmentDetail
	createErr  error
	deleteErr  error
	lastID     string
	lastReq    service.CreateAssignmentRequest
}

func (m *assignmentServiceMock) List(ctx context.Context, claims *models.JWTClaims) ([]models.AssignmentDetail, error) {
	return m.listResp, m.listErr
}

func (m *assignmentServiceMock) Create(ctx context.Context, claims *models.JWTClaims, req service.CreateAssignmentRequest) (*models.AssignmentDetail, error) {
	m.lastReq = req
	return m.createResp, m.createErr
}

func (m *assignmentServiceMock) Delete(ctx context.Context, claims *models.JWTClaims, id string) error {
	m.lastID = id
	return m.deleteErr
}

func TestAssignmentHandlerCreate(t *testing.T) {
	mockSvc := &assignmentServiceMock{createResp: &models.AssignmentDetail{ID: "a1", Title: "Kontrolni"}}
	h := NewAssignmentHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "t1", Role: models.RoleTeacher}
	payload := `{"title":"Kontrolni","dueDate":"2026-09-15","subjectId":"s1","classroomId":"c1"}`
	c, w := newGradeContext(t, http.MethodPost, "/api/assignments", payload, claims)

	h.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "Kontrolni", mockSvc.lastReq.Title)
	assert.Equal(t, "2026-09-15", mockSvc.lastReq.DueDate)
}

func TestAssignmentHandlerDeleteRequiresQueryID(t *testing.T) {
	h := NewAssignmentHandler(&assignmentServiceMock{})

	claims := &models.JWTClaims{UserID: "t1", Role: models.RoleTeacher}
	c, w := newGradeContext(t, http.MethodDelete, "/api/assignments", "", claims)

	h.Delete(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "id query parameter is required", body["error"])
}

func TestAssignmentHandlerDeletePassesQueryID(t *testing.T) {
	mockSvc := &assignmentServiceMock{}
	h := NewAssignmentHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "t1", Role: models.RoleTeacher}
	c, w := newGradeContext(t, http.MethodDelete, "/api/assignments?id=a42", "", claims)

	h.Delete(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "a42", mockSvc.lastID)
}

func TestAssignmentHandlerDeleteNotFound(t *testing.T) {
	mockSvc := &assignmentServiceMock{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "assignment not found")}
	h := NewAssignmentHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "t1", Role: models.RoleTeacher}
	c, w := newGradeContext(t, http.MethodDelete, "/api/assignments?id=ghost", "", claims)

	h.Delete(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignmentHandlerListServiceError(t *testing.T) {
	mockSvc := &assignmentServiceMock{listErr: appErrors.ErrInternal}
	h := NewAssignmentHandler(mockSvc)

	claims := &models.JWTClaims{UserID: "a1", Role: models.RoleAdmin}
	c, w := newGradeContext(t, http.MethodGet, "/api/assignments", "", claims)

	h.List(c)
	require.Equal(t, http.StatusInternalServerError, w.Code)
}
