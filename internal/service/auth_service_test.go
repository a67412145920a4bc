package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/veljkom/e-dnevnik-api/internal/models"
	appErrors "github.com/veljkom/e-dnevnik-api/pkg/errors"
)

type authRepoStub struct {
	user      *models.User
	findErr   error
	createErr error
	created   *models.User
}

func (s *authRepoStub) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	return s.user, nil
}

func (s *authRepoStub) Create(ctx context.Context, user *models.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	user.ID = "u-new"
	s.created = user
	return nil
}

func newAuthService(repo *authRepoStub) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiration: time.Hour})
}

func hashOf(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := &authRepoStub{user: &models.User{
		ID:           "u1",
		Username:     "mika",
		PasswordHash: hashOf(t, "lozinka"),
		Role:         models.RoleStudent,
	}}
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "mika", Password: "lozinka"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "u1", resp.User.ID)
	assert.Equal(t, models.RoleStudent, resp.User.Role)

	claims, err := svc.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, models.RoleStudent, claims.Role)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := &authRepoStub{user: &models.User{
		ID:           "u1",
		Username:     "mika",
		PasswordHash: hashOf(t, "lozinka"),
		Role:         models.RoleStudent,
	}}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "mika", Password: "pogresna"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestLoginUnknownUserSameMessage(t *testing.T) {
	repo := &authRepoStub{findErr: sql.ErrNoRows}
	svc := newAuthService(repo)

	_, err := svc.Login(context.Background(), LoginRequest{Username: "nema", Password: "x"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "invalid username or password", appErr.Message)
}

func TestRegisterForcesStudentRole(t *testing.T) {
	repo := &authRepoStub{}
	svc := newAuthService(repo)

	user, err := svc.Register(context.Background(), RegisterRequest{Username: "novi", Password: "lozinka"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, user.Role)
	require.NotNil(t, repo.created)
	assert.NotEqual(t, "lozinka", repo.created.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(repo.created.PasswordHash), []byte("lozinka")))
}

func TestRegisterRejectsStaffRole(t *testing.T) {
	svc := newAuthService(&authRepoStub{})

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "novi", Password: "x", Role: "ADMIN"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "registration is restricted to student accounts", appErr.Message)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := &authRepoStub{createErr: &pq.Error{Code: "23505", Constraint: "users_username_key"}}
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), RegisterRequest{Username: "mika", Password: "x"})
	appErr := appErrors.FromError(err)
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, "username is already taken", appErr.Message)
}

func TestValidateTokenRejectsForgedSignature(t *testing.T) {
	issuer := newAuthService(&authRepoStub{user: &models.User{
		ID: "u1", Username: "mika", PasswordHash: hashOf(t, "x"), Role: models.RoleStudent,
	}})
	resp, err := issuer.Login(context.Background(), LoginRequest{Username: "mika", Password: "x"})
	require.NoError(t, err)

	verifier := NewAuthService(&authRepoStub{}, nil, nil, AuthConfig{Secret: "other-secret"})
	_, err = verifier.ValidateToken(resp.Token)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
	assert.Equal(t, "invalid or expired token", appErr.Message)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	repo := &authRepoStub{user: &models.User{
		ID: "u1", Username: "mika", PasswordHash: hashOf(t, "x"), Role: models.RoleStudent,
	}}
	svc := NewAuthService(repo, nil, nil, AuthConfig{Secret: "test-secret", Expiration: -time.Minute})

	resp, err := svc.Login(context.Background(), LoginRequest{Username: "mika", Password: "x"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.Token)
	appErr := appErrors.FromError(err)
	assert.Equal(t, 401, appErr.Status)
}
