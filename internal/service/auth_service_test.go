package service_test

import (
	"testing"

	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"
	"campus-clinic-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService() (*service.AuthService, *repository.Repos) {
	repos := repository.NewMemoryRepos()
	return service.NewAuthService(repos.Users, repos.SignIns), repos
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := newAuthService()

	user, err := svc.Register("s1@klh.edu.in", "secret123", model.RoleStudent, "S One")
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", user.PasswordHash)

	got, err := svc.Login(service.LoginAttempt{Email: "s1@klh.edu.in", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, model.RoleStudent, got.Role)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _ := newAuthService()

	_, err := svc.Register("s1@klh.edu.in", "secret123", model.RoleStudent, "")
	require.NoError(t, err)
	_, err = svc.Register("s1@klh.edu.in", "other", model.RoleFaculty, "")
	assert.ErrorIs(t, err, service.ErrConflict)
}

func TestLoginFailuresAreLogged(t *testing.T) {
	svc, repos := newAuthService()
	_, err := svc.Register("s1@klh.edu.in", "secret123", model.RoleStudent, "")
	require.NoError(t, err)

	tests := []struct {
		name    string
		attempt service.LoginAttempt
		wantErr error
	}{
		{"missing password", service.LoginAttempt{Email: "s1@klh.edu.in"}, service.ErrValidation},
		{"unknown email", service.LoginAttempt{Email: "nobody@klh.edu.in", Password: "x"}, service.ErrBadCredentials},
		{"wrong password", service.LoginAttempt{Email: "s1@klh.edu.in", Password: "nope"}, service.ErrBadCredentials},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(tt.attempt)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	logs, err := repos.SignIns.Recent(10)
	require.NoError(t, err)
	assert.Len(t, logs, 3)
	for _, l := range logs {
		assert.False(t, l.Success)
	}
}

func TestLoginSuccessLogsRoleTried(t *testing.T) {
	svc, repos := newAuthService()
	_, err := svc.Register("hod@klh.edu.in", "hod123", model.RoleHOD, "")
	require.NoError(t, err)

	_, err = svc.Login(service.LoginAttempt{Email: "hod@klh.edu.in", Password: "hod123"})
	require.NoError(t, err)

	logs, err := repos.SignIns.Recent(1)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.True(t, logs[0].Success)
	// role fills in from the user record when the client sent none
	assert.Equal(t, model.RoleHOD, logs[0].RoleTried)
}

func TestRollNames(t *testing.T) {
	svc, _ := newAuthService()
	_, err := svc.Register("2410030001@klh.edu.in", "pw", model.RoleStudent, "Asha")
	require.NoError(t, err)
	_, err = svc.Register("faculty@klh.edu.in", "pw", model.RoleFaculty, "Prof")
	require.NoError(t, err)

	names, err := svc.RollNames()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"2410030001": "Asha"}, names)
}
