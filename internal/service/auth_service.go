package service

import (
	"errors"
	"fmt"
	"strings"

	"campus-clinic-backend/internal/metrics"
	"campus-clinic-backend/internal/model"
	"campus-clinic-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthService verifies credentials against the user store. It never issues
// tokens; every request is authenticated by sending credentials.
type AuthService struct {
	users   repository.UserRepository
	signIns repository.SignInLogRepository
}

func NewAuthService(users repository.UserRepository, signIns repository.SignInLogRepository) *AuthService {
	return &AuthService{users: users, signIns: signIns}
}

func (s *AuthService) Register(email, password, role, name string) (*model.User, error) {
	if email == "" || password == "" || role == "" {
		return nil, fmt.Errorf("%w: email, password, role are required", ErrValidation)
	}
	if _, err := s.users.GetByEmail(email); err == nil {
		return nil, fmt.Errorf("%w: user already exists", ErrConflict)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := &model.User{Email: email, PasswordHash: string(hash), Role: role, Name: name}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}

// LoginAttempt carries request metadata for the sign-in audit log.
type LoginAttempt struct {
	Email     string
	Password  string
	RoleTried string
	IP        string
	UserAgent string
}

// Login verifies the credentials and records the attempt in the sign-in log
// regardless of outcome.
func (s *AuthService) Login(a LoginAttempt) (*model.User, error) {
	if a.Email == "" || a.Password == "" {
		s.logAttempt(a, "", false)
		return nil, fmt.Errorf("%w: email and password are required", ErrValidation)
	}
	user, err := s.users.GetByEmail(a.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.logAttempt(a, "", false)
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	ok := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(a.Password)) == nil
	s.logAttempt(a, user.Role, ok)
	if !ok {
		return nil, ErrBadCredentials
	}
	return user, nil
}

func (s *AuthService) logAttempt(a LoginAttempt, userRole string, success bool) {
	roleTried := a.RoleTried
	if roleTried == "" {
		roleTried = userRole
	}
	_ = s.signIns.Create(&model.SignInLog{
		Email:     a.Email,
		RoleTried: roleTried,
		Success:   success,
		IP:        a.IP,
		UserAgent: a.UserAgent,
	})
	metrics.SignInAttempts.WithLabelValues(fmt.Sprintf("%t", success)).Inc()
}

func (s *AuthService) RecentSignIns(limit int) ([]model.SignInLog, error) {
	return s.signIns.Recent(limit)
}

func (s *AuthService) Users() ([]model.User, error) {
	return s.users.List()
}

// RollNames maps roll number (email localpart) to student name for the
// compact /api/rolls/names endpoint.
func (s *AuthService) RollNames() (map[string]string, error) {
	students, err := s.users.ListByRole(model.RoleStudent)
	if err != nil {
		return nil, err
	}
	names := map[string]string{}
	for _, u := range students {
		roll := strings.SplitN(u.Email, "@", 2)[0]
		if roll != "" {
			names[roll] = u.Name
		}
	}
	return names, nil
}
