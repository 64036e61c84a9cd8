package service

import (
	"context"
	"sync"
	"time"

	"github.com/arturoeanton/health-planner/internal/domain"
	"github.com/arturoeanton/health-planner/internal/port"
)

type memUsers struct {
	mu    sync.Mutex
	users []*domain.User
	err   error
}

func (m *memUsers) CreateUser(_ context.Context, u *domain.User) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	saved := *u
	saved.ID = "u-" + u.Username
	saved.CreatedAt = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	m.users = append(m.users, &saved)
	return &saved, nil
}

func (m *memUsers) find(match func(*domain.User) bool) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, u := range m.users {
		if match(u) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, port.ErrUserNotFound
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Username == username })
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*domain.User, error) {
	return m.find(func(u *domain.User) bool { return u.Email == email })
}

func (m *memUsers) remove(username string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, u := range m.users {
		if u.Username == username {
			m.users = append(m.users[:i], m.users[i+1:]...)
			return
		}
	}
}

type memProfiles struct {
	mu       sync.Mutex
	profiles map[string]*domain.HealthProfile
}

func newMemProfiles() *memProfiles {
	return &memProfiles{profiles: map[string]*domain.HealthProfile{}}
}

func (m *memProfiles) GetProfile(_ context.Context, userID string) (*domain.HealthProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[userID]
	if !ok {
		return nil, port.ErrProfileNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memProfiles) UpsertProfile(_ context.Context, p *domain.HealthProfile) (*domain.HealthProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := *p
	saved.UpdatedAt = time.Now()
	if old, ok := m.profiles[p.UserID]; ok {
		saved.ID = old.ID
		saved.CreatedAt = old.CreatedAt
	} else {
		saved.ID = "p-" + p.UserID
		saved.CreatedAt = saved.UpdatedAt
	}
	m.profiles[p.UserID] = &saved
	cp := saved
	return &cp, nil
}

type recordingNotifier struct {
	userID, message string
}

func (r *recordingNotifier) Notify(_ context.Context, userID, message string) (*domain.Notification, error) {
	r.userID, r.message = userID, message
	return &domain.Notification{UserID: userID, Message: message, Status: domain.NotificationSentStub}, nil
}

type stubOrchestrator struct {
	goal    string
	profile *domain.HealthProfile
	result  *domain.PlanResult
	err     error
}

func (s *stubOrchestrator) Plan(_ context.Context, profile *domain.HealthProfile, goal string) (*domain.PlanResult, error) {
	s.goal, s.profile = goal, profile
	return s.result, s.err
}
