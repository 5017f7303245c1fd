package enrichment_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"sauti/backend/internal/ai"
	"sauti/backend/internal/models"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) SaveComplaint(complaint *models.Complaint) error {
	args := m.Called(complaint)
	return args.Error(0)
}

func (m *MockStorage) GetComplaintByID(id string) (*models.Complaint, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Complaint), args.Error(1)
}

func (m *MockStorage) ListUnprocessedComplaints(limit int) ([]models.Complaint, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) ListComplaints(limit int) ([]models.Complaint, error) {
	args := m.Called(limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Complaint), args.Error(1)
}

func (m *MockStorage) VerifyComplaint(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) SaveUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockStorage) GetUserByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) AddAccountabilityPoints(userID string, points int) error {
	args := m.Called(userID, points)
	return args.Error(0)
}

func (m *MockStorage) DashboardStats() (*models.DashboardStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockStorage) CachedDashboardStats() (*models.DashboardStats, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.DashboardStats), args.Error(1)
}

func (m *MockStorage) PublishComplaintEvent(event models.ComplaintEvent) error {
	args := m.Called(event)
	return args.Error(0)
}

type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) Transcribe(ctx context.Context, audioPath, language string) (string, error) {
	args := m.Called(ctx, audioPath, language)
	return args.String(0), args.Error(1)
}

func (m *MockAIClient) Analyze(ctx context.Context, text string) (*ai.Analysis, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ai.Analysis), args.Error(1)
}

type MockAlerter struct {
	mock.Mock
}

func (m *MockAlerter) AlertCritical(complaint *models.Complaint) {
	m.Called(complaint)
}
