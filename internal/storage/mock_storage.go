package storage

import (
	"github.com/MosinFAM/comment-board/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) GetComments(pageID string) ([]models.Comment, error) {
	args := m.Called(pageID)
	comments, _ := args.Get(0).([]models.Comment)
	return comments, args.Error(1)
}

func (m *MockStorage) EnsurePage(pageID string) []models.Comment {
	args := m.Called(pageID)
	return args.Get(0).([]models.Comment)
}

func (m *MockStorage) AddComment(pageID, user, body string) models.Comment {
	args := m.Called(pageID, user, body)
	return args.Get(0).(models.Comment)
}

func (m *MockStorage) SubscribeToComments(pageID string) (<-chan models.Comment, func()) {
	args := m.Called(pageID)
	return args.Get(0).(chan models.Comment), args.Get(1).(func())
}
