package storage

import (
	"errors"

	"github.com/MosinFAM/comment-board/internal/models"
)

var (
	// ErrPageNotFound - страница ни разу не создавалась
	ErrPageNotFound = errors.New("page not found")
	// ErrStoreUnavailable - хранилище ещё не инициализировано
	ErrStoreUnavailable = errors.New("comment store is not initialized")
)

// Storage - интерфейс хранилища комментариев по страницам
type Storage interface {
	// GetComments не создаёт страницу; для неизвестной страницы возвращает ErrPageNotFound
	GetComments(pageID string) ([]models.Comment, error)
	EnsurePage(pageID string) []models.Comment
	AddComment(pageID, user, body string) models.Comment
	SubscribeToComments(pageID string) (<-chan models.Comment, func())
}
