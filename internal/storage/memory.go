package storage

import (
	"sync"

	"github.com/MosinFAM/comment-board/internal/models"

	"go.uber.org/zap"
)

// subscriberBuffer - сколько комментариев ждут медленного подписчика, прежде чем их начнут терять
const subscriberBuffer = 16

// MemoryStorage - хранилище в памяти
type MemoryStorage struct {
	pages         map[string][]models.Comment
	subscriptions map[string][]chan models.Comment
	mu            sync.RWMutex
	log           *zap.Logger
}

// NewMemoryStorage создает новое in-memory хранилище
func NewMemoryStorage(log *zap.Logger) *MemoryStorage {
	if log == nil {
		log = zap.NewNop()
	}
	return &MemoryStorage{
		pages:         make(map[string][]models.Comment),
		subscriptions: make(map[string][]chan models.Comment),
		log:           log,
	}
}

// GetComments возвращает комментарии страницы в порядке добавления
func (s *MemoryStorage) GetComments(pageID string) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	s.log.Debug("fetching comments", zap.String("page", pageID))
	comments, exists := s.pages[pageID]
	if !exists {
		s.log.Debug("page not found", zap.String("page", pageID))
		return nil, ErrPageNotFound
	}
	return copyComments(comments), nil
}

// EnsurePage создает пустую страницу, если её ещё нет
func (s *MemoryStorage) EnsurePage(pageID string) []models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	return copyComments(s.ensureLocked(pageID))
}

// AddComment добавляет комментарий в конец страницы, создавая её при необходимости
func (s *MemoryStorage) AddComment(pageID, user, body string) models.Comment {
	s.mu.Lock()
	defer s.mu.Unlock()

	comment := models.Comment{User: user, Body: body}
	s.pages[pageID] = append(s.ensureLocked(pageID), comment)
	s.log.Debug("comment added",
		zap.String("page", pageID),
		zap.Int("position", len(s.pages[pageID])-1),
	)

	// Уведомляем подписчиков, не блокируя запись
	for _, ch := range s.subscriptions[pageID] {
		select {
		case ch <- comment:
		default:
			s.log.Warn("subscriber is lagging, comment dropped", zap.String("page", pageID))
		}
	}
	return comment
}

// SubscribeToComments подписка на новые комментарии страницы.
// Вторым значением возвращается функция отписки, она закрывает канал.
func (s *MemoryStorage) SubscribeToComments(pageID string) (<-chan models.Comment, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.log.Debug("subscribing to comments", zap.String("page", pageID))
	ch := make(chan models.Comment, subscriberBuffer)
	s.subscriptions[pageID] = append(s.subscriptions[pageID], ch)

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			subscribers := s.subscriptions[pageID]
			for i, sub := range subscribers {
				if sub == ch {
					s.subscriptions[pageID] = append(subscribers[:i], subscribers[i+1:]...)
					break
				}
			}
			if len(s.subscriptions[pageID]) == 0 {
				delete(s.subscriptions, pageID)
			}
			close(ch)
		})
	}
	return ch, cancel
}

func (s *MemoryStorage) ensureLocked(pageID string) []models.Comment {
	comments, exists := s.pages[pageID]
	if !exists {
		s.log.Debug("creating page", zap.String("page", pageID))
		comments = []models.Comment{}
		s.pages[pageID] = comments
	}
	return comments
}

func copyComments(comments []models.Comment) []models.Comment {
	out := make([]models.Comment, len(comments))
	copy(out, comments)
	return out
}
