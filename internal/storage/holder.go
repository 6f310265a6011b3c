package storage

import "sync"

// Holder владеет единственным на процесс хранилищем и создаёт его лениво.
// Чтение через Get не инициализирует хранилище, запись через GetOrInit - инициализирует.
type Holder struct {
	mu      sync.Mutex
	store   Storage
	factory func() Storage
}

// NewHolder создаёт пустой Holder; factory вызывается один раз при первой записи
func NewHolder(factory func() Storage) *Holder {
	return &Holder{factory: factory}
}

// Get возвращает хранилище или ErrStoreUnavailable, если его ещё никто не создал
func (h *Holder) Get() (Storage, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		return nil, ErrStoreUnavailable
	}
	return h.store, nil
}

// GetOrInit возвращает хранилище, создавая его при первом вызове
func (h *Holder) GetOrInit() Storage {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.store == nil {
		h.store = h.factory()
	}
	return h.store
}
