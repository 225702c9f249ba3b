package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// lineRepositoryInMemory хранит наборы позиций по коду заказа.
type lineRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string][]domain.OrderLine
}

// NewLineRepository возвращает пустую in-memory коллекцию позиций.
func NewLineRepository() domain.LineRepository {
	return &lineRepositoryInMemory{
		items: make(map[string][]domain.OrderLine),
	}
}

// ListByOrder возвращает копию позиций заказа. Пустой срез — не ошибка.
func (r *lineRepositoryInMemory) ListByOrder(orderCode string) []domain.OrderLine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	lines, ok := r.items[orderCode]
	if !ok {
		return nil
	}
	result := make([]domain.OrderLine, len(lines))
	copy(result, lines)
	return result
}

// Replace заменяет набор позиций заказа копией переданного среза.
func (r *lineRepositoryInMemory) Replace(orderCode string, lines []domain.OrderLine) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := make([]domain.OrderLine, len(lines))
	copy(stored, lines)
	r.items[orderCode] = stored
}

// DeleteByOrder удаляет набор позиций заказа.
func (r *lineRepositoryInMemory) DeleteByOrder(orderCode string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, orderCode)
}

// All возвращает копии всех наборов позиций.
func (r *lineRepositoryInMemory) All() map[string][]domain.OrderLine {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make(map[string][]domain.OrderLine, len(r.items))
	for code, lines := range r.items {
		copied := make([]domain.OrderLine, len(lines))
		copy(copied, lines)
		result[code] = copied
	}
	return result
}

var _ domain.LineRepository = (*lineRepositoryInMemory)(nil)
