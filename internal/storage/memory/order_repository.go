package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// orderRepositoryInMemory — in-memory реализация OrderRepository с
// сохранением порядка вставки при листинге.
type orderRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Order
	order []string
}

// NewOrderRepository возвращает пустую in-memory коллекцию заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[string]domain.Order),
	}
}

// Insert добавляет заказ, если код ещё не занят.
func (r *orderRepositoryInMemory) Insert(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[order.Code]; exists {
		return domain.ErrDuplicateCode
	}
	r.items[order.Code] = order
	r.order = append(r.order, order.Code)
	return nil
}

// Get возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) Get(code string) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[code]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// List возвращает копию коллекции в порядке вставки.
func (r *orderRepositoryInMemory) List() []domain.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.order))
	for _, code := range r.order {
		result = append(result, r.items[code])
	}
	return result
}

// Save перезаписывает существующий заказ.
func (r *orderRepositoryInMemory) Save(order domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[order.Code]; !ok {
		return domain.ErrOrderNotFound
	}
	r.items[order.Code] = order
	return nil
}

// Delete удаляет шапку заказа; каскадное удаление позиций — забота
// менеджера позиций, не репозитория.
func (r *orderRepositoryInMemory) Delete(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[code]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, code)
	for i, c := range r.order {
		if c == code {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
