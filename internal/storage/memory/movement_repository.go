package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// movementRepositoryInMemory — журнал движений остатка текущего сеанса.
type movementRepositoryInMemory struct {
	mu    sync.RWMutex
	items []domain.StockMovement
}

// NewMovementRepository возвращает пустой журнал движений.
func NewMovementRepository() domain.MovementRepository {
	return &movementRepositoryInMemory{}
}

// Append добавляет движение в конец журнала.
func (r *movementRepositoryInMemory) Append(movement domain.StockMovement) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items = append(r.items, movement)
}

// List возвращает движения в порядке добавления, опционально по товару.
func (r *movementRepositoryInMemory) List(productCode string) []domain.StockMovement {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.StockMovement, 0, len(r.items))
	for _, m := range r.items {
		if productCode != "" && m.ProductCode != productCode {
			continue
		}
		result = append(result, m)
	}
	return result
}

var _ domain.MovementRepository = (*movementRepositoryInMemory)(nil)
