package memory

import (
	"sync"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// catalogRepositoryInMemory — in-memory реализация CatalogRepository.
// Помимо индекса по коду держит срез кодов, чтобы листинг сохранял
// порядок вставки.
type catalogRepositoryInMemory struct {
	mu    sync.RWMutex
	items map[string]domain.Product
	order []string
}

// NewCatalogRepository возвращает пустой in-memory каталог.
func NewCatalogRepository() domain.CatalogRepository {
	return &catalogRepositoryInMemory{
		items: make(map[string]domain.Product),
	}
}

// Insert добавляет товар, если код ещё не занят.
func (r *catalogRepositoryInMemory) Insert(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[product.Code]; exists {
		return domain.ErrDuplicateCode
	}
	r.items[product.Code] = product
	r.order = append(r.order, product.Code)
	return nil
}

// Get возвращает товар или ErrProductNotFound, если его нет.
func (r *catalogRepositoryInMemory) Get(code string) (domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.items[code]
	if !ok {
		return domain.Product{}, domain.ErrProductNotFound
	}
	return product, nil
}

// List возвращает копию каталога в порядке вставки.
func (r *catalogRepositoryInMemory) List() []domain.Product {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Product, 0, len(r.order))
	for _, code := range r.order {
		result = append(result, r.items[code])
	}
	return result
}

// Save перезаписывает существующий товар.
func (r *catalogRepositoryInMemory) Save(product domain.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[product.Code]; !ok {
		return domain.ErrProductNotFound
	}
	r.items[product.Code] = product
	return nil
}

// Delete удаляет товар и его место в порядке вставки.
func (r *catalogRepositoryInMemory) Delete(code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[code]; !ok {
		return domain.ErrProductNotFound
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

var _ domain.CatalogRepository = (*catalogRepositoryInMemory)(nil)
