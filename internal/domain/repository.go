package domain

// CatalogRepository описывает требования к in-memory коллекции товаров.
// Порядок вставки сохраняется при листинге.
type CatalogRepository interface {
	// Insert добавляет новый товар. Возвращает ErrDuplicateCode, если код занят.
	Insert(product Product) error
	// Get возвращает товар по коду или ErrProductNotFound.
	Get(code string) (Product, error)
	// List возвращает все товары в порядке вставки.
	List() []Product
	// Save перезаписывает существующий товар или возвращает ErrProductNotFound.
	Save(product Product) error
	// Delete удаляет товар или возвращает ErrProductNotFound.
	Delete(code string) error
}

// OrderRepository описывает требования к in-memory коллекции шапок заказов.
type OrderRepository interface {
	// Insert добавляет новый заказ. Возвращает ErrDuplicateCode, если код занят.
	Insert(order Order) error
	// Get возвращает заказ по коду или ErrOrderNotFound.
	Get(code string) (Order, error)
	// List возвращает все заказы в порядке вставки.
	List() []Order
	// Save перезаписывает существующий заказ или возвращает ErrOrderNotFound.
	Save(order Order) error
	// Delete удаляет шапку заказа или возвращает ErrOrderNotFound.
	Delete(code string) error
}

// LineRepository хранит наборы позиций по коду заказа. Набор заменяется
// целиком: менеджер позиций готовит новый срез и коммитит его одним вызовом.
type LineRepository interface {
	// ListByOrder возвращает позиции заказа в порядке номеров. Пустой
	// срез для заказа без позиций — не ошибка.
	ListByOrder(orderCode string) []OrderLine
	// Replace заменяет набор позиций заказа.
	Replace(orderCode string, lines []OrderLine)
	// DeleteByOrder удаляет набор позиций заказа целиком.
	DeleteByOrder(orderCode string)
	// All возвращает наборы позиций для всех заказов в порядке вставки.
	All() map[string][]OrderLine
}

// MovementRepository хранит журнал движений остатка текущего сеанса.
type MovementRepository interface {
	Append(movement StockMovement)
	// List возвращает движения в порядке добавления; при непустом
	// productCode — только по этому товару.
	List(productCode string) []StockMovement
}
