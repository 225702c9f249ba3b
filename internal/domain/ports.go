package domain

// CatalogStore описывает персистентное хранилище каталога. Реализация
// работает снимками: Load читает всё, Save перезаписывает всё.
type CatalogStore interface {
	// Load возвращает сохранённый каталог. Отсутствующий или битый
	// источник молча заменяется посевной структурой.
	Load() ([]Product, error)
	// Save перезаписывает каталог целиком.
	Save(products []Product) error
}

// OrderStore описывает персистентное хранилище заказов и их позиций.
// Шапки и позиции лежат раздельно, как в исходных файлах; сохранение
// двух снимков не объединено транзакцией — риск частичной записи
// принят и задокументирован.
type OrderStore interface {
	LoadOrders() ([]Order, error)
	SaveOrders(orders []Order) error
	LoadLines() (map[string][]OrderLine, error)
	SaveLines(lines map[string][]OrderLine) error
}
