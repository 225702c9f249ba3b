package jsonfile

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// orderDTO повторяет схему записи заказа в pedidos.json.
type orderDTO struct {
	Code         string  `json:"codigo_pedido"`
	CustomerCode string  `json:"codigo_cliente"`
	CreatedAt    string  `json:"fecha_pedido"`
	Status       string  `json:"estado"`
	Total        float64 `json:"total"`
}

// lineDTO повторяет схему одной позиции в detalles_pedidos.json.
type lineDTO struct {
	Number      int     `json:"numero_linea"`
	ProductCode string  `json:"codigo_producto"`
	Quantity    int     `json:"cantidad"`
	UnitPrice   float64 `json:"precio_unidad"`
	Subtotal    float64 `json:"subtotal"`
}

// orderLinesDTO — позиции одного заказа.
type orderLinesDTO struct {
	Code  string    `json:"codigo_pedido"`
	Lines []lineDTO `json:"detalles"`
}

type ordersDocument struct {
	Orders []orderDTO `json:"pedidos"`
}

type linesDocument struct {
	Orders []orderLinesDTO `json:"detalles_pedidos"`
}

// orderStore реализует domain.OrderStore поверх пары JSON-файлов.
// Шапки и позиции пишутся по отдельности; отказ между двумя записями
// оставит файлы рассинхронизированными — риск принят.
type orderStore struct {
	store *Store
}

// NewOrderStore возвращает файловое хранилище заказов.
func NewOrderStore(store *Store) domain.OrderStore {
	return &orderStore{store: store}
}

func (s *orderStore) ordersPath() string {
	return filepath.Join(s.store.dataDir, ordersDir, ordersFile)
}

func (s *orderStore) linesPath() string {
	return filepath.Join(s.store.dataDir, ordersDir, linesFile)
}

// LoadOrders читает шапки заказов; отсутствующий или битый файл молча
// заменяется пустой структурой.
func (s *orderStore) LoadOrders() ([]domain.Order, error) {
	var doc ordersDocument
	if err := s.store.readFile(s.ordersPath(), &doc); err != nil {
		s.store.logger.WithError(err).WithField("file", ordersFile).
			Warn("файл заказов не прочитан, создаём пустую структуру")
		if err := s.SaveOrders(nil); err != nil {
			return nil, err
		}
		return nil, nil
	}

	orders := make([]domain.Order, 0, len(doc.Orders))
	for _, dto := range doc.Orders {
		createdAt, err := time.ParseInLocation(domain.TimeLayout, dto.CreatedAt, time.Local)
		if err != nil {
			// Дата не разобралась — заказ оставляем, дату обнуляем.
			createdAt = time.Time{}
		}
		orders = append(orders, domain.Order{
			Code:         dto.Code,
			CustomerCode: dto.CustomerCode,
			CreatedAt:    createdAt,
			Status:       domain.OrderStatus(dto.Status),
			Total:        dto.Total,
		})
	}
	return orders, nil
}

// SaveOrders перезаписывает файл шапок целиком.
func (s *orderStore) SaveOrders(orders []domain.Order) error {
	doc := ordersDocument{Orders: make([]orderDTO, 0, len(orders))}
	for _, o := range orders {
		doc.Orders = append(doc.Orders, orderDTO{
			Code:         o.Code,
			CustomerCode: o.CustomerCode,
			CreatedAt:    o.CreatedAt.Format(domain.TimeLayout),
			Status:       string(o.Status),
			Total:        o.Total,
		})
	}
	return s.store.writeFile(s.ordersPath(), doc)
}

// LoadLines читает позиции всех заказов; отсутствующий или битый файл
// молча заменяется пустой структурой.
func (s *orderStore) LoadLines() (map[string][]domain.OrderLine, error) {
	var doc linesDocument
	if err := s.store.readFile(s.linesPath(), &doc); err != nil {
		s.store.logger.WithError(err).WithField("file", linesFile).
			Warn("файл позиций не прочитан, создаём пустую структуру")
		if err := s.SaveLines(nil); err != nil {
			return nil, err
		}
		return map[string][]domain.OrderLine{}, nil
	}

	result := make(map[string][]domain.OrderLine, len(doc.Orders))
	for _, entry := range doc.Orders {
		lines := make([]domain.OrderLine, 0, len(entry.Lines))
		for _, dto := range entry.Lines {
			lines = append(lines, domain.OrderLine{
				Number:      dto.Number,
				ProductCode: dto.ProductCode,
				Quantity:    dto.Quantity,
				UnitPrice:   dto.UnitPrice,
				Subtotal:    dto.Subtotal,
			})
		}
		result[entry.Code] = lines
	}
	return result, nil
}

// SaveLines перезаписывает файл позиций целиком. Заказы сортируются по
// коду, чтобы файл был детерминированным (PED-NNN сортируется как
// порядок создания).
func (s *orderStore) SaveLines(lines map[string][]domain.OrderLine) error {
	codes := make([]string, 0, len(lines))
	for code := range lines {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	doc := linesDocument{Orders: make([]orderLinesDTO, 0, len(codes))}
	for _, code := range codes {
		entry := orderLinesDTO{Code: code, Lines: make([]lineDTO, 0, len(lines[code]))}
		for _, line := range lines[code] {
			entry.Lines = append(entry.Lines, lineDTO{
				Number:      line.Number,
				ProductCode: line.ProductCode,
				Quantity:    line.Quantity,
				UnitPrice:   line.UnitPrice,
				Subtotal:    line.Subtotal,
			})
		}
		doc.Orders = append(doc.Orders, entry)
	}
	return s.store.writeFile(s.linesPath(), doc)
}

var _ domain.OrderStore = (*orderStore)(nil)
