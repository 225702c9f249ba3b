// Package lines реализует менеджер позиций заказа — единственный
// компонент, который меняет остатки каталога как побочный эффект правки
// заказа. Он же отвечает за инварианты: остаток не уходит в минус,
// total заказа всегда равен сумме subtotal его позиций, номера позиций
// плотные (1..N без дыр).
package lines

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// Manager связывает каталог, шапки заказов и наборы позиций. Все
// проверки выполняются до первой мутации: ошибочный путь оставляет и
// каталог, и заказ нетронутыми.
type Manager struct {
	catalog      domain.CatalogRepository
	orders       domain.OrderRepository
	lines        domain.LineRepository
	movements    domain.MovementRepository
	catalogStore domain.CatalogStore
	orderStore   domain.OrderStore
	logger       *log.Entry
	now          func() time.Time
}

// NewManager создаёт менеджер позиций.
func NewManager(
	catalog domain.CatalogRepository,
	orders domain.OrderRepository,
	lines domain.LineRepository,
	movements domain.MovementRepository,
	catalogStore domain.CatalogStore,
	orderStore domain.OrderStore,
	logger *log.Entry,
) *Manager {
	if logger == nil {
		logger = log.New().WithField("component", "lines")
	}
	return &Manager{
		catalog:      catalog,
		orders:       orders,
		lines:        lines,
		movements:    movements,
		catalogStore: catalogStore,
		orderStore:   orderStore,
		logger:       logger,
		now:          time.Now,
	}
}

// List возвращает позиции заказа или ErrOrderNotFound.
func (m *Manager) List(orderCode string) ([]domain.OrderLine, error) {
	if _, err := m.orders.Get(orderCode); err != nil {
		return nil, fmt.Errorf("list lines %s: %w", orderCode, err)
	}
	return m.lines.ListByOrder(orderCode), nil
}

// AddLine добавляет позицию в заказ: списывает остаток, наращивает
// total и присваивает следующий номер. UnitPrice — снимок текущей цены
// товара.
func (m *Manager) AddLine(orderCode, productCode string, quantity int) (domain.OrderLine, error) {
	order, err := m.orders.Get(orderCode)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("add line %s: %w", orderCode, err)
	}
	product, err := m.catalog.Get(productCode)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("add line %s: %w", orderCode, err)
	}
	if quantity <= 0 {
		return domain.OrderLine{}, fmt.Errorf("add line %s: %w", orderCode, domain.ErrInvalidQuantity)
	}
	if quantity > product.Stock {
		return domain.OrderLine{}, fmt.Errorf(
			"add line %s: %w: product %s, stock %d, requested %d",
			orderCode, domain.ErrInsufficientStock, productCode, product.Stock, quantity,
		)
	}

	current := m.lines.ListByOrder(orderCode)
	line := domain.OrderLine{
		Number:      len(current) + 1,
		ProductCode: product.Code,
		Quantity:    quantity,
		UnitPrice:   product.SalePrice,
		Subtotal:    float64(quantity) * product.SalePrice,
	}

	// Все проверки пройдены — фиксируем три мутации: остаток, total,
	// набор позиций.
	before := product.Stock
	product.Stock -= quantity
	if err := m.catalog.Save(product); err != nil {
		return domain.OrderLine{}, fmt.Errorf("add line %s: %w", orderCode, err)
	}
	order.Total += line.Subtotal
	if err := m.orders.Save(order); err != nil {
		return domain.OrderLine{}, fmt.Errorf("add line %s: %w", orderCode, err)
	}
	m.lines.Replace(orderCode, append(current, line))
	m.recordMovement(product, -quantity, before, domain.MovementReasonOrderLine)

	m.logger.WithFields(log.Fields{
		"order":    orderCode,
		"product":  productCode,
		"quantity": quantity,
		"subtotal": line.Subtotal,
	}).Info("позиция добавлена в заказ")
	return line, m.persist()
}

// SetLineQuantity меняет количество в существующей позиции. Доступный
// остаток считается как склад плюс то, что позиция уже удерживает;
// UnitPrice не пересчитывается.
func (m *Manager) SetLineQuantity(orderCode string, lineNumber, newQuantity int) (domain.OrderLine, error) {
	order, err := m.orders.Get(orderCode)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("set line quantity %s: %w", orderCode, err)
	}
	current := m.lines.ListByOrder(orderCode)
	idx := indexOf(current, lineNumber)
	if idx < 0 {
		return domain.OrderLine{}, fmt.Errorf(
			"set line quantity %s: line %d: %w", orderCode, lineNumber, domain.ErrLineNotFound,
		)
	}
	if newQuantity <= 0 {
		return domain.OrderLine{}, fmt.Errorf("set line quantity %s: %w", orderCode, domain.ErrInvalidQuantity)
	}

	line := current[idx]
	product, err := m.catalog.Get(line.ProductCode)
	if err != nil {
		return domain.OrderLine{}, fmt.Errorf("set line quantity %s: %w", orderCode, err)
	}
	available := product.Stock + line.Quantity
	if newQuantity > available {
		return domain.OrderLine{}, fmt.Errorf(
			"set line quantity %s: %w: product %s, available %d, requested %d",
			orderCode, domain.ErrInsufficientStock, line.ProductCode, available, newQuantity,
		)
	}

	diff := newQuantity - line.Quantity
	before := product.Stock
	product.Stock -= diff
	if err := m.catalog.Save(product); err != nil {
		return domain.OrderLine{}, fmt.Errorf("set line quantity %s: %w", orderCode, err)
	}

	oldSubtotal := line.Subtotal
	line.Quantity = newQuantity
	line.Subtotal = float64(newQuantity) * line.UnitPrice
	current[idx] = line

	order.Total += line.Subtotal - oldSubtotal
	if err := m.orders.Save(order); err != nil {
		return domain.OrderLine{}, fmt.Errorf("set line quantity %s: %w", orderCode, err)
	}
	m.lines.Replace(orderCode, current)
	m.recordMovement(product, -diff, before, domain.MovementReasonLineChange)

	return line, m.persist()
}

// RemoveLine удаляет позицию: возвращает её количество на склад,
// уменьшает total и перенумеровывает оставшиеся позиции плотно.
// Если товар позиции уже удалён из каталога, остаток вернуть некому —
// позиция просто исчезает (поведение сохранено).
func (m *Manager) RemoveLine(orderCode string, lineNumber int) error {
	order, err := m.orders.Get(orderCode)
	if err != nil {
		return fmt.Errorf("remove line %s: %w", orderCode, err)
	}
	current := m.lines.ListByOrder(orderCode)
	idx := indexOf(current, lineNumber)
	if idx < 0 {
		return fmt.Errorf("remove line %s: line %d: %w", orderCode, lineNumber, domain.ErrLineNotFound)
	}
	line := current[idx]

	if product, err := m.catalog.Get(line.ProductCode); err == nil {
		before := product.Stock
		product.Stock += line.Quantity
		if err := m.catalog.Save(product); err != nil {
			return fmt.Errorf("remove line %s: %w", orderCode, err)
		}
		m.recordMovement(product, line.Quantity, before, domain.MovementReasonLineRemove)
	}

	order.Total -= line.Subtotal
	if err := m.orders.Save(order); err != nil {
		return fmt.Errorf("remove line %s: %w", orderCode, err)
	}

	remaining := append(current[:idx], current[idx+1:]...)
	for i := range remaining {
		remaining[i].Number = i + 1
	}
	m.lines.Replace(orderCode, remaining)

	m.logger.WithFields(log.Fields{
		"order": orderCode,
		"line":  lineNumber,
	}).Info("позиция удалена из заказа")
	return m.persist()
}

// RemoveAllForOrder каскадно удаляет набор позиций при удалении заказа.
// Остатки по позициям НЕ возвращаются на склад: удаление заказа целиком
// сохраняет прежнюю асимметрию с удалением отдельной позиции.
func (m *Manager) RemoveAllForOrder(orderCode string) {
	m.lines.DeleteByOrder(orderCode)
}

// Snapshot отдаёт наборы позиций всех заказов для сохранения.
func (m *Manager) Snapshot() map[string][]domain.OrderLine {
	return m.lines.All()
}

// indexOf ищет позицию по номеру; -1, если её нет.
func indexOf(lines []domain.OrderLine, number int) int {
	for i, line := range lines {
		if line.Number == number {
			return i
		}
	}
	return -1
}

// recordMovement пишет событие движения остатка в журнал сеанса.
func (m *Manager) recordMovement(product domain.Product, delta, before int, reason domain.MovementReason) {
	m.movements.Append(domain.StockMovement{
		ID:          uuid.NewString(),
		ProductCode: product.Code,
		Delta:       delta,
		StockBefore: before,
		StockAfter:  product.Stock,
		Reason:      reason,
		OccurredAt:  m.now(),
	})
}

// persist сохраняет снимки заказов, позиций и каталога. Записи идут
// последовательно без общей транзакции: отказ между ними оставит
// хранилища рассинхронизированными — риск принят.
func (m *Manager) persist() error {
	if err := m.orderStore.SaveOrders(m.orders.List()); err != nil {
		m.logger.WithError(err).Error("не удалось сохранить заказы")
		return fmt.Errorf("persist orders: %w", err)
	}
	if err := m.orderStore.SaveLines(m.lines.All()); err != nil {
		m.logger.WithError(err).Error("не удалось сохранить позиции")
		return fmt.Errorf("persist lines: %w", err)
	}
	if err := m.catalogStore.Save(m.catalog.List()); err != nil {
		m.logger.WithError(err).Error("не удалось сохранить каталог")
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}
