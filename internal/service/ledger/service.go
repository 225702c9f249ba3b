// Package ledger реализует операции над шапками заказов: создание,
// поиск, смену статуса и удаление. Total шапки здесь не трогается —
// его ведёт менеджер позиций.
package ledger

import (
	"fmt"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/codegen"
	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/service/lines"
)

// orderCodePrefix — префикс кодов заказов; нумерация независима от товаров.
const orderCodePrefix = "PED"

// Service мутирует in-memory коллекцию заказов и просит хранилище
// сохранить снимок после каждой зафиксированной операции.
type Service struct {
	orders  domain.OrderRepository
	lineSet domain.LineRepository
	manager *lines.Manager
	store   domain.OrderStore
	logger  *log.Entry
	now     func() time.Time
}

// New создаёт сервис заказов.
func New(
	orders domain.OrderRepository,
	lineSet domain.LineRepository,
	manager *lines.Manager,
	store domain.OrderStore,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "ledger")
	}
	return &Service{
		orders:  orders,
		lineSet: lineSet,
		manager: manager,
		store:   store,
		logger:  logger,
		now:     time.Now,
	}
}

// Create заводит заказ без позиций: следующий код PED-NNN, статус
// "pendiente", total 0. Пустой набор позиций создаётся сразу.
func (s *Service) Create(customerCode string) (domain.Order, error) {
	order := domain.Order{
		Code:         codegen.Next(orderCodePrefix, s.codes()),
		CustomerCode: customerCode,
		CreatedAt:    s.now(),
		Status:       domain.OrderStatusPending,
		Total:        0,
	}
	if err := s.orders.Insert(order); err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	s.lineSet.Replace(order.Code, []domain.OrderLine{})

	s.logger.WithFields(log.Fields{
		"order":    order.Code,
		"customer": customerCode,
	}).Info("заказ создан")
	return order, s.persist()
}

// Find возвращает заказы, у которых код или код клиента содержит
// подстроку (без учёта регистра). Каждый вызов сканирует коллекцию заново.
func (s *Service) Find(query string) []domain.Order {
	needle := strings.ToLower(query)

	var result []domain.Order
	for _, o := range s.orders.List() {
		if strings.Contains(strings.ToLower(o.Code), needle) ||
			strings.Contains(strings.ToLower(o.CustomerCode), needle) {
			result = append(result, o)
		}
	}
	return result
}

// Get возвращает заказ по точному коду.
func (s *Service) Get(code string) (domain.Order, error) {
	return s.orders.Get(code)
}

// List возвращает заказы в порядке вставки.
func (s *Service) List() []domain.Order {
	return s.orders.List()
}

// SetStatus переводит заказ в новый статус. Проверяется только
// принадлежность набору: любой статус можно сменить на любой.
func (s *Service) SetStatus(code string, status domain.OrderStatus) (domain.Order, error) {
	if !status.Valid() {
		return domain.Order{}, fmt.Errorf("set status %s: %w: %q", code, domain.ErrInvalidStatus, status)
	}
	order, err := s.orders.Get(code)
	if err != nil {
		return domain.Order{}, fmt.Errorf("set status %s: %w", code, err)
	}
	order.Status = status
	if err := s.orders.Save(order); err != nil {
		return domain.Order{}, fmt.Errorf("set status %s: %w", code, err)
	}

	s.logger.WithFields(log.Fields{
		"order":  code,
		"status": status,
	}).Info("статус заказа изменён")
	return order, s.persist()
}

// Remove удаляет шапку заказа и каскадно его позиции. Остатки по
// позициям на склад не возвращаются — асимметрия с удалением отдельной
// позиции сохранена сознательно.
func (s *Service) Remove(code string) error {
	if _, err := s.orders.Get(code); err != nil {
		return fmt.Errorf("remove order %s: %w", code, err)
	}
	s.manager.RemoveAllForOrder(code)
	if err := s.orders.Delete(code); err != nil {
		return fmt.Errorf("remove order %s: %w", code, err)
	}

	s.logger.WithField("order", code).Info("заказ удалён")
	return s.persist()
}

// codes собирает занятые коды заказов для генератора.
func (s *Service) codes() []string {
	orders := s.orders.List()
	codes := make([]string, 0, len(orders))
	for _, o := range orders {
		codes = append(codes, o.Code)
	}
	return codes
}

// persist сохраняет снимки шапок и позиций.
func (s *Service) persist() error {
	if err := s.store.SaveOrders(s.orders.List()); err != nil {
		s.logger.WithError(err).Error("не удалось сохранить заказы")
		return fmt.Errorf("persist orders: %w", err)
	}
	if err := s.store.SaveLines(s.lineSet.All()); err != nil {
		s.logger.WithError(err).Error("не удалось сохранить позиции")
		return fmt.Errorf("persist lines: %w", err)
	}
	return nil
}
