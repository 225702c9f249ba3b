package ledger_test

import (
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/service/ledger"
	"github.com/vladislavdragonenkov/bakery/internal/service/lines"
	"github.com/vladislavdragonenkov/bakery/internal/storage/memory"
)

type stubCatalogStore struct{}

func (stubCatalogStore) Load() ([]domain.Product, error) { return nil, nil }
func (stubCatalogStore) Save([]domain.Product) error     { return nil }

type stubOrderStore struct {
	mu         sync.Mutex
	orderSaves int
	lineSaves  int
}

func (s *stubOrderStore) LoadOrders() ([]domain.Order, error) { return nil, nil }

func (s *stubOrderStore) SaveOrders([]domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orderSaves++
	return nil
}

func (s *stubOrderStore) LoadLines() (map[string][]domain.OrderLine, error) {
	return map[string][]domain.OrderLine{}, nil
}

func (s *stubOrderStore) SaveLines(map[string][]domain.OrderLine) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lineSaves++
	return nil
}

type fixture struct {
	ledger  *ledger.Service
	manager *lines.Manager
	catalog domain.CatalogRepository
	lineSet domain.LineRepository
	store   *stubOrderStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalogRepo := memory.NewCatalogRepository()
	orderRepo := memory.NewOrderRepository()
	lineRepo := memory.NewLineRepository()
	movements := memory.NewMovementRepository()
	store := &stubOrderStore{}
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := lines.NewManager(
		catalogRepo, orderRepo, lineRepo, movements,
		stubCatalogStore{}, store,
		logger.WithField("component", "lines"),
	)
	svc := ledger.New(orderRepo, lineRepo, manager, store, logger.WithField("component", "ledger"))
	return &fixture{ledger: svc, manager: manager, catalog: catalogRepo, lineSet: lineRepo, store: store}
}

func TestCreate_AssignsSequentialCodes(t *testing.T) {
	f := newFixture(t)

	first, err := f.ledger.Create("CLI-001")
	require.NoError(t, err)
	require.Equal(t, "PED-001", first.Code)
	require.Equal(t, domain.OrderStatusPending, first.Status)
	require.Zero(t, first.Total)
	require.False(t, first.CreatedAt.IsZero())

	second, err := f.ledger.Create("CLI-002")
	require.NoError(t, err)
	require.Equal(t, "PED-002", second.Code)
}

func TestCreate_StartsWithEmptyLineSet(t *testing.T) {
	f := newFixture(t)

	order, err := f.ledger.Create("CLI-001")
	require.NoError(t, err)

	all := f.lineSet.All()
	lines, ok := all[order.Code]
	require.True(t, ok, "expected line set entry for new order")
	require.Empty(t, lines)
}

func TestCreate_PersistsBothSnapshots(t *testing.T) {
	f := newFixture(t)

	_, err := f.ledger.Create("CLI-001")
	require.NoError(t, err)
	require.Equal(t, 1, f.store.orderSaves)
	require.Equal(t, 1, f.store.lineSaves)
}

func TestFind_MatchesCodeAndCustomer(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.Create("CLI-007")
	require.NoError(t, err)
	_, err = f.ledger.Create("MAYORISTA-01")
	require.NoError(t, err)

	require.Len(t, f.ledger.Find("ped-001"), 1)
	require.Len(t, f.ledger.Find("cli"), 1)
	require.Len(t, f.ledger.Find("PED"), 2)
	require.Empty(t, f.ledger.Find("nadie"))
}

func TestSetStatus_AnyToAnyWithinEnum(t *testing.T) {
	f := newFixture(t)
	order, err := f.ledger.Create("CLI-001")
	require.NoError(t, err)

	updated, err := f.ledger.SetStatus(order.Code, domain.OrderStatusDelivered)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusDelivered, updated.Status)

	// Обратный переход тоже разрешён: проверяется только членство в наборе.
	updated, err = f.ledger.SetStatus(order.Code, domain.OrderStatusPending)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, updated.Status)
}

func TestSetStatus_RejectsUnknownStatus(t *testing.T) {
	f := newFixture(t)
	order, err := f.ledger.Create("CLI-001")
	require.NoError(t, err)

	_, err = f.ledger.SetStatus(order.Code, domain.OrderStatus("cancelado"))
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	stored, err := f.ledger.Get(order.Code)
	require.NoError(t, err)
	require.Equal(t, domain.OrderStatusPending, stored.Status)
}

func TestSetStatus_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	_, err := f.ledger.SetStatus("PED-404", domain.OrderStatusDelivered)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestRemove_CascadesToLinesWithoutRestock(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.catalog.Insert(domain.Product{
		Code:      "PAN-001",
		Name:      "Pan Francés",
		Category:  domain.CategoryBread,
		Stock:     50,
		SalePrice: 1.50,
	}))
	order, err := f.ledger.Create("CLI-001")
	require.NoError(t, err)
	_, err = f.manager.AddLine(order.Code, "PAN-001", 10)
	require.NoError(t, err)

	require.NoError(t, f.ledger.Remove(order.Code))

	_, err = f.ledger.Get(order.Code)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
	require.Empty(t, f.lineSet.ListByOrder(order.Code))

	// Удаление заказа НЕ возвращает остаток — закреплённое поведение.
	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 40, product.Stock)
}

func TestRemove_UnknownOrder(t *testing.T) {
	f := newFixture(t)
	require.ErrorIs(t, f.ledger.Remove("PED-404"), domain.ErrOrderNotFound)
}

func TestCreate_CodesSurviveDeletions(t *testing.T) {
	f := newFixture(t)
	first, err := f.ledger.Create("CLI-001")
	require.NoError(t, err)
	second, err := f.ledger.Create("CLI-002")
	require.NoError(t, err)
	require.NoError(t, f.ledger.Remove(second.Code))

	// Генератор смотрит на максимум существующих суффиксов: после
	// удаления PED-002 следующий код снова PED-002.
	third, err := f.ledger.Create("CLI-003")
	require.NoError(t, err)
	require.Equal(t, "PED-002", third.Code)
	require.NotEqual(t, first.Code, third.Code)
}
