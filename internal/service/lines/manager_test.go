package lines_test

import (
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/service/lines"
	"github.com/vladislavdragonenkov/bakery/internal/storage/memory"
)

// stubCatalogStore и stubOrderStore считают сохранения снимков.
type stubCatalogStore struct {
	mu    sync.Mutex
	saves int
}

func (s *stubCatalogStore) Load() ([]domain.Product, error) { return nil, nil }

func (s *stubCatalogStore) Save([]domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	return nil
}

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
	manager *lines.Manager
	catalog domain.CatalogRepository
	orders  domain.OrderRepository
	lineSet domain.LineRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	catalogRepo := memory.NewCatalogRepository()
	orderRepo := memory.NewOrderRepository()
	lineRepo := memory.NewLineRepository()
	movements := memory.NewMovementRepository()
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)

	manager := lines.NewManager(
		catalogRepo, orderRepo, lineRepo, movements,
		&stubCatalogStore{}, &stubOrderStore{},
		logger.WithField("component", "lines"),
	)
	return &fixture{manager: manager, catalog: catalogRepo, orders: orderRepo, lineSet: lineRepo}
}

func (f *fixture) seedProduct(t *testing.T, code string, stock int, price float64) {
	t.Helper()

	require.NoError(t, f.catalog.Insert(domain.Product{
		Code:      code,
		Name:      "Pan Francés",
		Category:  domain.CategoryBread,
		Stock:     stock,
		SalePrice: price,
	}))
}

func (f *fixture) seedOrder(t *testing.T, code string) {
	t.Helper()

	require.NoError(t, f.orders.Insert(domain.Order{
		Code:         code,
		CustomerCode: "CLI-001",
		CreatedAt:    time.Now(),
		Status:       domain.OrderStatusPending,
	}))
	f.lineSet.Replace(code, []domain.OrderLine{})
}

// requireConsistent проверяет инвариант total == Σ subtotal.
func (f *fixture) requireConsistent(t *testing.T, orderCode string) {
	t.Helper()

	order, err := f.orders.Get(orderCode)
	require.NoError(t, err)
	require.InDelta(t, domain.LinesTotal(f.lineSet.ListByOrder(orderCode)), order.Total, 1e-9)
}

func TestAddLine_DecrementsStockAndGrowsTotal(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")

	line, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)
	require.Equal(t, 1, line.Number)
	require.Equal(t, 1.50, line.UnitPrice)
	require.Equal(t, 15.00, line.Subtotal)

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 40, product.Stock)

	order, err := f.orders.Get("PED-001")
	require.NoError(t, err)
	require.Equal(t, 15.00, order.Total)
	f.requireConsistent(t, "PED-001")
}

func TestAddLine_InsufficientStockLeavesStateUntouched(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")

	_, err := f.manager.AddLine("PED-001", "PAN-001", 51)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 50, product.Stock)

	order, err := f.orders.Get("PED-001")
	require.NoError(t, err)
	require.Zero(t, order.Total)
	require.Empty(t, f.lineSet.ListByOrder("PED-001"))
}

func TestAddLine_RejectsNonPositiveQuantity(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")

	for _, qty := range []int{0, -3} {
		_, err := f.manager.AddLine("PED-001", "PAN-001", qty)
		require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 50, product.Stock)
}

func TestAddLine_UnknownProductOrOrder(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")

	_, err := f.manager.AddLine("PED-001", "PAN-404", 1)
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	_, err = f.manager.AddLine("PED-404", "PAN-001", 1)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestAddLine_NumbersLinesSequentially(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedProduct(t, "PT-001", 10, 25.00)
	f.seedOrder(t, "PED-001")

	first, err := f.manager.AddLine("PED-001", "PAN-001", 2)
	require.NoError(t, err)
	second, err := f.manager.AddLine("PED-001", "PT-001", 1)
	require.NoError(t, err)

	require.Equal(t, 1, first.Number)
	require.Equal(t, 2, second.Number)
	f.requireConsistent(t, "PED-001")
}

func TestSetLineQuantity_ReducingReturnsStock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	line, err := f.manager.SetLineQuantity("PED-001", 1, 5)
	require.NoError(t, err)
	require.Equal(t, 5, line.Quantity)
	require.Equal(t, 7.50, line.Subtotal)

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 45, product.Stock)

	order, err := f.orders.Get("PED-001")
	require.NoError(t, err)
	require.Equal(t, 7.50, order.Total)
	f.requireConsistent(t, "PED-001")
}

func TestSetLineQuantity_GrowingTakesStock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	line, err := f.manager.SetLineQuantity("PED-001", 1, 30)
	require.NoError(t, err)
	require.Equal(t, 45.00, line.Subtotal)

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 20, product.Stock)
	f.requireConsistent(t, "PED-001")
}

func TestSetLineQuantity_AvailableIncludesHeldQuantity(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	// Склад 40, позиция держит 10: доступно ровно 50.
	_, err = f.manager.SetLineQuantity("PED-001", 1, 50)
	require.NoError(t, err)

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Zero(t, product.Stock)

	// 51 уже не помещается.
	_, err = f.manager.SetLineQuantity("PED-001", 1, 51)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestSetLineQuantity_KeepsUnitPriceSnapshot(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	// Цена товара выросла, но позиция держит снимок старой цены.
	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	product.SalePrice = 2.00
	require.NoError(t, f.catalog.Save(product))

	line, err := f.manager.SetLineQuantity("PED-001", 1, 4)
	require.NoError(t, err)
	require.Equal(t, 1.50, line.UnitPrice)
	require.Equal(t, 6.00, line.Subtotal)
}

func TestSetLineQuantity_Validation(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	_, err = f.manager.SetLineQuantity("PED-001", 1, 0)
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)

	_, err = f.manager.SetLineQuantity("PED-001", 9, 5)
	require.ErrorIs(t, err, domain.ErrLineNotFound)

	_, err = f.manager.SetLineQuantity("PED-404", 1, 5)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestRemoveLine_RestocksAndRenumbers(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedProduct(t, "PT-001", 10, 25.00)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)
	_, err = f.manager.AddLine("PED-001", "PT-001", 2)
	require.NoError(t, err)

	require.NoError(t, f.manager.RemoveLine("PED-001", 1))

	// Остаток вернулся, total уменьшился на subtotal удалённой позиции.
	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 50, product.Stock)

	order, err := f.orders.Get("PED-001")
	require.NoError(t, err)
	require.Equal(t, 50.00, order.Total)

	// Оставшаяся позиция перенумерована в 1.
	remaining := f.lineSet.ListByOrder("PED-001")
	require.Len(t, remaining, 1)
	require.Equal(t, 1, remaining[0].Number)
	require.Equal(t, "PT-001", remaining[0].ProductCode)
	f.requireConsistent(t, "PED-001")
}

func TestRemoveLine_ThenReAddRoundTrips(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	stockBefore := 40
	totalBefore := 15.00

	require.NoError(t, f.manager.RemoveLine("PED-001", 1))
	_, err = f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, stockBefore, product.Stock)

	order, err := f.orders.Get("PED-001")
	require.NoError(t, err)
	require.InDelta(t, totalBefore, order.Total, 1e-9)
}

func TestRemoveLine_MissingProductSkipsRestock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	// Товар удалили из каталога, позиция осталась висячей — известная
	// брешь, поведение закреплено: удаление позиции молча не возвращает
	// остаток.
	require.NoError(t, f.catalog.Delete("PAN-001"))
	require.NoError(t, f.manager.RemoveLine("PED-001", 1))

	order, err := f.orders.Get("PED-001")
	require.NoError(t, err)
	require.Zero(t, order.Total)
	require.Empty(t, f.lineSet.ListByOrder("PED-001"))
}

func TestRemoveLine_Validation(t *testing.T) {
	f := newFixture(t)
	f.seedOrder(t, "PED-001")

	require.ErrorIs(t, f.manager.RemoveLine("PED-001", 1), domain.ErrLineNotFound)
	require.ErrorIs(t, f.manager.RemoveLine("PED-404", 1), domain.ErrOrderNotFound)
}

func TestLineNumbersStayDenseThroughEdits(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 100, 1.50)
	f.seedOrder(t, "PED-001")

	for i := 0; i < 4; i++ {
		_, err := f.manager.AddLine("PED-001", "PAN-001", 1)
		require.NoError(t, err)
	}
	require.NoError(t, f.manager.RemoveLine("PED-001", 2))
	require.NoError(t, f.manager.RemoveLine("PED-001", 1))
	_, err := f.manager.AddLine("PED-001", "PAN-001", 3)
	require.NoError(t, err)

	current := f.lineSet.ListByOrder("PED-001")
	require.Len(t, current, 3)
	for i, line := range current {
		require.Equal(t, i+1, line.Number)
	}
	f.requireConsistent(t, "PED-001")
}

func TestRemoveAllForOrder_DoesNotRestock(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 10)
	require.NoError(t, err)

	// Каскадное удаление при удалении заказа: остаток НЕ возвращается.
	// Асимметрия с удалением отдельной позиции сохранена сознательно.
	f.manager.RemoveAllForOrder("PED-001")

	product, err := f.catalog.Get("PAN-001")
	require.NoError(t, err)
	require.Equal(t, 40, product.Stock)
	require.Empty(t, f.lineSet.ListByOrder("PED-001"))
}

func TestList_ReturnsLinesOrErrOrderNotFound(t *testing.T) {
	f := newFixture(t)
	f.seedProduct(t, "PAN-001", 50, 1.50)
	f.seedOrder(t, "PED-001")
	_, err := f.manager.AddLine("PED-001", "PAN-001", 2)
	require.NoError(t, err)

	listed, err := f.manager.List("PED-001")
	require.NoError(t, err)
	require.Len(t, listed, 1)

	_, err = f.manager.List("PED-404")
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}
