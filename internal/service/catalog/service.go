// Package catalog реализует операции над каталогом товаров: добавление,
// поиск, правку, корректировку остатка и удаление.
package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/codegen"
	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// Service мутирует in-memory каталог и явно просит хранилище сохранить
// снимок после каждой зафиксированной операции.
type Service struct {
	repo      domain.CatalogRepository
	store     domain.CatalogStore
	movements domain.MovementRepository
	logger    *log.Entry
	now       func() time.Time
}

// New создаёт сервис каталога.
func New(
	repo domain.CatalogRepository,
	store domain.CatalogStore,
	movements domain.MovementRepository,
	logger *log.Entry,
) *Service {
	if logger == nil {
		logger = log.New().WithField("component", "catalog")
	}
	return &Service{
		repo:      repo,
		store:     store,
		movements: movements,
		logger:    logger,
		now:       time.Now,
	}
}

// Add проверяет входные данные, присваивает следующий код категории и
// добавляет товар. Любая ошибка валидации оставляет каталог нетронутым.
func (s *Service) Add(
	category domain.Category,
	name, description, supplier string,
	stock int,
	salePrice, supplierPrice float64,
) (domain.Product, error) {
	if !category.Valid() {
		return domain.Product{}, fmt.Errorf("add product: %w: %q", domain.ErrInvalidCategory, category)
	}
	if stock < 0 {
		return domain.Product{}, fmt.Errorf("add product: stock: %w", domain.ErrNegativeAmount)
	}
	if salePrice < 0 || supplierPrice < 0 {
		return domain.Product{}, fmt.Errorf("add product: price: %w", domain.ErrNegativeAmount)
	}

	product := domain.Product{
		Code:          codegen.Next(category.Prefix(), s.codes()),
		Name:          name,
		Category:      category,
		Description:   description,
		Supplier:      supplier,
		Stock:         stock,
		SalePrice:     salePrice,
		SupplierPrice: supplierPrice,
	}
	if err := s.repo.Insert(product); err != nil {
		return domain.Product{}, fmt.Errorf("add product %s: %w", product.Code, err)
	}

	s.logger.WithFields(log.Fields{
		"code":     product.Code,
		"category": product.Category,
	}).Info("товар добавлен в каталог")
	return product, s.persist()
}

// Find возвращает товары, у которых код или имя содержит подстроку
// (без учёта регистра). Каждый вызов сканирует каталог заново.
func (s *Service) Find(query string) []domain.Product {
	needle := strings.ToLower(query)

	var result []domain.Product
	for _, p := range s.repo.List() {
		if strings.Contains(strings.ToLower(p.Code), needle) ||
			strings.Contains(strings.ToLower(p.Name), needle) {
			result = append(result, p)
		}
	}
	return result
}

// Get возвращает товар по точному коду.
func (s *Service) Get(code string) (domain.Product, error) {
	return s.repo.Get(code)
}

// List возвращает каталог в порядке вставки.
func (s *Service) List() []domain.Product {
	return s.repo.List()
}

// AdjustStock прибавляет delta (со знаком) к остатку товара. Нулевая
// дельта — no-op; уход в минус запрещён.
func (s *Service) AdjustStock(code string, delta int) (domain.Product, error) {
	product, err := s.repo.Get(code)
	if err != nil {
		return domain.Product{}, fmt.Errorf("adjust stock %s: %w", code, err)
	}
	if delta == 0 {
		return product, nil
	}
	if product.Stock+delta < 0 {
		return domain.Product{}, fmt.Errorf(
			"adjust stock %s: %w: stock %d, delta %d",
			code, domain.ErrInsufficientStock, product.Stock, delta,
		)
	}

	before := product.Stock
	product.Stock += delta
	if err := s.repo.Save(product); err != nil {
		return domain.Product{}, fmt.Errorf("adjust stock %s: %w", code, err)
	}
	s.recordMovement(product, delta, before, domain.MovementReasonAdjust)

	return product, s.persist()
}

// Update правит свободные поля и цены товара. Код и остаток не трогает;
// остаток меняется только через AdjustStock.
func (s *Service) Update(
	code, name, description, supplier string,
	salePrice, supplierPrice float64,
) (domain.Product, error) {
	if salePrice < 0 || supplierPrice < 0 {
		return domain.Product{}, fmt.Errorf("update product %s: price: %w", code, domain.ErrNegativeAmount)
	}

	product, err := s.repo.Get(code)
	if err != nil {
		return domain.Product{}, fmt.Errorf("update product %s: %w", code, err)
	}
	product.Name = name
	product.Description = description
	product.Supplier = supplier
	product.SalePrice = salePrice
	product.SupplierPrice = supplierPrice

	if err := s.repo.Save(product); err != nil {
		return domain.Product{}, fmt.Errorf("update product %s: %w", code, err)
	}
	return product, s.persist()
}

// Remove удаляет товар из каталога. Ссылки из позиций существующих
// заказов не проверяются: удаление оставляет их висячими — поведение
// сохранено сознательно.
func (s *Service) Remove(code string) error {
	if err := s.repo.Delete(code); err != nil {
		return fmt.Errorf("remove product %s: %w", code, err)
	}
	s.logger.WithField("code", code).Info("товар удалён из каталога")
	return s.persist()
}

// Movements возвращает журнал движений остатка, опционально по товару.
func (s *Service) Movements(productCode string) []domain.StockMovement {
	return s.movements.List(productCode)
}

// recordMovement пишет событие движения остатка в журнал сеанса.
func (s *Service) recordMovement(product domain.Product, delta, before int, reason domain.MovementReason) {
	s.movements.Append(domain.StockMovement{
		ID:          uuid.NewString(),
		ProductCode: product.Code,
		Delta:       delta,
		StockBefore: before,
		StockAfter:  product.Stock,
		Reason:      reason,
		OccurredAt:  s.now(),
	})
}

// codes собирает все занятые коды для генератора.
func (s *Service) codes() []string {
	products := s.repo.List()
	codes := make([]string, 0, len(products))
	for _, p := range products {
		codes = append(codes, p.Code)
	}
	return codes
}

// persist просит хранилище сохранить текущий снимок каталога.
func (s *Service) persist() error {
	if err := s.store.Save(s.repo.List()); err != nil {
		s.logger.WithError(err).Error("не удалось сохранить каталог")
		return fmt.Errorf("persist catalog: %w", err)
	}
	return nil
}
