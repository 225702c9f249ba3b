// Package app собирает зависимости приложения: хранилища, in-memory
// репозитории, сервисы и сеанс текстового интерфейса.
package app

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/service/catalog"
	"github.com/vladislavdragonenkov/bakery/internal/service/ledger"
	"github.com/vladislavdragonenkov/bakery/internal/service/lines"
	"github.com/vladislavdragonenkov/bakery/internal/storage/jsonfile"
	"github.com/vladislavdragonenkov/bakery/internal/storage/memory"
	"github.com/vladislavdragonenkov/bakery/internal/storage/postgres"
	"github.com/vladislavdragonenkov/bakery/internal/ui"
	"github.com/vladislavdragonenkov/bakery/internal/version"
)

// Run загружает данные, поднимает сервисы и крутит меню до выхода
// оператора. Возвращается после явного "Salir" или конца ввода.
func Run(ctx context.Context, cfg Config, in io.Reader, out io.Writer) error {
	logger := log.WithField("component", "app")
	logger.WithField("version", version.String()).Info("запускаем систему управления пекарней")

	catalogStore, orderStore, closeStores, err := openStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	// Загружаем снимки в память; битые или отсутствующие источники уже
	// заменены посевом на уровне хранилища.
	products, err := catalogStore.Load()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	orders, err := orderStore.LoadOrders()
	if err != nil {
		return fmt.Errorf("load orders: %w", err)
	}
	lineSets, err := orderStore.LoadLines()
	if err != nil {
		return fmt.Errorf("load order lines: %w", err)
	}

	catalogRepo := memory.NewCatalogRepository()
	for _, p := range products {
		if err := catalogRepo.Insert(p); err != nil {
			logger.WithError(err).WithField("code", p.Code).Warn("товар из снимка пропущен")
		}
	}
	orderRepo := memory.NewOrderRepository()
	for _, o := range orders {
		if err := orderRepo.Insert(o); err != nil {
			logger.WithError(err).WithField("code", o.Code).Warn("заказ из снимка пропущен")
		}
	}
	lineRepo := memory.NewLineRepository()
	for code, set := range lineSets {
		lineRepo.Replace(code, set)
	}
	movements := memory.NewMovementRepository()

	catalogSvc := catalog.New(catalogRepo, catalogStore, movements, log.WithField("component", "catalog"))
	lineMgr := lines.NewManager(
		catalogRepo, orderRepo, lineRepo, movements,
		catalogStore, orderStore,
		log.WithField("component", "lines"),
	)
	ledgerSvc := ledger.New(orderRepo, lineRepo, lineMgr, orderStore, log.WithField("component", "ledger"))

	session := ui.NewSession(in, out, catalogSvc, ledgerSvc, lineMgr, log.WithField("component", "ui"))
	session.Run()

	logger.Info("сеанс завершён")
	return nil
}

// openStores выбирает драйвер хранения по конфигурации.
func openStores(ctx context.Context, cfg Config, logger *log.Entry) (domain.CatalogStore, domain.OrderStore, func(), error) {
	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres storage: %w", err)
		}
		logger.Info("хранилище: postgres")
		closeFn := func() {
			if err := store.Close(); err != nil {
				logger.WithError(err).Warn("не удалось закрыть подключение к postgres")
			}
		}
		return postgres.NewCatalogStore(store), postgres.NewOrderStore(store), closeFn, nil
	default:
		store := jsonfile.New(cfg.DataDir, log.WithField("component", "jsonfile"))
		logger.WithField("data_dir", cfg.DataDir).Info("хранилище: json-файлы")
		return jsonfile.NewCatalogStore(store), jsonfile.NewOrderStore(store), func() {}, nil
	}
}
