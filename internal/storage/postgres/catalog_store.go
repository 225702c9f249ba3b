package postgres

import (
	"context"
	"fmt"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// catalogStore реализует domain.CatalogStore поверх таблицы productos.
// Семантика снимков сохранена: Save заменяет содержимое таблицы целиком
// в одной транзакции.
type catalogStore struct {
	store *Store
}

// NewCatalogStore возвращает PostgreSQL-реализацию CatalogStore.
func NewCatalogStore(store *Store) domain.CatalogStore {
	return &catalogStore{store: store}
}

// Load возвращает каталог в порядке вставки (колонка posicion).
func (s *catalogStore) Load() ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT codigo_producto, nombre, categoria, descripcion, proveedor,
		       cantidad_en_stock, precio_venta, precio_proveedor
		FROM productos
		ORDER BY posicion
	`)
	if err != nil {
		return nil, fmt.Errorf("select productos: %w", err)
	}
	defer rows.Close()

	var products []domain.Product
	for rows.Next() {
		var p domain.Product
		var category string
		if err := rows.Scan(
			&p.Code, &p.Name, &category, &p.Description, &p.Supplier,
			&p.Stock, &p.SalePrice, &p.SupplierPrice,
		); err != nil {
			return nil, fmt.Errorf("scan producto: %w", err)
		}
		p.Category = domain.Category(category)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate productos: %w", err)
	}
	return products, nil
}

// Save заменяет снимок каталога в одной транзакции.
func (s *catalogStore) Save(products []domain.Product) error {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM productos`); err != nil {
		return fmt.Errorf("clear productos: %w", err)
	}

	for i, p := range products {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO productos (
				codigo_producto, nombre, categoria, descripcion, proveedor,
				cantidad_en_stock, precio_venta, precio_proveedor, posicion
			) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		`,
			p.Code, p.Name, string(p.Category), p.Description, p.Supplier,
			p.Stock, p.SalePrice, p.SupplierPrice, i,
		); err != nil {
			return fmt.Errorf("insert producto %s: %w", p.Code, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit productos snapshot: %w", err)
	}
	return nil
}

var _ domain.CatalogStore = (*catalogStore)(nil)
