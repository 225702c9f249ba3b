package postgres

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// orderStore реализует domain.OrderStore поверх таблиц pedidos и
// detalles_pedidos. Как и в файловом хранилище, два снимка сохраняются
// раздельными вызовами без общей транзакции.
type orderStore struct {
	store *Store
}

// NewOrderStore возвращает PostgreSQL-реализацию OrderStore.
func NewOrderStore(store *Store) domain.OrderStore {
	return &orderStore{store: store}
}

// LoadOrders возвращает шапки заказов в порядке вставки.
func (s *orderStore) LoadOrders() ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT codigo_pedido, codigo_cliente, fecha_pedido, estado, total
		FROM pedidos
		ORDER BY posicion
	`)
	if err != nil {
		return nil, fmt.Errorf("select pedidos: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	for rows.Next() {
		var o domain.Order
		var status string
		var createdAt time.Time
		if err := rows.Scan(&o.Code, &o.CustomerCode, &createdAt, &status, &o.Total); err != nil {
			return nil, fmt.Errorf("scan pedido: %w", err)
		}
		o.Status = domain.OrderStatus(status)
		o.CreatedAt = createdAt.Local()
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pedidos: %w", err)
	}
	return orders, nil
}

// SaveOrders заменяет снимок шапок в одной транзакции.
func (s *orderStore) SaveOrders(orders []domain.Order) error {
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

	if _, err = tx.ExecContext(ctx, `DELETE FROM pedidos`); err != nil {
		return fmt.Errorf("clear pedidos: %w", err)
	}

	for i, o := range orders {
		if _, err = tx.ExecContext(ctx, `
			INSERT INTO pedidos (
				codigo_pedido, codigo_cliente, fecha_pedido, estado, total, posicion
			) VALUES ($1,$2,$3,$4,$5,$6)
		`,
			o.Code, o.CustomerCode, o.CreatedAt, string(o.Status), o.Total, i,
		); err != nil {
			return fmt.Errorf("insert pedido %s: %w", o.Code, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit pedidos snapshot: %w", err)
	}
	return nil
}

// LoadLines возвращает позиции всех заказов.
func (s *orderStore) LoadLines() (map[string][]domain.OrderLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
	defer cancel()

	rows, err := s.store.db.QueryContext(ctx, `
		SELECT codigo_pedido, numero_linea, codigo_producto, cantidad,
		       precio_unidad, subtotal
		FROM detalles_pedidos
		ORDER BY codigo_pedido, numero_linea
	`)
	if err != nil {
		return nil, fmt.Errorf("select detalles: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]domain.OrderLine)
	for rows.Next() {
		var orderCode string
		var line domain.OrderLine
		if err := rows.Scan(
			&orderCode, &line.Number, &line.ProductCode,
			&line.Quantity, &line.UnitPrice, &line.Subtotal,
		); err != nil {
			return nil, fmt.Errorf("scan detalle: %w", err)
		}
		result[orderCode] = append(result[orderCode], line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate detalles: %w", err)
	}
	return result, nil
}

// SaveLines заменяет снимок позиций в одной транзакции.
func (s *orderStore) SaveLines(lines map[string][]domain.OrderLine) error {
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

	if _, err = tx.ExecContext(ctx, `DELETE FROM detalles_pedidos`); err != nil {
		return fmt.Errorf("clear detalles: %w", err)
	}

	codes := make([]string, 0, len(lines))
	for code := range lines {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	for _, code := range codes {
		for _, line := range lines[code] {
			if _, err = tx.ExecContext(ctx, `
				INSERT INTO detalles_pedidos (
					codigo_pedido, numero_linea, codigo_producto,
					cantidad, precio_unidad, subtotal
				) VALUES ($1,$2,$3,$4,$5,$6)
			`,
				code, line.Number, line.ProductCode,
				line.Quantity, line.UnitPrice, line.Subtotal,
			); err != nil {
				return fmt.Errorf("insert detalle %s/%d: %w", code, line.Number, err)
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit detalles snapshot: %w", err)
	}
	return nil
}

var _ domain.OrderStore = (*orderStore)(nil)
