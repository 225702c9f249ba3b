// Package postgres — альтернативный драйвер хранения: те же снимки
// каталога и заказов, что пишет jsonfile, но в таблицах PostgreSQL.
// Включается конфигурацией BAKERY_STORAGE_DRIVER=postgres.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	defaultConnTimeout = 5 * time.Second
	opTimeout          = 5 * time.Second
)

// Store оборачивает SQL-подключение к PostgreSQL.
type Store struct {
	db *sql.DB
}

// Open открывает подключение, проверяет доступность базы и создаёт
// недостающие таблицы.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres connection: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultConnTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	store := &Store{db: db}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// DB возвращает raw SQL DB, когда нужен низкоуровневый доступ.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close закрывает подключение к БД.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// DDL разбит на отдельные запросы: pgx в протоколе extended query не
// исполняет несколько statement за один Exec.
var schemaDDL = []string{`
CREATE TABLE IF NOT EXISTS productos (
    codigo_producto   TEXT PRIMARY KEY,
    nombre            TEXT NOT NULL,
    categoria         TEXT NOT NULL,
    descripcion       TEXT NOT NULL DEFAULT '',
    proveedor         TEXT NOT NULL DEFAULT '',
    cantidad_en_stock INTEGER NOT NULL,
    precio_venta      DOUBLE PRECISION NOT NULL,
    precio_proveedor  DOUBLE PRECISION NOT NULL,
    posicion          INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS pedidos (
    codigo_pedido  TEXT PRIMARY KEY,
    codigo_cliente TEXT NOT NULL,
    fecha_pedido   TIMESTAMPTZ NOT NULL,
    estado         TEXT NOT NULL,
    total          DOUBLE PRECISION NOT NULL,
    posicion       INTEGER NOT NULL
)`, `
CREATE TABLE IF NOT EXISTS detalles_pedidos (
    codigo_pedido   TEXT NOT NULL,
    numero_linea    INTEGER NOT NULL,
    codigo_producto TEXT NOT NULL,
    cantidad        INTEGER NOT NULL,
    precio_unidad   DOUBLE PRECISION NOT NULL,
    subtotal        DOUBLE PRECISION NOT NULL,
    PRIMARY KEY (codigo_pedido, numero_linea)
)`}

// ensureSchema создаёт таблицы, если их ещё нет.
func (s *Store) ensureSchema(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	for _, ddl := range schemaDDL {
		if _, err := s.db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}
