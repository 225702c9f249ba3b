package domain

import "time"

// MovementReason задаёт константы причин движения остатка для логов и аудита.
type MovementReason string

const (
	MovementReasonAdjust     MovementReason = "ajuste_manual"
	MovementReasonOrderLine  MovementReason = "venta"
	MovementReasonLineChange MovementReason = "cambio_cantidad"
	MovementReasonLineRemove MovementReason = "devolucion_linea"
)

// StockMovement фиксирует одно изменение остатка товара: кто-то продал,
// вернул или вручную скорректировал запас. Хранится только в памяти
// текущего сеанса.
type StockMovement struct {
	ID          string
	ProductCode string
	Delta       int
	StockBefore int
	StockAfter  int
	Reason      MovementReason
	OccurredAt  time.Time
}
