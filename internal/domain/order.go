package domain

import "time"

// OrderStatus описывает состояние заказа. Значения совпадают со
// строками в файле заказов.
type OrderStatus string

const (
	// OrderStatusPending — заказ создан и ещё не взят в работу.
	OrderStatusPending OrderStatus = "pendiente"
	// OrderStatusInProgress — заказ готовится.
	OrderStatusInProgress OrderStatus = "en_proceso"
	// OrderStatusDelivered — заказ выдан клиенту.
	OrderStatusDelivered OrderStatus = "entregado"
)

// OrderStatuses перечисляет допустимые статусы в порядке показа в меню.
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPending, OrderStatusInProgress, OrderStatusDelivered}
}

// Valid сообщает, входит ли статус в фиксированный набор.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusInProgress, OrderStatusDelivered:
		return true
	default:
		return false
	}
}

// ParseOrderStatus преобразует строку в статус или возвращает ErrInvalidStatus.
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

// TimeLayout — формат даты заказа в файле ("YYYY-MM-DD HH:MM:SS").
const TimeLayout = "2006-01-02 15:04:05"

// Order — шапка заказа. Total меняется только менеджером позиций и
// всегда равен сумме subtotal его позиций.
type Order struct {
	Code         string
	CustomerCode string
	CreatedAt    time.Time
	Status       OrderStatus
	Total        float64
}

// OrderLine — одна позиция заказа. Number плотно нумерует позиции
// внутри заказа (1..N без дыр), UnitPrice — снимок цены товара на
// момент создания позиции и при смене количества не пересчитывается.
type OrderLine struct {
	Number      int
	ProductCode string
	Quantity    int
	UnitPrice   float64
	Subtotal    float64
}

// LinesTotal возвращает сумму subtotal набора позиций.
func LinesTotal(lines []OrderLine) float64 {
	var total float64
	for _, line := range lines {
		total += line.Subtotal
	}
	return total
}
