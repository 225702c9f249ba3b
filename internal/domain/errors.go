package domain

import "errors"

var (
	// ErrProductNotFound возвращается, если товара с таким кодом нет в каталоге.
	ErrProductNotFound = errors.New("product not found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = errors.New("order not found")
	// ErrLineNotFound возвращается, если в заказе нет позиции с таким номером.
	ErrLineNotFound = errors.New("order line not found")
	// ErrInsufficientStock — запрошенное количество превышает доступный остаток.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidCategory — категория вне фиксированного набора.
	ErrInvalidCategory = errors.New("invalid product category")
	// ErrInvalidStatus — статус заказа вне фиксированного набора.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidQuantity — количество в позиции должно быть больше нуля.
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
	// ErrNegativeAmount — остаток и цены не могут быть отрицательными.
	ErrNegativeAmount = errors.New("amount must be non-negative")
	// ErrDuplicateCode — код уже занят в коллекции.
	ErrDuplicateCode = errors.New("code already exists")
)

// IsNotFound проверяет, что ошибка означает отсутствие записи в любой
// из коллекций.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrOrderNotFound) ||
		errors.Is(err, ErrLineNotFound)
}

// IsValidation проверяет, что ошибка вызвана некорректным вводом.
func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidCategory) ||
		errors.Is(err, ErrInvalidStatus) ||
		errors.Is(err, ErrInvalidQuantity) ||
		errors.Is(err, ErrNegativeAmount)
}

// IsInsufficientStock проверяет, что ошибка вызвана нехваткой остатка.
func IsInsufficientStock(err error) bool {
	return errors.Is(err, ErrInsufficientStock)
}
