package domain

// Category описывает категорию товара пекарни. Набор фиксирован,
// значения совпадают со строками, которые пишутся в JSON-файлы.
type Category string

const (
	// CategoryBread — хлеб, коды вида PAN-NNN.
	CategoryBread Category = "pan"
	// CategoryCake — пироги и торты, коды вида PT-NNN.
	CategoryCake Category = "pastel"
	// CategoryDessert — десерты, коды вида PS-NNN.
	CategoryDessert Category = "postre"
)

// Categories перечисляет допустимые категории в порядке показа в меню.
func Categories() []Category {
	return []Category{CategoryBread, CategoryCake, CategoryDessert}
}

// Prefix возвращает префикс кода товара для категории.
func (c Category) Prefix() string {
	switch c {
	case CategoryBread:
		return "PAN"
	case CategoryCake:
		return "PT"
	case CategoryDessert:
		return "PS"
	default:
		return ""
	}
}

// Valid сообщает, входит ли категория в фиксированный набор.
func (c Category) Valid() bool {
	return c.Prefix() != ""
}

// ParseCategory преобразует строку в категорию или возвращает ErrInvalidCategory.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Product — товар каталога. Code неизменяем после присвоения,
// Stock меняется только через операции корректировки остатка.
type Product struct {
	Code          string
	Name          string
	Category      Category
	Description   string
	Supplier      string
	Stock         int
	SalePrice     float64
	SupplierPrice float64
}

// LowStockThreshold — порог, ниже которого поиск подсвечивает товар.
const LowStockThreshold = 5
