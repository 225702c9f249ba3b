package jsonfile

import (
	"path/filepath"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// productDTO повторяет схему записи товара в datos_panaderia.json.
type productDTO struct {
	Code          string  `json:"codigo_producto"`
	Name          string  `json:"nombre"`
	Category      string  `json:"categoria"`
	Description   string  `json:"descripcion"`
	Supplier      string  `json:"proveedor"`
	Stock         int     `json:"cantidad_en_stock"`
	SalePrice     float64 `json:"precio_venta"`
	SupplierPrice float64 `json:"precio_proveedor"`
}

// catalogDocument — корневой объект файла каталога.
type catalogDocument struct {
	Products []productDTO `json:"productos"`
}

// catalogStore реализует domain.CatalogStore поверх одного JSON-файла.
type catalogStore struct {
	store *Store
}

// NewCatalogStore возвращает файловое хранилище каталога.
func NewCatalogStore(store *Store) domain.CatalogStore {
	return &catalogStore{store: store}
}

func (s *catalogStore) path() string {
	return filepath.Join(s.store.dataDir, catalogFile)
}

// Load читает каталог. Отсутствующий или битый файл молча заменяется
// посевной структурой — прежнее поведение, данные не считаются ошибкой
// процесса.
func (s *catalogStore) Load() ([]domain.Product, error) {
	var doc catalogDocument
	if err := s.store.readFile(s.path(), &doc); err != nil {
		s.store.logger.WithError(err).WithField("file", catalogFile).
			Warn("файл каталога не прочитан, создаём посевную структуру")
		seeded := seedProducts()
		if err := s.Save(seeded); err != nil {
			return nil, err
		}
		return seeded, nil
	}

	products := make([]domain.Product, 0, len(doc.Products))
	for _, dto := range doc.Products {
		products = append(products, domain.Product{
			Code:          dto.Code,
			Name:          dto.Name,
			Category:      domain.Category(dto.Category),
			Description:   dto.Description,
			Supplier:      dto.Supplier,
			Stock:         dto.Stock,
			SalePrice:     dto.SalePrice,
			SupplierPrice: dto.SupplierPrice,
		})
	}
	return products, nil
}

// Save перезаписывает файл каталога целиком.
func (s *catalogStore) Save(products []domain.Product) error {
	doc := catalogDocument{Products: make([]productDTO, 0, len(products))}
	for _, p := range products {
		doc.Products = append(doc.Products, productDTO{
			Code:          p.Code,
			Name:          p.Name,
			Category:      string(p.Category),
			Description:   p.Description,
			Supplier:      p.Supplier,
			Stock:         p.Stock,
			SalePrice:     p.SalePrice,
			SupplierPrice: p.SupplierPrice,
		})
	}
	return s.store.writeFile(s.path(), doc)
}

// seedProducts — посевной каталог первой загрузки.
func seedProducts() []domain.Product {
	return []domain.Product{
		{
			Code:          "PAN-001",
			Name:          "Pan Francés",
			Category:      domain.CategoryBread,
			Description:   "Pan tradicional francés crujiente",
			Supplier:      "Panadería Central",
			Stock:         50,
			SalePrice:     1.50,
			SupplierPrice: 0.75,
		},
		{
			Code:          "PASTEL-001",
			Name:          "Torta de Chocolate",
			Category:      domain.CategoryCake,
			Description:   "Deliciosa torta de chocolate con cobertura",
			Supplier:      "Dulces Delicias",
			Stock:         10,
			SalePrice:     25.00,
			SupplierPrice: 15.00,
		},
	}
}

var _ domain.CatalogStore = (*catalogStore)(nil)
