package ui

import (
	"fmt"
	"text/tabwriter"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// runProductsMenu крутит меню каталога до возврата в главное меню.
func (s *Session) runProductsMenu() {
	for !s.done {
		fmt.Fprintln(s.out, "\n=== GESTIÓN DE PRODUCTOS ===")
		fmt.Fprintln(s.out, "1. Agregar Producto")
		fmt.Fprintln(s.out, "2. Listar Productos")
		fmt.Fprintln(s.out, "3. Buscar Producto")
		fmt.Fprintln(s.out, "4. Editar Producto")
		fmt.Fprintln(s.out, "5. Eliminar Producto")
		fmt.Fprintln(s.out, "6. Movimientos de Stock")
		fmt.Fprintln(s.out, "7. Volver al Menú Principal")

		switch s.prompt("Seleccione una opción") {
		case "1":
			s.addProduct()
		case "2":
			s.listProducts()
		case "3":
			s.searchProducts()
		case "4":
			s.editProduct()
		case "5":
			s.deleteProduct()
		case "6":
			s.listMovements()
		case "7":
			return
		default:
			if !s.done {
				fmt.Fprintln(s.out, "Opción no válida")
			}
		}
	}
}

// promptCategory просит выбрать категорию из фиксированного набора.
func (s *Session) promptCategory() (domain.Category, bool) {
	fmt.Fprintln(s.out, "\nCategorías disponibles:")
	for i, c := range domain.Categories() {
		fmt.Fprintf(s.out, "%d. %s (%s)\n", i+1, c, c.Prefix())
	}

	for !s.done {
		n, ok := s.promptInt("Seleccione la categoría (1-3)")
		if !ok {
			break
		}
		categories := domain.Categories()
		if n < 1 || n > len(categories) {
			fmt.Fprintln(s.out, "Opción no válida")
			continue
		}
		return categories[n-1], true
	}
	return "", false
}

func (s *Session) addProduct() {
	fmt.Fprintln(s.out, "\n=== AGREGAR PRODUCTO ===")

	category, ok := s.promptCategory()
	if !ok {
		return
	}
	name := s.prompt("Nombre del producto")
	description := s.prompt("Descripción")
	supplier := s.prompt("Proveedor")
	stock, ok := s.promptInt("Cantidad en stock")
	if !ok {
		return
	}
	salePrice, ok := s.promptFloat("Precio de venta")
	if !ok {
		return
	}
	supplierPrice, ok := s.promptFloat("Precio del proveedor")
	if !ok {
		return
	}

	product, err := s.catalog.Add(category, name, description, supplier, stock, salePrice, supplierPrice)
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintf(s.out, "\n✅ Producto %s agregado exitosamente\n", product.Code)
}

// productTable печатает товары выровненной таблицей.
func (s *Session) productTable(products []domain.Product) {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CÓDIGO\tNOMBRE\tCATEGORÍA\tSTOCK\tPRECIO VENTA\tDESCRIPCIÓN")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.2f\t%s\n",
			p.Code, p.Name, p.Category, p.Stock, p.SalePrice, p.Description)
	}
	w.Flush()
}

func (s *Session) listProducts() {
	products := s.catalog.List()
	if len(products) == 0 {
		fmt.Fprintln(s.out, "\n⚠ No hay productos registrados")
		return
	}
	fmt.Fprintln(s.out, "\n--- PRODUCTOS DE LA PANADERÍA ---")
	s.productTable(products)
}

func (s *Session) searchProducts() {
	query := s.prompt("Ingrese código o nombre del producto")
	if s.done {
		return
	}

	found := s.catalog.Find(query)
	if len(found) == 0 {
		fmt.Fprintln(s.out, "\n⚠ No se encontraron productos")
		return
	}
	s.productTable(found)

	// Предупреждаем о товарах с низким остатком.
	for _, p := range found {
		if p.Stock < domain.LowStockThreshold {
			fmt.Fprintf(s.out, "\n⚠ ALERTA: %s tiene stock bajo (%d unidades)\n", p.Name, p.Stock)
		}
	}
}

func (s *Session) editProduct() {
	code := s.prompt("Ingrese el código del producto a editar")
	if s.done {
		return
	}
	product, err := s.catalog.Get(code)
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintf(s.out, "Editando %s (%s)\n", product.Code, product.Name)

	name := s.prompt("Nuevo nombre")
	description := s.prompt("Nueva descripción")
	supplier := s.prompt("Nuevo proveedor")
	salePrice, ok := s.promptFloat("Nuevo precio de venta")
	if !ok {
		return
	}
	supplierPrice, ok := s.promptFloat("Nuevo precio del proveedor")
	if !ok {
		return
	}
	if _, err := s.catalog.Update(code, name, description, supplier, salePrice, supplierPrice); err != nil {
		s.reportError(err)
		return
	}

	delta, ok := s.promptInt("Cantidad a agregar/quitar (positivo agrega, negativo quita)")
	if !ok {
		return
	}
	if _, err := s.catalog.AdjustStock(code, delta); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, "\n✅ Producto editado exitosamente")
}

func (s *Session) deleteProduct() {
	s.listProducts()
	code := s.prompt("Ingrese el código del producto a eliminar")
	if s.done {
		return
	}
	product, err := s.catalog.Get(code)
	if err != nil {
		s.reportError(err)
		return
	}

	fmt.Fprintln(s.out, "\n⚠ Producto a eliminar:")
	s.productTable([]domain.Product{product})
	if !s.confirm("¿Está seguro de eliminar este producto?") {
		return
	}
	if err := s.catalog.Remove(code); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, "\n✅ Producto eliminado exitosamente")
}

func (s *Session) listMovements() {
	code := s.prompt("Código del producto (vacío para todos)")
	if s.done {
		return
	}

	movements := s.catalog.Movements(code)
	if len(movements) == 0 {
		fmt.Fprintln(s.out, "\n⚠ No hay movimientos registrados en esta sesión")
		return
	}

	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "FECHA\tPRODUCTO\tMOTIVO\tDELTA\tANTES\tDESPUÉS")
	for _, m := range movements {
		fmt.Fprintf(w, "%s\t%s\t%s\t%+d\t%d\t%d\n",
			m.OccurredAt.Format(domain.TimeLayout), m.ProductCode, m.Reason,
			m.Delta, m.StockBefore, m.StockAfter)
	}
	w.Flush()
}
