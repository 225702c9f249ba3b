package ui

import (
	"fmt"
	"text/tabwriter"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
)

// runOrdersMenu крутит меню заказов до возврата в главное меню.
func (s *Session) runOrdersMenu() {
	for !s.done {
		fmt.Fprintln(s.out, "\n=== GESTIÓN DE PEDIDOS ===")
		fmt.Fprintln(s.out, "1. Crear Pedido")
		fmt.Fprintln(s.out, "2. Listar Pedidos")
		fmt.Fprintln(s.out, "3. Buscar Pedido")
		fmt.Fprintln(s.out, "4. Editar Pedido")
		fmt.Fprintln(s.out, "5. Eliminar Pedido")
		fmt.Fprintln(s.out, "6. Volver al Menú Principal")

		switch s.prompt("Seleccione una opción") {
		case "1":
			s.createOrder()
		case "2":
			s.listOrders()
		case "3":
			s.searchOrders()
		case "4":
			s.editOrder()
		case "5":
			s.deleteOrder()
		case "6":
			return
		default:
			if !s.done {
				fmt.Fprintln(s.out, "Opción no válida")
			}
		}
	}
}

func (s *Session) createOrder() {
	fmt.Fprintln(s.out, "\n=== CREAR PEDIDO ===")

	customer := s.prompt("Código del cliente")
	if s.done {
		return
	}
	order, err := s.ledger.Create(customer)
	if err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintf(s.out, "\n✅ Pedido %s creado\n", order.Code)

	s.addLinesLoop(order.Code)
}

// addLinesLoop добавляет позиции в заказ, пока оператор не введёт "fin".
// Ошибка по одной позиции не прерывает цикл.
func (s *Session) addLinesLoop(orderCode string) {
	for !s.done {
		s.listProducts()

		productCode := s.prompt("Código del producto (o 'fin' para terminar)")
		if s.done || productCode == "fin" {
			return
		}
		quantity, ok := s.promptInt("Cantidad")
		if !ok {
			return
		}

		line, err := s.lines.AddLine(orderCode, productCode, quantity)
		if err != nil {
			s.reportError(err)
			continue
		}
		fmt.Fprintf(s.out, "✅ Línea %d agregada (subtotal %.2f)\n", line.Number, line.Subtotal)
	}
}

// orderTable печатает шапки заказов выровненной таблицей.
func (s *Session) orderTable(orders []domain.Order) {
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CÓDIGO\tCLIENTE\tFECHA\tESTADO\tTOTAL")
	for _, o := range orders {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t$%.2f\n",
			o.Code, o.CustomerCode, o.CreatedAt.Format(domain.TimeLayout), o.Status, o.Total)
	}
	w.Flush()
}

// orderDetails печатает позиции одного заказа.
func (s *Session) orderDetails(orderCode string) {
	lines, err := s.lines.List(orderCode)
	if err != nil {
		s.reportError(err)
		return
	}
	if len(lines) == 0 {
		fmt.Fprintln(s.out, "\n⚠ Este pedido no tiene productos")
		return
	}

	fmt.Fprintf(s.out, "\nDetalles del pedido %s\n", orderCode)
	w := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LÍNEA\tPRODUCTO\tCANTIDAD\tPRECIO UNIT.\tSUBTOTAL")
	for _, line := range lines {
		fmt.Fprintf(w, "%d\t%s\t%d\t$%.2f\t$%.2f\n",
			line.Number, line.ProductCode, line.Quantity, line.UnitPrice, line.Subtotal)
	}
	w.Flush()
}

// maybeShowDetails предлагает посмотреть детали одного из заказов.
func (s *Session) maybeShowDetails() {
	if !s.confirm("¿Desea ver los detalles de algún pedido?") {
		return
	}
	code := s.prompt("Ingrese el código del pedido")
	if s.done {
		return
	}
	s.orderDetails(code)
}

func (s *Session) listOrders() {
	orders := s.ledger.List()
	if len(orders) == 0 {
		fmt.Fprintln(s.out, "\n⚠ No hay pedidos registrados")
		return
	}
	fmt.Fprintln(s.out, "\n--- PEDIDOS DE LA PANADERÍA ---")
	s.orderTable(orders)
	s.maybeShowDetails()
}

func (s *Session) searchOrders() {
	query := s.prompt("Ingrese código del pedido o código del cliente")
	if s.done {
		return
	}

	found := s.ledger.Find(query)
	if len(found) == 0 {
		fmt.Fprintln(s.out, "\n⚠ No se encontraron pedidos")
		return
	}
	s.orderTable(found)
	s.maybeShowDetails()
}

func (s *Session) editOrder() {
	code := s.prompt("Ingrese el código del pedido a editar")
	if s.done {
		return
	}
	if _, err := s.ledger.Get(code); err != nil {
		s.reportError(err)
		return
	}
	s.orderDetails(code)

	fmt.Fprintln(s.out, "\n=== OPCIONES DE EDICIÓN ===")
	fmt.Fprintln(s.out, "1. Cambiar estado del pedido")
	fmt.Fprintln(s.out, "2. Agregar productos al pedido")
	fmt.Fprintln(s.out, "3. Cambiar cantidad de un producto")
	fmt.Fprintln(s.out, "4. Eliminar un producto del pedido")

	switch s.prompt("Seleccione una opción") {
	case "1":
		s.changeOrderStatus(code)
	case "2":
		s.addLinesLoop(code)
	case "3":
		s.changeLineQuantity(code)
	case "4":
		s.removeLine(code)
	default:
		if !s.done {
			fmt.Fprintln(s.out, "Opción no válida")
		}
		return
	}

	if !s.done {
		fmt.Fprintln(s.out, "\n=== DETALLES ACTUALIZADOS DEL PEDIDO ===")
		s.orderDetails(code)
	}
}

func (s *Session) changeOrderStatus(orderCode string) {
	fmt.Fprintln(s.out, "\nEstados disponibles:")
	statuses := domain.OrderStatuses()
	for i, st := range statuses {
		fmt.Fprintf(s.out, "%d. %s\n", i+1, st)
	}

	n, ok := s.promptInt("Seleccione el nuevo estado (1-3)")
	if !ok {
		return
	}
	if n < 1 || n > len(statuses) {
		fmt.Fprintln(s.out, "Opción no válida")
		return
	}

	if _, err := s.ledger.SetStatus(orderCode, statuses[n-1]); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, "\n✅ Estado del pedido actualizado exitosamente")
}

func (s *Session) changeLineQuantity(orderCode string) {
	number, ok := s.promptInt("Ingrese el número de línea del producto a modificar")
	if !ok {
		return
	}

	// Показываем текущую цифру и доступный остаток (склад плюс то,
	// что позиция уже держит).
	if lines, err := s.lines.List(orderCode); err == nil {
		for _, line := range lines {
			if line.Number != number {
				continue
			}
			fmt.Fprintf(s.out, "Producto: %s\nCantidad actual: %d\n", line.ProductCode, line.Quantity)
			if product, err := s.catalog.Get(line.ProductCode); err == nil {
				fmt.Fprintf(s.out, "Stock disponible: %d\n", product.Stock+line.Quantity)
			}
		}
	}

	quantity, ok := s.promptInt("Nueva cantidad")
	if !ok {
		return
	}
	if _, err := s.lines.SetLineQuantity(orderCode, number, quantity); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, "\n✅ Cantidad actualizada exitosamente")
}

func (s *Session) removeLine(orderCode string) {
	number, ok := s.promptInt("Ingrese el número de línea del producto a eliminar")
	if !ok {
		return
	}
	if err := s.lines.RemoveLine(orderCode, number); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, "\n✅ Producto eliminado del pedido exitosamente")
}

func (s *Session) deleteOrder() {
	code := s.prompt("Ingrese el código del pedido a eliminar")
	if s.done {
		return
	}
	if _, err := s.ledger.Get(code); err != nil {
		s.reportError(err)
		return
	}
	if !s.confirm("¿Está seguro de eliminar este pedido?") {
		return
	}
	if err := s.ledger.Remove(code); err != nil {
		s.reportError(err)
		return
	}
	fmt.Fprintln(s.out, "\n✅ Pedido eliminado exitosamente")
}
