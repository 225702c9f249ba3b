// Package ui ведёт диалог с оператором: нумерованные меню, таблицы и
// подсказки. Всё состояние сеанса явное — Session получает сервисы при
// создании, глобальных синглтонов нет. Презентация здесь и остаётся:
// сервисы ничего не знают о выводе.
package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/domain"
	"github.com/vladislavdragonenkov/bakery/internal/service/catalog"
	"github.com/vladislavdragonenkov/bakery/internal/service/ledger"
	"github.com/vladislavdragonenkov/bakery/internal/service/lines"
)

// Session держит поток ввода оператора, вывод и сервисы ядра.
type Session struct {
	scanner *bufio.Scanner
	out     io.Writer
	catalog *catalog.Service
	ledger  *ledger.Service
	lines   *lines.Manager
	logger  *log.Entry
	done    bool
}

// NewSession создаёт сеанс поверх произвольного ввода/вывода; в
// продакшене это stdin/stdout, в тестах — буферы.
func NewSession(
	in io.Reader,
	out io.Writer,
	catalogSvc *catalog.Service,
	ledgerSvc *ledger.Service,
	lineMgr *lines.Manager,
	logger *log.Entry,
) *Session {
	if logger == nil {
		logger = log.New().WithField("component", "ui")
	}
	return &Session{
		scanner: bufio.NewScanner(in),
		out:     out,
		catalog: catalogSvc,
		ledger:  ledgerSvc,
		lines:   lineMgr,
		logger:  logger,
	}
}

const banner = `
╔══════════════════════════════════════════╗
║            MAISON  DU  PAIN              ║
║     Sistema de Gestión de Panadería      ║
╚══════════════════════════════════════════╝`

// Run показывает баннер и крутит главное меню до явного выхода
// оператора (или конца ввода).
func (s *Session) Run() {
	fmt.Fprintln(s.out, banner)

	for !s.done {
		fmt.Fprintln(s.out, "\n=== MENÚ PRINCIPAL ===")
		fmt.Fprintln(s.out, "1. Gestión de Productos")
		fmt.Fprintln(s.out, "2. Gestión de Pedidos")
		fmt.Fprintln(s.out, "3. Salir")

		switch s.prompt("Seleccione una opción") {
		case "1":
			s.runProductsMenu()
		case "2":
			s.runOrdersMenu()
		case "3":
			s.done = true
		default:
			if !s.done {
				fmt.Fprintln(s.out, "Opción no válida")
			}
		}
	}

	fmt.Fprintln(s.out, "\n¡Gracias por usar el sistema de Maison du Pain!")
}

// prompt печатает подсказку и читает одну строку. Конец ввода
// равносилен выбору выхода.
func (s *Session) prompt(label string) string {
	fmt.Fprintf(s.out, "\n%s: ", label)
	if !s.scanner.Scan() {
		s.done = true
		return ""
	}
	return strings.TrimSpace(s.scanner.Text())
}

// promptInt запрашивает целое число, переспрашивая при опечатке.
func (s *Session) promptInt(label string) (int, bool) {
	for !s.done {
		raw := s.prompt(label)
		if s.done {
			break
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			fmt.Fprintln(s.out, "Ingrese un número entero")
			continue
		}
		return n, true
	}
	return 0, false
}

// promptFloat запрашивает десятичное число, переспрашивая при опечатке.
func (s *Session) promptFloat(label string) (float64, bool) {
	for !s.done {
		raw := s.prompt(label)
		if s.done {
			break
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Ingrese un número válido")
			continue
		}
		return v, true
	}
	return 0, false
}

// confirm спрашивает подтверждение (s/n).
func (s *Session) confirm(label string) bool {
	answer := s.prompt(label + " (s/n)")
	return strings.EqualFold(answer, "s")
}

// reportError переводит ошибку ядра в сообщение оператору. Любая ошибка
// здесь восстановимая: операция отменена, меню продолжает работать.
func (s *Session) reportError(err error) {
	switch {
	case err == nil:
		return
	case domain.IsNotFound(err):
		fmt.Fprintln(s.out, "❌ No encontrado:", unwrapMessage(err))
	case domain.IsInsufficientStock(err):
		fmt.Fprintln(s.out, "❌ No hay suficiente stock")
	case domain.IsValidation(err):
		fmt.Fprintln(s.out, "❌ Dato no válido:", unwrapMessage(err))
	default:
		s.logger.WithError(err).Error("операция завершилась с ошибкой")
		fmt.Fprintln(s.out, "❌ Error:", err)
	}
}

// unwrapMessage достаёт человекочитаемую часть обёрнутой ошибки.
func unwrapMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
