// Package codegen выводит очередной человекочитаемый код вида PREFIX-NNN.
package codegen

import (
	"fmt"
	"strconv"
	"strings"
)

// Next возвращает следующий код для префикса: берёт максимальный числовой
// суффикс среди существующих кодов с этим префиксом и прибавляет единицу
// (001, если таких кодов нет). Коды, не разбирающиеся как PREFIX-NNN,
// пропускаются; дубликаты в исходных данных не мешают — важен только максимум.
func Next(prefix string, existing []string) string {
	last := 0
	for _, code := range existing {
		n, ok := parseSuffix(prefix, code)
		if !ok {
			continue
		}
		if n > last {
			last = n
		}
	}
	return fmt.Sprintf("%s-%03d", prefix, last+1)
}

// parseSuffix выделяет числовой суффикс кода, если код принадлежит префиксу.
func parseSuffix(prefix, code string) (int, bool) {
	parts := strings.SplitN(code, "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	if !strings.EqualFold(parts[0], prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}
