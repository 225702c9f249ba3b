// Package version отдаёт версию сборки, заполняемую через -ldflags.
package version

import "fmt"

var (
	version = "dev"
	commit  = "unknown"
)

// String возвращает строку версии для логов.
func String() string {
	return fmt.Sprintf("%s (%s)", version, commit)
}
