// Package jsonfile хранит каталог и заказы в человекочитаемых JSON-файлах,
// в том же формате, что вела панадерия раньше: datos_panaderia.json для
// каталога и pedidos/{pedidos,detalles_pedidos}.json для заказов.
package jsonfile

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	catalogFile = "datos_panaderia.json"
	ordersDir   = "pedidos"
	ordersFile  = "pedidos.json"
	linesFile   = "detalles_pedidos.json"
)

// Store держит корневой каталог данных и логгер. Оба файловых
// хранилища (каталог и заказы) построены поверх него.
type Store struct {
	dataDir string
	logger  *log.Entry
}

// New возвращает Store для каталога данных dataDir.
func New(dataDir string, logger *log.Entry) *Store {
	if logger == nil {
		logger = log.New().WithField("component", "jsonfile")
	}
	return &Store{dataDir: dataDir, logger: logger}
}

// readFile читает и разбирает JSON-файл в dst. Возвращает os.ErrNotExist,
// если файла нет; ошибку разбора — если файл битый. Решение о посеве
// принимает вызывающий.
func (s *Store) readFile(path string, dst interface{}) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return errors.Wrapf(err, "decode %s", filepath.Base(path))
	}
	return nil
}

// writeFile сериализует src с отступом в четыре пробела и перезаписывает
// файл, создав недостающие каталоги.
func (s *Store) writeFile(path string, src interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create dir for %s", filepath.Base(path))
	}
	raw, err := json.MarshalIndent(src, "", "    ")
	if err != nil {
		return errors.Wrapf(err, "encode %s", filepath.Base(path))
	}
	raw = append(raw, '\n')
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return errors.Wrapf(err, "write %s", filepath.Base(path))
	}
	return nil
}
