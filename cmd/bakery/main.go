package main

import (
	"context"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/bakery/internal/app"
)

// setupLogger настраивает формат и уровень логирования.
func setupLogger(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})

	parsed, err := log.ParseLevel(level)
	if err != nil {
		parsed = log.InfoLevel
	}
	log.SetLevel(parsed)
}

func main() {
	cfg, err := app.ReadConfig()
	if err != nil {
		log.WithError(err).Fatal("конфигурация не прочитана")
	}
	setupLogger(cfg.LogLevel)

	if err := app.Run(context.Background(), cfg, os.Stdin, os.Stdout); err != nil {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}
}
