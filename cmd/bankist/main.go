package main

import (
	"fmt"

	"github.com/denmor86/ya-bankist/internal/app"
	"github.com/denmor86/ya-bankist/internal/config"
	"github.com/denmor86/ya-bankist/internal/logger"
)

func main() {
	// загрузка конфига
	config := config.NewConfig()
	if err := config.Validate(); err != nil {
		panic(err)
	}
	// инициализация логгера
	if err := logger.Initialize(config.Server.LogLevel); err != nil {
		panic(fmt.Sprintf("can't initialize logger: %s ", err.Error()))
	}
	defer logger.Sync()

	if err := app.Run(config); err != nil {
		logger.Error("Application failed", "error", err)
	}
}
