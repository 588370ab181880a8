package logger

import (
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu       sync.RWMutex
	instance *zap.SugaredLogger = nil
)

// Initialize - инициализирует синглтон логера с необходимым уровнем логирования.
func Initialize(level string) error {
	// преобразуем текстовый уровень логирования в zap.AtomicLevel
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	// время в ISO8601
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}
	Set(logger)
	return nil
}

// Set - подменяет логер (например, на zap.NewNop() в тестах)
func Set(logger *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	instance = logger.Sugar()
}

// Get - метод получения объекта логгера из синглтона.
// До инициализации возвращается пустой логер, чтобы пакеты можно было тестировать изолированно.
func Get() *zap.SugaredLogger {
	mu.RLock()
	defer mu.RUnlock()
	if instance == nil {
		return zap.NewNop().Sugar()
	}
	return instance
}

// Sync - метод синхронизации буфферов
func Sync() error {
	mu.RLock()
	defer mu.RUnlock()
	if instance != nil {
		return instance.Sync()
	}
	return nil
}

// Debug - обертка над методом логирования уровня Debug
func Debug(msg string, keysAndValues ...interface{}) {
	Get().Debugw(msg, keysAndValues...)
}

// Info - обертка над методом логирования уровня Info
func Info(msg string, keysAndValues ...interface{}) {
	Get().Infow(msg, keysAndValues...)
}

// Warn - обертка над методом логирования уровня Warn
func Warn(msg string, keysAndValues ...interface{}) {
	Get().Warnw(msg, keysAndValues...)
}

// Error - обертка над методом логирования уровня Error
func Error(msg string, keysAndValues ...interface{}) {
	Get().Errorw(msg, keysAndValues...)
}

// Panic - обертка над методом логирования уровня Panic
func Panic(args ...interface{}) {
	Get().Panicln(args...)
}
