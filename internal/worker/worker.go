package worker

import (
	"context"
	"sync"
	"time"

	"github.com/denmor86/ya-bankist/internal/logger"
)

// Purger - хранилище, из которого периодически удаляются устаревшие записи
type Purger interface {
	Purge() int
}

// Reaper - периодическая очистка: истёкшие сессии, неактивные клиенты лимитера
type Reaper struct {
	Name         string
	Target       Purger
	WaitGroup    sync.WaitGroup
	QuitChan     chan struct{}
	PollInterval time.Duration
}

// NewReaper - конструктор; интервал по умолчанию - минута
func NewReaper(name string, target Purger, interval time.Duration) *Reaper {
	if interval <= 0 {
		interval = time.Minute
	}
	return &Reaper{
		Name:         name,
		Target:       target,
		QuitChan:     make(chan struct{}),
		PollInterval: interval,
	}
}

// Start - запускает воркер в фоне
func (w *Reaper) Start(ctx context.Context) {
	w.WaitGroup.Add(1)
	go w.Run(ctx)
}

// Stop - корректно останавливает воркер
func (w *Reaper) Stop() {
	close(w.QuitChan)
	w.WaitGroup.Wait()
}

// Run - основная рабочая логика
func (w *Reaper) Run(ctx context.Context) {
	defer w.WaitGroup.Done()

	ticker := time.NewTicker(w.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.QuitChan:
			logger.Info("Reaper signal stop", "name", w.Name)
			return
		case <-ctx.Done():
			logger.Info("Reaper context done", "name", w.Name)
			return
		case <-ticker.C:
			w.Reap()
		}
	}
}

// Reap - один проход очистки
func (w *Reaper) Reap() int {
	removed := w.Target.Purge()
	if removed > 0 {
		logger.Debug("Purged", "name", w.Name, "count", removed)
	}
	return removed
}
