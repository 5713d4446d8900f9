package app

import (
	"context"
	"time"

	"github.com/mph199/eduvite-backend/internal/usecase/auto_assign"
)

// Sweeper выполняет один проход автоназначения
type Sweeper interface {
	Execute(ctx context.Context) (*auto_assign.Report, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Scheduler управляет фоновым автоназначением просроченных заявок.
// Единственный фоновый процесс сервиса, рассчитан на один инстанс.
type Scheduler struct {
	sweeper  Sweeper
	interval time.Duration
	logger   Logger
	stopChan chan struct{}
}

// NewScheduler создаёт новый планировщик
func NewScheduler(sweeper Sweeper, interval time.Duration, logger Logger) *Scheduler {
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновый проход
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting auto-assign scheduler (interval %s)", s.interval)
	go s.run(ctx)
}

// Stop останавливает фоновый проход
func (s *Scheduler) Stop() {
	s.logger.Info("Stopping auto-assign scheduler")
	close(s.stopChan)
}

func (s *Scheduler) run(ctx context.Context) {
	// Первый проход сразу при старте
	s.sweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			s.logger.Info("Auto-assign scheduler stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Auto-assign scheduler cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	report, err := s.sweeper.Execute(ctx)
	if err != nil {
		s.logger.Error("Auto-assign sweep failed: %v", err)
		return
	}
	if report.Scanned > 0 {
		s.logger.Info("Auto-assign sweep: scanned=%d assigned=%d failed=%d",
			report.Scanned, report.Assigned, report.Failed)
	}
}
