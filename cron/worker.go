package cron

import (
	"context"
	"fmt"
	"time"

	"bookiteasy/config"
	"bookiteasy/services/tasks"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// Completer is the part of the booking service the sweep needs.
type Completer interface {
	CompleteExpiredBookings(ctx context.Context) (int64, error)
}

// SweepWorker schedules and processes the periodic booking completion task.
type SweepWorker struct {
	scheduler *asynq.Scheduler
	server    *asynq.Server
	mux       *asynq.ServeMux
	spec      string
	interval  time.Duration
	logger    *zap.Logger
}

func redisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// NewSweepWorker wires the scheduler and worker for spec (a cron expression or "@every <duration>").
func NewSweepWorker(completer Completer, spec string, logger *zap.Logger) *SweepWorker {
	if spec == "" {
		spec = "@every 1m"
	}
	opt := redisOpt()

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeCompleteExpired, handleCompleteExpired(completer, logger))

	return &SweepWorker{
		scheduler: asynq.NewScheduler(opt, &asynq.SchedulerOpts{Logger: logger.Sugar(), Location: time.UTC}),
		server: asynq.NewServer(opt, asynq.Config{
			Concurrency: 1,
			Queues:      map[string]int{"default": 1},
			Logger:      logger.Sugar(),
		}),
		mux:      mux,
		spec:     spec,
		interval: sweepInterval(spec),
		logger:   logger,
	}
}

// sweepInterval derives the task timeout from an "@every" spec, defaulting to one minute.
func sweepInterval(spec string) time.Duration {
	var raw string
	if _, err := fmt.Sscanf(spec, "@every %s", &raw); err == nil {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			return d
		}
	}
	return time.Minute
}

// Start registers the periodic task and starts both the scheduler and the worker.
func (w *SweepWorker) Start() error {
	task, opts := tasks.NewCompleteExpiredTask(w.interval)
	entryID, err := w.scheduler.Register(w.spec, task, opts...)
	if err != nil {
		return fmt.Errorf("failed to register sweep task: %w", err)
	}
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("failed to start sweep worker: %w", err)
	}
	if err := w.scheduler.Start(); err != nil {
		w.server.Shutdown()
		return fmt.Errorf("failed to start sweep scheduler: %w", err)
	}
	w.logger.Info("Booking completion sweep started", zap.String("spec", w.spec), zap.String("entryID", entryID))
	return nil
}

func (w *SweepWorker) Shutdown() {
	w.scheduler.Shutdown()
	w.server.Shutdown()
}

func handleCompleteExpired(completer Completer, logger *zap.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, _ *asynq.Task) error {
		n, err := completer.CompleteExpiredBookings(ctx)
		if err != nil {
			logger.Error("Booking completion sweep failed", zap.Error(err))
			return err
		}
		logger.Debug("Booking completion sweep finished", zap.Int64("completed", n))
		return nil
	}
}
