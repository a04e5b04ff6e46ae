package queue

import (
	"time"

	"github.com/hibiken/asynq"

	"biblioteca-backend/internal/shared"
	"biblioteca-backend/pkg/logger"
)

type Scheduler struct {
	scheduler *asynq.Scheduler
	sweepCron string
}

func NewScheduler(redisAddress, sweepCron string) *Scheduler {
	scheduler := asynq.NewScheduler(
		asynq.RedisClientOpt{Addr: redisAddress},
		&asynq.SchedulerOpts{
			Location: time.UTC,
			LogLevel: asynq.InfoLevel,
		},
	)

	return &Scheduler{scheduler: scheduler, sweepCron: sweepCron}
}

// RegisterJobs wires the periodic jobs. The orphan sweep reconciles
// the asset store with the livros table for files that inline and
// queued cleanup both missed.
func (s *Scheduler) RegisterJobs() error {
	task := asynq.NewTask(shared.TypeSweepOrphans, nil)

	_, err := s.scheduler.Register(
		s.sweepCron,
		task,
		asynq.Queue(shared.QueueLow),
		asynq.MaxRetry(1),
		asynq.Timeout(10*time.Minute),
	)
	if err != nil {
		logger.Error("Failed to register SweepOrphans job", err)
		return err
	}

	logger.Info("Registered SweepOrphans job", map[string]interface{}{
		"cron": s.sweepCron,
	})
	return nil
}

func (s *Scheduler) Run() error {
	return s.scheduler.Run()
}

func (s *Scheduler) Shutdown() {
	s.scheduler.Shutdown()
}
