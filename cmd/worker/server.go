package main

import (
	"context"
	"log"

	"github.com/hibiken/asynq"

	"biblioteca-backend/internal/infrastructure/queue/handlers"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/pkg/container"
)

type asynqServer struct {
	*asynq.Server
}

func setupAsynqServer(c *container.Container) *asynqServer {
	mux := asynq.NewServeMux()
	mux.HandleFunc(shared.TypeDeleteBookAssets, handlers.DeleteBookAssetsHandler(c.Assets))
	mux.HandleFunc(shared.TypeSweepOrphans, handlers.SweepOrphansHandler(c.BookRepo, c.Assets))
	mux.HandleFunc(shared.TypeSendRecoveryEmail, handlers.SendRecoveryEmailHandler(c.Mailer))

	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: c.Config.Worker.RedisAddr},
		asynq.Config{
			Queues: map[string]int{
				shared.QueueDefault: 10,
				shared.QueueLow:     5,
			},
			Concurrency: c.Config.Worker.Concurrency,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("[Asynq] Task failed - Type: %s, Error: %v", task.Type(), err)
			}),
		},
	)

	go func() {
		log.Println("[Worker] Starting...")
		if err := srv.Run(mux); err != nil {
			log.Fatalf("[Worker] Failed: %v", err)
		}
	}()

	return &asynqServer{Server: srv}
}

func (s *asynqServer) Shutdown() {
	log.Println("[Worker] Shutting down...")
	s.Server.Shutdown()
}
