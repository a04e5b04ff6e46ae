package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"biblioteca-backend/internal/shared"
)

// Enqueuer hands background work to the asynq worker.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisAddress string) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddress}),
	}
}

func (e *Enqueuer) Close() error {
	return e.client.Close()
}

// EnqueueDeleteAssets schedules removal of the files a deleted book
// referenced.
func (e *Enqueuer) EnqueueDeleteAssets(ctx context.Context, payload shared.DeleteBookAssetsPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal delete assets payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeDeleteBookAssets, body)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(5),
		asynq.Timeout(time.Minute),
	)
	if err != nil {
		return fmt.Errorf("enqueue delete assets: %w", err)
	}
	return nil
}

// EnqueueRecoveryEmail schedules delivery of a password-recovery link.
func (e *Enqueuer) EnqueueRecoveryEmail(ctx context.Context, payload shared.SendRecoveryEmailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal recovery email payload: %w", err)
	}

	task := asynq.NewTask(shared.TypeSendRecoveryEmail, body)
	_, err = e.client.EnqueueContext(ctx, task,
		asynq.Queue(shared.QueueDefault),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	)
	if err != nil {
		return fmt.Errorf("enqueue recovery email: %w", err)
	}
	return nil
}
