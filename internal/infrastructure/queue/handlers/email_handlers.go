package handlers

import (
	"context"
	"encoding/json"

	"github.com/hibiken/asynq"

	"biblioteca-backend/internal/infrastructure/email"
	"biblioteca-backend/internal/shared"
	"biblioteca-backend/pkg/logger"
)

// SendRecoveryEmailHandler delivers the password-recovery link.
func SendRecoveryEmailHandler(mailer email.Mailer) func(ctx context.Context, t *asynq.Task) error {
	return func(ctx context.Context, t *asynq.Task) error {
		var p shared.SendRecoveryEmailPayload
		if err := json.Unmarshal(t.Payload(), &p); err != nil {
			return asynq.SkipRetry
		}

		err := mailer.SendRecoveryEmail(ctx, email.RecoveryEmail{
			To:           p.Email,
			Link:         p.Link,
			ValidMinutes: p.ValidMinutes,
		})
		if err != nil {
			return err
		}

		logger.Info("recovery email sent", map[string]interface{}{
			"email": p.Email,
		})
		return nil
	}
}
