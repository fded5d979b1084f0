package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/pkg/mail"
)

// Worker runs asynq task handlers that hand queued email to the real sender.
type Worker struct {
	srv    *asynq.Server
	mux    *asynq.ServeMux
	sender mail.Sender
	log    zerolog.Logger
}

// NewWorker creates an asynq server and registers handlers. Call Run() to start.
func NewWorker(redisOpt asynq.RedisClientOpt, sender mail.Sender, concurrency int, log zerolog.Logger) *Worker {
	if concurrency <= 0 {
		concurrency = 2
	}
	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency: concurrency,
		LogLevel:    asynq.WarnLevel,
	})
	w := newWorker(sender, log)
	w.srv = srv
	return w
}

func newWorker(sender mail.Sender, log zerolog.Logger) *Worker {
	w := &Worker{mux: asynq.NewServeMux(), sender: sender, log: log.With().Str("component", "queue.worker").Logger()}
	w.mux.HandleFunc(TypeSendEmail, w.handleSendEmail)
	return w
}

// Run blocks until Shutdown is called or the server fails.
func (w *Worker) Run() error {
	return w.srv.Run(w.mux)
}

func (w *Worker) Shutdown() {
	w.srv.Shutdown()
}

func (w *Worker) handleSendEmail(ctx context.Context, t *asynq.Task) error {
	var msg mail.Message
	if err := json.Unmarshal(t.Payload(), &msg); err != nil {
		w.log.Error().Err(err).Msg("email task payload invalid")
		return fmt.Errorf("decode email task: %v: %w", err, asynq.SkipRetry)
	}
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}
	if err := w.sender.Send(ctx, msg); err != nil {
		w.log.Warn().Err(err).Str("subject", msg.Subject).Msg("email delivery failed, will retry")
		return err
	}
	return nil
}
