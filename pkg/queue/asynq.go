// Package queue moves outbound email onto an asynq worker backed by Redis.
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/crystalices/backend/pkg/mail"
)

const TypeSendEmail = "email:send"

// RedisOpt converts a redis:// URL into asynq connection options.
func RedisOpt(url string) (asynq.RedisClientOpt, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("parse redis url: %w", err)
	}
	return asynq.RedisClientOpt{
		Addr:      opt.Addr,
		Username:  opt.Username,
		Password:  opt.Password,
		DB:        opt.DB,
		TLSConfig: opt.TLSConfig,
	}, nil
}

// Enqueuer implements mail.Sender by scheduling a delivery task.
// A nil error means the task was accepted, not that the email went out.
type Enqueuer struct {
	client *asynq.Client
	log    zerolog.Logger
}

func NewEnqueuer(redisOpt asynq.RedisClientOpt, log zerolog.Logger) *Enqueuer {
	return &Enqueuer{client: asynq.NewClient(redisOpt), log: log.With().Str("component", "queue").Logger()}
}

func (q *Enqueuer) Close() error {
	return q.client.Close()
}

func (q *Enqueuer) Send(ctx context.Context, msg mail.Message) error {
	task, err := NewSendEmailTask(msg)
	if err != nil {
		return err
	}
	info, err := q.client.EnqueueContext(ctx, task)
	if err != nil {
		q.log.Warn().Err(err).Str("subject", msg.Subject).Msg("enqueue email failed")
		return err
	}
	q.log.Debug().Str("task_id", info.ID).Str("subject", msg.Subject).Msg("email enqueued")
	return nil
}

// NewSendEmailTask wraps a message into a retrying asynq task.
func NewSendEmailTask(msg mail.Message) (*asynq.Task, error) {
	if err := msg.Validate(); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(msg)
	if err != nil {
		return nil, fmt.Errorf("encode email task: %w", err)
	}
	return asynq.NewTask(TypeSendEmail, payload, asynq.MaxRetry(5), asynq.Timeout(30*time.Second)), nil
}
