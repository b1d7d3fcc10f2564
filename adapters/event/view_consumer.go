package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio/internal/config"
	"github.com/khoahotran/portfolio/internal/domain/analytics"
	"github.com/khoahotran/portfolio/pkg/apperror"
	"github.com/khoahotran/portfolio/pkg/logger"
)

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type ViewRecorder interface {
	Execute(ctx context.Context, ev analytics.ViewEvent) error
}

type ViewConsumer struct {
	reader   messageReader
	recorder ViewRecorder
	logger   logger.Logger
	backoff  func() backoff.BackOff
}

func defaultRetryBackOff() backoff.BackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond
	b.MaxInterval = 30 * time.Second
	return b
}

func NewKafkaViewConsumer(cfg config.Config, recorder ViewRecorder, log logger.Logger) *ViewConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicViewEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 1,
		MaxBytes: 10e6,
	})
	return &ViewConsumer{reader: reader, recorder: recorder, logger: log, backoff: defaultRetryBackOff}
}

// Run consumes view events until ctx is cancelled. Undecodable and invalid events are
// committed and skipped. An event that fails to record is retried in place, so no later
// offset of its partition is committed before it.
func (c *ViewConsumer) Run(ctx context.Context) error {
	c.logger.Info("View consumer listening", zap.String("topic", TopicViewEvents))
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			c.logger.Error("Failed to read message from Kafka", err)
			continue
		}

		l := c.logger.With(zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))

		var ev analytics.ViewEvent
		if err := json.Unmarshal(msg.Value, &ev); err != nil {
			l.Warn("Skipping undecodable view event", zap.Error(err))
			c.commit(ctx, msg)
			continue
		}

		if err := c.record(ctx, l, ev); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, apperror.ErrInvalidInput) {
				l.Warn("Skipping invalid view event", zap.Error(err))
				c.commit(ctx, msg)
				continue
			}
			return err
		}

		c.commit(ctx, msg)
	}
}

// record retries the recorder until it succeeds, rejects the event as invalid, or ctx ends.
func (c *ViewConsumer) record(ctx context.Context, l logger.Logger, ev analytics.ViewEvent) error {
	newBackOff := c.backoff
	if newBackOff == nil {
		newBackOff = defaultRetryBackOff
	}
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		err := c.recorder.Execute(ctx, ev)
		if errors.Is(err, apperror.ErrInvalidInput) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(newBackOff()),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			l.Error("Failed to record view event, retrying", err,
				zap.String("event_id", ev.EventID.String()), zap.Duration("retry_in", next))
		}),
	)
	return err
}

func (c *ViewConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.logger.Error("Failed to commit message", err)
	}
}

func (c *ViewConsumer) Close() error {
	return c.reader.Close()
}
