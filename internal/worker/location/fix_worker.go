package location

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/nextbus-service/internal/domain"
	"github.com/nextbus-service/internal/domain/repository"
	"github.com/nextbus-service/internal/pkg/errors"
	"github.com/nextbus-service/internal/worker"
)

const (
	emptyQueuePause = 100 * time.Millisecond // пауза если стрим пуст
	errorPause      = time.Second
)

// FixReporter - приёмник фиксов (LocationProvider)
type FixReporter interface {
	ReportFix(ctx context.Context, coord domain.Coordinate) (bool, error)
}

// FixWorker читает фиксы устройства из stream:location:fixes
// и передаёт их провайдеру локации
type FixWorker struct {
	*worker.BaseWorker
	streamRepo   repository.StreamRepository
	reporter     FixReporter
	consumerName string
	batchSize    int
}

func NewFixWorker(
	streamRepo repository.StreamRepository,
	reporter FixReporter,
	consumerGroup string,
	batchSize int,
	logger *zap.Logger,
) *FixWorker {
	hostname, _ := os.Hostname()

	return &FixWorker{
		BaseWorker:   worker.NewBaseWorker("location-fixes", consumerGroup, logger),
		streamRepo:   streamRepo,
		reporter:     reporter,
		consumerName: fmt.Sprintf("%s-%d", hostname, os.Getpid()),
		batchSize:    batchSize,
	}
}

func (w *FixWorker) Start(ctx context.Context) error {
	logger := w.Logger()
	logger.Info("Starting location fix worker",
		zap.String("consumer_group", w.ConsumerGroup()),
		zap.String("consumer_name", w.consumerName),
		zap.Int("batch_size", w.batchSize))

	if err := w.streamRepo.CreateConsumerGroup(ctx, domain.StreamLocationFixes, w.ConsumerGroup()); err != nil {
		return fmt.Errorf("failed to create consumer group: %w", err)
	}

	for {
		select {
		case <-w.StopChan():
			logger.Info("Worker stopped")
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		processed, err := w.processBatch(ctx)
		pause := time.Duration(0)
		switch {
		case err != nil:
			logger.Error("Failed to process batch", zap.Error(err))
			pause = errorPause
		case processed == 0:
			pause = emptyQueuePause
		}

		if pause > 0 && !w.Pause(ctx, pause) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			logger.Info("Worker stopped")
			return nil
		}
	}
}

// processBatch возвращает число прочитанных сообщений. Битые сообщения
// и невалидные координаты подтверждаются и пропускаются; если провайдер
// не смог принять фикс, сообщение остаётся в pending.
func (w *FixWorker) processBatch(ctx context.Context) (int, error) {
	logger := w.Logger()

	messages, err := w.streamRepo.ConsumeBatch(
		ctx,
		domain.StreamLocationFixes,
		w.ConsumerGroup(),
		w.consumerName,
		w.batchSize,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to consume batch: %w", err)
	}
	if len(messages) == 0 {
		return 0, nil
	}

	ackIDs := make([]string, 0, len(messages))
	var reportErr error

	for _, msg := range messages {
		event, err := parseFix(msg)
		if err != nil {
			logger.Warn("Failed to parse fix, skipping",
				zap.String("message_id", msg.ID),
				zap.Error(err))
			ackIDs = append(ackIDs, msg.ID)
			continue
		}

		accepted, err := w.reporter.ReportFix(ctx, event.Coordinate())
		switch {
		case stderrors.Is(err, errors.ErrInvalidCoordinates):
			logger.Warn("Invalid fix coordinates, skipping",
				zap.String("message_id", msg.ID),
				zap.Float64("lat", event.Lat),
				zap.Float64("lng", event.Lng))
		case err != nil:
			reportErr = err
			continue
		case !accepted:
			logger.Debug("Fix ignored, location updating is off", zap.String("message_id", msg.ID))
		}
		ackIDs = append(ackIDs, msg.ID)
	}

	if len(ackIDs) > 0 {
		if err := w.streamRepo.AckMessages(ctx, domain.StreamLocationFixes, w.ConsumerGroup(), ackIDs); err != nil {
			// не критично - сообщения будут переобработаны
			logger.Error("Failed to ack messages", zap.Error(err))
		}
	}

	if reportErr != nil {
		return len(messages), fmt.Errorf("failed to report fix: %w", reportErr)
	}

	logger.Debug("Batch processed", zap.Int("messages", len(messages)), zap.Int("acked", len(ackIDs)))
	return len(messages), nil
}

func parseFix(msg domain.StreamMessage) (*domain.LocationFixEvent, error) {
	if msg.Data == "" {
		return nil, fmt.Errorf("missing 'data' field")
	}

	var event domain.LocationFixEvent
	if err := json.Unmarshal([]byte(msg.Data), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal fix: %w", err)
	}
	return &event, nil
}
