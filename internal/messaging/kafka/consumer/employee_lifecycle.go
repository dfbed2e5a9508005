package consumer

import (
	"context"
	"encoding/json"

	"github.com/djfabrix/vidiemme/internal/employee"
	"github.com/djfabrix/vidiemme/internal/events"

	"github.com/redis/go-redis/v9"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumeEmployeeLifecycle drops the cached employee profile whenever a
// lifecycle event arrives, so peer API instances never serve a stale or
// deleted employee out of redis.
func ConsumeEmployeeLifecycle(
	ctx context.Context,
	reader *kafkago.Reader,
	rdb *redis.Client,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.employee_lifecycle")
	log.Info("employee lifecycle consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("employee lifecycle consumer stopped")
				return
			}
			log.Error("fetch employee lifecycle message failed", zap.Error(err))
			continue
		}

		var event events.EmployeeLifecycleEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode employee lifecycle event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		cacheKey := employee.GetProfileCacheKey(event.SerialNumber)
		if err := rdb.Del(ctx, cacheKey).Err(); err != nil {
			log.Error("invalidate employee profile cache failed",
				zap.String("serial_number", event.SerialNumber),
				zap.String("key", cacheKey),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit employee lifecycle message failed", zap.Error(err))
			continue
		}

		log.Info("employee profile cache invalidated",
			zap.String("event_type", event.EventType),
			zap.String("serial_number", event.SerialNumber),
			zap.String("request_id", event.RequestID),
		)
	}
}
