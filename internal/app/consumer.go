package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/djfabrix/vidiemme/internal/events"
	"github.com/djfabrix/vidiemme/internal/messaging/kafka/consumer"
	"github.com/djfabrix/vidiemme/internal/shared/connection"

	"go.uber.org/zap"
)

// RunConsumer starts the lifecycle consumer that keeps the redis profile
// cache coherent across API instances.
func RunConsumer() error {
	logger := zap.L().Named("app.consumer")

	kafkaBroker := os.Getenv("KAFKA_BROKER")
	if kafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(redisAddr, 5)
	if err != nil {
		return err
	}
	defer rdb.Close()

	reader := connection.NewKafkaReader(kafkaBroker, "vidiemme-cache-invalidator", events.EmployeeLifecycleTopic)
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeEmployeeLifecycle(ctx, reader, rdb, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
