package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-tenure/internal/config"
	"go-tenure/internal/events"
	"go-tenure/internal/messaging/kafka/consumer"
	"go-tenure/internal/record"
	"go-tenure/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer stores records requested on the import topic until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	storage, err := OpenStorage(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.Close(context.Background())

	writer, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer writer.Close()

	recordService := record.NewServiceWithPublisher(storage.Repo, record.NewKafkaEventPublisher(writer))

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.RecordImportRequestedTopic,
		GroupID:        cfg.KafkaGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	done := make(chan struct{})
	go func() {
		defer close(done)
		consumer.ConsumeRecordImports(ctx, reader, recordService, logger)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()
	<-done

	return nil
}
