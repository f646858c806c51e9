package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go-tenure/internal/events"
	"go-tenure/internal/record"
	recorderrors "go-tenure/internal/record/errors"
	"go-tenure/internal/shared/apperror"
	"go-tenure/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var (
	retryBaseDelay = 500 * time.Millisecond
	retryMaxDelay  = 30 * time.Second
)

// MessageReader is the part of *kafka.Reader the consumer loop needs.
type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeRecordImports stores one record per import message until ctx ends.
// Messages that can never succeed are committed and skipped. Storage
// failures are retried with backoff and never committed.
func ConsumeRecordImports(
	ctx context.Context,
	reader MessageReader,
	recordService record.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.record_import")
	log.Info("record import consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("record import consumer stopped")
				return
			}
			log.Error("fetch record import message failed", zap.Error(err))
			continue
		}

		handleRecordImport(ctx, reader, recordService, msg, log)
	}
}

func handleRecordImport(
	ctx context.Context,
	reader MessageReader,
	recordService record.Service,
	msg kafkago.Message,
	log *zap.Logger,
) {
	var event events.RecordImportRequestedEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		log.Error("decode record import event failed",
			zap.Int64("offset", msg.Offset),
			zap.Error(err),
		)
		commit(ctx, reader, msg, log)
		return
	}

	reqLog := log.With(zap.String("request_id", event.RequestID))
	ctx = contextutil.WithRequestID(ctx, event.RequestID)
	ctx = contextutil.WithLogger(ctx, reqLog)

	req := record.ImportRecordRequest{
		HireDate:       event.HireDate,
		GrossSalary:    event.GrossSalary,
		Years:          event.Years,
		Months:         event.Months,
		Days:           event.Days,
		UpliftedSalary: event.UpliftedSalary,
	}

	// Offsets commit cumulatively, so a failed message is retried in place
	// until it succeeds or ctx ends; moving on would acknowledge it.
	for attempt := 1; ; attempt++ {
		resp, err := recordService.Import(ctx, req)
		if err == nil {
			if commit(ctx, reader, msg, reqLog) {
				reqLog.Info("record imported", zap.String("record_id", resp.ID))
			}
			return
		}

		if isPermanent(err) {
			reqLog.Warn("record import rejected, skipping",
				zap.String("hire_date", event.HireDate),
				zap.Error(err),
			)
			commit(ctx, reader, msg, reqLog)
			return
		}

		delay := retryDelay(attempt)
		reqLog.Error("record import failed, retrying",
			zap.String("hire_date", event.HireDate),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", delay),
			zap.Error(err),
		)

		select {
		case <-ctx.Done():
			reqLog.Warn("record import abandoned, message left uncommitted",
				zap.Int64("offset", msg.Offset),
			)
			return
		case <-time.After(delay):
		}
	}
}

func retryDelay(attempt int) time.Duration {
	d := retryBaseDelay
	for i := 1; i < attempt && d < retryMaxDelay; i++ {
		d *= 2
	}
	return min(d, retryMaxDelay)
}

// isPermanent reports whether retrying the same message cannot help.
func isPermanent(err error) bool {
	if errors.Is(err, recorderrors.ErrCreateFailed) {
		return false
	}
	var appErr *apperror.AppError
	if !errors.As(err, &appErr) {
		return false
	}
	return appErr.HTTPStatus >= http.StatusBadRequest && appErr.HTTPStatus < http.StatusInternalServerError
}

func commit(ctx context.Context, reader MessageReader, msg kafkago.Message, log *zap.Logger) bool {
	if err := reader.CommitMessages(ctx, msg); err != nil {
		log.Error("commit record import message failed", zap.Error(err))
		return false
	}
	return true
}
