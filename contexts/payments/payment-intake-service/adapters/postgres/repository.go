package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"intake/contexts/payments/payment-intake-service/domain/entities"
	domainerrors "intake/contexts/payments/payment-intake-service/domain/errors"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const defaultAppendMaxRetries = 3

// Repository is the durable ledger adapter. Appends are the durability
// contract of the whole service, so transient failures are retried with
// bounded exponential backoff before the error is surfaced.
type Repository struct {
	db               *gorm.DB
	logger           *slog.Logger
	appendMaxRetries uint64
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:               db,
		logger:           logger,
		appendMaxRetries: defaultAppendMaxRetries,
	}
}

// WithAppendMaxRetries overrides the retry budget for transient append
// failures. Zero disables retrying.
func (r *Repository) WithAppendMaxRetries(retries uint64) *Repository {
	r.appendMaxRetries = retries
	return r
}

// EnsureSchema creates the ledger table if it does not exist. Idempotent;
// call once from the composition root, never per request.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&paymentEventModel{}); err != nil {
		return fmt.Errorf("migrate payment_events: %w", err)
	}
	return nil
}

func (r *Repository) AppendEvent(ctx context.Context, event entities.PaymentEvent) error {
	row := paymentEventModelFromEntity(event)

	operation := func() error {
		err := r.db.WithContext(ctx).Create(&row).Error
		switch {
		case err == nil:
			return nil
		case isUniqueViolation(err):
			// Generated row keys make collisions astronomically unlikely,
			// but a collision is a hard failure, never a retry.
			return backoff.Permanent(domainerrors.ErrDuplicateEventRow)
		case ctx.Err() != nil:
			return backoff.Permanent(err)
		default:
			r.logger.Warn("ledger append retrying",
				"event", "ledger_append_retry",
				"module", "payments/payment-intake-service",
				"layer", "adapter",
				"partition_key", event.PartitionKey,
				"row_key", event.RowKey,
				"error", err.Error(),
			)
			return err
		}
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), r.appendMaxRetries), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		if errors.Is(err, domainerrors.ErrDuplicateEventRow) {
			return err
		}
		return fmt.Errorf("%w: %v", domainerrors.ErrLedgerAppendFailed, err)
	}
	return nil
}

type paymentEventModel struct {
	PartitionKey   string          `gorm:"column:partition_key;primaryKey"`
	RowKey         string          `gorm:"column:row_key;primaryKey"`
	EventType      string          `gorm:"column:event_type"`
	Approved       bool            `gorm:"column:approved"`
	Amount         decimal.Decimal `gorm:"column:amount;type:numeric(18,2)"`
	Method         string          `gorm:"column:method"`
	Message        string          `gorm:"column:message"`
	EventTime      time.Time       `gorm:"column:event_time"`
	WriteTimestamp time.Time       `gorm:"column:write_timestamp;autoCreateTime"`
}

func (paymentEventModel) TableName() string {
	return "payment_events"
}

func paymentEventModelFromEntity(event entities.PaymentEvent) paymentEventModel {
	return paymentEventModel{
		PartitionKey: event.PartitionKey,
		RowKey:       event.RowKey,
		EventType:    event.EventType,
		Approved:     event.Approved,
		Amount:       event.Amount,
		Method:       event.Method,
		Message:      event.Message,
		EventTime:    event.EventTime.UTC(),
	}
}

// toEntity drops store bookkeeping (write_timestamp); business logic never
// sees store-assigned fields.
func (m paymentEventModel) toEntity() entities.PaymentEvent {
	return entities.PaymentEvent{
		PartitionKey: m.PartitionKey,
		RowKey:       m.RowKey,
		EventType:    m.EventType,
		Approved:     m.Approved,
		Amount:       m.Amount,
		Method:       m.Method,
		Message:      m.Message,
		EventTime:    m.EventTime,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
