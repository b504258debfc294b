package repository

import (
	"context"

	"github.com/maxviazov/exchange-settings-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ExchangeSettingRepository declares persistence operations for exchange credentials.
// Count and Slice must agree on filter and ordering (by id) so they can back a paginator.
type ExchangeSettingRepository interface {
	Create(ctx context.Context, s model.ExchangeSetting) (model.ExchangeSetting, error)
	GetByID(ctx context.Context, id int64) (model.ExchangeSetting, error)
	Update(ctx context.Context, s model.ExchangeSetting) (model.ExchangeSetting, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context, f model.ExchangeSettingFilter) (int, error)
	Slice(ctx context.Context, f model.ExchangeSettingFilter, offset, limit int) ([]model.ExchangeSetting, error)
}
