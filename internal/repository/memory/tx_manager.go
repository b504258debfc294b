package memory

import (
	"context"

	"github.com/maxviazov/exchange-settings-service/internal/repository"
)

// txManager runs fn directly; every memory operation is already atomic on its own.
type txManager struct{}

func NewTxManager() repository.TxManager { return txManager{} }

func (txManager) WithinTx(ctx context.Context, fn repository.TxFunc) error { return fn(ctx) }

type pinger struct{}

// NewPinger reports the in-memory store as always ready.
func NewPinger() repository.Pinger { return pinger{} }

func (pinger) Ping(ctx context.Context) error { return ctx.Err() }
