// Package contract holds behavior suites every repository implementation must pass.
// Implementations wire their own factories; the suites never know which storage they hit.
package contract

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/pagination"
	"github.com/maxviazov/exchange-settings-service/internal/repository"
)

type (
	SettingFactory func(t *testing.T) (repository.ExchangeSettingRepository, func())
	TxFactory      func(t *testing.T) (repository.TxManager, repository.ExchangeSettingRepository, func())
	PingerFactory  func(t *testing.T) (repository.Pinger, func())
)

func newSetting(exchange, label string) model.ExchangeSetting {
	return model.ExchangeSetting{
		Exchange:  exchange,
		Label:     label,
		APIKey:    "key-" + exchange + "-" + label,
		APISecret: "secret-" + exchange + "-" + label,
		Enabled:   true,
	}
}

func seed(t *testing.T, repo repository.ExchangeSettingRepository, exchange string, n int) []model.ExchangeSetting {
	t.Helper()
	out := make([]model.ExchangeSetting, 0, n)
	for i := 0; i < n; i++ {
		s, err := repo.Create(context.Background(), newSetting(exchange, fmt.Sprintf("acc-%02d", i)))
		if err != nil {
			t.Fatalf("seed %s #%d: %v", exchange, i, err)
		}
		out = append(out, s)
	}
	return out
}

func RunExchangeSettingRepositoryContract(t *testing.T, makeRepo SettingFactory) {
	t.Helper()

	t.Run("create_get", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s, err := repo.Create(ctx, newSetting("binance", "main"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if s.ID <= 0 || s.CreatedAt.IsZero() {
			t.Fatalf("expected id and timestamps, got %+v", s)
		}
		got, err := repo.GetByID(ctx, s.ID)
		if err != nil {
			t.Fatalf("get: %v", err)
		}
		if got.APISecret != "secret-binance-main" || got.Exchange != "binance" || !got.Enabled {
			t.Fatalf("mismatch: %+v", got)
		}
	})

	t.Run("create_duplicate", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		if _, err := repo.Create(ctx, newSetting("kraken", "main")); err != nil {
			t.Fatalf("create: %v", err)
		}
		_, err := repo.Create(ctx, newSetting("kraken", "main"))
		if err == nil || err != repository.ErrAlreadyExists {
			t.Fatalf("expected ErrAlreadyExists, got %v", err)
		}
	})

	t.Run("get_not_found", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		_, err := repo.GetByID(context.Background(), 42424242)
		if err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s, err := repo.Create(ctx, newSetting("bybit", "main"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		s.Label = "renamed"
		s.APIKey = "new-key-123456"
		s.Enabled = false
		up, err := repo.Update(ctx, s)
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if up.Label != "renamed" || up.APIKey != "new-key-123456" || up.Enabled {
			t.Fatalf("update not applied: %+v", up)
		}
		if up.UpdatedAt.Before(up.CreatedAt) {
			t.Fatalf("updated_at before created_at: %+v", up)
		}

		s.ID = 99999999
		if _, err := repo.Update(ctx, s); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		s, err := repo.Create(ctx, newSetting("okx", "main"))
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if err := repo.Delete(ctx, s.ID); err != nil {
			t.Fatalf("delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, s.ID); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, s.ID); err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound on second delete, got %v", err)
		}
		// label is free again
		if _, err := repo.Create(ctx, newSetting("okx", "main")); err != nil {
			t.Fatalf("recreate: %v", err)
		}
	})

	t.Run("count_and_slice_filtered", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seed(t, repo, "binance", 4)
		seed(t, repo, "kraken", 3)

		all, err := repo.Count(ctx, model.ExchangeSettingFilter{})
		if err != nil || all != 7 {
			t.Fatalf("count all: n=%d err=%v", all, err)
		}
		kr, err := repo.Count(ctx, model.ExchangeSettingFilter{Exchange: "kraken"})
		if err != nil || kr != 3 {
			t.Fatalf("count kraken: n=%d err=%v", kr, err)
		}
		items, err := repo.Slice(ctx, model.ExchangeSettingFilter{Exchange: "kraken"}, 1, 5)
		if err != nil {
			t.Fatalf("slice: %v", err)
		}
		if len(items) != 2 || items[0].Exchange != "kraken" || items[0].ID >= items[1].ID {
			t.Fatalf("unexpected slice: %+v", items)
		}
		empty, err := repo.Slice(ctx, model.ExchangeSettingFilter{}, 100, 5)
		if err != nil || len(empty) != 0 {
			t.Fatalf("expected empty slice past end, got %d err=%v", len(empty), err)
		}
	})

	t.Run("slice_large_limit", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		const n = 1010
		seed(t, repo, "okx", n)

		items, err := repo.Slice(ctx, model.ExchangeSettingFilter{}, 0, 1500)
		if err != nil || len(items) != n {
			t.Fatalf("expected all %d rows for a large limit, got %d err=%v", n, len(items), err)
		}
		none, err := repo.Slice(ctx, model.ExchangeSettingFilter{}, 0, 0)
		if err != nil || len(none) != 0 {
			t.Fatalf("expected no rows for limit 0, got %d err=%v", len(none), err)
		}

		src := repository.SettingsSource(repo, model.ExchangeSettingFilter{Exchange: "okx"})
		first, err := pagination.Paginate(ctx, src, 1, 1005)
		if err != nil || len(first.Items) != 1005 {
			t.Fatalf("expected a full first page of 1005, got %d err=%v", len(first.Items), err)
		}
		second, err := pagination.Paginate(ctx, src, 2, 1005)
		if err != nil || len(second.Items) != n-1005 {
			t.Fatalf("expected %d items on the last page, got %d err=%v", n-1005, len(second.Items), err)
		}
		if second.Items[0].ID <= first.Items[len(first.Items)-1].ID {
			t.Fatalf("pages overlap or are out of order")
		}
	})

	t.Run("paginate_through_source", func(t *testing.T) {
		repo, cleanup := makeRepo(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		seeded := seed(t, repo, "binance", 10)
		src := repository.SettingsSource(repo, model.ExchangeSettingFilter{Exchange: "binance"})

		var ids []int64
		for n := 1; n <= 5; n++ {
			p, err := pagination.Paginate(ctx, src, n, 3)
			if err != nil {
				t.Fatalf("page %d: %v", n, err)
			}
			if p.TotalCount != 10 || p.TotalPages != 4 {
				t.Fatalf("page %d: totals %d/%d", n, p.TotalCount, p.TotalPages)
			}
			for _, it := range p.Items {
				ids = append(ids, it.ID)
			}
			if n == 5 && len(p.Items) != 0 {
				t.Fatalf("expected empty page past end, got %d", len(p.Items))
			}
		}
		if len(ids) != len(seeded) {
			t.Fatalf("expected %d ids across pages, got %d", len(seeded), len(ids))
		}
		for i := range seeded {
			if ids[i] != seeded[i].ID {
				t.Fatalf("order mismatch at %d: %d != %d", i, ids[i], seeded[i].ID)
			}
		}
	})
}

func RunTxManagerContract(t *testing.T, makeTx TxFactory) {
	t.Helper()

	t.Run("commit_on_nil_error", func(t *testing.T) {
		tx, repo, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := repo.Create(ctx, newSetting("binance", "tx-commit"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return nil
		})
		if err != nil {
			t.Fatalf("WithinTx: %v", err)
		}
		if _, err := repo.GetByID(ctx, createdID); err != nil {
			t.Fatalf("expected committed row visible, got err=%v", err)
		}
	})

	t.Run("rollback_on_error", func(t *testing.T) {
		tx, repo, cleanup := makeTx(t)
		t.Cleanup(cleanup)
		ctx := context.Background()
		var createdID int64
		errMarker := errors.New("boom")
		err := tx.WithinTx(ctx, func(ctx context.Context) error {
			out, err := repo.Create(ctx, newSetting("binance", "tx-rollback"))
			if err != nil {
				return err
			}
			createdID = out.ID
			return errMarker
		})
		if !errors.Is(err, errMarker) {
			t.Fatalf("expected marker error, got %v", err)
		}
		if _, err := repo.GetByID(ctx, createdID); err == nil || err != repository.ErrNotFound {
			t.Fatalf("expected ErrNotFound after rollback, got %v", err)
		}
	})
}

func RunPingerContract(t *testing.T, makePinger PingerFactory) {
	t.Helper()
	t.Run("ping_ok", func(t *testing.T) {
		p, cleanup := makePinger(t)
		t.Cleanup(cleanup)
		if err := p.Ping(context.Background()); err != nil {
			t.Fatalf("expected ping ok, got %v", err)
		}
	})
}
