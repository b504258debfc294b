// Package memory is a process-local ExchangeSettingRepository.
// It backs local runs without Postgres and honors the same contract suite.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/repository"
)

type settingKey struct{ exchange, label string }

type exchangeSettingRepository struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]model.ExchangeSetting
	unique map[settingKey]int64
	now    func() time.Time
}

func NewExchangeSettingRepository() repository.ExchangeSettingRepository {
	return &exchangeSettingRepository{
		nextID: 1,
		items:  map[int64]model.ExchangeSetting{},
		unique: map[settingKey]int64{},
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (r *exchangeSettingRepository) Create(ctx context.Context, s model.ExchangeSetting) (model.ExchangeSetting, error) {
	if err := ctx.Err(); err != nil {
		return model.ExchangeSetting{}, err
	}
	if s.Exchange == "" {
		return model.ExchangeSetting{}, repository.ErrConflict
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	k := settingKey{s.Exchange, s.Label}
	if _, ok := r.unique[k]; ok {
		return model.ExchangeSetting{}, repository.ErrAlreadyExists
	}
	s.ID = r.nextID
	r.nextID++
	s.CreatedAt = r.now()
	s.UpdatedAt = s.CreatedAt
	r.items[s.ID] = s
	r.unique[k] = s.ID
	return s, nil
}

func (r *exchangeSettingRepository) GetByID(ctx context.Context, id int64) (model.ExchangeSetting, error) {
	if err := ctx.Err(); err != nil {
		return model.ExchangeSetting{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	it, ok := r.items[id]
	if !ok {
		return model.ExchangeSetting{}, repository.ErrNotFound
	}
	return it, nil
}

func (r *exchangeSettingRepository) Update(ctx context.Context, s model.ExchangeSetting) (model.ExchangeSetting, error) {
	if err := ctx.Err(); err != nil {
		return model.ExchangeSetting{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	cur, ok := r.items[s.ID]
	if !ok {
		return model.ExchangeSetting{}, repository.ErrNotFound
	}
	oldKey := settingKey{cur.Exchange, cur.Label}
	newKey := settingKey{cur.Exchange, s.Label}
	if owner, taken := r.unique[newKey]; taken && owner != s.ID {
		return model.ExchangeSetting{}, repository.ErrAlreadyExists
	}
	cur.Label = s.Label
	cur.APIKey = s.APIKey
	cur.APISecret = s.APISecret
	cur.Enabled = s.Enabled
	cur.UpdatedAt = r.now()

	delete(r.unique, oldKey)
	r.unique[newKey] = cur.ID
	r.items[cur.ID] = cur
	return cur, nil
}

func (r *exchangeSettingRepository) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.items[id]
	if !ok {
		return repository.ErrNotFound
	}
	delete(r.items, id)
	delete(r.unique, settingKey{cur.Exchange, cur.Label})
	return nil
}

// matching returns the filtered settings ordered by id; callers must hold r.mu.
func (r *exchangeSettingRepository) matching(f model.ExchangeSettingFilter) []model.ExchangeSetting {
	out := make([]model.ExchangeSetting, 0, len(r.items))
	for _, it := range r.items {
		if f.Exchange == "" || it.Exchange == f.Exchange {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *exchangeSettingRepository) Count(ctx context.Context, f model.ExchangeSettingFilter) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if f.Exchange == "" {
		return len(r.items), nil
	}
	return len(r.matching(f)), nil
}

func (r *exchangeSettingRepository) Slice(ctx context.Context, f model.ExchangeSettingFilter, offset, limit int) ([]model.ExchangeSetting, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.matching(f)
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) || limit <= 0 {
		return []model.ExchangeSetting{}, nil
	}
	end := min(offset+limit, len(all))
	return all[offset:end], nil
}

var _ repository.ExchangeSettingRepository = (*exchangeSettingRepository)(nil)
