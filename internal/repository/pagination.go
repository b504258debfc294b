package repository

import (
	"context"

	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/pagination"
)

// settingsSource binds a repository and a filter into a pagination.Source.
// Count and Slice hit storage separately, so nothing is enumerated until a page is asked for.
type settingsSource struct {
	repo   ExchangeSettingRepository
	filter model.ExchangeSettingFilter
}

// SettingsSource exposes the settings matching f as a pagination source.
func SettingsSource(repo ExchangeSettingRepository, f model.ExchangeSettingFilter) pagination.Source[model.ExchangeSetting] {
	return settingsSource{repo: repo, filter: f}
}

func (s settingsSource) Count(ctx context.Context) (int, error) {
	return s.repo.Count(ctx, s.filter)
}

func (s settingsSource) Slice(ctx context.Context, offset, limit int) ([]model.ExchangeSetting, error) {
	return s.repo.Slice(ctx, s.filter, offset, limit)
}
