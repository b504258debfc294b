package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/notify"
	"github.com/maxviazov/exchange-settings-service/internal/pagination"
	"github.com/maxviazov/exchange-settings-service/internal/repository"
	"github.com/rs/zerolog"
)

// Notification titles emitted on successful writes.
const (
	EventSettingCreated = "exchange_setting.created"
	EventSettingUpdated = "exchange_setting.updated"
	EventSettingDeleted = "exchange_setting.deleted"
)

// exchangeSettingService holds credential use-case logic: validation + orchestration, no transport / SQL details.
type exchangeSettingService struct {
	repo     repository.ExchangeSettingRepository
	tx       repository.TxManager
	cache    SettingCache
	notifier notify.Notifier
	log      zerolog.Logger
}

// NewExchangeSettingService wires the use cases. cache may be nil; a nil notifier drops notifications.
func NewExchangeSettingService(repo repository.ExchangeSettingRepository, tx repository.TxManager, cache SettingCache, notifier notify.Notifier, logger zerolog.Logger) ExchangeSettingService {
	l := logger.With().Str("module", "service").Str("component", "exchange_setting").Logger()
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &exchangeSettingService{repo: repo, tx: tx, cache: cache, notifier: notifier, log: l}
}

func cacheField(id int64) string { return strconv.FormatInt(id, 10) }

func validID(id int64) error {
	if id <= 0 {
		return newInvalidInput([]FieldError{{Field: "id", Message: "must be > 0"}})
	}
	return nil
}

func (s *exchangeSettingService) CreateSetting(ctx context.Context, in CreateSettingInput) (model.ExchangeSettingDTO, error) {
	start := time.Now()
	in.Exchange = normalizeExchange(in.Exchange)
	in.Label = strings.TrimSpace(in.Label)
	in.APIKey = strings.TrimSpace(in.APIKey)
	in.APISecret = strings.TrimSpace(in.APISecret)

	if err := newInvalidInput(validateStruct(in)); err != nil {
		s.log.Debug().Str("exchange", in.Exchange).Interface("field_errors", FieldErrors(err)).Msg("setting validation failed")
		return model.ExchangeSettingDTO{}, err
	}

	enabled := true
	if in.Enabled != nil {
		enabled = *in.Enabled
	}
	out, err := s.repo.Create(ctx, model.ExchangeSetting{
		Exchange:  in.Exchange,
		Label:     in.Label,
		APIKey:    in.APIKey,
		APISecret: in.APISecret,
		Enabled:   enabled,
	})
	if err != nil {
		// Repository surfaces domain-level errors already, do not wrap.
		s.log.Error().Err(err).Str("exchange", in.Exchange).Str("label", in.Label).Msg("create setting failed")
		return model.ExchangeSettingDTO{}, err
	}

	dto := model.ToExchangeSettingDTO(out)
	s.notify(ctx, EventSettingCreated, dto)
	s.log.Info().Dur("took", time.Since(start)).Int64("setting_id", out.ID).Str("exchange", out.Exchange).Msg("setting created")
	return dto, nil
}

func (s *exchangeSettingService) GetSetting(ctx context.Context, id int64) (model.ExchangeSettingDTO, error) {
	if err := validID(id); err != nil {
		return model.ExchangeSettingDTO{}, err
	}
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheField(id))
		if err != nil {
			// cache is an optimization; fall through to storage
			s.log.Warn().Err(err).Int64("setting_id", id).Msg("cache get failed")
		} else if cached != nil {
			return *cached, nil
		}
	}

	out, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return model.ExchangeSettingDTO{}, err
	}
	dto := model.ToExchangeSettingDTO(out)
	if s.cache != nil {
		if _, err := s.cache.Add(ctx, cacheField(id), &dto); err != nil {
			s.log.Warn().Err(err).Int64("setting_id", id).Msg("cache add failed")
		}
	}
	return dto, nil
}

func (s *exchangeSettingService) UpdateSetting(ctx context.Context, id int64, in UpdateSettingInput) (model.ExchangeSettingDTO, error) {
	if err := validID(id); err != nil {
		return model.ExchangeSettingDTO{}, err
	}
	in.Label = trimmed(in.Label)
	in.APIKey = trimmed(in.APIKey)
	in.APISecret = trimmed(in.APISecret)
	if err := newInvalidInput(validateStruct(in)); err != nil {
		return model.ExchangeSettingDTO{}, err
	}

	var out model.ExchangeSetting
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if in.Label != nil {
			cur.Label = *in.Label
		}
		if in.APIKey != nil {
			cur.APIKey = *in.APIKey
		}
		if in.APISecret != nil {
			cur.APISecret = *in.APISecret
		}
		if in.Enabled != nil {
			cur.Enabled = *in.Enabled
		}
		out, err = s.repo.Update(ctx, cur)
		return err
	})
	if err != nil {
		s.log.Error().Err(err).Int64("setting_id", id).Msg("update setting failed")
		return model.ExchangeSettingDTO{}, err
	}

	dto := model.ToExchangeSettingDTO(out)
	s.refresh(ctx, dto)
	s.notify(ctx, EventSettingUpdated, dto)
	return dto, nil
}

func (s *exchangeSettingService) DeleteSetting(ctx context.Context, id int64) error {
	if err := validID(id); err != nil {
		return err
	}
	var gone model.ExchangeSetting
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		cur, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		gone = cur
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.notify(ctx, EventSettingDeleted, model.ToExchangeSettingDTO(gone))
	return nil
}

func (s *exchangeSettingService) ListSettings(ctx context.Context, f model.ExchangeSettingFilter, pageNumber, pageSize int) (pagination.Page[model.ExchangeSettingDTO], error) {
	f.Exchange = normalizeExchange(f.Exchange)
	src := repository.SettingsSource(s.repo, f)

	// Count and Slice run in one transaction so a page never mixes two snapshots.
	var page pagination.Page[model.ExchangeSetting]
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		page, err = pagination.Paginate(ctx, src, pageNumber, pageSize)
		return err
	})
	if err != nil {
		level := zerolog.ErrorLevel
		if errors.Is(err, pagination.ErrInvalidArgument) {
			level = zerolog.DebugLevel
		}
		s.log.WithLevel(level).Err(err).Str("exchange", f.Exchange).Int("page", pageNumber).Int("page_size", pageSize).Msg("list settings failed")
		return pagination.Page[model.ExchangeSettingDTO]{}, err
	}
	return pagination.Map(page, model.ToExchangeSettingDTO), nil
}

// refresh overwrites the cached DTO after a committed update; on failure the entry is dropped instead.
func (s *exchangeSettingService) refresh(ctx context.Context, dto model.ExchangeSettingDTO) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheField(dto.ID), &dto); err != nil {
		s.log.Warn().Err(err).Int64("setting_id", dto.ID).Msg("cache refresh failed")
		s.invalidate(ctx, dto.ID)
	}
}

func (s *exchangeSettingService) invalidate(ctx context.Context, id int64) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, cacheField(id)); err != nil {
		s.log.Warn().Err(err).Int64("setting_id", id).Msg("cache invalidation failed")
	}
}

// notify never fails the use case; delivery problems are only logged.
func (s *exchangeSettingService) notify(ctx context.Context, title string, dto model.ExchangeSettingDTO) {
	desc := dto.Exchange
	if dto.Label != "" {
		desc += "/" + dto.Label
	}
	if err := s.notifier.Notify(ctx, title, desc, dto); err != nil {
		s.log.Warn().Err(err).Str("title", title).Int64("setting_id", dto.ID).Msg("notification failed")
	}
}

func trimmed(p *string) *string {
	if p == nil {
		return nil
	}
	v := strings.TrimSpace(*p)
	return &v
}
