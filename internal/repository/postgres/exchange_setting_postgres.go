package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/repository"
)

const settingColumns = `id, exchange, label, api_key, api_secret, enabled, created_at, updated_at`

type exchangeSettingRepository struct{ pool *pgxpool.Pool }

func NewExchangeSettingRepository(pool *pgxpool.Pool) repository.ExchangeSettingRepository {
	return &exchangeSettingRepository{pool: pool}
}

func scanSetting(row pgx.Row) (model.ExchangeSetting, error) {
	var out model.ExchangeSetting
	err := row.Scan(&out.ID, &out.Exchange, &out.Label, &out.APIKey, &out.APISecret, &out.Enabled, &out.CreatedAt, &out.UpdatedAt)
	return out, err
}

func (r *exchangeSettingRepository) Create(ctx context.Context, s model.ExchangeSetting) (model.ExchangeSetting, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ExchangeSetting{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`INSERT INTO exchange_settings (exchange, label, api_key, api_secret, enabled)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+settingColumns,
		s.Exchange, s.Label, s.APIKey, s.APISecret, s.Enabled,
	)
	out, err := scanSetting(row)
	if err != nil {
		return model.ExchangeSetting{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *exchangeSettingRepository) GetByID(ctx context.Context, id int64) (model.ExchangeSetting, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ExchangeSetting{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx, `SELECT `+settingColumns+` FROM exchange_settings WHERE id = $1`, id)
	out, err := scanSetting(row)
	if err != nil {
		// MapPgError turns pgx.ErrNoRows into ErrNotFound.
		return model.ExchangeSetting{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *exchangeSettingRepository) Update(ctx context.Context, s model.ExchangeSetting) (model.ExchangeSetting, error) {
	if err := ensurePool(r.pool); err != nil {
		return model.ExchangeSetting{}, err
	}
	exec := getQ(ctx, r.pool)
	row := exec.QueryRow(ctx,
		`UPDATE exchange_settings
		 SET label = $2, api_key = $3, api_secret = $4, enabled = $5, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+settingColumns,
		s.ID, s.Label, s.APIKey, s.APISecret, s.Enabled,
	)
	out, err := scanSetting(row)
	if err != nil {
		return model.ExchangeSetting{}, repository.MapPgError(err)
	}
	return out, nil
}

func (r *exchangeSettingRepository) Delete(ctx context.Context, id int64) error {
	if err := ensurePool(r.pool); err != nil {
		return err
	}
	exec := getQ(ctx, r.pool)
	tag, err := exec.Exec(ctx, `DELETE FROM exchange_settings WHERE id = $1`, id)
	if err != nil {
		return repository.MapPgError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Count returns how many settings match f. An empty exchange matches all rows.
func (r *exchangeSettingRepository) Count(ctx context.Context, f model.ExchangeSettingFilter) (int, error) {
	if err := ensurePool(r.pool); err != nil {
		return 0, err
	}
	var total int
	exec := getQ(ctx, r.pool)
	err := exec.QueryRow(ctx,
		`SELECT COUNT(*) FROM exchange_settings WHERE ($1::TEXT = '' OR exchange = $1)`,
		f.Exchange,
	).Scan(&total)
	if err != nil {
		return 0, repository.MapPgError(err)
	}
	return total, nil
}

// Slice returns up to limit settings matching f starting at offset, ordered by id.
func (r *exchangeSettingRepository) Slice(ctx context.Context, f model.ExchangeSettingFilter, offset, limit int) ([]model.ExchangeSetting, error) {
	if err := ensurePool(r.pool); err != nil {
		return nil, err
	}
	limit, offset, ok := sanitizeLimitOffset(limit, offset)
	if !ok {
		return []model.ExchangeSetting{}, nil
	}
	exec := getQ(ctx, r.pool)
	rows, err := exec.Query(ctx,
		`SELECT `+settingColumns+`
		 FROM exchange_settings
		 WHERE ($1::TEXT = '' OR exchange = $1)
		 ORDER BY id
		 LIMIT $2 OFFSET $3`,
		f.Exchange, limit, offset,
	)
	if err != nil {
		return nil, repository.MapPgError(err)
	}
	defer rows.Close()

	res := make([]model.ExchangeSetting, 0, limit)
	for rows.Next() {
		it, err := scanSetting(rows)
		if err != nil {
			return nil, repository.MapPgError(err)
		}
		res = append(res, it)
	}
	if err := rows.Err(); err != nil {
		return nil, repository.MapPgError(err)
	}
	return res, nil
}

var _ repository.ExchangeSettingRepository = (*exchangeSettingRepository)(nil)
