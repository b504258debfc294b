// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/exchange-settings-service/internal/model"
	"github.com/maxviazov/exchange-settings-service/internal/pagination"
)

// ErrInvalidInput is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidInput = errors.New("invalid input")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// invalidInputError aggregates multiple FieldError instances and unwraps to ErrInvalidInput.
type invalidInputError struct {
	fields []FieldError
}

func (e *invalidInputError) Error() string        { return ErrInvalidInput.Error() }
func (e *invalidInputError) Unwrap() error        { return ErrInvalidInput }
func (e *invalidInputError) Fields() []FieldError { return e.fields }

// newInvalidInput builds an aggregated validation error if any field errors are present.
func newInvalidInput(fe []FieldError) error {
	if len(fe) == 0 { // protective case
		return nil
	}
	return &invalidInputError{fields: fe}
}

// NewInvalidInputError lets transport code report parse failures in the same shape.
func NewInvalidInputError(fe []FieldError) error {
	if err := newInvalidInput(fe); err != nil {
		return err
	}
	return ErrInvalidInput
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	type feIface interface{ Fields() []FieldError }
	var v feIface
	if errors.As(err, &v) && errors.Is(err, ErrInvalidInput) {
		return v.Fields()
	}
	return nil
}

// CreateSettingInput is the raw request to store new exchange credentials.
type CreateSettingInput struct {
	Exchange  string `json:"exchange" validate:"required,min=2,max=32,alphanum"`
	Label     string `json:"label" validate:"max=64"`
	APIKey    string `json:"api_key" validate:"required,min=8,max=256,printascii"`
	APISecret string `json:"api_secret" validate:"required,min=8,max=256,printascii"`
	Enabled   *bool  `json:"enabled"`
}

// UpdateSettingInput is a partial update; nil fields keep their stored value.
type UpdateSettingInput struct {
	Label     *string `json:"label" validate:"omitempty,max=64"`
	APIKey    *string `json:"api_key" validate:"omitempty,min=8,max=256,printascii"`
	APISecret *string `json:"api_secret" validate:"omitempty,min=8,max=256,printascii"`
	Enabled   *bool   `json:"enabled"`
}

// ExchangeSettingService defines exchange credential use cases.
type ExchangeSettingService interface {
	CreateSetting(ctx context.Context, in CreateSettingInput) (model.ExchangeSettingDTO, error)
	GetSetting(ctx context.Context, id int64) (model.ExchangeSettingDTO, error)
	UpdateSetting(ctx context.Context, id int64, in UpdateSettingInput) (model.ExchangeSettingDTO, error)
	DeleteSetting(ctx context.Context, id int64) error
	// ListSettings returns one page of settings matching f; see pagination.Paginate for page rules.
	ListSettings(ctx context.Context, f model.ExchangeSettingFilter, pageNumber, pageSize int) (pagination.Page[model.ExchangeSettingDTO], error)
}

// SettingCache is the read-through cache the service keeps public DTOs in.
// Secrets are never part of a DTO, so they never reach the cache.
//
// Reads fill the cache with Add, which never overwrites, and updates write the
// fresh DTO with Set, so a read that loaded a row before a concurrent update
// cannot put the old version back. A read racing a delete can still re-add the
// deleted DTO after the key was dropped; it then lives until the cache TTL.
type SettingCache interface {
	Get(ctx context.Context, field string) (*model.ExchangeSettingDTO, error)
	Set(ctx context.Context, field string, v *model.ExchangeSettingDTO) error
	Add(ctx context.Context, field string, v *model.ExchangeSettingDTO) (bool, error)
	Delete(ctx context.Context, field string) error
}
