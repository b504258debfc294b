// Package model contains domain entities and DTOs used across layers.
// I keep it lean and focused on data shapes; the only behavior is explicit DTO mapping.
package model

import (
	"strings"
	"time"
)

// ExchangeSetting holds the API credentials a user stored for one exchange account.
// The secret never leaves the service in a response, hence json:"-".
type ExchangeSetting struct {
	ID        int64     `json:"id"`
	Exchange  string    `json:"exchange"`
	Label     string    `json:"label"`
	APIKey    string    `json:"api_key"`
	APISecret string    `json:"-"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExchangeSettingDTO is the public shape of an ExchangeSetting.
type ExchangeSettingDTO struct {
	ID           int64     `json:"id"`
	Exchange     string    `json:"exchange"`
	Label        string    `json:"label"`
	APIKeyMasked string    `json:"api_key_masked"`
	HasSecret    bool      `json:"has_secret"`
	Enabled      bool      `json:"enabled"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExchangeSettingFilter narrows listing queries. Zero value matches everything.
type ExchangeSettingFilter struct {
	Exchange string
}

// ToExchangeSettingDTO maps an entity to its public DTO, masking the API key.
func ToExchangeSettingDTO(s ExchangeSetting) ExchangeSettingDTO {
	return ExchangeSettingDTO{
		ID:           s.ID,
		Exchange:     s.Exchange,
		Label:        s.Label,
		APIKeyMasked: MaskKey(s.APIKey),
		HasSecret:    s.APISecret != "",
		Enabled:      s.Enabled,
		CreatedAt:    s.CreatedAt,
		UpdatedAt:    s.UpdatedAt,
	}
}

const visibleKeyTail = 4

// MaskKey keeps the last four characters of key and stars out the rest.
// Keys of four characters or fewer are fully masked.
func MaskKey(key string) string {
	r := []rune(key)
	if len(r) == 0 {
		return ""
	}
	if len(r) <= visibleKeyTail {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-visibleKeyTail) + string(r[len(r)-visibleKeyTail:])
}
