package model_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/exchange-settings-service/internal/model"
)

func TestMaskKey(t *testing.T) {
	cases := map[string]string{
		"":             "",
		"abc":          "***",
		"abcd":         "****",
		"abcdefgh":     "****efgh",
		"KEY-12345678": "********5678",
	}
	for in, want := range cases {
		assert.Equal(t, want, model.MaskKey(in), "input %q", in)
	}
}

func TestToExchangeSettingDTO(t *testing.T) {
	now := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	s := model.ExchangeSetting{
		ID: 7, Exchange: "binance", Label: "main", APIKey: "abcdefgh1234", APISecret: "s3cr3t-value",
		Enabled: true, CreatedAt: now, UpdatedAt: now,
	}
	dto := model.ToExchangeSettingDTO(s)
	assert.Equal(t, int64(7), dto.ID)
	assert.Equal(t, "binance", dto.Exchange)
	assert.Equal(t, "********1234", dto.APIKeyMasked)
	assert.True(t, dto.HasSecret)
	assert.True(t, dto.Enabled)
	assert.Equal(t, now, dto.CreatedAt)
}

func TestExchangeSetting_SecretNotSerialized(t *testing.T) {
	b, err := json.Marshal(model.ExchangeSetting{APIKey: "k", APISecret: "top-secret"})
	require.NoError(t, err)
	assert.NotContains(t, string(b), "top-secret")
}
