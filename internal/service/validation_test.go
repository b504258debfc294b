package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeExchange(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"already normalized", "binance", "binance"},
		{"upper case", "KRAKEN", "kraken"},
		{"surrounding spaces", "  Bybit ", "bybit"},
		{"only spaces", "   ", ""},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, normalizeExchange(tc.input))
		})
	}
}

func TestValidateStruct_ReportsJSONNames(t *testing.T) {
	fe := validateStruct(CreateSettingInput{Exchange: "b!", APIKey: "short"})

	byField := map[string]string{}
	for _, f := range fe {
		byField[f.Field] = f.Message
	}
	assert.Equal(t, "must contain only letters and digits", byField["exchange"])
	assert.Equal(t, "length must be at least 8", byField["api_key"])
	assert.Equal(t, "must not be empty", byField["api_secret"])
	assert.NotContains(t, byField, "APIKey")
}

func TestValidateStruct_UpdateSkipsNil(t *testing.T) {
	assert.Empty(t, validateStruct(UpdateSettingInput{}))

	long := make([]byte, 65)
	for i := range long {
		long[i] = 'x'
	}
	label := string(long)
	fe := validateStruct(UpdateSettingInput{Label: &label})
	assert.Equal(t, []FieldError{{Field: "label", Message: "length must be at most 64"}}, fe)
}
