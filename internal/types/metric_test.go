package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRawValue_MarshalsBareValues(t *testing.T) {
	tests := []struct {
		name string
		raw  RawValue
		want string
	}{
		{"count", CountRaw(12), `12`},
		{"zero count", CountRaw(0), `0`},
		{"tag", TagRaw("money-back"), `"money-back"`},
		{"flag true", FlagRaw(true), `true`},
		{"flag false", FlagRaw(false), `false`},
		{"zero value", RawValue{}, `0`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(data))
		})
	}
}

func TestRawValue_UnmarshalPicksVariant(t *testing.T) {
	var raw RawValue

	require.NoError(t, json.Unmarshal([]byte(`"none"`), &raw))
	tag, ok := raw.Tag()
	assert.True(t, ok)
	assert.Equal(t, "none", tag)
	assert.Equal(t, RawTag, raw.Kind())

	require.NoError(t, json.Unmarshal([]byte(`7`), &raw))
	count, ok := raw.Count()
	assert.True(t, ok)
	assert.Equal(t, 7.0, count)

	require.NoError(t, json.Unmarshal([]byte(`true`), &raw))
	flag, ok := raw.Flag()
	assert.True(t, ok)
	assert.True(t, flag)

	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &raw))
}

func TestRawValue_String(t *testing.T) {
	assert.Equal(t, "3", CountRaw(3).String())
	assert.Equal(t, "none", TagRaw("none").String())
	assert.Equal(t, "false", FlagRaw(false).String())
}

func TestMetricCheck_ConfidenceOmittedWhenNil(t *testing.T) {
	check := MetricCheck{Name: "CTA Detection", Value: 50, RawValue: CountRaw(1)}

	data, err := json.Marshal(check)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "confidence")
	assert.Contains(t, string(data), `"rawValue":1`)

	conf := 0.4
	check.Confidence = &conf
	data, err = json.Marshal(check)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"confidence":0.4`)
}
