package config

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeRoundTrip(t *testing.T) {
	d := NewDirectory()

	in := time.Date(2024, 3, 15, 10, 30, 5, 123456000, time.UTC)
	cfg, err := GetConfig(in, d.Default())
	require.NoError(t, err)

	m, ok := cfg.(*Map)
	require.True(t, ok)
	format, _ := m.Get("format")
	assert.Equal(t, DefaultTimeFormat, format)

	out, err := Configure(cfg, time.Time{}, d.Default())
	require.NoError(t, err)

	got, ok := out.(time.Time)
	require.True(t, ok)
	assert.True(t, in.Equal(got), "timestamps differ: %v vs %v", in, got)
}

func TestTimeFormatSetting(t *testing.T) {
	d := NewDirectory()
	rfc := d.EnsureContext("rfc")
	rfc.SetGlobalSetting(SettingTimeFormat, time.RFC3339)

	in := time.Date(2024, 3, 15, 10, 30, 5, 0, time.UTC)
	cfg, err := GetConfig(in, rfc)
	require.NoError(t, err)

	m, ok := cfg.(*Map)
	require.True(t, ok)
	format, _ := m.Get("format")
	assert.Equal(t, time.RFC3339, format)
	value, _ := m.Get("value")
	assert.Equal(t, "2024-03-15T10:30:05Z", value)

	out, err := Configure(cfg, time.Time{}, rfc)
	require.NoError(t, err)
	assert.True(t, in.Equal(out.(time.Time)))
}

func TestTimeSetterMalformed(t *testing.T) {
	d := NewDirectory()

	_, err := Configure("not a mapping", time.Time{}, d.Default())
	require.ErrorIs(t, err, ErrMalformedConfiguration)

	missing := NewMap()
	missing.Set("format", DefaultTimeFormat)
	_, err = Configure(missing, time.Time{}, d.Default())
	require.ErrorIs(t, err, ErrMalformedConfiguration)
}

func TestUUIDRoundTrip(t *testing.T) {
	d := NewDirectory()

	in := uuid.MustParse("0192aefb-1e4d-7a10-9f3c-2b45d6a7e801")
	cfg, err := GetConfig(in, d.Default())
	require.NoError(t, err)
	assert.Equal(t, "0192aefb-1e4d-7a10-9f3c-2b45d6a7e801", cfg)

	out, err := Configure(cfg, uuid.UUID{}, d.Default())
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestUUIDSetterMalformed(t *testing.T) {
	d := NewDirectory()
	_, err := Configure("not-a-uuid", uuid.UUID{}, d.Default())
	require.ErrorIs(t, err, ErrMalformedConfiguration)
}

func TestBytesGetterRejectsInvalidUTF8(t *testing.T) {
	d := NewDirectory()
	_, err := GetConfig([]byte{0xff, 0xfe}, d.Default())
	require.ErrorIs(t, err, ErrMalformedConfiguration)
}
