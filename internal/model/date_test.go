package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-03-01")
	require.NoError(t, err)
	require.Equal(t, "2026-03-01", d.String())

	for _, bad := range []string{"", "03/01/2026", "2026-3-1", "2026-03-01T00:00:00Z", "yesterday"} {
		_, err := ParseDate(bad)
		require.ErrorIs(t, err, ErrValidation, "input %q", bad)
	}
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2026, 3, 1)
	b := NewDate(2026, 3, 2)
	require.True(t, a.Before(b))
	require.True(t, b.After(a))
	require.False(t, a.IsZero())
	require.True(t, Date{}.IsZero())
}

func TestDateJSON(t *testing.T) {
	type payload struct {
		Day Date `json:"day"`
	}
	out, err := json.Marshal(payload{Day: NewDate(2026, 12, 31)})
	require.NoError(t, err)
	require.JSONEq(t, `{"day":"2026-12-31"}`, string(out))

	var in payload
	require.NoError(t, json.Unmarshal([]byte(`{"day":"2026-01-05"}`), &in))
	require.Equal(t, "2026-01-05", in.Day.String())

	require.Error(t, json.Unmarshal([]byte(`{"day":"Jan 5"}`), &in))
}
