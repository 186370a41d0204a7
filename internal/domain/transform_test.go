package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDeriveRequest(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		raw := RawEvent{Value: []byte(`{"city":" Prague ","date":"06-15","request_id":"r-1"}`)}

		req, key, err := ParseDeriveRequest(raw)

		require.NoError(t, err)
		assert.Equal(t, "prague", req.City)
		assert.Equal(t, "06-15", req.Date)
		assert.Equal(t, "r-1", req.RequestID)
		assert.Equal(t, MustDateKey("06-15"), key)
	})

	t.Run("invalid json", func(t *testing.T) {
		_, _, err := ParseDeriveRequest(RawEvent{Value: []byte(`{`)})
		assert.Error(t, err)
	})

	t.Run("missing city", func(t *testing.T) {
		_, _, err := ParseDeriveRequest(RawEvent{Value: []byte(`{"date":"06-15"}`)})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "city")
	})

	t.Run("impossible date", func(t *testing.T) {
		_, _, err := ParseDeriveRequest(RawEvent{Value: []byte(`{"city":"rome","date":"02-30"}`)})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrInvalidDate))
	})
}

func TestReportID(t *testing.T) {
	key := MustDateKey("06-15")

	id := ReportID("prague", key)

	assert.True(t, strings.HasPrefix(id, "prague-06-15-"))
	assert.Equal(t, id, ReportID("prague", key))
	assert.NotEqual(t, id, ReportID("paris", key))
}
