package models

import (
	// Go Internal Packages
	"testing"
	"time"

	// External Packages
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionTime(t *testing.T) {
	now := time.Date(2025, time.March, 10, 14, 0, 0, 0, time.Local)

	t.Run("missing timestamp defaults to now", func(t *testing.T) {
		tx := Transaction{}
		ts, err := tx.Time(now)
		require.NoError(t, err)
		assert.Equal(t, now, ts)
	})

	t.Run("rfc3339 timestamp", func(t *testing.T) {
		tx := Transaction{Timestamp: "2025-03-10T03:30:00Z"}
		ts, err := tx.Time(now)
		require.NoError(t, err)
		assert.Equal(t, 3, ts.UTC().Hour())
	})

	t.Run("offset-less timestamp parses as local time", func(t *testing.T) {
		tx := Transaction{Timestamp: "2025-03-10T03:30:00"}
		ts, err := tx.Time(now)
		require.NoError(t, err)
		assert.Equal(t, 3, ts.Hour())
		assert.Equal(t, time.Local, ts.Location())
	})

	t.Run("garbage timestamp errors", func(t *testing.T) {
		tx := Transaction{Timestamp: "yesterday-ish"}
		_, err := tx.Time(now)
		require.Error(t, err)
	})
}
