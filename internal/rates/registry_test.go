package rates

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/agency-ledger/internal/common"
)

func openTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Open(filepath.Join(t.TempDir(), "registry.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r
}

func month(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

func TestRegistry_DefaultRateIsZero(t *testing.T) {
	r := openTestRegistry(t)

	pct, err := r.Rate(context.Background(), "maya", month(2024, time.March))
	require.NoError(t, err)
	assert.Zero(t, pct)
}

func TestRegistry_SetAndGetRate(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.SetRate(ctx, "maya", month(2024, time.March), 35))

	pct, err := r.Rate(ctx, "maya", month(2024, time.March))
	require.NoError(t, err)
	assert.InDelta(t, 35, pct, 0.001)

	// Different month is a separate key.
	pct, err = r.Rate(ctx, "maya", month(2024, time.April))
	require.NoError(t, err)
	assert.Zero(t, pct)
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.SetRate(ctx, "maya", month(2024, time.March), 35))
	require.NoError(t, r.SetRate(ctx, "maya", month(2024, time.March), 40))

	pct, err := r.Rate(ctx, "maya", month(2024, time.March))
	require.NoError(t, err)
	assert.InDelta(t, 40, pct, 0.001)
}

func TestRegistry_SetRateValidation(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	err := r.SetRate(ctx, "", month(2024, time.March), 10)
	assert.ErrorIs(t, err, common.ErrValidation)

	err = r.SetRate(ctx, "maya", month(2024, time.March), 120)
	assert.ErrorIs(t, err, common.ErrValidation)

	err = r.SetRate(ctx, "maya", month(2024, time.March), -1)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestRegistry_RatesForMonth(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.SetRate(ctx, "maya", month(2024, time.March), 35))
	require.NoError(t, r.SetRate(ctx, "roni", month(2024, time.March), 25))
	require.NoError(t, r.SetRate(ctx, "maya", month(2024, time.April), 50))

	got, err := r.RatesForMonth(ctx, month(2024, time.March))
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"maya": 35, "roni": 25}, got)
}

func TestRegistry_WordBankDefaults(t *testing.T) {
	r := openTestRegistry(t)

	bank, err := r.WordBank(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, bank["location"])
	assert.NotEmpty(t, bank["lighting"])
}

func TestRegistry_SavedWordListOverridesDefault(t *testing.T) {
	r := openTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, r.SaveWordList(ctx, "location", []string{"warehouse"}))

	words, err := r.WordList(ctx, "location")
	require.NoError(t, err)
	assert.Equal(t, []string{"warehouse"}, words)

	bank, err := r.WordBank(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"warehouse"}, bank["location"])
	assert.NotEmpty(t, bank["outfit"], "untouched groups keep defaults")
}

func TestRegistry_UnknownWordList(t *testing.T) {
	r := openTestRegistry(t)

	_, err := r.WordList(context.Background(), "nope")
	assert.ErrorIs(t, err, common.ErrNotFound)
}
