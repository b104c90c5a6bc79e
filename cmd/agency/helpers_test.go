package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentops/agency-ledger/internal/model"
)

func TestParseMonth(t *testing.T) {
	month, err := parseMonth("2025-06")
	require.NoError(t, err)
	assert.Equal(t, 2025, month.Year())
	assert.Equal(t, time.June, month.Month())

	_, err = parseMonth("June 2025")
	assert.Error(t, err)

	now, err := parseMonth("")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Month(), now.Month())
}

func TestIncomeForMonth(t *testing.T) {
	records := []model.IncomeTransaction{
		{ID: "a", Date: time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)},
		{ID: "b", Date: time.Date(2025, time.May, 30, 0, 0, 0, 0, time.UTC)},
		{ID: "c"}, // unparseable date, zero time
	}

	june := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	got := incomeForMonth(records, june)
	require.Len(t, got, 1)
	assert.Equal(t, "a", got[0].ID)
}

func TestDemoStoreShape(t *testing.T) {
	store := demoStore()

	income, err := store.Read(context.Background(),"sales_report")
	require.NoError(t, err)
	assert.Greater(t, len(income), 1)

	expenses, err := store.Read(context.Background(),"expenses")
	require.NoError(t, err)
	assert.Greater(t, len(expenses), 1)
}
