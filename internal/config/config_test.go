package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestKnownAgent(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Empty roster accepts everyone.
	assert.True(t, KnownAgent("noa"))

	viper.Set("ledger.agents", []string{"noa", "dana"})
	assert.True(t, KnownAgent("noa"))
	assert.True(t, KnownAgent("Dana"), "roster match is case-insensitive")
	assert.False(t, KnownAgent("gal"))
}

func TestCostBearers(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	a, b := CostBearers()
	assert.Equal(t, "Dor", a)
	assert.Equal(t, "Yurai", b)

	viper.Set("ledger.cost_bearer_a", "Avi")
	viper.Set("ledger.cost_bearer_b", "Ben")
	a, b = CostBearers()
	assert.Equal(t, "Avi", a)
	assert.Equal(t, "Ben", b)
}

func TestLoadLedgerConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg := LoadLedgerConfig()
	assert.Equal(t, "sales_report", cfg.IncomeSheet)
	assert.Equal(t, "expenses", cfg.ExpenseSheet)
	assert.InDelta(t, 3.6, cfg.DefaultUSDRate, 0.001)

	viper.Set("ledger.income_sheet", "sales_2025")
	viper.Set("ledger.default_usd_rate", 3.42)
	cfg = LoadLedgerConfig()
	assert.Equal(t, "sales_2025", cfg.IncomeSheet)
	assert.InDelta(t, 3.42, cfg.DefaultUSDRate, 0.001)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("AGENCY_DIR", "/srv/agency")

	assert.Equal(t, "/home/tester/x.db", ExpandPath("~/x.db"))
	assert.Equal(t, "/srv/agency/x.db", ExpandPath("$AGENCY_DIR/x.db"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/abs/path", ExpandPath("/abs/path"))
}
