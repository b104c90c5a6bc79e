package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"

	"github.com/talentops/agency-ledger/internal/recon"
	"github.com/talentops/agency-ledger/internal/sheet"
)

// LoadSheetConfig loads Google Sheets configuration from Viper and
// environment variables. Precedence:
// 1. Viper configuration (from config file or AGENCY_ env vars)
// 2. Direct environment variables (GOOGLE_SHEETS_*)
// 3. Default values
func LoadSheetConfig() (sheet.Config, error) {
	config := sheet.DefaultConfig()

	if v := viper.GetString("sheets.service_account_path"); v != "" {
		config.ServiceAccountPath = ExpandPath(v)
	}
	if v := viper.GetString("sheets.client_id"); v != "" {
		config.ClientID = v
	}
	if v := viper.GetString("sheets.client_secret"); v != "" {
		config.ClientSecret = v
	}
	if v := viper.GetString("sheets.refresh_token"); v != "" {
		config.RefreshToken = v
	}
	if v := viper.GetString("sheets.spreadsheet_id"); v != "" {
		config.SpreadsheetID = v
	}
	if v := viper.GetInt("sheets.retry_attempts"); v > 0 {
		config.RetryAttempts = v
	}
	if v := viper.GetDuration("sheets.retry_delay"); v > 0 {
		config.RetryDelay = v
	}

	// Fall back to direct environment variables for anything unset.
	if config.ServiceAccountPath == "" {
		if v := os.Getenv("GOOGLE_SHEETS_SERVICE_ACCOUNT_PATH"); v != "" {
			config.ServiceAccountPath = ExpandPath(v)
		}
	}
	if config.ClientID == "" {
		config.ClientID = os.Getenv("GOOGLE_SHEETS_CLIENT_ID")
	}
	if config.ClientSecret == "" {
		config.ClientSecret = os.Getenv("GOOGLE_SHEETS_CLIENT_SECRET")
	}
	if config.RefreshToken == "" {
		config.RefreshToken = os.Getenv("GOOGLE_SHEETS_REFRESH_TOKEN")
	}
	if config.SpreadsheetID == "" {
		config.SpreadsheetID = os.Getenv("GOOGLE_SHEETS_SPREADSHEET_ID")
	}

	if err := config.Validate(); err != nil {
		return sheet.Config{}, err
	}

	return config, nil
}

// LoadLedgerConfig builds the reconciliation service settings from
// Viper, falling back to the standard sheet layout.
func LoadLedgerConfig() recon.Config {
	config := recon.DefaultConfig()

	if v := viper.GetString("ledger.income_sheet"); v != "" {
		config.IncomeSheet = v
	}
	if v := viper.GetString("ledger.expense_sheet"); v != "" {
		config.ExpenseSheet = v
	}
	if v := viper.GetFloat64("ledger.default_usd_rate"); v > 0 {
		config.DefaultUSDRate = v
	}

	return config
}

// Agents returns the configured agent roster. An empty roster means
// any agent name is accepted.
func Agents() []string {
	return viper.GetStringSlice("ledger.agents")
}

// KnownAgent reports whether name is on the configured roster. With no
// roster configured every name passes.
func KnownAgent(name string) bool {
	roster := Agents()
	if len(roster) == 0 {
		return true
	}
	for _, agent := range roster {
		if strings.EqualFold(agent, name) {
			return true
		}
	}
	return false
}

// CostBearers returns the two named payers between whom shared expenses
// are split.
func CostBearers() (string, string) {
	a := viper.GetString("ledger.cost_bearer_a")
	b := viper.GetString("ledger.cost_bearer_b")
	if a == "" {
		a = "Dor"
	}
	if b == "" {
		b = "Yurai"
	}
	return a, b
}

// RegistryPath returns the location of the local rates database.
func RegistryPath() string {
	if v := viper.GetString("registry.path"); v != "" {
		return ExpandPath(v)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "agency-registry.db"
	}
	return home + "/.local/share/agency/registry.db"
}
