package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name: "valid oauth config",
			config: Config{
				ClientID:      "id",
				ClientSecret:  "secret",
				RefreshToken:  "token",
				SpreadsheetID: "sheet-1",
			},
		},
		{
			name: "valid service account config",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
				SpreadsheetID:      "sheet-1",
			},
		},
		{
			name:    "no auth",
			config:  Config{SpreadsheetID: "sheet-1"},
			wantErr: "no authentication method configured",
		},
		{
			name: "both auth methods",
			config: Config{
				ClientID:           "id",
				ClientSecret:       "secret",
				RefreshToken:       "token",
				ServiceAccountPath: "/tmp/key.json",
				SpreadsheetID:      "sheet-1",
			},
			wantErr: "multiple authentication methods configured",
		},
		{
			name: "missing spreadsheet id",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
			},
			wantErr: "spreadsheet id is required",
		},
		{
			name: "negative retries",
			config: Config{
				ServiceAccountPath: "/tmp/key.json",
				SpreadsheetID:      "sheet-1",
				RetryAttempts:      -1,
			},
			wantErr: "retry attempts cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
