package sheet

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/talentops/agency-ledger/internal/common"
)

// Client implements Store against the Google Sheets API.
type Client struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config
}

// NewClient creates a new Google Sheets store client.
func NewClient(ctx context.Context, config Config, logger *slog.Logger) (*Client, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	service, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Client{
		config:  config,
		service: service,
		logger:  logger,
	}, nil
}

// createSheetsService creates a Google Sheets API service.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	if config.ServiceAccountPath != "" {
		jsonKey, err := os.ReadFile(config.ServiceAccountPath)
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)
	} else {
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}

		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}

		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

func (c *Client) retryOpts() common.RetryOptions {
	return common.RetryOptions{
		MaxAttempts:  c.config.RetryAttempts,
		InitialDelay: c.config.RetryDelay,
	}
}

// Read returns every row of the named sheet, header included. Reads
// are idempotent so they retry; mutations below do not.
func (c *Client) Read(ctx context.Context, sheetName string) ([][]any, error) {
	var rows [][]any

	err := common.WithRetry(ctx, func() error {
		resp, err := c.service.Spreadsheets.Values.
			Get(c.config.SpreadsheetID, sheetName).
			ValueRenderOption("UNFORMATTED_VALUE").
			Context(ctx).Do()
		if err != nil {
			return &common.RetryableError{Err: err, Retryable: true}
		}
		rows = resp.Values
		return nil
	}, c.retryOpts())

	if err != nil {
		if strings.Contains(err.Error(), "Unable to parse range") {
			return nil, fmt.Errorf("%w: %s", common.ErrSheetNotFound, sheetName)
		}
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheetName, err)
	}

	c.logger.Debug("read sheet", "sheet", sheetName, "rows", len(rows))
	return rows, nil
}

// Append adds rows at the end of the named sheet.
func (c *Client) Append(ctx context.Context, sheetName string, rows [][]any) error {
	_, err := c.service.Spreadsheets.Values.
		Append(c.config.SpreadsheetID, sheetName, &sheets.ValueRange{Values: rows}).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append to sheet %s: %w", sheetName, err)
	}

	c.logger.Debug("appended rows", "sheet", sheetName, "count", len(rows))
	return nil
}

// Update replaces the row at position. The API skips nil cells, which
// gives us the null-preserving semantics the approval path relies on.
func (c *Client) Update(ctx context.Context, sheetName string, position int, row []any) error {
	if position < 2 {
		return fmt.Errorf("%w: row position %d is the header or out of range", common.ErrValidation, position)
	}

	rangeRef := fmt.Sprintf("%s!A%d", sheetName, position)
	_, err := c.service.Spreadsheets.Values.
		Update(c.config.SpreadsheetID, rangeRef, &sheets.ValueRange{Values: [][]any{row}}).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", rangeRef, err)
	}

	c.logger.Debug("updated row", "sheet", sheetName, "position", position)
	return nil
}

// Delete removes the row at position, shifting later rows up.
func (c *Client) Delete(ctx context.Context, sheetName string, position int) error {
	if position < 2 {
		return fmt.Errorf("%w: row position %d is the header or out of range", common.ErrValidation, position)
	}

	sheetID, err := c.sheetID(ctx, sheetName)
	if err != nil {
		return err
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetID,
					Dimension:  "ROWS",
					StartIndex: int64(position - 1),
					EndIndex:   int64(position),
				},
			},
		}},
	}

	_, err = c.service.Spreadsheets.
		BatchUpdate(c.config.SpreadsheetID, req).
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to delete row %d from %s: %w", position, sheetName, err)
	}

	c.logger.Debug("deleted row", "sheet", sheetName, "position", position)
	return nil
}

// SheetNames lists the sheets of the backing spreadsheet.
func (c *Client) SheetNames(ctx context.Context) ([]string, error) {
	spreadsheet, err := c.service.Spreadsheets.
		Get(c.config.SpreadsheetID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list sheets: %w", err)
	}

	names := make([]string, 0, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		names = append(names, s.Properties.Title)
	}
	return names, nil
}

func (c *Client) sheetID(ctx context.Context, sheetName string) (int64, error) {
	spreadsheet, err := c.service.Spreadsheets.
		Get(c.config.SpreadsheetID).
		Fields("sheets.properties").
		Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("failed to resolve sheet %s: %w", sheetName, err)
	}

	for _, s := range spreadsheet.Sheets {
		if s.Properties.Title == sheetName {
			return s.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", common.ErrSheetNotFound, sheetName)
}
