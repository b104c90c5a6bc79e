package rates

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/talentops/agency-ledger/internal/common"
)

// defaultWordBank seeds the generation-parameter word lists used when
// nothing has been saved yet. Saved lists override per group.
var defaultWordBank = map[string][]string{
	"location": {"studio", "office", "living room", "balcony", "rooftop", "beach", "park"},
	"outfit":   {"casual", "sportswear", "evening", "business", "streetwear"},
	"lighting": {"soft window light", "golden hour", "neon", "candlelight", "overcast"},
	"angle":    {"close-up", "wide", "low angle", "high angle", "profile"},
}

// WordBank returns every word list, with saved lists layered over the
// defaults.
func (r *Registry) WordBank(ctx context.Context) (map[string][]string, error) {
	out := make(map[string][]string, len(defaultWordBank))
	for name, words := range defaultWordBank {
		out[name] = append([]string(nil), words...)
	}

	rows, err := r.db.QueryContext(ctx, `SELECT name, words FROM word_lists`)
	if err != nil {
		return nil, fmt.Errorf("failed to read word bank: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var name, raw string
		if err := rows.Scan(&name, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan word list: %w", err)
		}
		var words []string
		if err := json.Unmarshal([]byte(raw), &words); err != nil {
			return nil, fmt.Errorf("corrupt word list %s: %w", name, err)
		}
		out[name] = words
	}
	return out, rows.Err()
}

// WordList returns a single named list, saved or default.
func (r *Registry) WordList(ctx context.Context, name string) ([]string, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `SELECT words FROM word_lists WHERE name = ?`, name).Scan(&raw)
	if err == sql.ErrNoRows {
		if words, ok := defaultWordBank[name]; ok {
			return append([]string(nil), words...), nil
		}
		return nil, fmt.Errorf("%w: word list %s", common.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read word list %s: %w", name, err)
	}

	var words []string
	if err := json.Unmarshal([]byte(raw), &words); err != nil {
		return nil, fmt.Errorf("corrupt word list %s: %w", name, err)
	}
	return words, nil
}

// SaveWordList stores a named word list, replacing any prior value.
func (r *Registry) SaveWordList(ctx context.Context, name string, words []string) error {
	if name == "" {
		return fmt.Errorf("%w: word list name is required", common.ErrValidation)
	}

	raw, err := json.Marshal(words)
	if err != nil {
		return fmt.Errorf("failed to encode word list %s: %w", name, err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO word_lists (name, words, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET words = excluded.words, updated_at = excluded.updated_at`,
		name, string(raw), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save word list %s: %w", name, err)
	}
	return nil
}
