package mapper

import (
	"strconv"
	"strings"
	"time"
)

// Spreadsheet serial dates count days since 1899-12-30; 25569 is the
// serial for the Unix epoch.
const serialEpochOffset = 25569

// cellString coerces any cell value to a trimmed string. Missing and
// non-string cells degrade to their natural textual form.
func cellString(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		if v {
			return "TRUE"
		}
		return "FALSE"
	case time.Time:
		return v.Format("02/01/2006")
	default:
		return ""
	}
}

// cellFloat coerces any cell value to a number. Non-numeric cells
// coerce to 0, never an error.
func cellFloat(row []any, idx int) float64 {
	if idx >= len(row) || row[idx] == nil {
		return 0
	}
	switch v := row[idx].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case string:
		s := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		if s == "" {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// cellChecked reports whether a marker cell carries the checked marker.
func cellChecked(row []any, idx int) bool {
	return cellString(row, idx) == MarkerChecked
}

// cellDate coerces a cell to a calendar date. Accepted forms: native
// date values, spreadsheet serial numbers, ISO 8601 timestamps, and
// DD/MM/YY[YY] or YYYY-MM-DD text. Two-digit years are assumed 2000+.
// Unparseable cells yield the zero time, never an error.
func cellDate(row []any, idx int) time.Time {
	if idx >= len(row) || row[idx] == nil {
		return time.Time{}
	}
	switch v := row[idx].(type) {
	case time.Time:
		return v
	case float64:
		return time.Unix(int64((v-serialEpochOffset)*86400), 0).UTC()
	case int:
		return time.Unix(int64(v-serialEpochOffset)*86400, 0).UTC()
	case string:
		return parseDateString(v)
	default:
		return time.Time{}
	}
}

func parseDateString(s string) time.Time {
	s = strings.TrimSpace(strings.ReplaceAll(s, ".", "/"))
	if s == "" {
		return time.Time{}
	}

	if strings.Contains(s, "T") {
		if t, err := time.Parse(time.RFC3339, s); err == nil {
			return t
		}
		if t, err := time.Parse("2006-01-02T15:04:05", s); err == nil {
			return t
		}
	}

	if parts := strings.Split(s, "/"); len(parts) == 3 {
		day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errD == nil && errM == nil && errY == nil {
			if year < 100 {
				year += 2000
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}

	if parts := strings.Split(s, "-"); len(parts) == 3 {
		year, errY := strconv.Atoi(strings.TrimSpace(parts[0]))
		month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
		day, errD := strconv.Atoi(strings.TrimSpace(parts[2]))
		if errY == nil && errM == nil && errD == nil {
			if year < 100 {
				year += 2000
			}
			return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
		}
	}

	return time.Time{}
}

// cellHour extracts a clock time string. ISO timestamps that leak into
// the hour column are reduced to their HH:MM component.
func cellHour(row []any, idx int) string {
	s := cellString(row, idx)
	if i := strings.Index(s, "T"); i >= 0 && len(s) >= i+6 {
		return s[i+1 : i+6]
	}
	return s
}

// cellFreeText reads a free-text category cell, rejecting contamination
// from upstream spreadsheet formulas: stray dates and boolean-like
// numeric artifacts are treated as absent.
func cellFreeText(row []any, idx int) string {
	if idx >= len(row) || row[idx] == nil {
		return ""
	}
	switch v := row[idx].(type) {
	case string:
		s := strings.TrimSpace(v)
		if !parseDateString(s).IsZero() {
			return ""
		}
		return s
	case float64:
		// Formula residue shows up as 0/1 artifacts.
		if v < 2 {
			return ""
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case time.Time, bool:
		return ""
	default:
		return ""
	}
}

// FormatDate renders a date in the sheet's DD/MM/YYYY form. The zero
// time renders as an empty cell.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}
