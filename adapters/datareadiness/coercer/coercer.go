package coercer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"sheetlens/domain/datareadiness/ingestion"
)

// TypeCoercer handles deterministic coercion of raw cell text into typed values
// and the generic date parse used by classification and date filtering
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the coercion rules
type CoercionConfig struct {
	DateLayouts       []string `json:"date_layouts"`        // Layouts tried in order by ParseDate
	EpochMinSeconds   int64    `json:"epoch_min_seconds"`   // Integers above this read as Unix seconds
	EpochMaxSeconds   int64    `json:"epoch_max_seconds"`   // Integers below this read as Unix seconds
	NormalizeStrings  bool     `json:"normalize_strings"`   // Whether to trim and collapse whitespace
	PercentAsFraction bool     `json:"percent_as_fraction"` // "50%" coerces to 0.5
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DateLayouts: []string{
			time.RFC3339,
			"2006-01-02T15:04:05",
			"2006-01-02 15:04:05",
			"2006-01-02",
			"2006/01/02",
			"01/02/2006",
			"1/2/2006",
			"01-02-06", // Excel default short date format
			"1/2/06",
			"02-Jan-2006",
			"2-Jan-06",
			"Jan 2, 2006",
			"January 2, 2006",
			"2 Jan 2006",
			"2 January 2006",
		},
		EpochMinSeconds:   0,
		EpochMaxSeconds:   2147483647,
		NormalizeStrings:  true,
		PercentAsFraction: true,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

var defaultCoercer = NewTypeCoercer(DefaultCoercionConfig())

// Default returns the shared coercer built from DefaultCoercionConfig
func Default() *TypeCoercer {
	return defaultCoercer
}

var (
	thousandsPattern = regexp.MustCompile(`^[+-]?\d{1,3}(,\d{3})+(\.\d+)?$`)
	whitespaceRun    = regexp.MustCompile(`\s+`)
)

// CoerceCell converts raw cell text to a typed value.
// Order: empty -> missing, number, TRUE/FALSE, text.
func (c *TypeCoercer) CoerceCell(raw string) ingestion.Value {
	s := raw
	if c.config.NormalizeStrings {
		s = c.normalizeString(s)
	}
	if s == "" {
		return ingestion.NewMissingValue()
	}

	if n, ok := c.tryParseNumeric(s); ok {
		return ingestion.NewNumericValue(n)
	}

	if b, ok := tryParseBoolean(s); ok {
		return ingestion.NewBooleanValue(b)
	}

	return ingestion.NewStringValue(s)
}

// tryParseNumeric parses plain, signed, currency, percent, parenthesised
// negative and comma-grouped numbers
func (c *TypeCoercer) tryParseNumeric(s string) (float64, bool) {
	clean := strings.TrimSpace(s)

	// Parentheses for negative numbers: (123) -> -123
	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	for _, symbol := range []string{"$", "€", "£", "¥"} {
		clean = strings.TrimPrefix(clean, symbol)
	}
	clean = strings.TrimSpace(clean)

	percent := false
	if c.config.PercentAsFraction && strings.HasSuffix(clean, "%") {
		clean = strings.TrimSpace(strings.TrimSuffix(clean, "%"))
		percent = true
	}

	if thousandsPattern.MatchString(clean) {
		clean = strings.ReplaceAll(clean, ",", "")
	}

	val, err := strconv.ParseFloat(clean, 64)
	if err != nil || math.IsInf(val, 0) || math.IsNaN(val) {
		return 0, false
	}
	// ParseFloat accepts "Inf", "NaN" and hex floats; only decimal text counts as a number
	if strings.ContainsAny(clean, "xXnN") {
		return 0, false
	}

	if percent {
		val /= 100
	}
	if negative {
		val = -val
	}
	return val, true
}

// tryParseBoolean accepts the spreadsheet boolean spellings only
func tryParseBoolean(s string) (bool, bool) {
	switch strings.ToLower(s) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// ParseDate applies the generic date parse to a value. Text is matched against
// the configured layouts; integer numbers in the Unix-seconds range are read as
// epoch timestamps. Booleans and missing values never parse.
func (c *TypeCoercer) ParseDate(v ingestion.Value) (time.Time, bool) {
	switch {
	case v.IsString():
		return c.ParseDateString(v.AsString())
	case v.IsNumeric():
		return c.epochToTime(v.AsFloat64())
	}
	return time.Time{}, false
}

// ParseDateString parses s with the configured layouts, falling back to Unix seconds
func (c *TypeCoercer) ParseDateString(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range c.config.DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if unixVal, err := strconv.ParseInt(s, 10, 64); err == nil {
		return c.epochToTime(float64(unixVal))
	}

	return time.Time{}, false
}

// NormalizeDate rewrites a date-looking string as ISO 8601.
// Date-only values become "2006-01-02"; values with a time of day keep RFC3339.
func (c *TypeCoercer) NormalizeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	// Pure integers stay numbers; only layout matches are rewritten
	if _, err := strconv.ParseFloat(s, 64); err == nil {
		return "", false
	}
	for _, layout := range c.config.DateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02"), true
		}
		return t.Format(time.RFC3339), true
	}
	return "", false
}

func (c *TypeCoercer) epochToTime(f float64) (time.Time, bool) {
	if f != math.Trunc(f) {
		return time.Time{}, false
	}
	secs := int64(f)
	if secs <= c.config.EpochMinSeconds || secs >= c.config.EpochMaxSeconds {
		return time.Time{}, false
	}
	return time.Unix(secs, 0).UTC(), true
}

// normalizeString trims, collapses whitespace and drops control characters
func (c *TypeCoercer) normalizeString(s string) string {
	s = strings.TrimSpace(s)
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}
