package coercer

import (
	"testing"
	"time"

	"sheetlens/domain/datareadiness/ingestion"

	"github.com/stretchr/testify/assert"
)

func TestCoerceCell(t *testing.T) {
	c := NewTypeCoercer(DefaultCoercionConfig())

	tests := []struct {
		name     string
		raw      string
		wantType ingestion.ValueType
		wantStr  string
	}{
		{"empty", "", ingestion.ValueTypeMissing, ingestion.MissingString},
		{"blank", "   ", ingestion.ValueTypeMissing, ingestion.MissingString},
		{"integer", "42", ingestion.ValueTypeNumeric, "42"},
		{"decimal", " 3.25 ", ingestion.ValueTypeNumeric, "3.25"},
		{"negative parens", "(12)", ingestion.ValueTypeNumeric, "-12"},
		{"currency", "$1,200.50", ingestion.ValueTypeNumeric, "1200.5"},
		{"percent", "50%", ingestion.ValueTypeNumeric, "0.5"},
		{"scientific", "1e3", ingestion.ValueTypeNumeric, "1000"},
		{"bool upper", "TRUE", ingestion.ValueTypeBoolean, "true"},
		{"bool lower", "false", ingestion.ValueTypeBoolean, "false"},
		{"yes stays text", "yes", ingestion.ValueTypeString, "yes"},
		{"nan stays text", "NaN", ingestion.ValueTypeString, "NaN"},
		{"hex stays text", "0x1F", ingestion.ValueTypeString, "0x1F"},
		{"european comma stays text", "1,5", ingestion.ValueTypeString, "1,5"},
		{"date stays text", "2024-01-05", ingestion.ValueTypeString, "2024-01-05"},
		{"collapsed whitespace", "North   East", ingestion.ValueTypeString, "North East"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := c.CoerceCell(tt.raw)
			assert.Equal(t, tt.wantType, v.Type)
			assert.Equal(t, tt.wantStr, v.String())
		})
	}
}

func TestParseDate(t *testing.T) {
	c := Default()

	tests := []struct {
		name  string
		value ingestion.Value
		want  time.Time
		ok    bool
	}{
		{"iso date", ingestion.NewStringValue("2024-01-05"), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"us date", ingestion.NewStringValue("02/10/2024"), time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), true},
		{"rfc3339", ingestion.NewStringValue("2024-03-01T10:30:00Z"), time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC), true},
		{"month name", ingestion.NewStringValue("Jan 5, 2024"), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"epoch seconds", ingestion.NewNumericValue(1704412800), time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), true},
		{"small integer is epoch", ingestion.NewNumericValue(10), time.Unix(10, 0).UTC(), true},
		{"fraction is not a date", ingestion.NewNumericValue(8.5), time.Time{}, false},
		{"zero is not a date", ingestion.NewNumericValue(0), time.Time{}, false},
		{"negative is not a date", ingestion.NewNumericValue(-5), time.Time{}, false},
		{"text", ingestion.NewStringValue("East"), time.Time{}, false},
		{"bool", ingestion.NewBooleanValue(true), time.Time{}, false},
		{"missing", ingestion.NewMissingValue(), time.Time{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.ParseDate(tt.value)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, tt.want.Equal(got), "want %s got %s", tt.want, got)
			}
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	c := Default()

	got, ok := c.NormalizeDate("01-05-24")
	assert.True(t, ok)
	assert.Equal(t, "2024-01-05", got)

	got, ok = c.NormalizeDate("2024-01-05 08:15:00")
	assert.True(t, ok)
	assert.Equal(t, "2024-01-05T08:15:00Z", got)

	_, ok = c.NormalizeDate("1704412800")
	assert.False(t, ok, "numbers are never rewritten as dates")

	_, ok = c.NormalizeDate("West")
	assert.False(t, ok)
}
