package datareadiness

import (
	"github.com/montanaflynn/stats"

	"sheetlens/adapters/datareadiness/coercer"
	"sheetlens/domain/datareadiness/ingestion"
	"sheetlens/domain/dataset"
)

// Share of present values a kind needs before it names the column
const (
	numericThreshold = 0.8
	booleanThreshold = 0.8
	dateThreshold    = 0.8
)

// ProfilerAdapter implements ColumnProfiler over parsed datasets
type ProfilerAdapter struct {
	coercer *coercer.TypeCoercer
}

// NewProfilerAdapter creates a new profiler adapter. A nil coercer uses the default.
func NewProfilerAdapter(c *coercer.TypeCoercer) *ProfilerAdapter {
	if c == nil {
		c = coercer.Default()
	}
	return &ProfilerAdapter{coercer: c}
}

// Profile analyzes every column of ds in column order
func (p *ProfilerAdapter) Profile(ds *dataset.Dataset) []dataset.ColumnProfile {
	if ds == nil {
		return []dataset.ColumnProfile{}
	}
	profiles := make([]dataset.ColumnProfile, 0, len(ds.Columns))
	for _, column := range ds.Columns {
		profiles = append(profiles, p.profileField(column, ds.Rows))
	}
	return profiles
}

// profileField analyzes a single column across all rows
func (p *ProfilerAdapter) profileField(column string, rows []dataset.Record) dataset.ColumnProfile {
	profile := dataset.ColumnProfile{Column: column}

	values := make([]ingestion.Value, 0, len(rows))
	for _, row := range rows {
		v := row.Get(column)
		if v.IsMissing() {
			profile.Missing++
			continue
		}
		values = append(values, v)
	}
	profile.Present = len(values)
	profile.Completeness = p.computeCompleteness(profile.Missing, len(rows))
	profile.Kind = p.inferKind(values)

	freq, order := frequencies(values)
	profile.Distinct = len(order)

	switch profile.Kind {
	case dataset.KindNumeric:
		profile.Numeric = p.computeNumericStats(values)
	case dataset.KindText, dataset.KindBoolean:
		for _, key := range order {
			if freq[key] > profile.ModeFrequency {
				profile.Mode = key
				profile.ModeFrequency = freq[key]
			}
		}
	}

	return profile
}

// inferKind determines the dominant kind of the present values
func (p *ProfilerAdapter) inferKind(values []ingestion.Value) dataset.ColumnKind {
	if len(values) == 0 {
		return dataset.KindEmpty
	}

	numericCount, boolCount, dateCount := 0, 0, 0
	for _, v := range values {
		switch {
		case v.IsNumeric():
			numericCount++
		case v.IsBoolean():
			boolCount++
		case v.IsString():
			if _, ok := p.coercer.ParseDate(v); ok {
				dateCount++
			}
		}
	}

	total := float64(len(values))
	switch {
	case float64(numericCount)/total > numericThreshold:
		return dataset.KindNumeric
	case float64(boolCount)/total > booleanThreshold:
		return dataset.KindBoolean
	case float64(dateCount)/total > dateThreshold:
		return dataset.KindDate
	}
	return dataset.KindText
}

// computeCompleteness returns the share of rows with a value, rounded to 2 places
func (p *ProfilerAdapter) computeCompleteness(missingCount, totalCount int) float64 {
	if totalCount == 0 {
		return 0
	}
	completeness, _ := stats.Round(1-float64(missingCount)/float64(totalCount), 2)
	return completeness
}

// computeNumericStats calculates range and mean over the numeric values
func (p *ProfilerAdapter) computeNumericStats(values []ingestion.Value) *dataset.NumericProfile {
	data := make(stats.Float64Data, 0, len(values))
	for _, v := range values {
		if v.IsNumeric() {
			data = append(data, v.AsFloat64())
		}
	}
	if len(data) == 0 {
		return nil
	}

	minimum, _ := data.Min()
	maximum, _ := data.Max()
	mean, _ := data.Mean()
	mean, _ = stats.Round(mean, 2)

	return &dataset.NumericProfile{Min: minimum, Max: maximum, Mean: mean}
}

// frequencies counts display strings in first-seen order
func frequencies(values []ingestion.Value) (map[string]int, []string) {
	freq := make(map[string]int)
	order := make([]string, 0)
	for _, v := range values {
		key := v.String()
		if _, seen := freq[key]; !seen {
			order = append(order, key)
		}
		freq[key]++
	}
	return freq, order
}
