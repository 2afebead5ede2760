package analysis

import (
	"fmt"

	"sheetlens/adapters/datareadiness/coercer"
	"sheetlens/domain/core"
	"sheetlens/domain/datareadiness/ingestion"
	"sheetlens/domain/dataset"
	"sheetlens/internal/profiling"

	"github.com/montanaflynn/stats"
)

// MissingGroupKey is the group key for rows whose group-by value is absent
const MissingGroupKey = ingestion.MissingString

// summaryPrecision is the number of decimal places summary values are rounded to
const summaryPrecision = 2

// Summarizer computes grouped count/sum/average summaries
type Summarizer struct {
	coercer    *coercer.TypeCoercer
	classifier *profiling.ColumnClassifier
}

// NewSummarizer creates a summarizer that parses dates with c
func NewSummarizer(c *coercer.TypeCoercer) *Summarizer {
	if c == nil {
		c = coercer.Default()
	}
	return &Summarizer{coercer: c, classifier: profiling.NewColumnClassifier(c)}
}

type groupKey struct {
	missing bool
	key     string
}

type group struct {
	key    groupKey
	values stats.Float64Data
}

// Summarize filters, groups and aggregates ds according to req.
// Groups are returned in the order they are first seen.
func (s *Summarizer) Summarize(ds *dataset.Dataset, req dataset.SummaryRequest) ([]dataset.SummaryRow, error) {
	if ds == nil {
		return nil, core.NewNotFoundError("dataset", req.DatasetID)
	}
	if !ds.HasColumn(req.GroupByField) {
		return nil, core.NewInvalidFieldError(req.GroupByField)
	}
	switch req.Operation {
	case dataset.OperationCount, dataset.OperationSum, dataset.OperationAverage:
	default:
		return nil, core.NewValidationError("operation", fmt.Sprintf("unknown operation %q", req.Operation))
	}

	classification := s.classifier.Classify(ds)

	valueField, err := resolveValueField(ds, classification, req)
	if err != nil {
		return nil, err
	}

	rows := s.filterByDate(ds, classification, req.DateFilter)
	groups := groupRows(rows, req.GroupByField, valueField)

	result := make([]dataset.SummaryRow, 0, len(groups))
	for _, g := range groups {
		value, err := aggregate(g.values, req.Operation)
		if err != nil {
			return nil, fmt.Errorf("failed to aggregate group %q: %w", g.key.key, err)
		}
		result = append(result, dataset.SummaryRow{
			GroupKey: g.key.key,
			Value:    value,
			Missing:  g.key.missing,
		})
	}
	return result, nil
}

// filterByDate keeps rows whose first date-like column falls inside the range.
// Without a range or a date-like column every row passes.
func (s *Summarizer) filterByDate(ds *dataset.Dataset, classification dataset.ColumnClassification, r *dataset.DateRange) []dataset.Record {
	if r == nil {
		return ds.Rows
	}
	dateColumn, ok := classification.FirstDateColumn()
	if !ok {
		return ds.Rows
	}

	kept := make([]dataset.Record, 0, len(ds.Rows))
	for _, row := range ds.Rows {
		t, ok := s.coercer.ParseDate(row.Get(dateColumn))
		if ok && r.Contains(t) {
			kept = append(kept, row)
		}
	}
	return kept
}

// resolveValueField picks the column sum and average read from.
// A numeric group-by field is aggregated itself; otherwise the first
// numeric column stands in.
func resolveValueField(ds *dataset.Dataset, classification dataset.ColumnClassification, req dataset.SummaryRequest) (string, error) {
	if req.ValueField != "" {
		if !ds.HasColumn(req.ValueField) {
			return "", core.NewInvalidFieldError(req.ValueField)
		}
		return req.ValueField, nil
	}
	if classification.IsNumeric(req.GroupByField) {
		return req.GroupByField, nil
	}
	for _, col := range classification.Numeric {
		if col != req.GroupByField {
			return col, nil
		}
	}
	return req.GroupByField, nil
}

func groupRows(rows []dataset.Record, field, valueField string) []*group {
	index := make(map[groupKey]*group)
	order := make([]*group, 0)

	for _, row := range rows {
		v := row.Get(field)
		key := groupKey{missing: v.IsMissing(), key: v.String()}

		g, exists := index[key]
		if !exists {
			g = &group{key: key}
			index[key] = g
			order = append(order, g)
		}
		g.values = append(g.values, row.Get(valueField).ToNumber())
	}
	return order
}

func aggregate(values stats.Float64Data, op dataset.Operation) (float64, error) {
	var (
		value float64
		err   error
	)
	switch op {
	case dataset.OperationCount:
		value = float64(values.Len())
	case dataset.OperationSum:
		value, err = values.Sum()
	case dataset.OperationAverage:
		value, err = values.Mean()
	}
	if err != nil {
		return 0, err
	}
	return stats.Round(value, summaryPrecision)
}

var defaultSummarizer = NewSummarizer(nil)

// Summarize runs req against ds with the default date layouts
func Summarize(ds *dataset.Dataset, req dataset.SummaryRequest) ([]dataset.SummaryRow, error) {
	return defaultSummarizer.Summarize(ds, req)
}
