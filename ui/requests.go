package ui

import (
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"sheetlens/domain/core"
	"sheetlens/domain/dataset"
	"sheetlens/internal/errors"
)

// uploadField is the multipart field carrying files
const uploadField = "files"

// readUploads loads multipart files into memory. A missing or generic content
// type falls back to the file extension.
func readUploads(files []*multipart.FileHeader, maxBytes int64) ([]dataset.Upload, error) {
	if len(files) == 0 {
		return nil, errors.InvalidInput("no files were uploaded")
	}

	uploads := make([]dataset.Upload, 0, len(files))
	for _, fh := range files {
		if maxBytes > 0 && fh.Size > maxBytes {
			return nil, errors.InvalidInput(fmt.Sprintf("%s is larger than %d bytes", fh.Filename, maxBytes))
		}

		f, err := fh.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to open %s", fh.Filename)
		}
		content, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "failed to read %s", fh.Filename)
		}

		uploads = append(uploads, dataset.Upload{
			Filename: fh.Filename,
			MimeType: declaredMimeType(fh.Filename, fh.Header.Get("Content-Type")),
			Content:  content,
		})
	}
	return uploads, nil
}

func declaredMimeType(filename, contentType string) string {
	contentType = strings.TrimSpace(strings.Split(contentType, ";")[0])
	if contentType != "" && contentType != "application/octet-stream" {
		return contentType
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		return dataset.MimeTypeXLSX
	case ".xls":
		return dataset.MimeTypeXLS
	}
	return contentType
}

// summaryForm is the wire form of a summary request
type summaryForm struct {
	GroupByField string `json:"group_by_field" form:"group_by"`
	ValueField   string `json:"value_field" form:"value_field"`
	Operation    string `json:"operation" form:"operation"`
	DateFrom     string `json:"date_from" form:"date_from"`
	DateTo       string `json:"date_to" form:"date_to"`
}

// dateLayouts are the accepted forms of date_from and date_to
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// toRequest validates the form. One open end of the date range is allowed.
func (f summaryForm) toRequest(id core.ID) (dataset.SummaryRequest, error) {
	if strings.TrimSpace(f.GroupByField) == "" {
		return dataset.SummaryRequest{}, errors.InvalidInput("group_by_field is required")
	}
	op := dataset.OperationCount
	if strings.TrimSpace(f.Operation) != "" {
		parsed, err := dataset.ParseOperation(f.Operation)
		if err != nil {
			return dataset.SummaryRequest{}, err
		}
		op = parsed
	}

	req := dataset.SummaryRequest{
		DatasetID:    id,
		GroupByField: f.GroupByField,
		ValueField:   strings.TrimSpace(f.ValueField),
		Operation:    op,
	}

	from, to := strings.TrimSpace(f.DateFrom), strings.TrimSpace(f.DateTo)
	if from == "" && to == "" {
		return req, nil
	}
	r := dataset.DateRange{To: time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)}
	if from != "" {
		t, err := parseFormDate("date_from", from)
		if err != nil {
			return dataset.SummaryRequest{}, err
		}
		r.From = t
	}
	if to != "" {
		t, err := parseFormDate("date_to", to)
		if err != nil {
			return dataset.SummaryRequest{}, err
		}
		r.To = t
	}
	req.DateFilter = &r
	return req, nil
}

func parseFormDate(field, value string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errors.InvalidInput(fmt.Sprintf("%s must be a date like 2024-01-31, got %q", field, value))
}

// relationshipForm is the wire form of a relationship declaration
type relationshipForm struct {
	SourceFileID string `json:"source_file_id" form:"source_file_id"`
	SourceKey    string `json:"source_key" form:"source_key"`
	TargetFileID string `json:"target_file_id" form:"target_file_id"`
	TargetKey    string `json:"target_key" form:"target_key"`
}

func (f relationshipForm) toRelationship() dataset.Relationship {
	return dataset.Relationship{
		SourceFileID: core.ID(strings.TrimSpace(f.SourceFileID)),
		SourceKey:    f.SourceKey,
		TargetFileID: core.ID(strings.TrimSpace(f.TargetFileID)),
		TargetKey:    f.TargetKey,
	}
}
