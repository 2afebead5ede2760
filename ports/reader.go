package ports

import (
	"context"

	"sheetlens/domain/dataset"
)

// WorkbookParser decodes an uploaded workbook into a table of records.
// Implementations return errors wrapping core.ErrUnsupportedFileType or core.ErrParseFailed.
type WorkbookParser interface {
	Parse(ctx context.Context, upload dataset.Upload) (*dataset.Table, error)
}
