package dataset

import (
	"context"
	"time"

	"sheetlens/domain/core"
	"sheetlens/domain/dataset"
	"sheetlens/internal"
	"sheetlens/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// DefaultParseConcurrency bounds how many files of a batch are parsed at once
const DefaultParseConcurrency = 4

// Intake turns a batch of uploads into datasets. The batch is all-or-nothing:
// one rejected file rejects every file in it.
type Intake struct {
	parser ports.WorkbookParser
	sem    *semaphore.Weighted
	logger *internal.Logger
}

// NewIntake creates an intake that parses with parser, at most concurrency files at a time
func NewIntake(parser ports.WorkbookParser, concurrency int) *Intake {
	if concurrency <= 0 {
		concurrency = DefaultParseConcurrency
	}
	return &Intake{
		parser: parser,
		sem:    semaphore.NewWeighted(int64(concurrency)),
		logger: internal.DefaultLogger,
	}
}

// Parse validates and parses uploads concurrently. Datasets come back in
// upload order. Unsupported MIME types are rejected before any parsing starts.
func (in *Intake) Parse(ctx context.Context, uploads []dataset.Upload) ([]*dataset.Dataset, error) {
	for _, upload := range uploads {
		if !upload.IsSpreadsheet() {
			in.logger.Info("[Intake] rejected %s: unsupported type %q", upload.Filename, upload.MimeType)
			return nil, core.NewUnsupportedFileTypeError(upload.Filename, upload.MimeType)
		}
	}

	startTime := time.Now()
	results := make([]*dataset.Dataset, len(uploads))
	g, gctx := errgroup.WithContext(ctx)

	for i, upload := range uploads {
		i, upload := i, upload
		g.Go(func() error {
			if err := in.sem.Acquire(gctx, 1); err != nil {
				return err
			}
			defer in.sem.Release(1)

			ds, err := in.parseOne(gctx, upload)
			if err != nil {
				return err
			}
			results[i] = ds
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		in.logger.Warn("[Intake] batch of %d rejected: %v", len(uploads), err)
		return nil, err
	}

	in.logger.Info("[Intake] parsed %d files in %.2fms", len(uploads),
		float64(time.Since(startTime).Nanoseconds())/1e6)
	return results, nil
}

func (in *Intake) parseOne(ctx context.Context, upload dataset.Upload) (*dataset.Dataset, error) {
	table, err := in.parser.Parse(ctx, upload)
	if err != nil {
		return nil, err
	}
	if len(table.Rows) == 0 {
		return nil, core.NewEmptyFileError(upload.Filename)
	}

	ds := dataset.NewDataset(upload.Filename, upload.MimeType, table)
	ds.Fingerprint = core.NewHash(upload.Content)
	in.logger.Debug("[Intake] %s -> dataset %s (%d rows, fingerprint %s)",
		upload.Filename, ds.ID, ds.RowCount(), ds.Fingerprint.Short())
	return ds, nil
}
