package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sheetlens/domain/dataset"
	"sheetlens/internal/config"
	"sheetlens/internal/container"
	"sheetlens/internal/session"
	"sheetlens/internal/testkit"

	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "sheetlens",
		Short: "Inspect and summarize Excel workbooks from the command line",
	}

	rootCmd.AddCommand(
		newClassifyCmd(),
		newPreviewCmd(),
		newSummarizeCmd(),
		newSampleCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newClassifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classify [file...]",
		Short: "List the numeric and date-like columns of each workbook",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, loaded, err := loadFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, ds := range loaded {
				classification, err := ws.Classify(ds.ID)
				if err != nil {
					return err
				}
				overview, err := ws.Overview(ds.ID)
				if err != nil {
					return err
				}
				fmt.Printf("%s (%s)\n", ds.Name, ds.SheetName)
				fmt.Printf("  Rows: %d, Columns: %d\n", overview.RowCount, overview.ColumnCount)
				fmt.Printf("  Numeric: %s\n", joinOrNone(classification.Numeric))
				fmt.Printf("  Dates:   %s\n", joinOrNone(classification.Dates))
			}
			return nil
		},
	}
}

func newPreviewCmd() *cobra.Command {
	var rows int

	cmd := &cobra.Command{
		Use:   "preview [file]",
		Short: "Print the first rows of a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, loaded, err := loadFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			preview, err := ws.Preview(loaded[0].ID, rows)
			if err != nil {
				return err
			}
			fmt.Println(strings.Join(preview.Columns, "\t"))
			for _, row := range preview.Rows {
				fmt.Println(strings.Join(row, "\t"))
			}
			if caption := preview.Caption(); caption != "" {
				fmt.Printf("\n%s\n", caption)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&rows, "rows", 5, "Number of rows to print")
	return cmd
}

func newSummarizeCmd() *cobra.Command {
	var groupBy, valueField, operation, from, to string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "summarize [file]",
		Short: "Group rows by a column and count, sum or average them",
		Long: `Group rows by a column and aggregate each group.

Sum and average read the --value column when given. Otherwise a numeric
--group-by column is aggregated itself, and a text one uses the first numeric
column. --from and --to filter on the first
date-like column and take dates like 2024-01-31.

Example: sheetlens summarize sales.xlsx --group-by Region --op sum --from 2024-01-01`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			op, err := dataset.ParseOperation(operation)
			if err != nil {
				return err
			}
			dateFilter, err := parseDateRange(from, to)
			if err != nil {
				return err
			}

			ws, loaded, err := loadFiles(cmd.Context(), args)
			if err != nil {
				return err
			}
			req := dataset.SummaryRequest{
				DatasetID:    loaded[0].ID,
				GroupByField: groupBy,
				ValueField:   valueField,
				Operation:    op,
				DateFilter:   dateFilter,
			}
			rows, err := ws.Summarize(req)
			if err != nil {
				return err
			}

			if asJSON {
				out, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return err
				}
				fmt.Println(string(out))
				return nil
			}

			fmt.Printf("%s by %s\n", op, groupBy)
			for _, row := range rows {
				fmt.Printf("  %-24s %12.2f\n", row.GroupKey, row.Value)
			}
			if len(rows) == 0 {
				fmt.Println("  no rows matched")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&groupBy, "group-by", "", "Column to group by")
	cmd.Flags().StringVar(&valueField, "value", "", "Column summed or averaged")
	cmd.Flags().StringVar(&operation, "op", "count", "count, sum or average")
	cmd.Flags().StringVar(&from, "from", "", "Earliest date to include")
	cmd.Flags().StringVar(&to, "to", "", "Latest date to include")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print rows as JSON")
	_ = cmd.MarkFlagRequired("group-by")

	return cmd
}

func newSampleCmd() *cobra.Command {
	var dir string
	var orders, customers int
	var seed int64

	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write generated orders.xlsx and customers.xlsx workbooks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := testkit.DefaultOrdersConfig()
			cfg.OrderCount = orders
			cfg.CustomerCount = customers
			cfg.Seed = seed
			gen := testkit.NewOrdersGenerator(cfg)

			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create %s: %w", dir, err)
			}
			for name, wb := range map[string]*testkit.Workbook{"orders.xlsx": gen.Orders(), "customers.xlsx": gen.Customers()} {
				content, err := wb.Bytes()
				if err != nil {
					return err
				}
				path := filepath.Join(dir, name)
				if err := os.WriteFile(path, content, 0o644); err != nil {
					return fmt.Errorf("failed to write %s: %w", path, err)
				}
				fmt.Printf("Wrote %s\n", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "Output directory")
	cmd.Flags().IntVar(&orders, "orders", 200, "Number of orders")
	cmd.Flags().IntVar(&customers, "customers", 25, "Number of customers")
	cmd.Flags().Int64Var(&seed, "seed", 42, "Random seed for deterministic output")

	return cmd
}

// loadFiles reads workbooks from disk into a fresh workspace
func loadFiles(ctx context.Context, paths []string) (*session.Workspace, []*dataset.Dataset, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if len(paths) > cfg.Workspace.MaxFiles {
		cfg.Workspace.MaxFiles = len(paths)
	}
	c, err := container.New(cfg)
	if err != nil {
		return nil, nil, err
	}

	uploads := make([]dataset.Upload, 0, len(paths))
	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		uploads = append(uploads, dataset.Upload{
			Filename: filepath.Base(path),
			MimeType: mimeTypeFor(path),
			Content:  content,
		})
	}

	loaded, err := c.Workspace.Upload(ctx, uploads)
	if err != nil {
		return nil, nil, err
	}
	return c.Workspace, loaded, nil
}

func mimeTypeFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return dataset.MimeTypeXLSX
	case ".xls":
		return dataset.MimeTypeXLS
	}
	return "application/octet-stream"
}

func parseDateRange(from, to string) (*dataset.DateRange, error) {
	if from == "" && to == "" {
		return nil, nil
	}
	r := dataset.DateRange{To: time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)}
	if from != "" {
		t, err := time.Parse("2006-01-02", from)
		if err != nil {
			return nil, fmt.Errorf("invalid --from date (use 2006-01-02): %w", err)
		}
		r.From = t
	}
	if to != "" {
		t, err := time.Parse("2006-01-02", to)
		if err != nil {
			return nil, fmt.Errorf("invalid --to date (use 2006-01-02): %w", err)
		}
		r.To = t
	}
	return &r, nil
}

func joinOrNone(columns []string) string {
	if len(columns) == 0 {
		return "none"
	}
	return strings.Join(columns, ", ")
}
