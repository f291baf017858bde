// ledgerdesk-report is the headless companion: it loads one or more ledger
// files, applies the same filters the interactive tool offers, and writes
// a CSV export and a printable summary without opening a UI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"ledgerdesk/internal/cli"
	"ledgerdesk/internal/config"
	"ledgerdesk/internal/core"
	"ledgerdesk/internal/engine"
	"ledgerdesk/internal/export"
	"ledgerdesk/internal/log"
	"ledgerdesk/internal/report"
	"ledgerdesk/internal/schema"
	"ledgerdesk/internal/security"
	"ledgerdesk/internal/store"
	"ledgerdesk/internal/tabular"
)

func main() {
	cli.LoadEnvFile()

	var (
		out        = flag.String("out", "", "write matched rows as CSV to this path")
		reportPath = flag.String("report", "", "write the summary here instead of stdout")
		spec       engine.FilterSpec
	)
	flag.StringVar(&spec.Report, "filter-report", "", "report name substring")
	flag.StringVar(&spec.Year, "year", "", "exact year, e.g. 2025")
	flag.StringVar(&spec.Month, "month", "", "exact month, 01..12")
	flag.StringVar(&spec.Category, "category", "", "category substring")
	flag.StringVar(&spec.Merchant, "merchant", "", "merchant substring")
	flag.StringVar(&spec.PaidThrough, "paid", "", "payment method substring")
	flag.StringVar(&spec.Description, "desc", "", "description substring")
	flag.StringVar(&spec.DateFrom, "from", "", "start date, YYYY-MM-DD")
	flag.StringVar(&spec.DateTo, "to", "", "end date, YYYY-MM-DD")
	flag.StringVar(&spec.ExpenseMin, "expense-min", "", "minimum expense amount")
	flag.StringVar(&spec.ExpenseMax, "expense-max", "", "maximum expense amount")
	flag.StringVar(&spec.IncomeMin, "income-min", "", "minimum income amount")
	flag.StringVar(&spec.IncomeMax, "income-max", "", "maximum income amount")
	flag.Parse()

	cfg := config.Load()
	logger := cli.SetupLogger(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	paths := flag.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ledgerdesk-report [flags] ledger-file...")
		os.Exit(2)
	}

	records, err := loadAll(context.Background(), paths)
	if err != nil {
		logger.Error("load failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	st := store.New()
	st.Replace(records)

	result := engine.Query(st.Snapshot(), spec)
	for _, w := range result.Warnings {
		logger.Warn("filter ignored", "field", w.Field, "value", w.Value, "reason", w.Reason)
	}

	if *out != "" {
		if err := export.WriteCSV(*out, result.Rows); err != nil {
			logger.Error("export failed", log.FieldError, err.Error())
			os.Exit(1)
		}
		logger.Info("rows exported", log.FieldPath, *out, log.FieldRecordCount, len(result.Rows))
	}

	r := report.Build(result.Rows, loadProfile(cfg, logger))
	dest := os.Stdout
	if *reportPath != "" {
		f, err := os.Create(*reportPath)
		if err != nil {
			logger.Error("cannot create report file", log.FieldError, err.Error())
			os.Exit(1)
		}
		defer f.Close()
		dest = f
	}
	if err := r.Render(dest); err != nil {
		logger.Error("render failed", log.FieldError, err.Error())
		os.Exit(1)
	}
}

// loadAll reads every file concurrently and concatenates the records in
// argument order, so IDs stay deterministic across runs.
func loadAll(ctx context.Context, paths []string) ([]core.Record, error) {
	g, ctx := errgroup.WithContext(ctx)
	perFile := make([][]core.Record, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			table, err := tabular.ReadFile(path)
			if err != nil {
				return &core.LoadError{Path: path, Reason: "unreadable file", Err: err}
			}
			records, _, err := schema.Translate(table, path)
			if err != nil {
				return err
			}
			perFile[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var all []core.Record
	for _, records := range perFile {
		all = append(all, records...)
	}
	return all, nil
}

func loadProfile(cfg *config.Config, logger *log.Logger) report.Profile {
	manager, err := security.NewManager(filepath.Join(cfg.DataDir, "ledgerdesk.key"))
	if err != nil {
		logger.Warn("profile unavailable", log.FieldError, err.Error())
		return report.Profile{}
	}
	settings, err := config.NewSettingsStore(manager, cfg.DataDir).Load()
	if err != nil {
		logger.Warn("profile unavailable", log.FieldError, err.Error())
		return report.Profile{}
	}
	return report.Profile{
		AdminName:      settings.AdminName,
		AdminRole:      settings.AdminRole,
		CompanyName:    settings.CompanyName,
		CompanyContact: settings.CompanyContact,
	}
}
