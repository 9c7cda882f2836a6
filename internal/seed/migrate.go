package seed

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/formulabase/formulactl/internal/formula"
	"github.com/formulabase/formulactl/internal/lg"
)

// Store is the slice of the repository the migration needs.
type Store interface {
	Create(ctx context.Context, f *formula.Formula) error
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context, category string) (int64, error)
	Categories(ctx context.Context) ([]string, error)
}

// Report summarizes one migration run.
type Report struct {
	RunID    uuid.UUID
	Deleted  int64
	Inserted int
	Failed   int
	Total    int64
}

// Run wipes the collection and loads the built-in catalog. Per-formula
// failures are counted and reported, not fatal; an error is returned only
// when the database itself is unreachable.
func Run(ctx context.Context, store Store, out io.Writer, logger lg.Logger) (*Report, error) {
	if logger == nil {
		logger = lg.Discard
	}
	report := &Report{RunID: uuid.New()}
	logger.Info("starting formula migration", lg.String("run_id", report.RunID.String()))

	banner(out, "Formula Migration")

	deleted, err := store.DeleteAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("migration could not clear existing formulas: %w", err)
	}
	report.Deleted = deleted
	fmt.Fprintf(out, "\n⚠ Clearing existing formulas...\n")
	fmt.Fprintf(out, "  Deleted %d existing formulas\n", deleted)

	formulas := Catalog()
	fmt.Fprintf(out, "\n📝 Inserting %d formulas...\n", len(formulas))

	for i := range formulas {
		f := formulas[i]
		if err := store.Create(ctx, &f); err != nil {
			fmt.Fprintf(out, "  ✗ Failed to insert %s: %v\n", f.FormulaID, err)
			logger.Warn("formula insert failed",
				lg.String("run_id", report.RunID.String()),
				lg.String("formula_id", f.FormulaID),
				lg.Err(err))
			report.Failed++
			continue
		}
		fmt.Fprintf(out, "  ✓ %s (%s)\n", f.Name, f.FormulaID)
		report.Inserted++
	}

	total, err := store.Count(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("migration could not count formulas: %w", err)
	}
	report.Total = total

	banner(out, "Migration Summary")
	fmt.Fprintf(out, "✓ Successfully inserted: %d\n", report.Inserted)
	fmt.Fprintf(out, "✗ Failed: %d\n", report.Failed)
	fmt.Fprintf(out, "📊 Total formulas in database: %d\n", report.Total)

	categories, err := store.Categories(ctx)
	if err == nil {
		sort.Strings(categories)
		fmt.Fprintf(out, "\n📁 Categories: %s\n", strings.Join(categories, ", "))
		fmt.Fprintf(out, "\n📈 Formulas by category:\n")
		for _, category := range categories {
			n, countErr := store.Count(ctx, category)
			if countErr != nil {
				continue
			}
			fmt.Fprintf(out, "  %s: %d\n", category, n)
		}
	}

	fmt.Fprintf(out, "\n✅ Migration complete!\n")
	logger.Info("formula migration finished",
		lg.String("run_id", report.RunID.String()),
		lg.Int("inserted", report.Inserted),
		lg.Int("failed", report.Failed))
	return report, nil
}

func banner(out io.Writer, title string) {
	line := strings.Repeat("=", 60)
	fmt.Fprintf(out, "\n%s\n%s\n%s\n", line, title, line)
}
