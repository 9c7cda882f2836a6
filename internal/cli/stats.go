package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/formulabase/formulactl/internal/formula"
)

// NewStatsCommand creates the "stats" command: the non-interactive view
// of the catalog statistics.
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show catalog statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			defer func() { _ = logger.Sync() }()

			ctx := cmd.Context()
			conn, repo, err := openRepository(ctx, logger)
			if err != nil {
				return err
			}
			defer func() { _ = conn.Close(ctx) }()

			stats, err := gatherStats(ctx, repo)
			if err != nil {
				return err
			}
			printStats(os.Stdout, stats)
			return nil
		},
	}
}

type catalogStats struct {
	Total      int64
	Categories []string
	Tags       []string
	ByCategory map[string]int64
}

// gatherStats collects the totals. Per-category counts are independent
// round-trips, so they run concurrently.
func gatherStats(ctx context.Context, repo *formula.Repository) (*catalogStats, error) {
	total, err := repo.Count(ctx, "")
	if err != nil {
		return nil, err
	}
	categories, err := repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	tags, err := repo.Tags(ctx)
	if err != nil {
		return nil, err
	}
	sort.Strings(categories)
	sort.Strings(tags)

	counts := make([]int64, len(categories))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			n, err := repo.Count(gctx, category)
			if err != nil {
				return err
			}
			counts[i] = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	byCategory := make(map[string]int64, len(categories))
	for i, category := range categories {
		byCategory[category] = counts[i]
	}
	return &catalogStats{
		Total:      total,
		Categories: categories,
		Tags:       tags,
		ByCategory: byCategory,
	}, nil
}

func printStats(out io.Writer, stats *catalogStats) {
	fmt.Fprintf(out, "\n📊 Total formulas: %d\n", stats.Total)
	fmt.Fprintf(out, "📁 Categories: %d\n", len(stats.Categories))
	fmt.Fprintf(out, "🏷  Unique tags: %d\n", len(stats.Tags))

	fmt.Fprintf(out, "\n📈 Formulas by category:\n")
	for _, category := range stats.Categories {
		fmt.Fprintf(out, "  %s: %d\n", category, stats.ByCategory[category])
	}
	fmt.Fprintf(out, "\n🏷  All tags: %s\n", strings.Join(stats.Tags, ", "))
}
