package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/questfeed/hashtag-engine/internal/config"
	"github.com/questfeed/hashtag-engine/internal/database"
)

// NewSummaryCmd creates the summary command
func NewSummaryCmd() *cobra.Command {
	var dateFlag string
	var topFlag int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show the daily stats summary",
		Long:  "Show the aggregate hashtag stats for a day plus its top trending hashtags",
		RunE: func(cmd *cobra.Command, args []string) error {
			date := time.Now().UTC()
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid date %q, expected YYYY-MM-DD: %w", dateFlag, err)
				}
				date = parsed
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			db, err := database.New(cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer func() {
				if err := db.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
				}
			}()

			statsRepo := database.NewHashtagStatsRepository(db)
			ctx := context.Background()

			summary, err := statsRepo.GetSummary(ctx, date)
			if err != nil {
				return fmt.Errorf("failed to fetch summary: %w", err)
			}

			fmt.Printf("Summary for %s:\n", date.Format("2006-01-02"))
			fmt.Printf("  Tracked hashtags:    %d\n", summary.TotalHashtags)
			fmt.Printf("  Total daily usage:   %d\n", summary.TotalDailyUsage)
			fmt.Printf("  Average trend score: %.2f\n", summary.AverageTrendScore)

			trending, err := statsRepo.ListTrending(ctx, date, topFlag)
			if err != nil {
				return fmt.Errorf("failed to fetch trending hashtags: %w", err)
			}
			if len(trending) == 0 {
				fmt.Println("\nNo trending hashtags")
				return nil
			}

			fmt.Println("\nTop trending:")
			for i, stats := range trending {
				fmt.Printf("  %2d. %-30s trend %.2f, daily %d, total %d\n",
					i+1, stats.Hashtag, stats.TrendScore, stats.DailyCount, stats.TotalCount)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to summarize (YYYY-MM-DD, default today)")
	cmd.Flags().IntVar(&topFlag, "top", 10, "How many trending hashtags to show")

	return cmd
}
