package commands

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/questfeed/hashtag-engine/internal/config"
	"github.com/questfeed/hashtag-engine/internal/queue"
)

var resetJobTypes = map[string]queue.JobType{
	"daily":   queue.JobTypeDailyReset,
	"weekly":  queue.JobTypeWeeklyReset,
	"monthly": queue.JobTypeMonthlyReset,
}

// NewResetCmd creates the reset command
func NewResetCmd() *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "reset {daily|weekly|monthly}",
		Short: "Enqueue a counter reset job",
		Long:  "Enqueue a maintenance job that zeroes the daily, weekly, or monthly counters for a day's rows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobType, ok := resetJobTypes[args[0]]
			if !ok {
				return fmt.Errorf("unknown reset horizon %q, expected daily, weekly, or monthly", args[0])
			}

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

			jobQueue, err := queue.NewRabbitMQQueue(cfg.RabbitMQURL)
			if err != nil {
				return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
			}
			defer func() {
				if err := jobQueue.Close(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: failed to close RabbitMQ connection: %v\n", err)
				}
			}()

			job := queue.NewJob(jobType, date)
			if err := jobQueue.Enqueue(context.Background(), job); err != nil {
				return fmt.Errorf("failed to enqueue %s job: %w", jobType, err)
			}

			fmt.Printf("Enqueued %s job %s for %s\n", jobType, job.ID, job.Date.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Day whose rows to reset (YYYY-MM-DD, default today)")

	return cmd
}
