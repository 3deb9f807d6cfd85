package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/questfeed/hashtag-engine/internal/config"
	"github.com/questfeed/hashtag-engine/internal/engine"
	"github.com/questfeed/hashtag-engine/internal/models"
	"github.com/questfeed/hashtag-engine/internal/services/keywords"
)

// NewKeywordsCmd creates the keywords command group
func NewKeywordsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keywords",
		Short: "Inspect and curate classifier keyword rules",
	}

	cmd.AddCommand(newKeywordsListCmd())
	cmd.AddCommand(newKeywordsSuggestCmd())

	return cmd
}

func newKeywordsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the keyword rules in precedence order",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			classifier, err := engine.LoadClassifier(cfg.KeywordsFile)
			if err != nil {
				return fmt.Errorf("failed to load keyword rules: %w", err)
			}

			for _, rule := range classifier.Rules() {
				fmt.Printf("%s (%d keywords):\n", rule.Category, len(rule.Keywords))
				for _, keyword := range rule.Keywords {
					fmt.Printf("  %s\n", keyword)
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func newKeywordsSuggestCmd() *cobra.Command {
	var categoryFlag string
	var countFlag int

	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Suggest new keywords for a category",
		Long: "Ask the configured language model for keyword candidates a category's rule " +
			"does not cover yet. Suggestions are printed for review; nothing is written.",
		RunE: func(cmd *cobra.Command, args []string) error {
			category, err := models.ParseCategory(categoryFlag)
			if err != nil {
				return err
			}
			if category == models.CategoryOther {
				return fmt.Errorf("the other category is the fallback and has no keyword rule")
			}

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.OpenAIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY is required for keyword suggestions")
			}

			classifier, err := engine.LoadClassifier(cfg.KeywordsFile)
			if err != nil {
				return fmt.Errorf("failed to load keyword rules: %w", err)
			}
			existing := classifier.Keywords(category)

			suggester := keywords.NewSuggesterWithLogger(cfg.OpenAIKey, "", cfg.OpenAIModel, zap.NewNop(), false)

			ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
			defer cancel()

			suggestions, err := suggester.Suggest(ctx, category, existing, countFlag)
			if err != nil {
				return fmt.Errorf("failed to fetch suggestions: %w", err)
			}
			if len(suggestions) == 0 {
				fmt.Println("No new keyword suggestions")
				return nil
			}

			fmt.Printf("Suggested keywords for %s (review before adding to the rules file):\n", category)
			for _, keyword := range suggestions {
				fmt.Printf("  %s\n", keyword)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&categoryFlag, "category", "", "Category to suggest keywords for (required)")
	cmd.Flags().IntVar(&countFlag, "count", 10, "How many suggestions to request")
	_ = cmd.MarkFlagRequired("category")

	return cmd
}
