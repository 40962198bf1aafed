package main

import (
	"github.com/solsticehq/lumen/internal/cli"
	"github.com/solsticehq/lumen/internal/model"
	"github.com/solsticehq/lumen/internal/signals"
	"github.com/spf13/cobra"
)

func suggestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "suggest",
		Short: "Detect follow-up suggestions in response text",
		Long: `Scan a response for price alerts, chart patterns, daily readings, and
portfolio mentions, and print the resulting suggestions.`,
		RunE: runSuggest,
	}

	cmd.Flags().StringP("text", "t", "", "Text to scan")
	cmd.Flags().StringP("file", "f", "", "Read text from file")
	cmd.Flags().String("coin", "", "Coin symbol from conversation context")
	cmd.Flags().String("user-input", "", "Original user message for context")

	return cmd
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")
	coin, _ := cmd.Flags().GetString("coin")
	userInput, _ := cmd.Flags().GetString("user-input")

	input, err := readText(text, file)
	if err != nil {
		return err
	}

	suggestions := signals.New().Detect(input, model.SignalContext{
		Coin:      coin,
		UserInput: userInput,
	})
	cmd.Print(cli.RenderSuggestions(suggestions))
	return nil
}
