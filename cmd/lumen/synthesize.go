package main

import (
	"fmt"
	"strings"

	"github.com/solsticehq/lumen/internal/classification"
	"github.com/solsticehq/lumen/internal/cli"
	"github.com/solsticehq/lumen/internal/model"
	"github.com/spf13/cobra"
)

func synthesizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "synthesize",
		Short: "Classify a response and synthesize widgets from it",
		Long: `Classify a response and, when it qualifies, persist the resulting
goal, widgets, and reminders subject to the user's tier quotas.

Examples:
  lumen synthesize --user u123 --text "..."
  lumen synthesize --user u123 --tier TIER2 --file response.txt`,
		RunE: runSynthesize,
	}

	cmd.Flags().StringP("user", "u", "", "User ID owning the synthesized entities (required)")
	cmd.Flags().String("tier", string(model.TierFree), "Subscription tier (FREE, TIER1, TIER2, TIER3)")
	cmd.Flags().StringP("text", "t", "", "Text to synthesize from")
	cmd.Flags().StringP("file", "f", "", "Read text from file")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runSynthesize(cmd *cobra.Command, _ []string) error {
	userID, _ := cmd.Flags().GetString("user")
	tier, _ := cmd.Flags().GetString("tier")
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")

	input, err := readText(text, file)
	if err != nil {
		return err
	}

	db, err := openStorage(cmd.Context())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	syn, err := newSynthesizer(db)
	if err != nil {
		return err
	}

	det := classification.NewDefault().Classify(input)
	cmd.Print(cli.RenderDetection(det))

	result, err := syn.SynthesizeChecked(cmd.Context(), userID, model.Tier(strings.ToUpper(tier)), det)
	if err != nil {
		return fmt.Errorf("synthesis failed: %w", err)
	}

	cmd.Print(cli.RenderResult(result))
	return nil
}
