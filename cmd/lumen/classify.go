package main

import (
	"github.com/solsticehq/lumen/internal/classification"
	"github.com/solsticehq/lumen/internal/cli"
	"github.com/solsticehq/lumen/internal/extraction"
	"github.com/spf13/cobra"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify",
		Short: "Classify response text",
		Long: `Classify a response into one of the semantic response types.

Examples:
  lumen classify --text "..."
  cat response.txt | lumen classify`,
		RunE: runClassify,
	}

	cmd.Flags().StringP("text", "t", "", "Text to classify")
	cmd.Flags().StringP("file", "f", "", "Read text from file")

	return cmd
}

func runClassify(cmd *cobra.Command, _ []string) error {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")

	input, err := readText(text, file)
	if err != nil {
		return err
	}

	det := classification.NewDefault().Classify(input)
	cmd.Print(cli.RenderDetection(det))
	return nil
}

func extractCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract goal fields from response text",
		Long: `Extract the structured goal fields (title, amount, timeline,
affirmations, action steps, crystals) from a response, independent of its
classification.`,
		RunE: runExtract,
	}

	cmd.Flags().StringP("text", "t", "", "Text to extract from")
	cmd.Flags().StringP("file", "f", "", "Read text from file")

	return cmd
}

func runExtract(cmd *cobra.Command, _ []string) error {
	text, _ := cmd.Flags().GetString("text")
	file, _ := cmd.Flags().GetString("file")

	input, err := readText(text, file)
	if err != nil {
		return err
	}

	fields := extraction.New().Extract(input)
	cmd.Print(cli.RenderFields(fields))
	return nil
}
