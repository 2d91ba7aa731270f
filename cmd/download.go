package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/octofacehub/octoface/hf"
)

var downloadOutput string

var downloadCmd = &cobra.Command{
	Use:   "download <model-id>",
	Short: "Download a model from HuggingFace",
	Long:  "Download a model snapshot from the HuggingFace hub into a local directory.",
	Args:  cobra.ExactArgs(1),
	RunE:  runDownload,
}

func init() {
	downloadCmd.Flags().StringVarP(&downloadOutput, "output", "o", "./", "Directory to save the model")
}

func runDownload(_ *cobra.Command, args []string) error {
	modelID := args[0]
	dir, err := hf.NewDownloader().Download(modelID, downloadOutput)
	if err != nil {
		return fmt.Errorf("download model: %w", err)
	}
	color.Green("Successfully downloaded model: %s", modelID)
	fmt.Printf("Saved to: %s\n", dir)
	return nil
}
