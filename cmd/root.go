package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "octoface",
	Short: "OctoFace - publish models to IPFS and OctoFaceHub",
	Long: `OctoFace uploads machine-learning model directories to IPFS via the
web3.storage w3 CLI, then opens a pull request against the OctoFaceHub
catalog repository to register the model. It can also download models
from HuggingFace and generate submission files for manual review.

The GITHUB_API_TOKEN environment variable must hold a GitHub personal
access token for every command that talks to GitHub.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(generateFilesCmd)
	rootCmd.AddCommand(testGithubCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(setupW3Cmd)
}
