package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/octofacehub/octoface/ipfs"
	"github.com/octofacehub/octoface/publish"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that required credentials are configured",
	Long:  "Verify the GitHub token and the web3.storage CLI login before any network work.",
	RunE:  runCheck,
}

func runCheck(_ *cobra.Command, _ []string) error {
	ok := true

	if os.Getenv(publish.TokenEnv) == "" {
		color.Red("GitHub API token not found. Set the %s environment variable.", publish.TokenEnv)
		ok = false
	} else {
		color.Green("GitHub API token is set.")
	}

	if err := ipfs.NewUploader().Check(); err != nil {
		color.Red("%v", err)
		ok = false
	} else {
		color.Green("w3 CLI is installed and logged in.")
	}

	if !ok {
		return fmt.Errorf("missing credentials")
	}
	color.Green("All credentials are configured.")
	return nil
}
