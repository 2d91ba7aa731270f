package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/octofacehub/octoface/ipfs"
)

// spaceName is the web3.storage space created for octoface uploads.
const spaceName = "octoface-space"

var setupEmail string

var setupW3Cmd = &cobra.Command{
	Use:   "setup-w3",
	Short: "Set up web3.storage credentials for IPFS uploads",
	Long: `Install the w3 CLI if needed, log in to web3.storage, and create a
storage space for uploads.

The login step sends a verification email. w3 waits until the link in
that email is clicked, so keep the command running while you verify.

Example:

  octoface setup-w3 --email you@example.com`,
	RunE: runSetupW3,
}

func init() {
	setupW3Cmd.Flags().StringVarP(&setupEmail, "email", "e", "", "Email address for the web3.storage account")
}

func runSetupW3(_ *cobra.Command, _ []string) error {
	u := ipfs.NewUploader()

	if err := u.EnsureInstalled(); err != nil {
		return err
	}
	color.Green("w3 CLI is installed.")

	if !u.LoggedIn() {
		if setupEmail == "" {
			return fmt.Errorf("not logged in to web3.storage: rerun with --email you@example.com")
		}
		color.Yellow("Logging in to web3.storage as %s...", setupEmail)
		color.Yellow("Check your inbox and click the verification link to continue.")
		if err := u.Login(setupEmail); err != nil {
			return err
		}
	}
	color.Green("Logged in to web3.storage.")

	if !u.HasSpace() {
		color.Yellow("Creating storage space %q...", spaceName)
		if err := u.CreateSpace(spaceName); err != nil {
			return err
		}
	}
	color.Green("Storage space is ready. Run 'octoface upload' to publish a model.")
	return nil
}
