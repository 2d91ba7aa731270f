package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/octofacehub/octoface/publish"
)

var testGithubCmd = &cobra.Command{
	Use:   "test-github",
	Short: "Test GitHub API access",
	Long:  "Verify that the configured token can authenticate and reach the hub repository.",
	RunE:  runTestGithub,
}

func runTestGithub(_ *cobra.Command, _ []string) error {
	token := os.Getenv(publish.TokenEnv)
	if token == "" {
		return fmt.Errorf("%s environment variable is not set", publish.TokenEnv)
	}
	target := publish.DefaultTarget()
	client, err := publish.NewClient(context.Background(), token, target)
	if err != nil {
		return fmt.Errorf("github API access failed: %w", err)
	}
	if err := client.VerifyAccess(); err != nil {
		return fmt.Errorf("github API access failed: %w", err)
	}
	color.Green("Successfully connected to GitHub as: %s", client.Login())
	color.Green("Successfully accessed repository: %s/%s", target.Owner, target.Repo)
	return nil
}
