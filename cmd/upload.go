package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/octofacehub/octoface/hf"
	"github.com/octofacehub/octoface/ipfs"
	"github.com/octofacehub/octoface/model"
	"github.com/octofacehub/octoface/publish"
)

var (
	uploadName        string
	uploadDescription string
	uploadTags        string
)

var uploadCmd = &cobra.Command{
	Use:   "upload <path>",
	Short: "Upload a model to IPFS and open a hub pull request",
	Long: `Upload a model directory to IPFS and create a pull request that adds
it to the OctoFaceHub catalog.

If the path starts with 'hf://', the model is downloaded from the
HuggingFace hub first.

Examples:

  # Upload a local model with all options
  octoface upload ./path/to/model --name "My Model" --description "A description" --tags "tag1,tag2"

  # Upload from HuggingFace
  octoface upload hf://username/model-name --name "HF Model"`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().StringVarP(&uploadName, "name", "n", "", "Name of the model (defaults to the directory name)")
	uploadCmd.Flags().StringVarP(&uploadDescription, "description", "d", "", "Description of the model")
	uploadCmd.Flags().StringVarP(&uploadTags, "tags", "t", "", "Comma-separated list of tags")
}

// prFailureNotice tells the user how to reach an uploaded model when
// the GitHub side of the submission fails. The upload itself is not
// lost; only the catalog pull request is missing.
func prFailureNotice(cid string) {
	color.Yellow("Model was uploaded to IPFS but the GitHub PR process failed.")
	color.Green("IPFS CID: %s", cid)
	color.Green("Access at: %s", model.GatewayURL(cid))
}

func runUpload(_ *cobra.Command, args []string) error {
	token := os.Getenv(publish.TokenEnv)
	if token == "" {
		return fmt.Errorf("%s environment variable is not set", publish.TokenEnv)
	}

	dir := args[0]
	if strings.HasPrefix(dir, "hf://") {
		modelID := strings.TrimPrefix(dir, "hf://")
		fmt.Printf("Downloading model from HuggingFace: %s\n", modelID)
		downloaded, err := hf.NewDownloader().Download(modelID, ".")
		if err != nil {
			return fmt.Errorf("download model: %w", err)
		}
		dir = downloaded
	}

	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("model path: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("model path %s is not a directory", dir)
	}

	name := uploadName
	if name == "" {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return fmt.Errorf("resolve model path: %w", err)
		}
		name = filepath.Base(abs)
		fmt.Printf("Using directory name as model name: %s\n", name)
	}

	uploader := ipfs.NewUploader()
	if err := uploader.Check(); err != nil {
		return err
	}

	fmt.Printf("Uploading model to IPFS: %s\n", dir)
	cid, err := uploader.Upload(dir)
	if err != nil {
		return fmt.Errorf("upload to IPFS: %w", err)
	}
	color.Green("Model uploaded to IPFS with CID: %s", cid)
	color.Green("View your model at %s", model.GatewayURL(cid))

	client, err := publish.NewClient(context.Background(), token, publish.DefaultTarget())
	if err != nil {
		prFailureNotice(cid)
		return err
	}
	client.Progress = func(format string, a ...interface{}) {
		color.Yellow(format, a...)
	}

	meta := model.New(name, uploadDescription, client.Login(), cid, model.ParseTags(uploadTags))
	size, err := model.DirSizeMB(dir)
	if err != nil {
		color.Yellow("Warning: could not calculate model size: %v", err)
	} else {
		meta.SizeMB = size
	}

	fmt.Println("Creating GitHub pull request...")
	res, err := client.PublishModel(meta, dir)
	if err != nil {
		prFailureNotice(cid)
		return err
	}

	color.Green("Model submission complete!")
	fmt.Printf("IPFS CID: %s\n", cid)
	fmt.Printf("Pull Request: %s\n", res.PRURL)
	fmt.Println("The OctoFaceHub team will review your submission.")
	return nil
}
