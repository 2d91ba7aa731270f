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
	generatePath        string
	generateName        string
	generateDescription string
	generateTags        string
	generateCID         string
	generateOutput      string
)

var generateFilesCmd = &cobra.Command{
	Use:   "generate-files",
	Short: "Generate submission files without opening a pull request",
	Long: `Generate the files needed to submit a model to OctoFaceHub manually.
The model is uploaded to IPFS first unless a CID is provided. The files
can then be added to a fork of the hub repository by hand.`,
	RunE: runGenerateFiles,
}

func init() {
	generateFilesCmd.Flags().StringVarP(&generatePath, "path", "p", "", "Path to the model directory")
	generateFilesCmd.Flags().StringVarP(&generateName, "name", "n", "", "Name of the model")
	generateFilesCmd.Flags().StringVarP(&generateDescription, "description", "d", "", "Description of the model")
	generateFilesCmd.Flags().StringVarP(&generateTags, "tags", "t", "", "Comma-separated list of tags")
	generateFilesCmd.Flags().StringVarP(&generateCID, "cid", "c", "", "CID of the model on IPFS; skips the upload when set")
	generateFilesCmd.Flags().StringVarP(&generateOutput, "output", "o", "octofacehub_files", "Output directory for generated files")
	_ = generateFilesCmd.MarkFlagRequired("name")
	_ = generateFilesCmd.MarkFlagRequired("description")
	_ = generateFilesCmd.MarkFlagRequired("tags")
}

func runGenerateFiles(_ *cobra.Command, _ []string) error {
	dir := generatePath
	if strings.HasPrefix(dir, "hf://") {
		modelID := strings.TrimPrefix(dir, "hf://")
		fmt.Printf("Downloading model from HuggingFace: %s\n", modelID)
		downloaded, err := hf.NewDownloader().Download(modelID, ".")
		if err != nil {
			return fmt.Errorf("download model: %w", err)
		}
		dir = downloaded
	}

	cid := generateCID
	if cid == "" {
		if dir == "" {
			return fmt.Errorf("either --path or --cid must be provided")
		}
		uploader := ipfs.NewUploader()
		if err := uploader.Check(); err != nil {
			return err
		}
		fmt.Printf("Uploading model to IPFS: %s\n", dir)
		uploaded, err := uploader.Upload(dir)
		if err != nil {
			return fmt.Errorf("upload to IPFS: %w", err)
		}
		cid = uploaded
		color.Green("Model uploaded to IPFS with CID: %s", cid)
		color.Green("View your model at %s", model.GatewayURL(cid))
	}

	author := resolveAuthor()
	meta := model.New(generateName, generateDescription, author, cid, model.ParseTags(generateTags))
	if dir != "" {
		size, err := model.DirSizeMB(dir)
		if err != nil {
			color.Yellow("Warning: could not calculate model size: %v", err)
		} else {
			meta.SizeMB = size
		}
	}

	modelDir := filepath.Join(generateOutput, meta.Author, model.Slug(meta.Name))
	if err := os.MkdirAll(modelDir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	metadataJSON, err := model.RenderMetadata(meta)
	if err != nil {
		return fmt.Errorf("render metadata: %w", err)
	}
	if err := os.WriteFile(filepath.Join(modelDir, "metadata.json"), metadataJSON, 0644); err != nil {
		return fmt.Errorf("write metadata.json: %w", err)
	}
	if err := os.WriteFile(filepath.Join(modelDir, "README.md"), []byte(model.RenderReadme(meta)), 0644); err != nil {
		return fmt.Errorf("write README.md: %w", err)
	}
	if dir != "" {
		tree, err := model.Tree(dir)
		if err != nil {
			return fmt.Errorf("build file tree: %w", err)
		}
		treeJSON, err := model.RenderTree(tree)
		if err != nil {
			return fmt.Errorf("render file tree: %w", err)
		}
		if err := os.WriteFile(filepath.Join(modelDir, "tree.json"), treeJSON, 0644); err != nil {
			return fmt.Errorf("write tree.json: %w", err)
		}
	}

	guide := submissionGuide(meta, cid, modelDir)
	if err := os.WriteFile(filepath.Join(generateOutput, "GUIDE.md"), []byte(guide), 0644); err != nil {
		return fmt.Errorf("write GUIDE.md: %w", err)
	}

	color.Green("Files generated successfully at: %s", generateOutput)
	fmt.Printf("Follow the instructions in %s to add your model to OctoFaceHub.\n",
		filepath.Join(generateOutput, "GUIDE.md"))
	return nil
}

// resolveAuthor looks up the GitHub login for the configured token,
// falling back to "anonymous" when no token is set or the lookup fails.
func resolveAuthor() string {
	token := os.Getenv(publish.TokenEnv)
	if token == "" {
		color.Yellow("Warning: %s not set, using 'anonymous' as author", publish.TokenEnv)
		return ""
	}
	client, err := publish.NewClient(context.Background(), token, publish.DefaultTarget())
	if err != nil {
		color.Yellow("GitHub username not available, using 'anonymous': %v", err)
		return ""
	}
	return client.Login()
}

func submissionGuide(meta model.Metadata, cid, modelDir string) string {
	target := publish.DefaultTarget()
	slug := model.Slug(meta.Name)
	return fmt.Sprintf(`# How to Add Your Model to OctoFaceHub

Your model has been uploaded to IPFS with CID: %s
View your model at: %s

To add your model to OctoFaceHub, follow these steps:

1. Fork the OctoFaceHub repository: https://github.com/%s/%s
2. Clone your fork:
   `+"```"+`
   git clone https://github.com/%s/%s.git
   cd %s
   `+"```"+`
3. Copy the generated files into your clone:
   `+"```"+`
   mkdir -p models/%s/%s
   cp -r %s/* models/%s/%s/
   `+"```"+`
4. Commit and push your changes:
   `+"```"+`
   git add models/%s/%s
   git commit -m "Add %s model"
   git push
   `+"```"+`
5. Create a pull request from your fork to the main repository.

The generated files are located at: %s
`,
		cid, model.GatewayURL(cid),
		target.Owner, target.Repo,
		meta.Author, target.Repo, target.Repo,
		meta.Author, slug, modelDir, meta.Author, slug,
		meta.Author, slug, meta.Name,
		modelDir)
}
