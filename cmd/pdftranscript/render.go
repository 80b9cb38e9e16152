package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fmalina/PDFtranscript/renderer"
)

var renderCmd = &cobra.Command{
	Use:   "render [document.pdf...]",
	Short: "Render PDFs into paginated HTML",
	Long: `Render runs the external PDF renderer to produce paginated HTML with
embedded fonts, the input format the convert command expects. Requires
pdf2htmlEX on PATH, or Docker with --docker-image.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		destDir := viper.GetString("dest_dir")
		r := renderer.NewWithConfig(renderer.Config{
			Binary:      viper.GetString("renderer_binary"),
			DockerImage: viper.GetString("docker_image"),
			Zoom:        viper.GetFloat64("zoom"),
		})

		if !r.Available() {
			return fmt.Errorf("no PDF renderer available: install pdf2htmlEX or pass --docker-image")
		}
		if err := os.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", destDir, err)
		}

		for _, pdf := range args {
			out, err := r.Render(pdf, destDir)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "%s -> %s\n", pdf, out)
		}
		return nil
	},
}

func init() {
	defaults := renderer.DefaultConfig()

	renderCmd.Flags().String("dest-dir", ".", "directory for the rendered HTML")
	renderCmd.Flags().String("renderer-binary", defaults.Binary, "renderer executable")
	renderCmd.Flags().String("docker-image", "", "run the renderer through this Docker image")
	renderCmd.Flags().Float64("zoom", defaults.Zoom, "rendering zoom factor")

	for key, flag := range map[string]string{
		"dest_dir":        "dest-dir",
		"renderer_binary": "renderer-binary",
		"docker_image":    "docker-image",
		"zoom":            "zoom",
	} {
		_ = viper.BindPFlag(key, renderCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(renderCmd)
}
