package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/fmalina/PDFtranscript"
)

var convertCmd = &cobra.Command{
	Use:   "convert [rendered.html...]",
	Short: "Convert rendered HTML into a semantic transcript",
	Long: `Convert reads the paginated HTML a PDF renderer produced and writes a
semantic document: headings, paragraphs, and nothing else. Glyphs the
embedded fonts cannot explain come out as replacement characters and the
overall confidence is recorded in the output.

Conversion succeeds even when parts of the input are damaged; recoverable
problems are reported on stderr.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		if output != "" && len(args) > 1 {
			return fmt.Errorf("--output only works with a single input file")
		}

		for _, input := range args {
			if err := convertOne(cmd, input, output); err != nil {
				return err
			}
		}
		return nil
	},
}

func convertOne(cmd *cobra.Command, input, output string) error {
	opts := optionsFromConfig()
	opts.Title, _ = cmd.Flags().GetString("title")

	converter := pdftranscript.Open(input).WithOptions(opts)

	if output == "" {
		output = outputPath(input)
	}

	var warnings []pdftranscript.Warning
	var err error
	if output == "-" {
		warnings, err = converter.WriteHTML(os.Stdout)
	} else {
		var f *os.File
		f, err = os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		warnings, err = converter.WriteHTML(f)
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}

	for _, w := range warnings {
		fmt.Fprintf(os.Stderr, "%s: %s\n", input, w)
	}
	if err != nil {
		return fmt.Errorf("converting %s: %w", input, err)
	}
	if output != "-" {
		fmt.Fprintf(os.Stderr, "%s -> %s\n", input, output)
	}
	return nil
}

// optionsFromConfig reads thresholds from the merged flag, file, and
// environment configuration.
func optionsFromConfig() pdftranscript.ConvertOptions {
	opts := pdftranscript.DefaultConvertOptions()
	opts.SpaceThreshold = viper.GetFloat64("space_threshold")
	opts.LineTolerance = viper.GetFloat64("line_tolerance")
	opts.ParagraphSpacing = viper.GetFloat64("paragraph_spacing")
	opts.IndentTolerance = viper.GetFloat64("indent_tolerance")
	opts.HeadingRatio = viper.GetFloat64("heading_ratio")
	opts.UnresolvedThreshold = viper.GetFloat64("unresolved_threshold")
	opts.RemoveHeaders = viper.GetBool("remove_headers")
	opts.MergeParagraphs = viper.GetBool("merge_paragraphs")
	opts.Workers = viper.GetInt("workers")
	return opts
}

func outputPath(input string) string {
	if strings.HasSuffix(input, ".html") {
		return strings.TrimSuffix(input, ".html") + ".htm"
	}
	return input + ".htm"
}

func init() {
	defaults := pdftranscript.DefaultConvertOptions()

	convertCmd.Flags().StringP("output", "o", "", "output file (default: input with .htm extension, - for stdout)")
	convertCmd.Flags().String("title", "", "document title (default: first heading)")
	convertCmd.Flags().Float64("space-threshold", defaults.SpaceThreshold, "word gap as a fraction of font size")
	convertCmd.Flags().Float64("line-tolerance", defaults.LineTolerance, "same-line distance as a fraction of character height")
	convertCmd.Flags().Float64("paragraph-spacing", defaults.ParagraphSpacing, "paragraph gap as a multiple of line height")
	convertCmd.Flags().Float64("indent-tolerance", defaults.IndentTolerance, "start drift that begins a new paragraph, in em")
	convertCmd.Flags().Float64("heading-ratio", defaults.HeadingRatio, "heading size ratio over the body text")
	convertCmd.Flags().Float64("unresolved-threshold", defaults.UnresolvedThreshold, "unresolved ratio that flags low confidence")
	convertCmd.Flags().Bool("remove-headers", defaults.RemoveHeaders, "drop running headers repeated across pages")
	convertCmd.Flags().Bool("merge-paragraphs", defaults.MergeParagraphs, "join paragraphs split by page breaks")
	convertCmd.Flags().Int("workers", defaults.Workers, "pages decoded concurrently (0 = one per CPU)")

	for key, flag := range map[string]string{
		"space_threshold":      "space-threshold",
		"line_tolerance":       "line-tolerance",
		"paragraph_spacing":    "paragraph-spacing",
		"indent_tolerance":     "indent-tolerance",
		"heading_ratio":        "heading-ratio",
		"unresolved_threshold": "unresolved-threshold",
		"remove_headers":       "remove-headers",
		"merge_paragraphs":     "merge-paragraphs",
		"workers":              "workers",
	} {
		_ = viper.BindPFlag(key, convertCmd.Flags().Lookup(flag))
	}

	rootCmd.AddCommand(convertCmd)
}
