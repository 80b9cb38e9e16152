package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/fmalina/PDFtranscript"
)

var fontinfoCmd = &cobra.Command{
	Use:   "fontinfo rendered.html",
	Short: "Inspect the embedded fonts of a rendered file",
	Long: `Fontinfo loads every font embedded in a rendered HTML file and reports
how much of each could be read: glyph coverage, PostScript names, and
parse failures. A document that converts with many replacement characters
usually has its answer here.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		infos, err := pdftranscript.Open(args[0]).FontInfo()
		if err != nil {
			return err
		}
		if len(infos) == 0 {
			fmt.Fprintln(os.Stderr, "no embedded fonts")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "FAMILY\tGLYPHS\tNAMED\tSTATUS")
		for _, info := range infos {
			status := "ok"
			if info.Opaque {
				status = "unreadable"
			}
			if info.Error != "" {
				status += ": " + info.Error
			}
			fmt.Fprintf(w, "%s\t%d\t%d\t%s\n",
				info.Family, info.Glyphs, info.NamedGlyphs, status)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(fontinfoCmd)
}
