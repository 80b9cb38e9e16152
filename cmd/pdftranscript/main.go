// Package main is the entry point for the pdftranscript CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the pdftranscript CLI.
var rootCmd = &cobra.Command{
	Use:   "pdftranscript",
	Short: "Semantic HTML transcripts from rendered PDFs",
	Long: `pdftranscript turns PDFs into clean semantic HTML. The render command runs
the external PDF renderer to produce paginated HTML with embedded fonts;
the convert command decodes that output into headings and paragraphs; the
fontinfo command inspects the embedded fonts of a rendered file.

Thresholds for word splitting, paragraph detection, and heading ranking
can be set with flags, a config file, or PDFTRANSCRIPT_* environment
variables.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pdftranscript.yaml or ~/.config/pdftranscript/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pdftranscript")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pdftranscript"))
		}
	}

	viper.SetEnvPrefix("PDFTRANSCRIPT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
