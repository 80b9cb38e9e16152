package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "report.htm", outputPath("report.html"))
	assert.Equal(t, "dir/report.htm", outputPath("dir/report.html"))
	assert.Equal(t, "report.xhtml.htm", outputPath("report.xhtml"))
}

func TestOptionsFromConfigDefaults(t *testing.T) {
	opts := optionsFromConfig()

	assert.Equal(t, 0.25, opts.SpaceThreshold)
	assert.Equal(t, 1.5, opts.ParagraphSpacing)
	assert.Equal(t, 1.0, opts.IndentTolerance)
	assert.True(t, opts.RemoveHeaders)
	assert.True(t, opts.MergeParagraphs)
}

func TestCommandsRegistered(t *testing.T) {
	var names []string
	for _, c := range rootCmd.Commands() {
		names = append(names, c.Name())
	}
	assert.Contains(t, names, "render")
	assert.Contains(t, names, "convert")
	assert.Contains(t, names, "fontinfo")
	assert.Contains(t, names, "version")
}
