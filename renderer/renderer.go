// Package renderer drives the external PDF renderer that turns a PDF into
// paginated HTML with embedded fonts. The renderer can run from a local
// binary or through a container image, whichever the host has.
package renderer

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

const defaultBinary = "pdf2htmlEX"

// Config holds configuration for the renderer
type Config struct {
	// Binary is the renderer executable (default: pdf2htmlEX)
	Binary string

	// DockerImage, when set, runs the renderer inside a container
	// instead of a local binary
	DockerImage string

	// Zoom scales the rendered page geometry (default: 1.5, which keeps
	// pixel coordinates fine-grained enough for layout analysis)
	Zoom float64
}

// DefaultConfig returns sensible default configuration
func DefaultConfig() Config {
	return Config{
		Binary: defaultBinary,
		Zoom:   1.5,
	}
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// Runner invokes the renderer on PDF files.
type Runner struct {
	config Config
	exec   executor
}

// New creates a runner with default configuration
func New() *Runner {
	return NewWithConfig(DefaultConfig())
}

// NewWithConfig creates a runner with custom configuration
func NewWithConfig(config Config) *Runner {
	if config.Binary == "" {
		config.Binary = defaultBinary
	}
	if config.Zoom <= 0 {
		config.Zoom = 1.5
	}
	return &Runner{config: config, exec: &osExecutor{}}
}

// Available reports whether the renderer can run on this host.
func (r *Runner) Available() bool {
	if r.config.DockerImage != "" {
		_, err := r.exec.LookPath("docker")
		return err == nil
	}
	_, err := r.exec.LookPath(r.config.Binary)
	return err == nil
}

// Render converts one PDF into paginated HTML in destDir and returns the
// path of the generated file.
func (r *Runner) Render(pdfPath, destDir string) (string, error) {
	absPDF, err := filepath.Abs(pdfPath)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", pdfPath, err)
	}
	absDest, err := filepath.Abs(destDir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", destDir, err)
	}

	outName := outputName(absPDF)

	name, args := r.command(absPDF, absDest, outName)
	if out, err := r.exec.Run(name, args...); err != nil {
		return "", fmt.Errorf("rendering %s: %w: %s", pdfPath, err, strings.TrimSpace(string(out)))
	}

	return filepath.Join(absDest, outName), nil
}

// command builds the renderer invocation. Geometry must stay machine
// readable: fonts embedded in the page, one HTML file, no splitting.
func (r *Runner) command(absPDF, absDest, outName string) (string, []string) {
	flags := []string{
		"--zoom", fmt.Sprintf("%g", r.config.Zoom),
		"--embed-font", "1",
		"--embed-css", "1",
		"--split-pages", "0",
	}

	if r.config.DockerImage != "" {
		args := []string{
			"run", "--rm",
			"-v", filepath.Dir(absPDF) + ":/pdf",
			"-v", absDest + ":/out",
			"-w", "/pdf",
			r.config.DockerImage,
			defaultBinary,
			"--dest-dir", "/out",
		}
		args = append(args, flags...)
		args = append(args, filepath.Base(absPDF), outName)
		return "docker", args
	}

	args := []string{"--dest-dir", absDest}
	args = append(args, flags...)
	args = append(args, absPDF, outName)
	return r.config.Binary, args
}

func outputName(pdfPath string) string {
	base := filepath.Base(pdfPath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".html"
}
