package renderer

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor records invocations instead of running anything.
type fakeExecutor struct {
	paths  map[string]bool
	name   string
	args   []string
	output []byte
	err    error
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.paths[file] {
		return "/usr/bin/" + file, nil
	}
	return "", errors.New("not found")
}

func (f *fakeExecutor) Run(name string, args ...string) ([]byte, error) {
	f.name = name
	f.args = args
	return f.output, f.err
}

func TestAvailableChecksBinary(t *testing.T) {
	r := New()
	fake := &fakeExecutor{paths: map[string]bool{"pdf2htmlEX": true}}
	r.exec = fake

	assert.True(t, r.Available())

	fake.paths = map[string]bool{}
	assert.False(t, r.Available())
}

func TestAvailableChecksDockerWhenImageSet(t *testing.T) {
	r := NewWithConfig(Config{DockerImage: "pdf2htmlex/pdf2htmlex"})
	r.exec = &fakeExecutor{paths: map[string]bool{"docker": true}}

	assert.True(t, r.Available())
}

func TestRenderInvokesBinary(t *testing.T) {
	r := New()
	fake := &fakeExecutor{}
	r.exec = fake

	out, err := r.Render("/data/report.pdf", "/tmp/html")
	require.NoError(t, err)

	assert.Equal(t, "pdf2htmlEX", fake.name)
	assert.Equal(t, filepath.Join("/tmp/html", "report.html"), out)
	assert.Contains(t, fake.args, "--dest-dir")
	assert.Contains(t, fake.args, "--embed-font")
	assert.Contains(t, fake.args, "/data/report.pdf")
	assert.Contains(t, fake.args, "report.html")
}

func TestRenderInvokesDocker(t *testing.T) {
	r := NewWithConfig(Config{DockerImage: "pdf2htmlex/pdf2htmlex"})
	fake := &fakeExecutor{}
	r.exec = fake

	_, err := r.Render("/data/report.pdf", "/tmp/html")
	require.NoError(t, err)

	assert.Equal(t, "docker", fake.name)
	assert.Contains(t, fake.args, "pdf2htmlex/pdf2htmlex")
	assert.Contains(t, fake.args, "report.pdf")
	assert.Contains(t, fake.args, "/data:/pdf")
}

func TestRenderReportsFailure(t *testing.T) {
	r := New()
	r.exec = &fakeExecutor{err: errors.New("exit status 1"), output: []byte("broken pdf")}

	_, err := r.Render("/data/report.pdf", "/tmp/html")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken pdf")
}

func TestConfigDefaults(t *testing.T) {
	r := NewWithConfig(Config{})
	assert.Equal(t, "pdf2htmlEX", r.config.Binary)
	assert.Equal(t, 1.5, r.config.Zoom)
}
