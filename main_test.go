package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/df07/go-frame-tracer/pkg/config"
)

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("render:\n  scene: empty\n  samples: 9\n  width: 10\noutput:\n  format: ppm\n"), 0o644))

	opts, fs, err := parseFlags([]string{"-config", path, "-samples", "3", "-seed", "5"}, io.Discard)
	require.NoError(t, err)

	cfg, err := loadConfig(opts, fs)
	require.NoError(t, err)
	assert.Equal(t, "empty", cfg.Render.Scene)
	assert.Equal(t, 3, cfg.Render.Samples)
	assert.Equal(t, 10, cfg.Render.Width)
	assert.Equal(t, int64(5), cfg.Render.Seed)
	assert.Equal(t, config.FormatPPM, cfg.Output.Format)
}

func TestLoadConfig_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"bad format", []string{"-format", "gif"}},
		{"negative samples", []string{"-samples", "-1"}},
		{"bad log level", []string{"-log-level", "shout"}},
		{"missing config", []string{"-config", "does-not-exist.yaml"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, fs, err := parseFlags(tt.args, io.Discard)
			require.NoError(t, err)
			_, err = loadConfig(opts, fs)
			assert.Error(t, err)
		})
	}
}

func TestParseFlags_Unknown(t *testing.T) {
	_, _, err := parseFlags([]string{"-bogus"}, io.Discard)
	assert.Error(t, err)
}

func TestOutputPath(t *testing.T) {
	now := time.Date(2024, 3, 9, 14, 5, 7, 0, time.UTC)
	assert.Equal(t,
		filepath.Join("output", "default", "render_20240309_140507.png"),
		outputPath("output", "default", "png", now))
}

func TestRun_WritesImage(t *testing.T) {
	tests := []struct {
		format string
		header []byte
	}{
		{"ppm", []byte("P3\n4 3\n255\n")},
		{"png", []byte("\x89PNG")},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			var stdout bytes.Buffer

			path, err := run(context.Background(), []string{
				"-scene", "area-light",
				"-width", "4", "-height", "3", "-samples", "2", "-seed", "1",
				"-format", tt.format, "-output", dir,
			}, &stdout, io.Discard, zaptest.NewLogger(t))
			require.NoError(t, err)

			assert.True(t, strings.HasPrefix(path, filepath.Join(dir, "area-light")))
			assert.Contains(t, stdout.String(), path)

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.True(t, bytes.HasPrefix(data, tt.header), "unexpected header %q", data[:min(len(data), 16)])
		})
	}
}

func TestRun_SceneFile(t *testing.T) {
	dir := t.TempDir()
	path, err := run(context.Background(), []string{
		"-scene", "scenes/two-lights.yaml",
		"-width", "4", "-height", "4", "-samples", "1",
		"-output", dir,
	}, io.Discard, io.Discard, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "two-lights"), filepath.Dir(path))
}

func TestRun_LogsJSONToStderr(t *testing.T) {
	var stderr bytes.Buffer
	_, err := run(context.Background(), []string{
		"-scene", "empty", "-width", "2", "-height", "2", "-samples", "1",
		"-log-level", "info", "-output", t.TempDir(),
	}, io.Discard, &stderr, nil)
	require.NoError(t, err)

	logs := stderr.String()
	assert.Contains(t, logs, `"msg":"render saved"`)
	assert.Contains(t, logs, `"render_id":`)
	assert.Contains(t, logs, `"scene":"empty"`)
}

func TestRun_UnknownScene(t *testing.T) {
	_, err := run(context.Background(), []string{"-scene", "nonexistent", "-output", t.TempDir()}, io.Discard, io.Discard, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestRun_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dir := t.TempDir()
	_, err := run(ctx, []string{"-scene", "empty", "-output", dir}, io.Discard, io.Discard, zaptest.NewLogger(t))
	assert.ErrorIs(t, err, context.Canceled)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRun_Help(t *testing.T) {
	var stdout bytes.Buffer
	path, err := run(context.Background(), []string{"-help"}, &stdout, io.Discard, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Contains(t, stdout.String(), "area-light")
	assert.Contains(t, stdout.String(), "-samples")
	assert.Contains(t, stdout.String(), filepath.Join("scenes", "two-lights.yaml"))
}
