// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/config"
	"github.com/henoctshimanga/tfinv/internal/meta"
)

// runApp builds and runs the full app against a hermetic config file.
func runApp(t *testing.T, args ...string) error {
	t.Helper()
	t.Setenv("TFINV_CFG", "testdata/config.yaml")
	t.Setenv("TFINV_CACHE", "0")
	config.Config = config.Type{}

	app, err := InitApp(context.Background(), args)
	require.NoError(t, err)
	return app.Run(context.Background(), args)
}

func TestGenWritesINIArtifact(t *testing.T) {
	dir := t.TempDir()

	err := runApp(t, "tfinv", "gen", "dev",
		"--from-file", "testdata/outputs.json", "--dir", dir)
	require.NoError(t, err)

	text, err := os.ReadFile(filepath.Join(dir, "dev.ini"))
	require.NoError(t, err)

	out := string(text)
	assert.Contains(t, out, "[web]")
	assert.Contains(t, out, "web-1 ansible_host=203.0.113.10")
	assert.Contains(t, out, "web-2 ansible_host=203.0.113.11")
	assert.Contains(t, out, "[app]")
	assert.Contains(t, out, "[database]")
	assert.Contains(t, out, "[all:vars]")
	assert.Contains(t, out, "environment=dev")
	assert.Contains(t, out, "aws_region=us-east-1")
}

func TestGenWritesJSONArtifact(t *testing.T) {
	dir := t.TempDir()

	err := runApp(t, "tfinv", "gen", "staging",
		"--from-file", "testdata/outputs.json", "--dir", dir, "--format", "json")
	require.NoError(t, err)

	text, err := os.ReadFile(filepath.Join(dir, "staging.json"))
	require.NoError(t, err)

	doc := gjson.ParseBytes(text)
	assert.Equal(t, "staging", doc.Get("all.vars.environment").String())
	assert.Equal(t, "203.0.113.10",
		doc.Get("all.children.web.hosts.web-1.ansible_host").String())
	assert.Equal(t, "db.internal.example.com",
		doc.Get("all.children.database.hosts.db-1.ansible_host").String())
	assert.Equal(t, "5432", doc.Get("all.children.database.vars.db_port").String())
	assert.True(t, doc.Get("_meta.hostvars.app-1").Exists())
}

func TestGenReplacesExistingArtifact(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "dev.ini")
	require.NoError(t, os.WriteFile(dest, []byte("stale"), 0o644))

	err := runApp(t, "tfinv", "gen", "dev",
		"--from-file", "testdata/outputs.json", "--dir", dir)
	require.NoError(t, err)

	text, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.NotContains(t, string(text), "stale")
	assert.Contains(t, string(text), "[all:vars]")
}

func TestGenUnknownEnvironment(t *testing.T) {
	err := runApp(t, "tfinv", "gen", "qa",
		"--from-file", "testdata/outputs.json", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "must be one of")
}

func TestGenMissingEnvironment(t *testing.T) {
	err := runApp(t, "tfinv", "gen",
		"--from-file", "testdata/outputs.json", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "environment argument is required")
}

func TestGenUnknownFormat(t *testing.T) {
	err := runApp(t, "tfinv", "gen", "dev",
		"--from-file", "testdata/outputs.json", "--dir", t.TempDir(),
		"--format", "toml")
	require.Error(t, err)
}

func TestHostUnknownHost(t *testing.T) {
	err := runApp(t, "tfinv", "host", "dev", "db-9",
		"--from-file", "testdata/outputs.json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db-9")
}

func TestDiffRequiresArtifact(t *testing.T) {
	err := runApp(t, "tfinv", "diff", "dev",
		"--from-file", "testdata/outputs.json", "--dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "run gen first")
}

func TestDiffCleanAgainstFreshArtifact(t *testing.T) {
	dir := t.TempDir()

	err := runApp(t, "tfinv", "gen", "dev",
		"--from-file", "testdata/outputs.json", "--dir", dir, "--format", "json")
	require.NoError(t, err)

	err = runApp(t, "tfinv", "diff", "dev",
		"--from-file", "testdata/outputs.json", "--dir", dir)
	require.NoError(t, err)
}

func TestWriteArtifactCreatesDirectories(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "dev.ini")
	require.NoError(t, WriteArtifact(dest, []byte("[all:vars]\n")))

	fi, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), fi.Mode().Perm())
}

func TestResolveRootDir(t *testing.T) {
	start := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(start, "terraform"), 0o755))

	check := func(t *testing.T, args []string, want string) {
		t.Helper()
		app := &cli.Command{
			Name:  "test",
			Flags: []cli.Flag{&cli.StringFlag{Name: "root"}},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				got := ResolveRootDir(cmd, meta.Meta{StartingDir: start})
				assert.Equal(t, want, got)
				return nil
			},
		}
		require.NoError(t, app.Run(context.Background(), append([]string{"test"}, args...)))
	}

	t.Run("conventional terraform dir", func(t *testing.T) {
		check(t, nil, filepath.Join(start, "terraform"))
	})

	t.Run("relative root flag", func(t *testing.T) {
		check(t, []string{"--root", "infra"}, filepath.Join(start, "infra"))
	})

	t.Run("absolute root flag", func(t *testing.T) {
		check(t, []string{"--root", "/opt/tf"}, "/opt/tf")
	})
}
