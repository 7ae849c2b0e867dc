// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/henoctshimanga/tfinv/internal/config"
)

func TestMangleArguments(t *testing.T) {
	t.Setenv("TFINV_CFG", "testdata/config.yaml")
	config.Config = config.Type{}
	_, _ = config.Load()

	t.Run("explicit set expands and is removed", func(t *testing.T) {
		got := mangleArguments([]string{"tfinv", "gen", "dev", "@ci"})
		assert.Equal(t,
			[]string{"tfinv", "gen", "dev", "--format", "yaml", "--stdout"},
			got)
	})

	t.Run("defaults set applies without an explicit set", func(t *testing.T) {
		got := mangleArguments([]string{"tfinv", "gen", "dev"})
		assert.Equal(t, []string{"tfinv", "gen", "dev", "--no-cache"}, got)
	})

	t.Run("help short-circuits untouched", func(t *testing.T) {
		got := mangleArguments([]string{"tfinv", "gen", "--help"})
		assert.Equal(t, []string{"tfinv", "gen", "--help"}, got)
	})

	t.Run("command without sets is untouched", func(t *testing.T) {
		got := mangleArguments([]string{"tfinv", "list", "prod"})
		assert.Equal(t, []string{"tfinv", "list", "prod"}, got)
	})

	t.Run("set token with no command survives", func(t *testing.T) {
		got := mangleArguments([]string{"tfinv", "@ci"})
		assert.Equal(t, []string{"tfinv"}, got)
	})
}
