// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/henoctshimanga/tfinv/internal/config"
)

func TestFormatValidator(t *testing.T) {
	tests := []struct {
		value   string
		wantErr bool
	}{
		{value: "ini"},
		{value: "json"},
		{value: "yaml"},
		{value: "toml", wantErr: true},
		{value: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			err := FormatValidator(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOutputValidator(t *testing.T) {
	for _, v := range []string{"text", "json", "raw", "yaml"} {
		assert.NoError(t, OutputValidator(v))
	}
	assert.Error(t, OutputValidator("csv"))
}

func TestJammedFlagValidator(t *testing.T) {
	assert.NoError(t, JammedFlagValidator("outputs.json"))
	assert.Error(t, JammedFlagValidator("--dir"))
}

func TestEnvironmentValidator(t *testing.T) {
	t.Setenv("TFINV_CFG", "testdata/config.yaml")
	config.Config = config.Type{}
	_, _ = config.Load()

	assert.NoError(t, EnvironmentValidator("dev"))
	assert.NoError(t, EnvironmentValidator("staging"))
	assert.NoError(t, EnvironmentValidator("prod"))
	assert.Error(t, EnvironmentValidator("qa"))
}

func TestEnvironmentsDefault(t *testing.T) {
	t.Setenv("TFINV_CFG", "/nonexistent/tfinv.yaml")
	config.Config = config.Type{}

	assert.Equal(t, []string{"dev", "staging", "prod"}, Environments())
}
