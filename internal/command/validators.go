// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/config"
	"github.com/henoctshimanga/tfinv/internal/render"
)

// defaultEnvironments are the workspaces an inventory may be generated for
// when the config file doesn't say otherwise.
var defaultEnvironments = []string{"dev", "staging", "prod"}

// Environments returns the allowed environment names, honoring an
// "environments" list in the config file.
func Environments() []string {
	envs, _ := config.GetStrings("environments", defaultEnvironments)
	return envs
}

func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if strings.HasPrefix(value.(string), "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "raw", "yaml"}
	valid := false
	for _, v := range validOutputFlagValues {
		if v == value {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func FormatValidator(value any) error {
	for _, f := range render.Formats() {
		if f == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", render.Formats())
}

func EnvironmentValidator(value any) error {
	envs := Environments()
	for _, e := range envs {
		if e == value {
			return nil
		}
	}
	return fmt.Errorf("must be one of %v", envs)
}
