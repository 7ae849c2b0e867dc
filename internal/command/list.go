// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"os"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/config"
	ilog "github.com/henoctshimanga/tfinv/internal/log"
	"github.com/henoctshimanga/tfinv/internal/meta"
	"github.com/henoctshimanga/tfinv/internal/render"
)

// ListCommandAction is the action handler for the "list" subcommand. It
// emits the full inventory document on stdout in the dynamic inventory
// shape Ansible expects from `script --list`.
func ListCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "list") {
		return nil
	}

	config.Config.Namespace = "list"

	inv, _, err := FetchInventory(ctx, cmd)
	if err != nil {
		return err
	}

	text, err := render.Render(inv, "json")
	if err != nil {
		return err
	}

	_, err = os.Stdout.Write(text)
	return err
}

// ListCommandBuilder constructs the cli.Command for "list", configuring
// metadata, flags, and the associated action.
func ListCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "list",
		Usage:     "print the dynamic inventory document",
		UsageText: `tfinv list <environment> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewFromFileFlag(),
			NewOrgFlag("list", meta.Config.Source),
			NewRootFlag("list"),
			noCacheFlag,
			tldrFlag,
			verboseFlag,
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("verbose") {
				ilog.Verbose()
			}
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: ListCommandAction,
	}
}
