// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"
	"github.com/yudai/gojsondiff"
	"github.com/yudai/gojsondiff/formatter"

	"github.com/henoctshimanga/tfinv/internal/config"
	ilog "github.com/henoctshimanga/tfinv/internal/log"
	"github.com/henoctshimanga/tfinv/internal/meta"
	"github.com/henoctshimanga/tfinv/internal/render"
)

// DiffCommandAction is the action handler for the "diff" subcommand. It
// compares the inventory that would be generated right now against the JSON
// artifact last written for the environment, surfacing infrastructure drift.
func DiffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	config.Config.Namespace = "diff"

	inv, m, err := FetchInventory(ctx, cmd)
	if err != nil {
		return err
	}

	fresh, err := render.Render(inv, "json")
	if err != nil {
		return err
	}

	artifact := filepath.Join(cmd.String("dir"), m.Env+".json")
	existing, err := os.ReadFile(artifact)
	if err != nil {
		return fmt.Errorf("no inventory artifact at %s (run gen first): %w", artifact, err)
	}
	if fi, statErr := os.Stat(artifact); statErr == nil {
		log.Infof("comparing against %s (written %s)", artifact, humanize.Time(fi.ModTime()))
	}

	d, err := gojsondiff.New().Compare(existing, fresh)
	if err != nil {
		return fmt.Errorf("failed to diff inventories: %w", err)
	}

	if !d.Modified() {
		fmt.Println("no changes")
		return nil
	}

	var left map[string]interface{}
	if err := json.Unmarshal(existing, &left); err != nil {
		return fmt.Errorf("artifact %s is not valid JSON: %w", artifact, err)
	}

	f := formatter.NewAsciiFormatter(left, formatter.AsciiFormatterConfig{
		ShowArrayIndex: true,
		Coloring:       cmd.Bool("color"),
	})
	text, err := f.Format(d)
	if err != nil {
		return err
	}

	fmt.Print(text)
	return nil
}

// DiffCommandBuilder constructs the cli.Command for "diff".
func DiffCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "diff",
		Usage:     "show drift between live outputs and the last generated inventory",
		UsageText: `tfinv diff <environment> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			&cli.BoolWithInverseFlag{
				Name:    "color",
				Aliases: []string{"c"},
				Usage:   "enable colored text output",
				Value:   false,
			},
			NewDirFlag("diff"),
			NewFromFileFlag(),
			NewOrgFlag("diff", meta.Config.Source),
			NewRootFlag("diff"),
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
		Action: DiffCommandAction,
	}
}
