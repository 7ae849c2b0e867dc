// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"os"
	"strconv"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/bundle"
	"github.com/henoctshimanga/tfinv/internal/config"
	ilog "github.com/henoctshimanga/tfinv/internal/log"
	"github.com/henoctshimanga/tfinv/internal/meta"
	"github.com/henoctshimanga/tfinv/internal/output"
	"github.com/henoctshimanga/tfinv/internal/source"
)

var outputsColumns = []string{"name", "type", "sensitive", "value"}

// OutputsCommandAction is the action handler for the "outputs" subcommand.
// It lists the raw output bundle of an environment without shaping it into
// an inventory.
func OutputsCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "outputs") {
		return nil
	}

	config.Config.Namespace = "outputs"

	env, err := ResolveEnvironment(cmd)
	if err != nil {
		return err
	}
	m.Env = env
	m.RootDir = ResolveRootDir(cmd, m)

	src, err := source.New(cmd, m)
	if err != nil {
		return err
	}
	log.Debugf("source: %s", src)

	b, err := fetchBundle(ctx, cmd, src, env)
	if err != nil {
		return err
	}

	reveal := cmd.Bool("reveal")

	var rows []output.Row
	for _, name := range b.Names() {
		o := b[name]
		rows = append(rows, output.Row{
			"name":      name,
			"type":      typeString(o.Type),
			"sensitive": strconv.FormatBool(o.Sensitive),
			"value":     valueString(o, reveal),
		})
	}

	rawDoc, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}

	return output.Spit(rows, outputsColumns, append(rawDoc, '\n'), cmd, os.Stdout)
}

// typeString flattens a Terraform type document for display. Primitive types
// arrive as a quoted JSON string, composites as a JSON array.
func typeString(typ json.RawMessage) string {
	var s string
	if err := json.Unmarshal(typ, &s); err == nil {
		return s
	}
	return string(typ)
}

// valueString renders an output value, masking sensitive values unless the
// caller asked to reveal them.
func valueString(o bundle.Output, reveal bool) string {
	if o.Sensitive && !reveal {
		return "(sensitive)"
	}
	return string(o.Value)
}

// OutputsCommandBuilder constructs the cli.Command for "outputs".
func OutputsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "outputs",
		Usage:     "list the Terraform outputs of an environment",
		UsageText: `tfinv outputs <environment> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: append([]cli.Flag{
			NewFromFileFlag(),
			NewOrgFlag("outputs", meta.Config.Source),
			NewRootFlag("outputs"),
			&cli.BoolFlag{
				Name:        "reveal",
				Usage:       "show sensitive output values",
				HideDefault: true,
			},
			noCacheFlag,
			tldrFlag,
			verboseFlag,
		}, NewOutputFlags("outputs")...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("verbose") {
				ilog.Verbose()
			}
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: OutputsCommandAction,
	}
}
