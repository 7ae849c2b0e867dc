// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/apex/log"
	"github.com/tidwall/gjson"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/config"
	ilog "github.com/henoctshimanga/tfinv/internal/log"
	"github.com/henoctshimanga/tfinv/internal/meta"
	"github.com/henoctshimanga/tfinv/internal/render"
)

// HostCommandAction is the action handler for the "host" subcommand. It
// emits the variables of a single host, matching what Ansible expects from
// `script --host <name>`.
func HostCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "host") {
		return nil
	}

	config.Config.Namespace = "host"

	name := cmd.Args().Get(1)
	if name == "" {
		return fmt.Errorf("a host name argument is required")
	}

	inv, _, err := FetchInventory(ctx, cmd)
	if err != nil {
		return err
	}

	if _, ok := inv.Host(name); !ok {
		return fmt.Errorf("host %q is not in the %s inventory", name, inv.Vars.Environment)
	}

	doc, err := render.Render(inv, "json")
	if err != nil {
		return err
	}

	vars := gjson.GetBytes(doc, "_meta.hostvars."+name)

	var out bytes.Buffer
	if err := json.Indent(&out, []byte(vars.Raw), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')

	_, err = os.Stdout.Write(out.Bytes())
	return err
}

// HostCommandBuilder constructs the cli.Command for "host".
func HostCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "host",
		Usage:     "print the variables of one host",
		UsageText: `tfinv host <environment> <name> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewFromFileFlag(),
			NewOrgFlag("host", meta.Config.Source),
			NewRootFlag("host"),
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
		Action: HostCommandAction,
	}
}
