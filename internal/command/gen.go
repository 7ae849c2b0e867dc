// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/config"
	ilog "github.com/henoctshimanga/tfinv/internal/log"
	"github.com/henoctshimanga/tfinv/internal/meta"
	"github.com/henoctshimanga/tfinv/internal/render"
)

// GenCommandAction is the action handler for the "gen" subcommand. It builds
// the inventory for the requested environment and writes one artifact in the
// requested format.
func GenCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	// Bail out early if we're just dumping tldr.
	if ShortCircuitTLDR(ctx, cmd, "gen") {
		return nil
	}

	config.Config.Namespace = "gen"

	inv, m, err := FetchInventory(ctx, cmd)
	if err != nil {
		return err
	}

	s, err := render.For(cmd.String("format"))
	if err != nil {
		return err
	}

	text, err := s.Marshal(inv)
	if err != nil {
		return err
	}

	if cmd.Bool("stdout") {
		_, err = os.Stdout.Write(text)
		return err
	}

	dest := filepath.Join(cmd.String("dir"), m.Env+s.Ext())
	if fi, statErr := os.Stat(dest); statErr == nil {
		log.Infof("replacing %s (written %s)", dest, humanize.Time(fi.ModTime()))
	}

	if err := WriteArtifact(dest, text); err != nil {
		return err
	}
	log.Infof("wrote %s inventory for %s to %s", s.Name(), m.Env, dest)

	return nil
}

// WriteArtifact writes text to dest through a temp file and rename, so a
// concurrent Ansible run never sees a half-written inventory.
func WriteArtifact(dest string, text []byte) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0o755); err != nil { //nolint:mnd
		return fmt.Errorf("failed to create artifact directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(dest)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp artifact: %w", err)
	}

	if _, err := tmp.Write(text); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to write artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to close artifact: %w", err)
	}

	if err := os.Chmod(tmp.Name(), 0o644); err != nil { //nolint:mnd
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to set artifact mode: %w", err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("failed to move artifact into place: %w", err)
	}

	return nil
}

// GenCommandBuilder constructs the cli.Command for "gen", wiring metadata,
// flags, and action/validator handlers.
func GenCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "gen",
		Usage:     "generate an inventory artifact",
		UsageText: `tfinv gen <environment> [options]`,
		Metadata: map[string]any{
			"meta": meta,
		},
		Flags: []cli.Flag{
			NewDirFlag("gen"),
			NewFormatFlag("gen"),
			NewFromFileFlag(),
			NewOrgFlag("gen", meta.Config.Source),
			NewRootFlag("gen"),
			noCacheFlag,
			stdoutFlag,
			tldrFlag,
			verboseFlag,
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			if c.Bool("verbose") {
				ilog.Verbose()
			}
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: GenCommandAction,
	}
}
