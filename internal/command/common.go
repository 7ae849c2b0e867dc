// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/bundle"
	"github.com/henoctshimanga/tfinv/internal/cacheutil"
	"github.com/henoctshimanga/tfinv/internal/config"
	"github.com/henoctshimanga/tfinv/internal/inventory"
	"github.com/henoctshimanga/tfinv/internal/meta"
	"github.com/henoctshimanga/tfinv/internal/source"
)

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr tfinv <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "tfinv", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ResolveEnvironment reads the required environment positional and validates
// it against the configured environment set.
func ResolveEnvironment(cmd *cli.Command) (string, error) {
	env := cmd.Args().First()
	if env == "" {
		return "", fmt.Errorf("an environment argument is required (one of %v)", Environments())
	}
	if err := EnvironmentValidator(env); err != nil {
		return "", fmt.Errorf("environment %q: %w", env, err)
	}
	return env, nil
}

// ResolveRootDir decides which directory Terraform outputs are read from.
// The --root flag wins; otherwise a terraform/ directory next to the working
// copy is used when present, falling back to the starting directory itself.
func ResolveRootDir(cmd *cli.Command, m meta.Meta) string {
	if root := cmd.String("root"); root != "" {
		if filepath.IsAbs(root) {
			return root
		}
		return filepath.Join(m.StartingDir, root)
	}

	conventional := filepath.Join(m.StartingDir, "terraform")
	if fi, err := os.Stat(conventional); err == nil && fi.IsDir() {
		return conventional
	}

	return m.StartingDir
}

// FetchInventory runs the full pipeline for a command: resolve the source,
// pull the output bundle, and shape it into an inventory.
func FetchInventory(ctx context.Context, cmd *cli.Command) (*inventory.Inventory, meta.Meta, error) {
	m := GetMeta(cmd)

	env, err := ResolveEnvironment(cmd)
	if err != nil {
		return nil, m, err
	}
	m.Env = env
	m.RootDir = ResolveRootDir(cmd, m)

	src, err := source.New(cmd, m)
	if err != nil {
		return nil, m, err
	}
	log.Debugf("source: %s", src)

	b, err := fetchBundle(ctx, cmd, src, env)
	if err != nil {
		return nil, m, err
	}

	inv, err := inventory.Build(b, env, inventory.DefaultsFromConfig())
	if err != nil {
		return nil, m, err
	}

	return inv, m, nil
}

// fetchBundle pulls the output bundle from the source, consulting the
// on-disk cache for sources that hit the network.
func fetchBundle(ctx context.Context, cmd *cli.Command, src source.Source, env string) (bundle.Bundle, error) {
	cacheable := false
	switch src.(type) {
	case *source.S3Source, *source.RemoteSource:
		cacheable = !cmd.Bool("no-cache")
	}

	if cacheable {
		hours, _ := config.GetInt("cache.hours", 1)
		if err := cacheutil.Purge(hours); err != nil {
			log.WithError(err).Warn("cache purge failed")
		}

		if e, ok := cacheutil.Read([]string{"outputs", env}, src.String()); ok {
			log.Debugf("cache hit: %s", e.Path)
			if b, err := bundle.Parse(e.Data); err == nil {
				return b, nil
			}
			// A corrupt entry is not fatal; fall through to the source.
			log.Debugf("discarding unreadable cache entry %s", e.Path)
		}
	}

	b, err := src.Outputs(ctx)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if data, err := json.Marshal(b); err == nil {
			if err := cacheutil.Write([]string{"outputs", env}, src.String(), data); err != nil {
				log.WithError(err).Warn("cache write failed")
			}
		}
	}

	return b, nil
}
