// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/apex/log"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/bundle"
	"github.com/henoctshimanga/tfinv/internal/meta"
	"github.com/henoctshimanga/tfinv/internal/tfconf"
)

// Source produces the output bundle for one environment. Every source
// returns the same Bundle shape; the builder never knows the origin.
type Source interface {
	Outputs(ctx context.Context) (bundle.Bundle, error)
	String() string
}

// New resolves the source for the working copy. Precedence:
//  1. --from-file, an explicit JSON document
//  2. the backend type peeked from .terraform/terraform.tfstate
//  3. the backend block of the *.tf files (init never ran here)
//  4. `terraform output -json` in the root dir
func New(cmd *cli.Command, m meta.Meta) (Source, error) {
	if path := cmd.String("from-file"); path != "" {
		return &FileSource{Path: path}, nil
	}

	typ, cfg, err := peek(m.RootDir)
	if err != nil {
		log.Debugf("no local backend state (%v); trying *.tf backend block", err)
		if be, tfErr := tfconf.FindBackend(m.RootDir); tfErr == nil {
			return fromTFConf(be, m.Env)
		}
		return &ExecSource{RootDir: m.RootDir, Env: m.Env}, nil
	}

	switch typ {
	case "s3":
		return newS3Source(cfg, m.Env)
	case "remote", "cloud":
		return newRemoteSource(cmd, cfg, m.Env)
	default:
		// local and anything unrecognized: let the terraform CLI answer.
		return &ExecSource{RootDir: m.RootDir, Env: m.Env}, nil
	}
}

// peek reads the backend type and config out of .terraform/terraform.tfstate.
func peek(rootDir string) (string, json.RawMessage, error) {
	raw, err := os.ReadFile(filepath.Join(rootDir, ".terraform", "terraform.tfstate"))
	if err != nil {
		return "", nil, err
	}

	var peeker struct {
		Backend struct {
			Type   string          `json:"type"`
			Config json.RawMessage `json:"config"`
		} `json:"backend"`
	}
	if err := json.Unmarshal(raw, &peeker); err != nil {
		return "", nil, fmt.Errorf("can't peek backend: %w", err)
	}
	if peeker.Backend.Type == "" {
		return "", nil, fmt.Errorf("no backend type recorded")
	}
	log.Debugf("backend type: %s", peeker.Backend.Type)

	return peeker.Backend.Type, peeker.Backend.Config, nil
}

func fromTFConf(be *tfconf.Backend, env string) (Source, error) {
	switch be.Type {
	case "s3":
		return &S3Source{
			Env:    env,
			Bucket: be.Attr("bucket", ""),
			Key:    be.Attr("key", "terraform.tfstate"),
			Prefix: be.Attr("workspace_key_prefix", defaultKeyPrefix),
			Region: be.Attr("region", ""),
		}, nil
	case "remote", "cloud":
		ws := be.Attr("workspaces.name", "")
		if prefix := be.Attr("workspaces.prefix", ""); prefix != "" {
			ws = prefix + env
		}
		return &RemoteSource{
			Hostname:     be.Attr("hostname", "app.terraform.io"),
			Organization: be.Attr("organization", ""),
			Workspace:    ws,
		}, nil
	default:
		return nil, fmt.Errorf("unsupported backend type %q in *.tf", be.Type)
	}
}
