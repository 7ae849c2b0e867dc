// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/hashicorp/go-tfe"
	"github.com/urfave/cli/v3"

	"github.com/henoctshimanga/tfinv/internal/bundle"
)

var (
	ErrTokenNotSet     = errors.New("no API token (set TFINV_TOKEN or TFE_TOKEN)")
	ErrWorkspaceNotSet = errors.New("workspace is not resolvable from the backend config")
)

// RemoteSource reads the current state-version outputs of a Terraform
// Cloud/Enterprise workspace. Prefixed backends resolve the workspace as
// prefix+environment.
type RemoteSource struct {
	Hostname     string
	Organization string
	Workspace    string
}

func newRemoteSource(cmd *cli.Command, cfg json.RawMessage, env string) (*RemoteSource, error) {
	var beCfg struct {
		Hostname     string `json:"hostname"`
		Organization string `json:"organization"`
		Workspaces   struct {
			Name   string `json:"name"`
			Prefix string `json:"prefix"`
		} `json:"workspaces"`
	}
	if err := json.Unmarshal(cfg, &beCfg); err != nil {
		return nil, fmt.Errorf("bad remote backend config: %w", err)
	}

	if beCfg.Hostname == "" {
		beCfg.Hostname = "app.terraform.io"
	}
	if org := cmd.String("org"); org != "" {
		beCfg.Organization = org
	}

	ws := beCfg.Workspaces.Name
	if beCfg.Workspaces.Prefix != "" {
		ws = beCfg.Workspaces.Prefix + env
	}

	return &RemoteSource{
		Hostname:     beCfg.Hostname,
		Organization: beCfg.Organization,
		Workspace:    ws,
	}, nil
}

func (s *RemoteSource) Outputs(ctx context.Context) (bundle.Bundle, error) {
	if s.Workspace == "" {
		return nil, ErrWorkspaceNotSet
	}

	token := os.Getenv("TFINV_TOKEN")
	if token == "" {
		token = os.Getenv("TFE_TOKEN")
	}
	if token == "" {
		return nil, ErrTokenNotSet
	}

	client, err := tfe.NewClient(&tfe.Config{
		Address: "https://" + s.Hostname,
		Token:   token,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create TFE client: %w", err)
	}

	ws, err := client.Workspaces.Read(ctx, s.Organization, s.Workspace)
	if err != nil {
		return nil, fmt.Errorf("failed to read workspace %s/%s: %w", s.Organization, s.Workspace, err)
	}

	outputs, err := client.StateVersionOutputs.ReadCurrent(ctx, ws.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to read current outputs: %w", err)
	}

	b := bundle.Bundle{}
	for _, o := range outputs.Items {
		value, err := json.Marshal(o.Value)
		if err != nil {
			return nil, fmt.Errorf("output %s is not representable: %w", o.Name, err)
		}
		typ, _ := json.Marshal(o.Type)
		b[o.Name] = bundle.Output{
			Sensitive: o.Sensitive,
			Type:      typ,
			Value:     value,
		}
	}

	return b, nil
}

func (s *RemoteSource) String() string {
	return fmt.Sprintf("remote(%s/%s/%s)", s.Hostname, s.Organization, s.Workspace)
}
