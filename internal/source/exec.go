// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/apex/log"

	"github.com/henoctshimanga/tfinv/internal/bundle"
)

// ExecSource shells out to `terraform output -json` in the root module
// directory. TF_WORKSPACE pins the run to the requested environment.
type ExecSource struct {
	RootDir string
	Env     string
}

func (s *ExecSource) Outputs(ctx context.Context) (bundle.Bundle, error) {
	cmd := exec.CommandContext(ctx, "terraform", "output", "-json")
	cmd.Dir = s.RootDir
	cmd.Env = append(os.Environ(), "TF_WORKSPACE="+s.Env)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	log.Debugf("running terraform output -json in %s (workspace %s)", s.RootDir, s.Env)
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return nil, fmt.Errorf("terraform output failed: %s: %w", msg, err)
		}
		return nil, fmt.Errorf("terraform output failed: %w", err)
	}

	return bundle.Parse(stdout.Bytes())
}

func (s *ExecSource) String() string {
	return fmt.Sprintf("exec(%s)", s.RootDir)
}
