// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"context"
	"fmt"
	"os"

	"github.com/tidwall/gjson"

	"github.com/henoctshimanga/tfinv/internal/bundle"
)

// FileSource reads the bundle from an explicit JSON document: either a
// captured `terraform output -json` result or a whole terraform.tfstate.
type FileSource struct {
	Path string
}

func (s *FileSource) Outputs(ctx context.Context) (bundle.Bundle, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read bundle file: %w", err)
	}

	// A state document carries a version number and an outputs table; an
	// output dump is the outputs table itself.
	if gjson.GetBytes(data, "version").Exists() && gjson.GetBytes(data, "outputs").Exists() {
		return bundle.FromState(data)
	}
	return bundle.Parse(data)
}

func (s *FileSource) String() string {
	return fmt.Sprintf("file(%s)", s.Path)
}
