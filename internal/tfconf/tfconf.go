// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// Package tfconf reads just enough of a root module's *.tf files to locate
// the configured state backend. It is the fallback when the working copy has
// no .terraform/terraform.tfstate to peek at (terraform init never ran
// here, e.g. in CI that only generates inventories).
package tfconf

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/apex/log"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// Backend is a terraform { backend "<type>" { ... } } block, flattened to
// its literal string attributes. Attributes carrying expressions that need
// evaluation are skipped; backend blocks are constant by definition.
type Backend struct {
	Type  string
	Attrs map[string]string
}

// Attr returns the named attribute or the fallback.
func (b *Backend) Attr(name string, fallback string) string {
	if v, ok := b.Attrs[name]; ok {
		return v
	}
	return fallback
}

var terraformSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "terraform"}},
}

var backendSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "backend", LabelNames: []string{"type"}}},
}

var workspacesSchema = &hcl.BodySchema{
	Blocks: []hcl.BlockHeaderSchema{{Type: "workspaces"}},
}

// FindBackend scans the *.tf files of dir, in name order, and returns the
// first backend block found.
func FindBackend(dir string) (*Backend, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.tf"))
	if err != nil {
		return nil, err
	}
	sort.Strings(matches)

	parser := hclparse.NewParser()
	for _, path := range matches {
		file, diags := parser.ParseHCLFile(path)
		if diags.HasErrors() {
			log.Debugf("skipping unparseable %s: %v", path, diags)
			continue
		}

		content, _, _ := file.Body.PartialContent(terraformSchema)
		for _, tfBlock := range content.Blocks {
			inner, _, _ := tfBlock.Body.PartialContent(backendSchema)
			for _, block := range inner.Blocks {
				return flatten(block), nil
			}
		}
	}

	return nil, fmt.Errorf("no terraform backend block found in %s", dir)
}

func flatten(block *hcl.Block) *Backend {
	be := &Backend{Type: block.Labels[0], Attrs: map[string]string{}}

	// Remote/cloud backends nest a workspaces {} block; its attributes are
	// flattened under a "workspaces." prefix.
	content, remain, _ := block.Body.PartialContent(workspacesSchema)
	for _, ws := range content.Blocks {
		flattenAttrs(ws.Body, "workspaces.", be.Attrs)
	}
	flattenAttrs(remain, "", be.Attrs)

	return be
}

func flattenAttrs(body hcl.Body, prefix string, into map[string]string) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		log.Debugf("backend block attrs: %v", diags)
	}
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() || val.Type() != cty.String {
			log.Debugf("skipping non-literal backend attr %s", name)
			continue
		}
		into[prefix+name] = val.AsString()
	}
}
