// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	yamlv2 "gopkg.in/yaml.v2"

	"github.com/henoctshimanga/tfinv/internal/inventory"
)

// yamlSerializer renders the nested all.vars / all.children.<group>.hosts
// shape. yaml.v2 MapSlice keeps key order under our control, which the
// byte-identical guarantee depends on; yaml.v2 always emits block style at
// 2-space indentation.
type yamlSerializer struct{}

func (s *yamlSerializer) Name() string { return "yaml" }
func (s *yamlSerializer) Ext() string  { return ".yml" }

func (s *yamlSerializer) Marshal(inv *inventory.Inventory) ([]byte, error) {
	return yamlv2.Marshal(yamlv2.MapSlice{
		{Key: "all", Value: yamlv2.MapSlice{
			{Key: "vars", Value: varsSlice(inv.Vars.Pairs())},
			{Key: "children", Value: childrenSlice(inv)},
		}},
	})
}

func varsSlice(pairs []inventory.Var) yamlv2.MapSlice {
	var out yamlv2.MapSlice
	for _, v := range pairs {
		out = append(out, yamlv2.MapItem{Key: v.Key, Value: v.Value})
	}
	return out
}

func childrenSlice(inv *inventory.Inventory) yamlv2.MapSlice {
	children := yamlv2.MapSlice{}
	for _, g := range inv.Groups {
		if len(g.Hosts) == 0 {
			continue
		}

		hosts := yamlv2.MapSlice{}
		for _, h := range g.Hosts {
			hosts = append(hosts, yamlv2.MapItem{Key: h.Name, Value: varsSlice(hostPairs(h))})
		}

		group := yamlv2.MapSlice{{Key: "hosts", Value: hosts}}
		if len(g.Vars) > 0 {
			group = append(group, yamlv2.MapItem{Key: "vars", Value: varsSlice(g.Vars)})
		}

		children = append(children, yamlv2.MapItem{Key: g.Name, Value: group})
	}
	return children
}
