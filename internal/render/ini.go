// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"
	"strings"

	"github.com/henoctshimanga/tfinv/internal/inventory"
)

// iniSerializer renders the classic Ansible INI inventory: one [group]
// section per non-empty group, an optional [group:vars] section, and a
// trailing [all:vars] section.
type iniSerializer struct{}

func (s *iniSerializer) Name() string { return "ini" }
func (s *iniSerializer) Ext() string  { return ".ini" }

func (s *iniSerializer) Marshal(inv *inventory.Inventory) ([]byte, error) {
	var b strings.Builder

	for _, g := range inv.Groups {
		if len(g.Hosts) == 0 {
			continue
		}

		fmt.Fprintf(&b, "[%s]\n", g.Name)
		for _, h := range g.Hosts {
			b.WriteString(h.Name)
			for _, pair := range hostPairs(h) {
				fmt.Fprintf(&b, " %s=%s", pair.Key, pair.Value)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")

		if len(g.Vars) > 0 {
			fmt.Fprintf(&b, "[%s:vars]\n", g.Name)
			for _, v := range g.Vars {
				fmt.Fprintf(&b, "%s=%s\n", v.Key, v.Value)
			}
			b.WriteString("\n")
		}
	}

	b.WriteString("[all:vars]\n")
	for _, v := range inv.Vars.Pairs() {
		fmt.Fprintf(&b, "%s=%s\n", v.Key, v.Value)
	}

	return []byte(b.String()), nil
}
