// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"bytes"
	"encoding/json"

	"github.com/henoctshimanga/tfinv/internal/inventory"
)

// jsonSerializer renders the canonical lossless representation: the same
// nested shape as YAML plus the _meta.hostvars side table required by the
// Ansible dynamic-inventory convention (host vars retrievable both nested
// under each group and flatly under _meta).
type jsonSerializer struct{}

func (s *jsonSerializer) Name() string { return "json" }
func (s *jsonSerializer) Ext() string  { return ".json" }

func (s *jsonSerializer) Marshal(inv *inventory.Inventory) ([]byte, error) {
	doc := omap{
		{Key: "all", Value: omap{
			{Key: "vars", Value: varsMap(inv.Vars.Pairs())},
			{Key: "children", Value: jsonChildren(inv)},
		}},
		{Key: "_meta", Value: omap{
			{Key: "hostvars", Value: jsonHostvars(inv)},
		}},
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func jsonChildren(inv *inventory.Inventory) omap {
	children := omap{}
	for _, g := range inv.Groups {
		if len(g.Hosts) == 0 {
			continue
		}

		hosts := omap{}
		for _, h := range g.Hosts {
			hosts = append(hosts, oentry{Key: h.Name, Value: varsMap(hostPairs(h))})
		}

		group := omap{{Key: "hosts", Value: hosts}}
		if len(g.Vars) > 0 {
			group = append(group, oentry{Key: "vars", Value: varsMap(g.Vars)})
		}

		children = append(children, oentry{Key: g.Name, Value: group})
	}
	return children
}

// jsonHostvars flattens every host's attributes, in group then ordinal
// order.
func jsonHostvars(inv *inventory.Inventory) omap {
	hostvars := omap{}
	for _, h := range inv.Hosts() {
		hostvars = append(hostvars, oentry{Key: h.Name, Value: varsMap(hostPairs(h))})
	}
	return hostvars
}

func varsMap(pairs []inventory.Var) omap {
	vars := omap{}
	for _, v := range pairs {
		vars = append(vars, oentry{Key: v.Key, Value: v.Value})
	}
	return vars
}

// omap is a JSON object with caller-controlled key order. encoding/json
// iterates Go maps in sorted order, which would break the fixed
// web/app/database group order and the ordinal order of hosts.
type omap []oentry

type oentry struct {
	Key   string
	Value any
}

func (m omap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Key)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(e.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
