// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package bundle

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/tidwall/gjson"
)

// Recognized output keys. ansible_inventory is the structured-inventory key;
// the rest are the flat scalar/list outputs the builder can reconstruct an
// inventory from when the structured key is absent.
const (
	KeyAnsibleInventory = "ansible_inventory"
	KeyWebAddrs         = "web_instance_public_ips"
	KeyAppAddrs         = "app_instance_private_ips"
	KeyDBEndpoint       = "database_endpoint"
	KeyDBEngine         = "database_engine"
	KeyDBPort           = "database_port"
	KeyInfraInfo        = "infrastructure_info"
)

// Output mirrors one entry of a `terraform output -json` document. Value is
// kept raw so each consumer can decode the shape it expects.
type Output struct {
	Sensitive bool            `json:"sensitive"`
	Type      json.RawMessage `json:"type"`
	Value     json.RawMessage `json:"value"`
}

// Bundle is the recorded output set of a provisioning run, keyed by output
// name. It may be empty (nothing provisioned yet) or partial.
type Bundle map[string]Output

// Parse decodes a `terraform output -json` document into a Bundle.
func Parse(doc []byte) (Bundle, error) {
	if len(doc) == 0 {
		return Bundle{}, nil
	}

	var b Bundle
	if err := json.Unmarshal(doc, &b); err != nil {
		return nil, fmt.Errorf("failed to parse output bundle: %w", err)
	}
	if b == nil {
		b = Bundle{}
	}
	return b, nil
}

// FromState extracts the root-level "outputs" table of a terraform.tfstate
// document. State outputs carry the same name/value/type shape as
// `terraform output -json`, so the result is indistinguishable from a Parse
// of the live command.
func FromState(state []byte) (Bundle, error) {
	outputs := gjson.GetBytes(state, "outputs")
	if !outputs.Exists() {
		return Bundle{}, nil
	}
	if !outputs.IsObject() {
		return nil, fmt.Errorf("state outputs is not an object")
	}
	return Parse([]byte(outputs.Raw))
}

// Lookup returns the value of the named output as a gjson result. The second
// return is false when the key is absent or its value is JSON null.
func (b Bundle) Lookup(key string) (gjson.Result, bool) {
	out, ok := b[key]
	if !ok {
		return gjson.Result{}, false
	}
	val := gjson.ParseBytes(out.Value)
	if val.Type == gjson.Null {
		return gjson.Result{}, false
	}
	return val, true
}

// String returns the named output as a scalar string.
func (b Bundle) String(key string) (string, bool) {
	val, ok := b.Lookup(key)
	if !ok || val.Type != gjson.String {
		return "", false
	}
	return val.String(), true
}

// StringSlice returns the named output as a list of strings. Non-array
// values and empty arrays report false.
func (b Bundle) StringSlice(key string) ([]string, bool) {
	val, ok := b.Lookup(key)
	if !ok || !val.IsArray() {
		return nil, false
	}

	var items []string
	for _, item := range val.Array() {
		items = append(items, item.String())
	}
	if len(items) == 0 {
		return nil, false
	}
	return items, true
}

// Int returns the named output as an int.
func (b Bundle) Int(key string) (int, bool) {
	val, ok := b.Lookup(key)
	if !ok || val.Type != gjson.Number {
		return 0, false
	}
	return int(val.Int()), true
}

// Names returns the output names in sorted order.
func (b Bundle) Names() []string {
	names := make([]string, 0, len(b))
	for name := range b {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
