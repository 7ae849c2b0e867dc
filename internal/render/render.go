// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package render

import (
	"fmt"

	"github.com/henoctshimanga/tfinv/internal/inventory"
)

// Serializer renders the inventory model into one on-disk format. Rendering
// is a pure function of the model: equal inventories produce byte-identical
// output.
type Serializer interface {
	// Name is the format identifier used by the --format flag.
	Name() string
	// Ext is the artifact file extension, dot included.
	Ext() string
	// Marshal renders the full inventory.
	Marshal(inv *inventory.Inventory) ([]byte, error)
}

// UnsupportedFormatError reports a --format value outside the registry.
type UnsupportedFormatError struct {
	Format string
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported format %q (supported: %v)", e.Format, Formats())
}

// Registry order is also the display order.
var serializers = []Serializer{
	&iniSerializer{},
	&yamlSerializer{},
	&jsonSerializer{},
}

// For returns the serializer for the requested format.
func For(format string) (Serializer, error) {
	for _, s := range serializers {
		if s.Name() == format {
			return s, nil
		}
	}
	return nil, &UnsupportedFormatError{Format: format}
}

// Formats lists the supported format names.
func Formats() []string {
	names := make([]string, 0, len(serializers))
	for _, s := range serializers {
		names = append(names, s.Name())
	}
	return names
}

// Render is the convenience entry point: resolve the serializer and marshal.
func Render(inv *inventory.Inventory, format string) ([]byte, error) {
	s, err := For(format)
	if err != nil {
		return nil, err
	}
	return s.Marshal(inv)
}

// hostPairs returns a host's attributes as ordered key/value pairs. Empty
// optional attributes are omitted; ansible_host is always present so every
// rendering enumerates the same attribute set.
func hostPairs(h inventory.Host) []inventory.Var {
	pairs := []inventory.Var{{Key: "ansible_host", Value: h.Addr}}
	if h.User != "" {
		pairs = append(pairs, inventory.Var{Key: "ansible_user", Value: h.User})
	}
	if h.PrivateIP != "" {
		pairs = append(pairs, inventory.Var{Key: "private_ip", Value: h.PrivateIP})
	}
	if h.InstanceID != "" {
		pairs = append(pairs, inventory.Var{Key: "instance_id", Value: h.InstanceID})
	}
	return pairs
}
