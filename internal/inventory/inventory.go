// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package inventory

// Canonical group names. Rendering always emits groups in this order, and
// upstream producer aliases (webservers, appservers, databases) normalize to
// these names so playbooks never care which path built the file.
const (
	GroupWeb = "web"
	GroupApp = "app"
	GroupDB  = "database"
)

// GroupOrder is the fixed rendering order of groups.
var GroupOrder = []string{GroupWeb, GroupApp, GroupDB}

// groupAliases maps every accepted upstream spelling to a canonical name.
var groupAliases = map[string]string{
	GroupWeb:     GroupWeb,
	GroupApp:     GroupApp,
	GroupDB:      GroupDB,
	"webservers": GroupWeb,
	"appservers": GroupApp,
	"databases":  GroupDB,
}

// hostPrefixes drive the <prefix>-<ordinal> host naming convention.
var hostPrefixes = map[string]string{
	GroupWeb: "web",
	GroupApp: "app",
	GroupDB:  "db",
}

// Host is one addressable machine within a group.
type Host struct {
	Name       string
	Addr       string // ansible_host
	User       string // ansible_user, may be empty
	PrivateIP  string // optional, structured path only
	InstanceID string // optional, structured path only
}

// Var is a single group-level variable. Order within a group is significant
// and survives rendering.
type Var struct {
	Key   string
	Value string
}

// Group is a named set of hosts sharing a role, plus flat group vars.
// Groups with no hosts are never part of an Inventory.
type Group struct {
	Name  string
	Hosts []Host
	Vars  []Var
}

// GlobalVars is the [all:vars] mapping. Field order is the rendering order.
type GlobalVars struct {
	Environment string
	ProjectName string
	Region      string
	ManagedBy   string
}

// Pairs returns the globals as ordered key/value pairs for rendering.
func (g GlobalVars) Pairs() []Var {
	return []Var{
		{Key: "environment", Value: g.Environment},
		{Key: "project_name", Value: g.ProjectName},
		{Key: "aws_region", Value: g.Region},
		{Key: "managed_by", Value: g.ManagedBy},
	}
}

// Inventory is the root model: groups in GroupOrder plus the globals.
// It is derived fresh on every build and never cached.
type Inventory struct {
	Vars   GlobalVars
	Groups []Group
}

// Group returns the named group, if present.
func (inv *Inventory) Group(name string) (*Group, bool) {
	for i := range inv.Groups {
		if inv.Groups[i].Name == name {
			return &inv.Groups[i], true
		}
	}
	return nil, false
}

// Host returns the named host from any group.
func (inv *Inventory) Host(name string) (Host, bool) {
	for _, g := range inv.Groups {
		for _, h := range g.Hosts {
			if h.Name == name {
				return h, true
			}
		}
	}
	return Host{}, false
}

// Hosts returns every host in group order, then ordinal order.
func (inv *Inventory) Hosts() []Host {
	var hosts []Host
	for _, g := range inv.Groups {
		hosts = append(hosts, g.Hosts...)
	}
	return hosts
}
