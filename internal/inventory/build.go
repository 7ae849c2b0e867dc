// Copyright (c) 2025 Henoct Shimanga <henoctshimanga@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package inventory

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/apex/log"
	"github.com/tidwall/gjson"

	"github.com/henoctshimanga/tfinv/internal/bundle"
	"github.com/henoctshimanga/tfinv/internal/config"
)

// Fallback defaults, matching the values the upstream Terraform modules bake
// into their outputs.
const (
	DefaultUser    = "ubuntu"
	DefaultProject = "iac-solution"
	DefaultRegion  = "us-west-2"
	DefaultEngine  = "postgres"
	DefaultDBPort  = 5432
)

// Defaults are the values the builder falls back on when the bundle carries
// no better answer.
type Defaults struct {
	User    string
	Project string
	Region  string
}

// DefaultsFromConfig resolves Defaults from tfinv.yaml, falling back to the
// compiled-in values.
func DefaultsFromConfig() Defaults {
	user, _ := config.GetString("user", DefaultUser)
	project, _ := config.GetString("project", DefaultProject)
	region, _ := config.GetString("region", DefaultRegion)
	return Defaults{User: user, Project: project, Region: region}
}

// builder is the one-shot source decision: the bundle either carries a
// pre-structured inventory or gets reconstructed from scalar outputs. The
// decision is resolved once, up front, so each path stays independently
// testable.
type builder interface {
	build(inv *Inventory) error
}

// Build derives an Inventory from an output bundle. The environment is an
// explicit parameter and always wins over anything the bundle claims. An
// empty bundle is not an error: the result carries only the global vars and
// a warning is logged.
func Build(b bundle.Bundle, env string, defs Defaults) (*Inventory, error) {
	inv := &Inventory{
		Vars: GlobalVars{
			Environment: env,
			ProjectName: defs.Project,
			Region:      defs.Region,
			ManagedBy:   "terraform",
		},
	}

	if info, ok := b.Lookup(bundle.KeyInfraInfo); ok {
		if region := info.Get("region"); region.Exists() {
			inv.Vars.Region = region.String()
		}
	}

	if len(b) == 0 {
		log.Warnf("output bundle for %q is empty; emitting global vars only", env)
		return inv, nil
	}

	if err := resolveBuilder(b, defs).build(inv); err != nil {
		return nil, err
	}

	if len(inv.Groups) == 0 {
		log.Warnf("no host outputs recognized for %q; emitting global vars only", env)
	}

	return inv, nil
}

// resolveBuilder prefers the structured path: the upstream producer has
// richer per-host metadata (private_ip, instance_id) than scalar
// reconstruction can recover. A null or empty structured value counts as
// absent; a present-but-invalid one is a hard ParseError inside build().
func resolveBuilder(b bundle.Bundle, defs Defaults) builder {
	if raw, ok := b.Lookup(bundle.KeyAnsibleInventory); ok && !emptyStructured(raw) {
		return &structuredBuilder{raw: raw}
	}
	return &scalarBuilder{b: b, defs: defs}
}

// emptyStructured reports values that cannot possibly describe hosts: ""
// and {}.
func emptyStructured(raw gjson.Result) bool {
	switch {
	case raw.Type == gjson.String && strings.TrimSpace(raw.String()) == "":
		return true
	case raw.IsObject() && len(raw.Map()) == 0:
		return true
	}
	return false
}

// structuredBuilder parses the ansible_inventory output directly. Some
// producers emit the object itself, others a JSON-encoded string of it;
// both are accepted.
type structuredBuilder struct {
	raw gjson.Result
}

func (s *structuredBuilder) build(inv *Inventory) error {
	doc := s.raw
	if doc.Type == gjson.String {
		inner := gjson.Parse(doc.String())
		if !inner.IsObject() {
			return &ParseError{
				Key: bundle.KeyAnsibleInventory,
				Err: errors.New("string value is not a JSON object"),
			}
		}
		doc = inner
	}

	if !doc.IsObject() {
		return &ParseError{
			Key: bundle.KeyAnsibleInventory,
			Err: fmt.Errorf("expected object, got %s", doc.Type),
		}
	}

	if err := parseAll(doc, inv, false); err != nil {
		return &ParseError{Key: bundle.KeyAnsibleInventory, Err: err}
	}
	return nil
}

// scalarBuilder reconstructs the model from the flat outputs. Missing keys
// degrade to omitted groups, never to an error.
type scalarBuilder struct {
	b    bundle.Bundle
	defs Defaults
}

func (s *scalarBuilder) build(inv *Inventory) error {
	if addrs, ok := s.b.StringSlice(bundle.KeyWebAddrs); ok {
		inv.Groups = append(inv.Groups, hostsFromAddrs(GroupWeb, addrs, s.defs.User))
	} else {
		log.Debugf("output %s absent; omitting %s group", bundle.KeyWebAddrs, GroupWeb)
	}

	if addrs, ok := s.b.StringSlice(bundle.KeyAppAddrs); ok {
		inv.Groups = append(inv.Groups, hostsFromAddrs(GroupApp, addrs, s.defs.User))
	} else {
		log.Debugf("output %s absent; omitting %s group", bundle.KeyAppAddrs, GroupApp)
	}

	// An empty endpoint string counts as absent, never a placeholder host.
	if endpoint, ok := s.b.String(bundle.KeyDBEndpoint); ok && strings.TrimSpace(endpoint) != "" {
		inv.Groups = append(inv.Groups, s.databaseGroup(endpoint))
	} else {
		log.Debugf("output %s absent; omitting %s group", bundle.KeyDBEndpoint, GroupDB)
	}

	return nil
}

// databaseGroup models the single primary endpoint. The endpoint is
// host:port; everything after the first colon is the port.
func (s *scalarBuilder) databaseGroup(endpoint string) Group {
	addr, _, _ := strings.Cut(endpoint, ":")

	engine, ok := s.b.String(bundle.KeyDBEngine)
	if !ok {
		engine = DefaultEngine
	}
	port, ok := s.b.Int(bundle.KeyDBPort)
	if !ok {
		port = DefaultDBPort
	}

	return Group{
		Name: GroupDB,
		Hosts: []Host{
			{Name: hostPrefixes[GroupDB] + "-1", Addr: addr},
		},
		Vars: []Var{
			{Key: "db_engine", Value: engine},
			{Key: "db_port", Value: strconv.Itoa(port)},
		},
	}
}

// hostsFromAddrs assigns ordinals by list position, starting at 1, no gaps.
func hostsFromAddrs(group string, addrs []string, user string) Group {
	g := Group{Name: group}
	for i, addr := range addrs {
		g.Hosts = append(g.Hosts, Host{
			Name: fmt.Sprintf("%s-%d", hostPrefixes[group], i+1),
			Addr: addr,
			User: user,
		})
	}
	return g
}

// ParseJSON decodes a canonical JSON rendering back into the model. This is
// the lossless round-trip used by the diff command and by tests.
func ParseJSON(doc []byte) (*Inventory, error) {
	parsed := gjson.ParseBytes(doc)
	if !parsed.IsObject() {
		return nil, &ParseError{Key: "inventory", Err: errors.New("not a JSON object")}
	}

	inv := &Inventory{}
	if err := parseAll(parsed, inv, true); err != nil {
		return nil, &ParseError{Key: "inventory", Err: err}
	}
	return inv, nil
}

// parseAll walks the all.vars / all.children.<group>.hosts.<name> shape
// shared by the structured output and the canonical JSON rendering. When
// trustGlobals is false the environment of the caller wins and only the
// remaining globals may be overridden.
func parseAll(doc gjson.Result, inv *Inventory, trustGlobals bool) error {
	all := doc.Get("all")
	if !all.Exists() {
		return errors.New(`missing "all" root`)
	}

	if vars := all.Get("vars"); vars.Exists() {
		if !vars.IsObject() {
			return errors.New("all.vars is not an object")
		}
		applyGlobals(vars, &inv.Vars, trustGlobals)
	}

	children := all.Get("children")
	if !children.Exists() {
		// Globals-only documents are legal (nothing provisioned yet).
		return nil
	}
	if !children.IsObject() {
		return errors.New("all.children is not an object")
	}

	seen := map[string]bool{}
	parsedGroups := map[string]Group{}
	var parseErr error

	children.ForEach(func(key, value gjson.Result) bool {
		canonical, ok := groupAliases[key.String()]
		if !ok {
			log.Debugf("ignoring unrecognized group %q", key.String())
			return true
		}
		if _, dup := parsedGroups[canonical]; dup {
			parseErr = fmt.Errorf("group %q appears twice", canonical)
			return false
		}

		group, err := parseGroup(canonical, value, seen)
		if err != nil {
			parseErr = err
			return false
		}
		if len(group.Hosts) > 0 {
			parsedGroups[canonical] = group
		}
		return true
	})
	if parseErr != nil {
		return parseErr
	}

	// Normalize to the fixed group order no matter how the document was laid
	// out.
	for _, name := range GroupOrder {
		if g, ok := parsedGroups[name]; ok {
			inv.Groups = append(inv.Groups, g)
		}
	}

	return nil
}

func applyGlobals(vars gjson.Result, g *GlobalVars, trustEnvironment bool) {
	vars.ForEach(func(key, value gjson.Result) bool {
		switch key.String() {
		case "environment":
			if trustEnvironment {
				g.Environment = value.String()
			}
		case "project_name":
			g.ProjectName = value.String()
		case "aws_region":
			g.Region = value.String()
		case "managed_by":
			g.ManagedBy = value.String()
		default:
			log.Debugf("ignoring unrecognized global var %q", key.String())
		}
		return true
	})
}

func parseGroup(name string, value gjson.Result, seen map[string]bool) (Group, error) {
	if !value.IsObject() {
		return Group{}, fmt.Errorf("group %q is not an object", name)
	}

	group := Group{Name: name}

	hosts := value.Get("hosts")
	if hosts.Exists() && !hosts.IsObject() {
		return Group{}, fmt.Errorf("group %q hosts is not an object", name)
	}

	var hostErr error
	hosts.ForEach(func(key, attrs gjson.Result) bool {
		hostName := key.String()
		if seen[hostName] {
			hostErr = fmt.Errorf("host %q appears twice", hostName)
			return false
		}
		seen[hostName] = true

		if !attrs.IsObject() {
			hostErr = fmt.Errorf("host %q attributes are not an object", hostName)
			return false
		}

		group.Hosts = append(group.Hosts, Host{
			Name:       hostName,
			Addr:       attrs.Get("ansible_host").String(),
			User:       attrs.Get("ansible_user").String(),
			PrivateIP:  attrs.Get("private_ip").String(),
			InstanceID: attrs.Get("instance_id").String(),
		})
		return true
	})
	if hostErr != nil {
		return Group{}, hostErr
	}

	// Only one primary endpoint is modeled.
	if name == GroupDB && len(group.Hosts) > 1 {
		return Group{}, fmt.Errorf("group %q must be a singleton, got %d hosts", name, len(group.Hosts))
	}

	if vars := value.Get("vars"); vars.Exists() {
		if !vars.IsObject() {
			return Group{}, fmt.Errorf("group %q vars is not an object", name)
		}
		vars.ForEach(func(key, val gjson.Result) bool {
			group.Vars = append(group.Vars, Var{Key: key.String(), Value: val.String()})
			return true
		})
	}

	if len(group.Hosts) == 0 {
		log.Debugf("group %q has no hosts; omitting", name)
	}

	return group, nil
}
