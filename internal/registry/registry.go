// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package registry

import (
	"fmt"
	"os"
	"sort"

	"github.com/tidwall/gjson"

	"github.com/forkctl/forkctl/internal/config"
	"github.com/forkctl/forkctl/internal/log"
)

// builtinCrates is the compiled-in default crate list, used when neither the
// configuration nor a manifest provides one.
var builtinCrates = []string{
	"cli",
	"common",
	"config",
	"core",
	"exec",
	"login",
	"protocol",
	"tui",
}

// Crate is a single tracked comparable unit: a named subtree expected to
// exist under both the upstream and the fork root.
type Crate struct {
	Name string
}

// Registry is an immutable, ordered crate list. Construct one with New or
// one of the source loaders; there is no mutation API.
type Registry struct {
	crates []Crate
	source string
}

// New builds a Registry from the given names, preserving order and dropping
// duplicates after their first occurrence. source describes where the list
// came from ("builtin", "config", or a manifest path) and is display-only.
func New(source string, names ...string) Registry {
	seen := make(map[string]bool, len(names))
	crates := make([]Crate, 0, len(names))
	for _, name := range names {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		crates = append(crates, Crate{Name: name})
	}
	return Registry{crates: crates, source: source}
}

// Builtin returns the compiled-in default registry.
func Builtin() Registry {
	return New("builtin", builtinCrates...)
}

// FromConfig returns a registry built from the registry.crates config key.
// The second return is false when the key is absent.
func FromConfig() (Registry, bool) {
	names, err := config.GetStringSlice("registry.crates")
	if err != nil || len(names) == 0 {
		return Registry{}, false
	}
	return New("config", names...), true
}

// FromCargoMetadata builds a registry from a `cargo metadata
// --format-version 1` JSON document. Workspace members are the packages
// without a source (registry dependencies carry one). Names are sorted so
// the order is canonical regardless of metadata ordering.
func FromCargoMetadata(path string) (Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Registry{}, fmt.Errorf("reading manifest: %w", err)
	}
	if !gjson.ValidBytes(data) {
		return Registry{}, fmt.Errorf("manifest is not valid JSON: %s", path)
	}

	pkgs := gjson.ParseBytes(data).Get("packages")
	if !pkgs.IsArray() {
		return Registry{}, fmt.Errorf("manifest has no packages array: %s", path)
	}

	var names []string
	for _, pkg := range pkgs.Array() {
		// Workspace members have a null source; crates.io deps do not.
		if pkg.Get("source").Type != gjson.Null {
			continue
		}
		if name := pkg.Get("name").String(); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return Registry{}, fmt.Errorf("no workspace crates found in %s", path)
	}
	sort.Strings(names)

	return New(path, names...), nil
}

// Load resolves the active registry: an explicit manifest path wins, then
// the registry.crates config key, then the builtin list.
func Load(manifestPath string) (Registry, error) {
	if manifestPath != "" {
		return FromCargoMetadata(manifestPath)
	}
	if reg, ok := FromConfig(); ok {
		log.Debugf("registry from config: %d crates", reg.Len())
		return reg, nil
	}
	return Builtin(), nil
}

// Crates returns the registry entries in canonical order.
func (r Registry) Crates() []Crate {
	out := make([]Crate, len(r.crates))
	copy(out, r.crates)
	return out
}

// Names returns the crate names in canonical order.
func (r Registry) Names() []string {
	names := make([]string, len(r.crates))
	for i, c := range r.crates {
		names[i] = c.Name
	}
	return names
}

// Len returns the number of registered crates.
func (r Registry) Len() int {
	return len(r.crates)
}

// Contains reports whether name is a registered crate.
func (r Registry) Contains(name string) bool {
	for _, c := range r.crates {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Source describes where the registry was loaded from.
func (r Registry) Source() string {
	return r.source
}
