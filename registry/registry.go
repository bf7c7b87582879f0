package registry

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/caseysm/decenttree/clustertree"
)

// Builder is the capability every registered algorithm family exposes:
// build a cluster forest from names/distances. threads and rooted
// mirror spec.md §6's options of the same name; an algorithm that
// doesn't use one (rapidnj ignores threads, stitchup's core always
// produces an unrooted forest) is free to do so.
type Builder interface {
	Build(ctx context.Context, names []string, distances []float64, threads int, rooted bool) (*clustertree.Tree, error)
}

// AlgorithmInfo is one entry of List's directory.
type AlgorithmInfo struct {
	Name        string
	Description string
}

type entry struct {
	info    AlgorithmInfo
	builder Builder
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a named algorithm to the registry. Called from each
// algorithm subpackage's init(); a duplicate name is a programmer
// error (two subpackages registering under the same name) and panics
// rather than silently shadowing, matching the teacher's options-panic
// convention of failing loudly on misconfiguration, never on
// data-dependent input.
func Register(name, description string, builder Builder) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[name]; exists {
		panic(fmt.Sprintf("registry: algorithm %q already registered", name))
	}
	entries[name] = entry{info: AlgorithmInfo{Name: name, Description: description}, builder: builder}
}

// List returns every registered algorithm, sorted by name for a stable,
// reproducible directory listing.
func List() []AlgorithmInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]AlgorithmInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out
}

func lookup(name string) (entry, bool) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := entries[name]

	return e, ok
}
