package model

import cdx "github.com/CycloneDX/cyclonedx-go"

// Graph is a read-only view of the relationship set of a BOM, indexed by
// component reference.
//
// Edges that share a source ref are folded together, so DependsOn reports
// every dependency declared for a ref regardless of how many edges name it.
type Graph struct {
	// ByRef provides O(1) lookup of a component by its bom-ref.
	ByRef map[string]*cdx.Component

	edges map[string][]string
	order []string // refs in the order they were first used by an edge
}

// BuildGraph indexes the components and dependency edges of bom.
func BuildGraph(bom *cdx.BOM) *Graph {
	comps := Components(bom)
	g := &Graph{
		ByRef: make(map[string]*cdx.Component, len(comps)),
		edges: map[string][]string{},
	}

	for i := range comps {
		if comps[i].BOMRef != "" {
			g.ByRef[comps[i].BOMRef] = &comps[i]
		}
	}

	seen := map[string]bool{}
	use := func(ref string) {
		if !seen[ref] {
			seen[ref] = true
			g.order = append(g.order, ref)
		}
	}

	for _, dep := range Dependencies(bom) {
		use(dep.Ref)
		if _, ok := g.edges[dep.Ref]; !ok {
			g.edges[dep.Ref] = nil
		}
		if dep.Dependencies == nil {
			continue
		}
		for _, child := range *dep.Dependencies {
			use(child)
			g.edges[dep.Ref] = append(g.edges[dep.Ref], child)
		}
	}

	return g
}

// DependsOn returns every dependency ref declared for ref, across all edges
// whose source is ref, in declaration order.
func (g *Graph) DependsOn(ref string) []string {
	return g.edges[ref]
}

// Dangling returns the refs used by an edge (as source or dependency) that
// name no component, in the order they were first seen.
func (g *Graph) Dangling() []string {
	var out []string
	for _, ref := range g.order {
		if _, ok := g.ByRef[ref]; !ok {
			out = append(out, ref)
		}
	}
	return out
}
