package normalize

import cdx "github.com/CycloneDX/cyclonedx-go"

// RewriteRefs replaces oldRef with newRef wherever it appears in deps, both as
// an edge source and as a dependency-list entry. It returns the number of
// references replaced.
func RewriteRefs(deps *[]cdx.Dependency, oldRef, newRef string) int {
	if deps == nil || oldRef == newRef {
		return 0
	}

	n := 0
	for i := range *deps {
		dep := &(*deps)[i]
		if dep.Ref == oldRef {
			dep.Ref = newRef
			n++
		}
		if dep.Dependencies == nil {
			continue
		}
		for j, ref := range *dep.Dependencies {
			if ref == oldRef {
				(*dep.Dependencies)[j] = newRef
				n++
			}
		}
	}
	return n
}
