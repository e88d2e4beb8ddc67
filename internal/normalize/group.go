package normalize

import (
	cdx "github.com/CycloneDX/cyclonedx-go"

	"github.com/stackabletech/mergebom/internal/model"
)

// Index groups components by the cataloger that found them and the path they
// were found at.
type Index struct {
	sources map[string]*SourceGroup
}

// SourceGroup holds the components found by one cataloger, bucketed by
// location path.
type SourceGroup struct {
	paths  []string // first-seen order
	byPath map[string][]*cdx.Component
	all    []*cdx.Component // encounter order across all paths
}

// Group builds the index for components. Components without both a found-by
// and a location-path property are left out.
//
// The index points into components; it must be built from, and used against,
// the same slice.
func Group(components []cdx.Component) *Index {
	idx := &Index{sources: map[string]*SourceGroup{}}

	for i := range components {
		c := &components[i]
		foundBy, ok := model.Property(c, model.PropFoundBy)
		if !ok {
			continue
		}
		path, ok := model.Property(c, model.PropLocationPath)
		if !ok {
			continue
		}

		sg := idx.sources[foundBy]
		if sg == nil {
			sg = &SourceGroup{byPath: map[string][]*cdx.Component{}}
			idx.sources[foundBy] = sg
		}
		if _, seen := sg.byPath[path]; !seen {
			sg.paths = append(sg.paths, path)
		}
		sg.byPath[path] = append(sg.byPath[path], c)
		sg.all = append(sg.all, c)
	}

	return idx
}

// Source returns the group for a cataloger, or nil if it found nothing.
func (idx *Index) Source(name string) *SourceGroup {
	if idx == nil {
		return nil
	}
	return idx.sources[name]
}

// Paths returns the location paths of the group in first-seen order.
func (sg *SourceGroup) Paths() []string {
	if sg == nil {
		return nil
	}
	return sg.paths
}

// At returns the components found at path, in encounter order.
func (sg *SourceGroup) At(path string) []*cdx.Component {
	if sg == nil {
		return nil
	}
	return sg.byPath[path]
}

// Components returns every component in the group in encounter order,
// regardless of location.
func (sg *SourceGroup) Components() []*cdx.Component {
	if sg == nil {
		return nil
	}
	return sg.all
}
