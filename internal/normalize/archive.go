package normalize

import (
	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/charmbracelet/log"

	"github.com/stackabletech/mergebom/internal/model"
)

// LinkArchives adds a dependency edge from every archive found by the
// archive cataloger to the components packaged inside it.
//
// Within one location bucket, the archive's own entry is the component whose
// virtual path equals the bucket path; everything else in the bucket is its
// content. Buckets without both are skipped. Existing edges are never
// touched. It returns the number of edges added.
func LinkArchives(bom *cdx.BOM, archives *SourceGroup, logger *log.Logger) int {
	logger = orDiscard(logger)
	added := 0

	for _, path := range archives.Paths() {
		var parents, children []*cdx.Component
		for _, c := range archives.At(path) {
			if vp, ok := model.Property(c, model.PropVirtualPath); ok && vp == path {
				parents = append(parents, c)
			} else {
				children = append(children, c)
			}
		}

		if len(parents) == 0 || len(children) == 0 {
			continue
		}

		parent := parents[0]
		if parent.BOMRef == "" {
			logger.Warn("archive has no bom-ref, not linking its contents", "path", path, "name", parent.Name)
			continue
		}

		refs := make([]string, 0, len(children))
		for _, c := range children {
			if c.BOMRef != "" {
				refs = append(refs, c.BOMRef)
			}
		}

		if bom.Dependencies == nil {
			bom.Dependencies = &[]cdx.Dependency{}
		}
		*bom.Dependencies = append(*bom.Dependencies, cdx.Dependency{
			Ref:          parent.BOMRef,
			Dependencies: &refs,
		})
		added++

		logger.Debug("linked archive contents", "archive", parent.BOMRef, "path", path, "children", len(refs))
	}

	return added
}
