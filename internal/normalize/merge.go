package normalize

import (
	"errors"
	"fmt"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/charmbracelet/log"

	"github.com/stackabletech/mergebom/internal/model"
)

// ErrMissingBOMRef is returned when a component that has a package URL has no
// bom-ref. Every component is expected to carry one after parsing.
var ErrMissingBOMRef = errors.New("component has a purl but no bom-ref")

// MergeStats reports what MergeDuplicates did.
type MergeStats struct {
	Canonical       int // distinct identities anchored by the canonical cataloger
	MergedCanonical int // components folded into a canonical component
	MergedFirstSeen int // components folded into the first component seen with their identity
	RefsRewritten   int // edge references rewritten
}

// Merged returns the total number of components removed.
func (s MergeStats) Merged() int {
	return s.MergedCanonical + s.MergedFirstSeen
}

// MergeDuplicates collapses components that share an identity key.
//
// Components found by the canonical cataloger are the preferred survivors: any
// other component with the same identity is removed and every edge reference
// to it is pointed at the canonical component. Identities the canonical
// cataloger did not report fall back to the first component seen. Components
// without a purl are always kept.
//
// canonical may be nil; the merge then relies on first-seen survivors only.
func MergeDuplicates(bom *cdx.BOM, canonical *SourceGroup, logger *log.Logger) (MergeStats, error) {
	logger = orDiscard(logger)
	var stats MergeStats

	anchors := map[string]string{}
	for _, c := range canonical.Components() {
		key, ok := model.IdentityKey(c)
		if !ok {
			continue
		}
		if c.BOMRef == "" {
			return stats, fmt.Errorf("canonical component %q (%s): %w", c.Name, c.PackageURL, ErrMissingBOMRef)
		}
		if prev, ok := anchors[key]; ok && prev != c.BOMRef {
			logger.Warn("canonical components share an identity, keeping the last one",
				"identity", key, "dropped", prev, "kept", c.BOMRef)
		}
		anchors[key] = c.BOMRef
	}
	stats.Canonical = len(anchors)

	comps := model.Components(bom)
	if comps == nil {
		return stats, nil
	}

	firstSeen := map[string]string{}
	kept := make([]cdx.Component, 0, len(comps))

	for i := range comps {
		c := &comps[i]
		key, ok := model.IdentityKey(c)
		if !ok {
			kept = append(kept, *c)
			continue
		}
		if c.BOMRef == "" {
			return stats, fmt.Errorf("component %q (%s): %w", c.Name, c.PackageURL, ErrMissingBOMRef)
		}

		if anchor, ok := anchors[key]; ok {
			stats.RefsRewritten += RewriteRefs(bom.Dependencies, c.BOMRef, anchor)
			if c.BOMRef == anchor {
				kept = append(kept, *c)
			} else {
				stats.MergedCanonical++
				logger.Debug("merged into canonical component", "ref", c.BOMRef, "into", anchor)
			}
			continue
		}

		if survivor, ok := firstSeen[key]; ok {
			stats.RefsRewritten += RewriteRefs(bom.Dependencies, c.BOMRef, survivor)
			stats.MergedFirstSeen++
			logger.Debug("merged into first-seen component", "ref", c.BOMRef, "into", survivor)
			continue
		}
		firstSeen[key] = c.BOMRef
		kept = append(kept, *c)
	}

	*bom.Components = kept
	return stats, nil
}
