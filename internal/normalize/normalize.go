// Package normalize merges the findings of several catalogers in one
// CycloneDX BOM: it links archives to their contents, collapses components
// that describe the same package and cleans up operating-system names.
package normalize

import (
	"io"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/charmbracelet/log"

	"github.com/stackabletech/mergebom/internal/model"
)

// Cataloger names used by syft.
const (
	ArchiveCataloger   = "java-archive-cataloger"
	CanonicalCataloger = "sbom-cataloger"
)

// Config selects which catalogers play which role.
type Config struct {
	// ArchiveCataloger reports archives together with their contents. Its
	// findings are used to add archive -> content edges.
	ArchiveCataloger string

	// CanonicalCataloger reports components from SBOMs embedded in the
	// scanned artifacts. Its records win when duplicates are merged.
	CanonicalCataloger string

	// OSNameAliases maps operating-system names to the names downstream
	// scanners expect.
	OSNameAliases map[string]string
}

// DefaultConfig returns the configuration for BOMs produced by syft.
func DefaultConfig() Config {
	return Config{
		ArchiveCataloger:   ArchiveCataloger,
		CanonicalCataloger: CanonicalCataloger,
		OSNameAliases:      map[string]string{"rhel": "redhat"},
	}
}

// Result summarizes a normalization run.
type Result struct {
	ComponentsIn  int
	ComponentsOut int
	EdgesAdded    int
	OSNamesFixed  int
	Merge         MergeStats
}

// Normalizer runs the normalization passes over a BOM.
type Normalizer struct {
	cfg    Config
	logger *log.Logger
}

// New creates a Normalizer. Empty fields of cfg take their default values and
// a nil logger discards everything.
func New(cfg Config, logger *log.Logger) *Normalizer {
	def := DefaultConfig()
	if cfg.ArchiveCataloger == "" {
		cfg.ArchiveCataloger = def.ArchiveCataloger
	}
	if cfg.CanonicalCataloger == "" {
		cfg.CanonicalCataloger = def.CanonicalCataloger
	}
	if cfg.OSNameAliases == nil {
		cfg.OSNameAliases = def.OSNameAliases
	}
	return &Normalizer{cfg: cfg, logger: orDiscard(logger)}
}

// Run normalizes bom in place. On error bom may be partially modified and
// must not be written out.
func (n *Normalizer) Run(bom *cdx.BOM) (*Result, error) {
	res := &Result{ComponentsIn: len(model.Components(bom))}

	idx := Group(model.Components(bom))

	res.EdgesAdded = LinkArchives(bom, idx.Source(n.cfg.ArchiveCataloger), n.logger)
	n.logger.Info("linked archives", "cataloger", n.cfg.ArchiveCataloger, "edges", res.EdgesAdded)

	canonical := idx.Source(n.cfg.CanonicalCataloger)
	if canonical == nil {
		n.logger.Debug("no canonical components, merging on first sighting only", "cataloger", n.cfg.CanonicalCataloger)
	}
	stats, err := MergeDuplicates(bom, canonical, n.logger)
	if err != nil {
		return nil, err
	}
	res.Merge = stats
	n.logger.Info("merged duplicate components",
		"canonical", stats.MergedCanonical,
		"firstSeen", stats.MergedFirstSeen,
		"refsRewritten", stats.RefsRewritten)

	res.OSNamesFixed = FixOSNames(model.Components(bom), n.cfg.OSNameAliases, n.logger)
	res.ComponentsOut = len(model.Components(bom))

	return res, nil
}

func orDiscard(logger *log.Logger) *log.Logger {
	if logger == nil {
		return log.New(io.Discard)
	}
	return logger
}
