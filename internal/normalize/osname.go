package normalize

import (
	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/charmbracelet/log"
)

// FixOSNames renames operating-system components whose name is a key of
// aliases to the mapped value. Vulnerability scanners such as Trivy only
// know Red Hat as "redhat", while catalogers report "rhel".
func FixOSNames(components []cdx.Component, aliases map[string]string, logger *log.Logger) int {
	logger = orDiscard(logger)
	fixed := 0
	for i := range components {
		c := &components[i]
		if c.Type != cdx.ComponentTypeOS {
			continue
		}
		if name, ok := aliases[c.Name]; ok {
			logger.Debug("renamed operating system", "ref", c.BOMRef, "from", c.Name, "to", name)
			c.Name = name
			fixed++
		}
	}
	return fixed
}
