package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stackabletech/mergebom/internal/bomfile"
	"github.com/stackabletech/mergebom/internal/model"
	"github.com/stackabletech/mergebom/internal/normalize"
)

const toolVersion = "0.1.0"

var rootCmd = &cobra.Command{
	Use:   "mergebom <input-bom> <output-bom>",
	Short: "Merge duplicate components in a CycloneDX SBOM",
	Long: `mergebom post-processes a CycloneDX JSON SBOM written by syft so that
components reported by several catalogers appear only once.

It runs three passes over the document:
  • Archives  — links every archive found by the java-archive-cataloger to
                the components packaged inside it
  • Merge     — collapses components with the same purl, preferring the
                record from an embedded SBOM (sbom-cataloger) and rewriting
                every dependency reference to the removed duplicates
  • OS names  — renames the operating system "rhel" to "redhat"

The result is written as CycloneDX 1.5 JSON. Use '-' for either path to read
from stdin or write to stdout.

Examples:
  mergebom syft-bom.json merged-bom.json
  syft -o cyclonedx-json registry.example.com/app:1.0 | mergebom - merged-bom.json`,
	Args:          cobra.ExactArgs(2),
	SilenceErrors: true,
	RunE:          runNormalize,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func runNormalize(cmd *cobra.Command, args []string) error {
	// Arguments are valid from here on; failures are not usage errors.
	cmd.SilenceUsage = true

	input, output := args[0], args[1]
	logger := log.NewWithOptions(cmd.ErrOrStderr(), log.Options{Prefix: "mergebom"})
	logger.Info("starting", "version", toolVersion, "input", input)

	store := bomfile.New()
	store.Stdin = cmd.InOrStdin()
	store.Stdout = cmd.OutOrStdout()

	bom, err := store.Read(cmd.Context(), input)
	if err != nil {
		return err
	}

	result, err := normalize.New(normalize.DefaultConfig(), logger).Run(bom)
	if err != nil {
		return fmt.Errorf("normalization failed: %w", err)
	}

	for _, ref := range model.BuildGraph(bom).Dangling() {
		logger.Warn("dependency references unknown component", "ref", ref)
	}

	if err := store.Write(cmd.Context(), bom, output); err != nil {
		return fmt.Errorf("failed to write CycloneDX output: %w", err)
	}

	logger.Info("done",
		"components", result.ComponentsOut,
		"removed", result.ComponentsIn-result.ComponentsOut,
		"edgesAdded", result.EdgesAdded,
		"osNamesFixed", result.OSNamesFixed)
	if output != bomfile.Stdio {
		logger.Info("SBOM written", "path", output)
	}

	return nil
}
