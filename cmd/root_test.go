package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const syftBOM = `{
  "bomFormat": "CycloneDX",
  "specVersion": "1.6",
  "version": 1,
  "components": [
    {
      "bom-ref": "os", "type": "operating-system", "name": "rhel", "version": "9.3"
    },
    {
      "bom-ref": "jar-app", "type": "library", "name": "app", "purl": "pkg:maven/x/app@1",
      "properties": [
        {"name": "syft:package:foundBy", "value": "java-archive-cataloger"},
        {"name": "syft:location:0:path", "value": "/app/app.jar"},
        {"name": "syft:metadata:virtualPath", "value": "/app/app.jar"}
      ]
    },
    {
      "bom-ref": "jar-guava", "type": "library", "name": "guava", "purl": "pkg:maven/com.google.guava/guava@32.1.2-jre",
      "properties": [
        {"name": "syft:package:foundBy", "value": "java-archive-cataloger"},
        {"name": "syft:location:0:path", "value": "/app/app.jar"},
        {"name": "syft:metadata:virtualPath", "value": "/app/app.jar:BOOT-INF/lib/guava.jar"}
      ]
    },
    {
      "bom-ref": "sbom-guava", "type": "library", "name": "guava", "purl": "pkg:maven/com.google.guava/guava@32.1.2-jre?type=jar",
      "properties": [
        {"name": "syft:package:foundBy", "value": "sbom-cataloger"},
        {"name": "syft:location:0:path", "value": "/app/app.jar"}
      ]
    }
  ]
}`

// output is the JSON subset the command test inspects.
type output struct {
	SpecVersion string `json:"specVersion"`
	Components  []struct {
		Ref  string `json:"bom-ref"`
		Name string `json:"name"`
	} `json:"components"`
	Dependencies []struct {
		Ref       string   `json:"ref"`
		DependsOn []string `json:"dependsOn"`
	} `json:"dependencies"`
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var stderr bytes.Buffer
	rootCmd.SilenceUsage = false
	rootCmd.SetArgs(args)
	rootCmd.SetErr(&stderr)
	rootCmd.SetOut(&stderr)
	defer func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetOut(nil)
	}()
	err := rootCmd.Execute()
	return stderr.String(), err
}

func TestWrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{{}, {"in.json"}, {"in.json", "out.json", "extra"}} {
		t.Run(strings.Join(args, ","), func(t *testing.T) {
			stderr, err := run(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "accepts 2 arg(s)")
			assert.Contains(t, stderr, "Usage:")
		})
	}
}

func TestNormalizeFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(syftBOM), 0644))

	_, err := run(t, in, out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var got output
	require.NoError(t, json.Unmarshal(data, &got))

	assert.Equal(t, "1.5", got.SpecVersion)

	var refs []string
	for _, c := range got.Components {
		refs = append(refs, c.Ref)
	}
	assert.Equal(t, []string{"os", "jar-app", "sbom-guava"}, refs)
	assert.Equal(t, "redhat", got.Components[0].Name)

	require.Len(t, got.Dependencies, 1)
	assert.Equal(t, "jar-app", got.Dependencies[0].Ref)
	assert.Equal(t, []string{"sbom-guava"}, got.Dependencies[0].DependsOn)
}

func TestMissingInputWritesNothing(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "out.json")

	stderr, err := run(t, filepath.Join(dir, "missing.json"), out)
	require.Error(t, err)
	assert.NotContains(t, stderr, "Usage:")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMissingBOMRefWritesNothing(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.json")
	out := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(in, []byte(`{
  "bomFormat": "CycloneDX",
  "specVersion": "1.5",
  "version": 1,
  "components": [{"type": "library", "name": "a", "purl": "pkg:npm/a@1"}]
}`), 0644))

	_, err := run(t, in, out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "normalization failed")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}
