// Package bomfile reads and writes CycloneDX JSON documents.
package bomfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	cdx "github.com/CycloneDX/cyclonedx-go"
	"github.com/viant/afs"
)

// OutputVersion is the CycloneDX schema version every document is written in.
const OutputVersion = cdx.SpecVersion1_5

// Stdio is the path that selects standard input or output.
const Stdio = "-"

// ErrNotCycloneDX is returned when the input decodes as JSON but does not
// declare itself a CycloneDX BOM.
var ErrNotCycloneDX = errors.New("document is not a CycloneDX BOM")

// Store moves BOM documents between the local filesystem (or stdio) and
// memory.
type Store struct {
	fs     afs.Service
	Stdin  io.Reader
	Stdout io.Writer
}

// New creates a Store bound to the process's standard streams.
func New() *Store {
	return &Store{
		fs:     afs.New(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
	}
}

// Read loads and decodes the BOM at path. A path of "-" reads standard input.
func (s *Store) Read(ctx context.Context, path string) (*cdx.BOM, error) {
	data, err := s.load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", path, err)
	}

	bom := new(cdx.BOM)
	if err := cdx.NewBOMDecoder(bytes.NewReader(data), cdx.BOMFileFormatJSON).Decode(bom); err != nil {
		return nil, fmt.Errorf("cannot parse %q: %w", path, err)
	}
	if bom.BOMFormat != cdx.BOMFormat {
		return nil, fmt.Errorf("%q: %w (bomFormat %q)", path, ErrNotCycloneDX, bom.BOMFormat)
	}
	return bom, nil
}

// Write encodes bom as CycloneDX 1.5 JSON and stores it at path. A path of "-"
// writes to standard output. Nothing is written if encoding fails.
func (s *Store) Write(ctx context.Context, bom *cdx.BOM, path string) error {
	var buf bytes.Buffer
	enc := cdx.NewBOMEncoder(&buf, cdx.BOMFileFormatJSON).SetPretty(true)
	if err := enc.EncodeVersion(bom, OutputVersion); err != nil {
		return fmt.Errorf("failed to encode CycloneDX %s JSON: %w", OutputVersion, err)
	}

	if path == Stdio {
		_, err := s.Stdout.Write(buf.Bytes())
		return err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve %q: %w", path, err)
	}
	if err := s.fs.Upload(ctx, abs, 0644, &buf); err != nil {
		return fmt.Errorf("cannot write %q: %w", path, err)
	}
	return nil
}

func (s *Store) load(ctx context.Context, path string) ([]byte, error) {
	if path == Stdio {
		return io.ReadAll(s.Stdin)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return s.fs.DownloadWithURL(ctx, abs)
}
