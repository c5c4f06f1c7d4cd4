// SPDX-License-Identifier: MPL-2.0

package plumbfile

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"plumb-cli/pkg/cueutil"
)

//go:embed plumbfile_schema.cue
var plumbfileSchema string

// PlumbfileName is the standard base name for plumbfiles.
const PlumbfileName = "plumbfile"

// ValidExtensions lists recognized plumbfile extensions. A bare
// extensionless file is treated as CUE.
var ValidExtensions = []string{".cue", ".toml", ""}

// Parse reads and compiles a plumbfile from the given path. The input
// format is chosen by extension: ".toml" decodes as TOML, everything
// else as CUE.
func Parse(path string, opts ...CompileOption) (*Plumbfile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read plumbfile at %s: %w", path, err)
	}
	return ParseBytes(data, path, opts...)
}

// ParseBytes compiles plumbfile content from bytes. Both formats decode
// to a raw mapping first and then run through the same field-schema
// compiler, so default and required policy does not depend on the input
// format.
func ParseBytes(data []byte, path string, opts ...CompileOption) (*Plumbfile, error) {
	var (
		raw map[string]any
		err error
	)
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		raw, err = decodeTOML(data, path)
	} else {
		raw, err = decodeCUE(data, path)
	}
	if err != nil {
		return nil, err
	}

	pf, err := CompilePlumbfile(raw, opts...)
	if err != nil {
		return nil, err
	}
	pf.FilePath = path
	return pf, nil
}

// decodeCUE validates the input against the embedded schema and decodes
// it into a raw mapping.
func decodeCUE(data []byte, path string) (map[string]any, error) {
	return cueutil.ParseAndDecode[map[string]any](
		[]byte(plumbfileSchema),
		data,
		"#Plumbfile",
		cueutil.WithFilename(path),
	)
}

// decodeTOML decodes the input into a raw mapping. Shape checks happen
// in the compiler; TOML syntax errors surface here.
func decodeTOML(data []byte, path string) (map[string]any, error) {
	if err := cueutil.CheckFileSize(data, cueutil.DefaultMaxFileSize, path); err != nil {
		return nil, err
	}
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse plumbfile at %s: %w", path, err)
	}
	return raw, nil
}
