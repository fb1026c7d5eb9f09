// Package export writes triangulated meshes to files.
package export

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Faultbox/hexterrain/pkg/hexmesh"
)

var (
	ErrUnknownFormat = errors.New("unknown export format")
	ErrMalformedMesh = errors.New("malformed mesh data")
)

// Format selects an encoding.
type Format string

const (
	FormatOBJ   Format = "obj"
	FormatProto Format = "pb"
	FormatSVG   Format = "svg"
)

// ParseFormat accepts a format name or a file extension.
func ParseFormat(s string) (Format, error) {
	switch strings.TrimPrefix(strings.ToLower(s), ".") {
	case "obj":
		return FormatOBJ, nil
	case "pb", "proto", "binpb":
		return FormatProto, nil
	case "svg":
		return FormatSVG, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// FormatFromPath guesses the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// Write encodes m to w in format f.
func Write(w io.Writer, f Format, m hexmesh.Mesh) error {
	switch f {
	case FormatOBJ:
		return WriteOBJ(w, m)
	case FormatProto:
		return WriteProto(w, m)
	case FormatSVG:
		return WriteSVG(w, m, DefaultSVGOptions())
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// WriteFile encodes m into the file at path.
func WriteFile(path string, f Format, m hexmesh.Mesh) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil {
			err = cerr
		}
	}()
	return Write(file, f, m)
}
