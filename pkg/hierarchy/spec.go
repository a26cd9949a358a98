package hierarchy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	apperrors "github.com/matzehuels/foodtree/pkg/errors"
)

// Spec is a declarative description of a hierarchy.
type Spec struct {
	// Root is the label of the single root node.
	Root string `toml:"root" yaml:"root" json:"root"`

	// Categories maps a parent label to its ordered child groups.
	Categories map[string][]Group `toml:"categories,omitempty" yaml:"categories,omitempty" json:"categories,omitempty"`

	// Edges are supplementary parent -> child pairs applied after the
	// nested pass.
	Edges []Pair `toml:"edges,omitempty" yaml:"edges,omitempty" json:"edges,omitempty"`
}

// Group declares a child and, optionally, that child's own children.
type Group struct {
	Name     string   `toml:"name" yaml:"name" json:"name"`
	Children []string `toml:"children,omitempty" yaml:"children,omitempty" json:"children,omitempty"`
}

// Pair is a single parent -> child edge.
type Pair struct {
	Parent string `toml:"parent" yaml:"parent" json:"parent"`
	Child  string `toml:"child" yaml:"child" json:"child"`
}

// Spec file formats.
const (
	FormatTOML = "toml"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

var formats = []string{FormatTOML, FormatYAML, FormatJSON}

// Load reads a spec file, choosing the decoder by extension
// (.toml, .yaml/.yml, .json).
func Load(path string) (*Spec, error) {
	if err := apperrors.ValidatePath(path); err != nil {
		return nil, err
	}
	format, err := apperrors.FormatFromPath(path, formats...)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, apperrors.Wrap(apperrors.ErrCodeFileNotFound, err, "spec file %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	spec, err := Decode(bytes.NewReader(data), format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return spec, nil
}

// Decode reads a spec in the given format from r.
func Decode(r io.Reader, format string) (*Spec, error) {
	var spec Spec
	var err error
	switch format {
	case FormatTOML:
		var md toml.MetaData
		md, err = toml.NewDecoder(r).Decode(&spec)
		if err == nil {
			if undecoded := md.Undecoded(); len(undecoded) > 0 {
				return nil, apperrors.New(apperrors.ErrCodeInvalidFormat,
					"decode toml spec: unknown key %q", undecoded[0].String())
			}
		}
	case FormatYAML:
		dec := yaml.NewDecoder(r)
		dec.KnownFields(true)
		err = dec.Decode(&spec)
	case FormatJSON:
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		err = dec.Decode(&spec)
	default:
		return nil, apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown spec format %q", format)
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidFormat, err, "decode %s spec", format)
	}
	return &spec, nil
}

// Save writes spec to path, choosing the encoder by extension.
func Save(spec *Spec, path string) error {
	if err := apperrors.ValidatePath(path); err != nil {
		return err
	}
	format, err := apperrors.FormatFromPath(path, formats...)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return Encode(f, spec, format)
}

// Encode writes spec to w in the given format.
func Encode(w io.Writer, spec *Spec, format string) error {
	switch format {
	case FormatTOML:
		return toml.NewEncoder(w).Encode(spec)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(spec); err != nil {
			return err
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(spec)
	default:
		return apperrors.New(apperrors.ErrCodeInvalidFormat, "unknown spec format %q", format)
	}
}
