// SPDX-License-Identifier: EPL-2.0

package speakers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a layout file encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatOf returns the layout format implied by a file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLayoutFormat, filepath.Ext(path))
	}
}

type positions struct {
	Azimuth   []float64 `json:"azimuth" yaml:"azimuth" toml:"azimuth"`
	Elevation []float64 `json:"elevation" yaml:"elevation" toml:"elevation"`
}

// UnmarshalJSON accepts the object form as well as a list whose entries are
// either azimuths or [azimuth, elevation] pairs.
func (p *positions) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || b[0] != '[' {
		type plain positions
		return json.Unmarshal(b, (*plain)(p))
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(b, &entries); err != nil {
		return err
	}

	elevated := false
	for i, raw := range entries {
		var pair []float64
		if err := json.Unmarshal(raw, &pair); err == nil {
			if len(pair) != 2 {
				return fmt.Errorf("position %d: want [azimuth, elevation], got %d values", i, len(pair))
			}
			p.Azimuth = append(p.Azimuth, pair[0])
			p.Elevation = append(p.Elevation, pair[1])
			elevated = true
			continue
		}

		var az float64
		if err := json.Unmarshal(raw, &az); err != nil {
			return fmt.Errorf("position %d: %w", i, err)
		}
		p.Azimuth = append(p.Azimuth, az)
		p.Elevation = append(p.Elevation, 0)
	}
	if !elevated {
		p.Elevation = nil
	}
	return nil
}

// layoutFile is the on-disk shape shared by all formats. Positions may be
// nested under "positions" or given at the top level.
type layoutFile struct {
	Name      string     `json:"name" yaml:"name" toml:"name"`
	Height    bool       `json:"height" yaml:"height" toml:"height"`
	Positions *positions `json:"positions" yaml:"positions" toml:"positions"`
	Azimuth   []float64  `json:"azimuth" yaml:"azimuth" toml:"azimuth"`
	Elevation []float64  `json:"elevation" yaml:"elevation" toml:"elevation"`
	Bounds    []float64  `json:"bounds" yaml:"bounds" toml:"bounds"`
}

func (f *layoutFile) layout() (Layout, error) {
	l := Layout{Name: f.Name, Azimuth: f.Azimuth, Elevation: f.Elevation}
	if f.Positions != nil {
		l.Azimuth, l.Elevation = f.Positions.Azimuth, f.Positions.Elevation
	}

	switch len(f.Bounds) {
	case 0:
	case 2:
		l.Bounds = &Bounds{Min: f.Bounds[0], Max: f.Bounds[1]}
	default:
		return Layout{}, fmt.Errorf("%w: bounds need [min, max], got %d values", ErrMalformedLayout, len(f.Bounds))
	}

	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Decode reads a layout in the given format.
func Decode(r io.Reader, format Format) (Layout, error) {
	var (
		f   layoutFile
		err error
	)
	switch format {
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&f)
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&f)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&f)
	default:
		return Layout{}, fmt.Errorf("%w: %q", ErrUnsupportedLayoutFormat, format)
	}
	if errors.Is(err, io.EOF) {
		return Layout{}, fmt.Errorf("%w: empty %s document", ErrMalformedLayout, format)
	}
	if err != nil {
		return Layout{}, fmt.Errorf("%w: %w", ErrMalformedLayout, err)
	}
	return f.layout()
}

// Load reads a layout file, choosing the format by extension. A layout without
// a name is named after the file.
func Load(path string) (Layout, error) {
	format, err := FormatOf(path)
	if err != nil {
		return Layout{}, err
	}

	file, err := os.Open(path)
	if err != nil {
		return Layout{}, fmt.Errorf("speakers: open layout: %w", err)
	}
	defer file.Close()

	l, err := Decode(file, format)
	if err != nil {
		return Layout{}, fmt.Errorf("speakers: %s: %w", path, err)
	}
	if l.Name == "" {
		l.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return l, nil
}

// Resolve returns the preset called nameOrPath, or loads it as a layout file
// when no preset has that name.
func Resolve(nameOrPath string) (Layout, error) {
	if l, err := Preset(nameOrPath); err == nil {
		return l, nil
	}

	if _, err := os.Stat(nameOrPath); errors.Is(err, fs.ErrNotExist) {
		return Layout{}, fmt.Errorf("%w: %q is neither a preset %v nor a file", ErrUnknownLayout, nameOrPath, Presets())
	}
	return Load(nameOrPath)
}
