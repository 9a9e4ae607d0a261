package input

import (
	"context"
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/viant/afs"

	"github.com/mlfq-sim/mlfq-sim/sim"
)

// Format selects the configuration syntax.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// FormatOf picks the format from the location's extension: .yaml and .yml are
// YAML, anything else is the text format.
func FormatOf(location string) Format {
	switch strings.ToLower(path.Ext(location)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Parse decodes data in the given format.
func Parse(format Format, name string, data []byte) (*sim.Config, error) {
	switch format {
	case FormatYAML:
		return ParseYAML(name, data)
	case FormatText, "":
		return ParseText(name, data)
	default:
		return nil, fmt.Errorf("%w: unknown config format %q", sim.ErrInvalidConfig, format)
	}
}

// Location turns a plain filesystem path into a file:// URL; URLs pass through.
func Location(location string) (string, error) {
	if strings.Contains(location, "://") {
		return location, nil
	}
	abs, err := filepath.Abs(location)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(abs), nil
}

// Load downloads a configuration through fs and parses it according to its extension.
func Load(ctx context.Context, fs afs.Service, location string) (*sim.Config, error) {
	URL, err := Location(location)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", location, err)
	}
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", location, err)
	}
	format := FormatOf(location)
	logrus.Debugf("Loaded %d bytes of %s config from %s", len(data), format, URL)
	return Parse(format, location, data)
}
