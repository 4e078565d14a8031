// Package serialport implements boardagent.DeviceProvider by scanning the
// filesystem for serial device nodes.
package serialport

import (
	"context"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Provider lists serial device nodes matching a set of glob patterns.
type Provider struct {
	patterns []string
}

// New creates a Provider with platform-default patterns, overridable via a
// comma-separated $BOARDAGENT_DEVICE_GLOBS.
func New(globsEnv string) *Provider {
	if trimmed := strings.TrimSpace(globsEnv); trimmed != "" {
		var patterns []string
		for _, p := range strings.Split(trimmed, ",") {
			if p = strings.TrimSpace(p); p != "" {
				patterns = append(patterns, p)
			}
		}
		return &Provider{patterns: patterns}
	}
	return &Provider{patterns: defaultPatterns()}
}

// NewWithPatterns creates a Provider over explicit glob patterns.
func NewWithPatterns(patterns ...string) *Provider {
	return &Provider{patterns: patterns}
}

// ListDevices returns the device node paths matching the configured patterns,
// sorted for stable presentation. An empty result is a normal state.
func (p *Provider) ListDevices(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var serials []string
	for _, pattern := range p.patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, pkgerrors.Wrapf(err, "scan %s failed", pattern)
		}
		serials = append(serials, matches...)
	}
	sort.Strings(serials)
	return serials, nil
}

func defaultPatterns() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{"/dev/cu.usbserial*", "/dev/cu.usbmodem*"}
	default:
		return []string{"/dev/ttyUSB*", "/dev/ttyACM*"}
	}
}
