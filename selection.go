package boardagent

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrInvalidSelection marks a SetValue candidate that is neither present in
// the current device list nor the NoDevicesFound placeholder.
var ErrInvalidSelection = errors.New("selection not in current device list")

// ErrEnumerationUnavailable wraps device provider failures. Callers can
// distinguish "no devices connected" (sentinel list) from "cannot enumerate".
var ErrEnumerationUnavailable = errors.New("device enumeration unavailable")

// DeviceProvider produces the current list of connected device identifiers.
// The list is recomputed on every call; order and uniqueness are not
// guaranteed.
type DeviceProvider interface {
	ListDevices(ctx context.Context) ([]string, error)
}

// SelectionStore persists the last chosen device identifier. Selected returns
// "" when nothing has been stored yet.
type SelectionStore interface {
	Selected(ctx context.Context) (string, error)
	SetSelected(ctx context.Context, serial string) error
}

// Synchronizer reconciles the live device list against the persisted choice
// and against proposed new choices. All three operations short-circuit while
// the guard reports a deploy in progress.
type Synchronizer struct {
	provider DeviceProvider
	store    SelectionStore
	guard    *Guard
}

// NewSynchronizer wires a synchronizer from its collaborators. guard may be
// nil, in which case operations are never suppressed.
func NewSynchronizer(provider DeviceProvider, store SelectionStore, guard *Guard) *Synchronizer {
	return &Synchronizer{provider: provider, store: store, guard: guard}
}

// CurrentValue returns the persisted selection if it still matches a connected
// device (case-insensitive), NoDevicesFound when the list is empty, or "" when
// the persisted selection is stale. The stored casing wins over the
// enumerator's casing.
func (s *Synchronizer) CurrentValue(ctx context.Context) (string, error) {
	if s == nil || s.provider == nil {
		return "", errors.New("synchronizer: provider is nil")
	}
	if s.guard.Busy() {
		return "", nil
	}
	devices, err := s.listDevices(ctx)
	if err != nil {
		return "", err
	}
	if len(devices) == 0 {
		return NoDevicesFound, nil
	}
	selected := s.selected(ctx)
	if selected == "" {
		return "", nil
	}
	for _, serial := range devices {
		if strings.EqualFold(serial, selected) {
			return selected, nil
		}
	}
	return "", nil
}

// ListValues returns the live device list, or a single-element NoDevicesFound
// list when nothing is connected.
func (s *Synchronizer) ListValues(ctx context.Context) ([]string, error) {
	if s == nil || s.provider == nil {
		return nil, errors.New("synchronizer: provider is nil")
	}
	if s.guard.Busy() {
		return nil, nil
	}
	devices, err := s.listDevices(ctx)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return []string{NoDevicesFound}, nil
	}
	return devices, nil
}

// SetValue persists candidate as the current selection when it matches a
// connected device (case-insensitive, exact token only). The NoDevicesFound
// placeholder is acknowledged as a success no-op. Anything else fails with
// ErrInvalidSelection and leaves the stored selection untouched.
func (s *Synchronizer) SetValue(ctx context.Context, candidate string) error {
	if s == nil || s.provider == nil {
		return errors.New("synchronizer: provider is nil")
	}
	if s.guard.Busy() {
		return nil
	}
	devices, err := s.listDevices(ctx)
	if err != nil {
		return err
	}
	for _, serial := range devices {
		if strings.EqualFold(serial, candidate) {
			if s.store == nil {
				return errors.New("synchronizer: store is nil")
			}
			if err := s.store.SetSelected(ctx, candidate); err != nil {
				return err
			}
			log.Info().Str("serial", candidate).Msg("device target selected")
			return nil
		}
	}
	if candidate == NoDevicesFound {
		return nil
	}
	return fmt.Errorf("%w: %q", ErrInvalidSelection, candidate)
}

func (s *Synchronizer) listDevices(ctx context.Context) ([]string, error) {
	serials, err := s.provider.ListDevices(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEnumerationUnavailable, err)
	}
	result := make([]string, 0, len(serials))
	for _, serial := range serials {
		serial = strings.TrimSpace(serial)
		if serial == "" {
			continue
		}
		result = append(result, serial)
	}
	return result, nil
}

func (s *Synchronizer) selected(ctx context.Context) string {
	if s.store == nil {
		return ""
	}
	selected, err := s.store.Selected(ctx)
	if err != nil {
		// Store read failures degrade to "no selection"; the host re-prompts.
		log.Warn().Err(err).Msg("read persisted selection failed")
		return ""
	}
	return selected
}
