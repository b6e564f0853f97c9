// Package state persists the equalizer's parameter values as a small binary
// blob. The format is a magic tag, a version, and id/value pairs for every
// registered parameter; unknown ids in a stored blob are skipped so newer
// blobs load on older parameter sets.
package state

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/cwbudde/algo-eq/param"
)

const magic = "ALGOEQ"

// Version is the current blob format version.
const Version uint32 = 1

// Manager saves and restores a registry's parameter values.
type Manager struct {
	registry *param.Registry
}

// NewManager returns a manager bound to registry.
func NewManager(registry *param.Registry) *Manager {
	return &Manager{registry: registry}
}

// Save writes the current parameter values to w.
func (m *Manager) Save(w io.Writer) error {
	if _, err := w.Write([]byte(magic)); err != nil {
		return fmt.Errorf("state save: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, Version); err != nil {
		return fmt.Errorf("state save: %w", err)
	}

	params := m.registry.All()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(params))); err != nil {
		return fmt.Errorf("state save: %w", err)
	}

	for _, p := range params {
		if err := binary.Write(w, binary.LittleEndian, p.ID); err != nil {
			return fmt.Errorf("state save %q: %w", p.Name, err)
		}

		if err := binary.Write(w, binary.LittleEndian, p.Value()); err != nil {
			return fmt.Errorf("state save %q: %w", p.Name, err)
		}
	}

	return nil
}

// Load reads parameter values from r into the registry. Stored values pass
// through the usual range clamping; ids the registry does not know are
// skipped. A successful load marks the registry dirty so the engine rebuilds
// its coefficients.
func (m *Manager) Load(r io.Reader) error {
	header := make([]byte, len(magic))
	if _, err := io.ReadFull(r, header); err != nil {
		return fmt.Errorf("state load: %w", err)
	}

	if string(header) != magic {
		return fmt.Errorf("state load: unrecognized header %q", header)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("state load: %w", err)
	}

	if version == 0 || version > Version {
		return fmt.Errorf("state load: unsupported version %d", version)
	}

	var count uint32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return fmt.Errorf("state load: %w", err)
	}

	for i := uint32(0); i < count; i++ {
		var id uint32
		if err := binary.Read(r, binary.LittleEndian, &id); err != nil {
			return fmt.Errorf("state load: %w", err)
		}

		var value float64
		if err := binary.Read(r, binary.LittleEndian, &value); err != nil {
			return fmt.Errorf("state load: %w", err)
		}

		if p := m.registry.Get(id); p != nil {
			p.SetValue(value)
		}
	}

	m.registry.MarkDirty()

	return nil
}
