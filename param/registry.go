package param

import (
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/eq"
)

// Parameter IDs. Stable across releases; state blobs reference them.
const (
	IDLowCutFreq uint32 = iota
	IDHighCutFreq
	IDPeakFreq
	IDPeakGain
	IDPeakQuality
	IDLowCutSlope
	IDHighCutSlope
	IDLowCutBypassed
	IDPeakBypassed
	IDHighCutBypassed
	IDAnalyzerEnabled
)

// SlopeLabels names the cut slope choices, one per cascaded section count.
var SlopeLabels = []string{"12 dB/Oct", "24 dB/Oct", "36 dB/Oct", "48 dB/Oct"}

// Registry owns the parameter set. Reads of individual values are lock-free;
// the registry lock only guards the id and order tables, which never change
// after construction.
type Registry struct {
	mu     sync.RWMutex
	params map[uint32]*Parameter
	order  []uint32

	dirty atomic.Bool
}

// NewRegistry returns a registry populated with the equalizer's parameters
// at their defaults.
func NewRegistry() *Registry {
	r := &Registry{params: make(map[uint32]*Parameter)}

	freq := func(id uint32, name string, def float64) *Parameter {
		return &Parameter{
			ID: id, Name: name, Unit: "Hz",
			Min: eq.MinDisplayFreq, Max: eq.MaxDisplayFreq,
			Default: def, Steps: 19980, Skew: 0.25,
		}
	}

	toggle := func(id uint32, name string, def bool) *Parameter {
		p := &Parameter{ID: id, Name: name, Max: 1, Steps: 1}
		if def {
			p.Default = 1
		}

		return p
	}

	r.add(
		freq(IDLowCutFreq, "LowCut Freq", 20),
		freq(IDHighCutFreq, "HighCut Freq", 20000),
		freq(IDPeakFreq, "Peak Freq", 750),
		&Parameter{
			ID: IDPeakGain, Name: "Peak Gain", Unit: "dB",
			Min: eq.MinDisplayDB, Max: eq.MaxDisplayDB, Steps: 96,
		},
		&Parameter{
			ID: IDPeakQuality, Name: "Peak Quality",
			Min: 0.1, Max: 10, Default: 1, Steps: 198,
		},
		&Parameter{
			ID: IDLowCutSlope, Name: "LowCut Slope",
			Max: 3, Steps: 3, Labels: SlopeLabels,
		},
		&Parameter{
			ID: IDHighCutSlope, Name: "HighCut Slope",
			Max: 3, Steps: 3, Labels: SlopeLabels,
		},
		toggle(IDLowCutBypassed, "LowCut Bypassed", false),
		toggle(IDPeakBypassed, "Peak Bypassed", false),
		toggle(IDHighCutBypassed, "HighCut Bypassed", false),
		toggle(IDAnalyzerEnabled, "Analyser Enable", true),
	)

	return r
}

func (r *Registry) add(params ...*Parameter) {
	for _, p := range params {
		p.onChange = func() { r.dirty.Store(true) }
		p.value.Store(0)
		p.SetValue(p.Default)

		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	// Construction defaults are not edits.
	r.dirty.Store(false)
}

// Get retrieves a parameter by id, or nil.
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// ByName retrieves a parameter by its display name, or nil.
func (r *Registry) ByName(name string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, id := range r.order {
		if r.params[id].Name == name {
			return r.params[id]
		}
	}

	return nil
}

// All returns the parameters in registration order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		out[i] = r.params[id]
	}

	return out
}

// Count returns the number of parameters.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// TakeDirty reports whether any parameter changed since the last call,
// clearing the flag. Exactly one consumer may poll it.
func (r *Registry) TakeDirty() bool {
	return r.dirty.CompareAndSwap(true, false)
}

// MarkDirty forces the next TakeDirty to report a change.
func (r *Registry) MarkDirty() {
	r.dirty.Store(true)
}

// Settings snapshots the current values into an eq.Settings. Each field is
// read atomically; the snapshot as a whole is not a single atomic read, which
// is acceptable between audio blocks.
func (r *Registry) Settings() eq.Settings {
	return eq.Settings{
		LowCutFreq:      r.Get(IDLowCutFreq).Value(),
		HighCutFreq:     r.Get(IDHighCutFreq).Value(),
		PeakFreq:        r.Get(IDPeakFreq).Value(),
		PeakGainDB:      r.Get(IDPeakGain).Value(),
		PeakQ:           r.Get(IDPeakQuality).Value(),
		LowCutOrder:     r.Get(IDLowCutSlope).Index() + 1,
		HighCutOrder:    r.Get(IDHighCutSlope).Index() + 1,
		LowCutBypassed:  r.Get(IDLowCutBypassed).Bool(),
		PeakBypassed:    r.Get(IDPeakBypassed).Bool(),
		HighCutBypassed: r.Get(IDHighCutBypassed).Bool(),
	}
}

// AnalyzerEnabled reports the analyzer toggle.
func (r *Registry) AnalyzerEnabled() bool {
	return r.Get(IDAnalyzerEnabled).Bool()
}
