package param

import (
	"fmt"
	"math"
	"strconv"
	"sync/atomic"

	"github.com/cwbudde/algo-eq/dsp/core"
)

// Parameter is a single automatable value with a plain range and an optional
// skewed normalized mapping. Value reads and writes are atomic; everything
// else is fixed at construction.
type Parameter struct {
	ID      uint32
	Name    string
	Unit    string
	Min     float64
	Max     float64
	Default float64

	// Steps > 0 quantizes the plain value to Min + k*step across the range.
	Steps int

	// Skew bends the normalized mapping; 1 is linear, values below 1 give
	// the lower end of the range more normalized travel.
	Skew float64

	// Labels, when set, names each step of a discrete parameter.
	Labels []string

	value    atomic.Uint64
	onChange func()
}

// Value returns the current plain value.
func (p *Parameter) Value() float64 {
	return math.Float64frombits(p.value.Load())
}

// SetValue clamps plain to the parameter range, quantizes discrete
// parameters, and stores the result. It notifies the owning registry when
// the stored value changed.
func (p *Parameter) SetValue(plain float64) {
	plain = p.constrain(plain)

	old := p.value.Swap(math.Float64bits(plain))
	if math.Float64frombits(old) != plain && p.onChange != nil {
		p.onChange()
	}
}

// Bool reports a boolean parameter's state. Values at or above the midpoint
// read true.
func (p *Parameter) Bool() bool {
	return p.Value() >= (p.Min+p.Max)/2
}

// SetBool sets a boolean parameter.
func (p *Parameter) SetBool(on bool) {
	if on {
		p.SetValue(p.Max)
	} else {
		p.SetValue(p.Min)
	}
}

// Index returns the step index of a discrete parameter.
func (p *Parameter) Index() int {
	if p.Steps <= 0 || p.Max <= p.Min {
		return 0
	}

	step := (p.Max - p.Min) / float64(p.Steps)

	return int(math.Round((p.Value() - p.Min) / step))
}

// SetIndex sets a discrete parameter by step index.
func (p *Parameter) SetIndex(i int) {
	if p.Steps <= 0 {
		return
	}

	step := (p.Max - p.Min) / float64(p.Steps)
	p.SetValue(p.Min + float64(i)*step)
}

// Normalized returns the value mapped to [0, 1] through the skew curve.
func (p *Parameter) Normalized() float64 {
	if p.Max <= p.Min {
		return 0
	}

	proportion := (p.Value() - p.Min) / (p.Max - p.Min)
	if skew := p.skew(); skew != 1 && proportion > 0 {
		proportion = math.Pow(proportion, skew)
	}

	return core.Clamp(proportion, 0, 1)
}

// SetNormalized sets the value from a [0, 1] position through the skew curve.
func (p *Parameter) SetNormalized(norm float64) {
	norm = core.Clamp(norm, 0, 1)
	if skew := p.skew(); skew != 1 && norm > 0 {
		norm = math.Pow(norm, 1/skew)
	}

	p.SetValue(p.Min + norm*(p.Max-p.Min))
}

// Reset restores the default value.
func (p *Parameter) Reset() {
	p.SetValue(p.Default)
}

// Format renders the current value for display: step labels for labeled
// discrete parameters, otherwise the plain value with the unit.
func (p *Parameter) Format() string {
	if len(p.Labels) > 0 {
		i := p.Index()
		if i >= 0 && i < len(p.Labels) {
			return p.Labels[i]
		}
	}

	if p.Steps == 1 {
		if p.Bool() {
			return "On"
		}

		return "Off"
	}

	s := strconv.FormatFloat(p.Value(), 'f', -1, 64)
	if p.Unit != "" {
		return fmt.Sprintf("%s %s", s, p.Unit)
	}

	return s
}

func (p *Parameter) constrain(plain float64) float64 {
	plain = core.Clamp(plain, p.Min, p.Max)

	if p.Steps > 0 && p.Max > p.Min {
		step := (p.Max - p.Min) / float64(p.Steps)
		plain = p.Min + math.Round((plain-p.Min)/step)*step
	}

	return plain
}

func (p *Parameter) skew() float64 {
	if p.Skew <= 0 {
		return 1
	}

	return p.Skew
}
