package fit

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-haloscope/model"
)

// Errors returned by parameter validation.
var (
	ErrUnknownParam   = errors.New("fit: unknown parameter")
	ErrDuplicateParam = errors.New("fit: duplicate parameter")
	ErrInvalidBounds  = errors.New("fit: lower bound exceeds upper bound")
)

// ParamName identifies a model parameter.
type ParamName string

// Background and signal parameter names.
const (
	A  ParamName = "a"
	B  ParamName = "b"
	C  ParamName = "c"
	D  ParamName = "d"
	E  ParamName = "e"
	F  ParamName = "f"
	X0 ParamName = "x0"
	S  ParamName = "s"
	Mu ParamName = "mu"
)

// BackgroundNames lists the background parameters in model order.
var BackgroundNames = []ParamName{A, B, C, D, E, F}

// PeakNames lists the peak parameters in model order.
var PeakNames = []ParamName{X0, S, Mu}

// Param configures one model parameter. An absent bound is -Inf or +Inf.
type Param struct {
	Name  ParamName
	Value float64
	Min   float64
	Max   float64
	Free  bool
}

// NewParam returns a free, unbounded parameter.
func NewParam(name ParamName, value float64) Param {
	return Param{Name: name, Value: value, Min: math.Inf(-1), Max: math.Inf(1), Free: true}
}

// Fixed returns a copy of p held at its value.
func (p Param) Fixed() Param {
	p.Free = false
	return p
}

// Bounded returns a copy of p with the given bounds.
func (p Param) Bounded(lo, hi float64) Param {
	p.Min, p.Max = lo, hi
	return p
}

// clip moves the value into [Min, Max].
func (p Param) clip() Param {
	if p.Value < p.Min {
		p.Value = p.Min
	}

	if p.Value > p.Max {
		p.Value = p.Max
	}

	return p
}

// Params is an ordered parameter set.
type Params []Param

// Index returns the position of name, or -1.
func (ps Params) Index(name ParamName) int {
	for i, p := range ps {
		if p.Name == name {
			return i
		}
	}

	return -1
}

// Get returns the parameter called name.
func (ps Params) Get(name ParamName) (Param, bool) {
	i := ps.Index(name)
	if i < 0 {
		return Param{}, false
	}

	return ps[i], true
}

// Value returns the value of name, NaN when absent.
func (ps Params) Value(name ParamName) float64 {
	if p, ok := ps.Get(name); ok {
		return p.Value
	}

	return math.NaN()
}

// With returns a copy of ps where the parameter named p.Name is replaced by
// p, or p is appended when absent.
func (ps Params) With(p Param) Params {
	out := ps.Clone()
	if i := out.Index(p.Name); i >= 0 {
		out[i] = p
		return out
	}

	return append(out, p)
}

// Clone returns an independent copy.
func (ps Params) Clone() Params {
	return append(Params(nil), ps...)
}

// NFree returns the number of free parameters.
func (ps Params) NFree() int {
	n := 0
	for _, p := range ps {
		if p.Free {
			n++
		}
	}

	return n
}

// Values returns the parameter values in order.
func (ps Params) Values() []float64 {
	out := make([]float64, len(ps))
	for i, p := range ps {
		out[i] = p.Value
	}

	return out
}

// Background collects a..f into a model.Background.
func (ps Params) Background() model.Background {
	return model.Background{
		A: ps.Value(A),
		B: ps.Value(B),
		C: ps.Value(C),
		D: ps.Value(D),
		E: ps.Value(E),
		F: ps.Value(F),
	}
}

// Peak collects x0, s and mu into a model.Peak.
func (ps Params) Peak() model.Peak {
	return model.Peak{X0: ps.Value(X0), S: ps.Value(S), Mu: ps.Value(Mu)}
}

// Require reports ErrUnknownParam if any of names is missing.
func (ps Params) Require(names ...ParamName) error {
	for _, name := range names {
		if ps.Index(name) < 0 {
			return fmt.Errorf("%w: %q", ErrUnknownParam, name)
		}
	}

	return nil
}

func (ps Params) validate() error {
	seen := make(map[ParamName]bool, len(ps))
	for _, p := range ps {
		if seen[p.Name] {
			return fmt.Errorf("%w: %q", ErrDuplicateParam, p.Name)
		}

		seen[p.Name] = true

		if p.Min > p.Max {
			return fmt.Errorf("%w: %q [%g, %g]", ErrInvalidBounds, p.Name, p.Min, p.Max)
		}
	}

	return nil
}

// BackgroundParams returns the starting parameters of the background fit
// for a cavity expected at center with reference power scale ref. The
// resonance positions a and c are bounded to [0.999·center, 1.01·center].
func BackgroundParams(center, ref float64) Params {
	lo, hi := 0.999*center, 1.01*center

	return Params{
		NewParam(A, center).Bounded(lo, hi),
		NewParam(B, 2e4),
		NewParam(C, center).Bounded(lo, hi),
		NewParam(D, 2.2e4),
		NewParam(E, 1e-2*math.Sqrt(ref)),
		NewParam(F, 1e-12*ref),
	}
}

// SignalParams returns the starting parameters of the signal fit. The
// background values come from init and are free only when cfg.ParVary is
// set. The peak sits at x0 with width cfg.Width; mu starts at cfg.MuInit,
// is bounded below by zero and is free when cfg.MuVary is set.
func SignalParams(init model.Background, x0 float64, cfg Config) Params {
	bkg := []float64{init.A, init.B, init.C, init.D, init.E, init.F}

	ps := make(Params, 0, len(BackgroundNames)+len(PeakNames))
	for i, name := range BackgroundNames {
		p := NewParam(name, bkg[i])
		p.Free = cfg.ParVary
		ps = append(ps, p)
	}

	x0p := NewParam(X0, x0)
	x0p.Free = cfg.CenterVary

	mu := NewParam(Mu, cfg.MuInit).Bounded(0, math.Inf(1))
	mu.Free = cfg.MuVary

	return append(ps, x0p, NewParam(S, cfg.Width).Fixed(), mu)
}
