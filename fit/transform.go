package fit

import "math"

type boundKind int

const (
	unbounded boundKind = iota
	lowerOnly
	upperOnly
	twoSided
)

// transform maps a parameter between its external value and an unbounded,
// O(1)-scaled internal coordinate seen by the solver.
//
//	two-sided:  v = min + (sin z + 1)(max − min)/2
//	lower only: v = min + scale(√(z²+1) − 1)
//	upper only: v = max − scale(√(z²+1) − 1)
//	unbounded:  v = origin + scale·z
type transform struct {
	kind   boundKind
	min    float64
	max    float64
	origin float64
	scale  float64
}

func newTransform(p Param) transform {
	lo, hi := !math.IsInf(p.Min, -1), !math.IsInf(p.Max, 1)

	switch {
	case lo && hi:
		return transform{kind: twoSided, min: p.Min, max: p.Max}
	case lo:
		return transform{kind: lowerOnly, min: p.Min, scale: unitScale(p.Value - p.Min)}
	case hi:
		return transform{kind: upperOnly, max: p.Max, scale: unitScale(p.Max - p.Value)}
	default:
		return transform{kind: unbounded, origin: p.Value, scale: unitScale(p.Value)}
	}
}

// unitScale returns |v|, or 1 when v is zero or not finite.
func unitScale(v float64) float64 {
	a := math.Abs(v)
	if a == 0 || math.IsInf(a, 0) || math.IsNaN(a) {
		return 1
	}

	return a
}

func (t transform) internal(v float64) float64 {
	switch t.kind {
	case twoSided:
		if t.max == t.min {
			return 0
		}

		s := 2*(v-t.min)/(t.max-t.min) - 1
		return math.Asin(math.Max(-1, math.Min(1, s)))
	case lowerOnly:
		u := (v-t.min)/t.scale + 1
		return math.Sqrt(u*u - 1)
	case upperOnly:
		u := (t.max-v)/t.scale + 1
		return math.Sqrt(u*u - 1)
	default:
		return (v - t.origin) / t.scale
	}
}

func (t transform) external(z float64) float64 {
	switch t.kind {
	case twoSided:
		return t.min + (math.Sin(z)+1)*(t.max-t.min)/2
	case lowerOnly:
		return t.min + t.scale*(math.Sqrt(z*z+1)-1)
	case upperOnly:
		return t.max - t.scale*(math.Sqrt(z*z+1)-1)
	default:
		return t.origin + t.scale*z
	}
}

// deriv returns dv/dz at z.
func (t transform) deriv(z float64) float64 {
	switch t.kind {
	case twoSided:
		return math.Cos(z) * (t.max - t.min) / 2
	case lowerOnly:
		return t.scale * z / math.Sqrt(z*z+1)
	case upperOnly:
		return -t.scale * z / math.Sqrt(z*z+1)
	default:
		return t.scale
	}
}
