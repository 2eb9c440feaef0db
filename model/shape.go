package model

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/cwbudde/algo-vecmath"
)

// ErrUnknownShape is returned when a signal shape name cannot be resolved.
var ErrUnknownShape = errors.New("model: unknown signal shape")

// Shape selects the functional form of the signal peak.
type Shape int

const (
	// ShapeGaussian is a Gaussian peak, see [Gaussian].
	ShapeGaussian Shape = iota + 1
	// ShapeMaxwell is a Maxwell-Boltzmann shaped peak, see [Maxwell].
	ShapeMaxwell
)

var shapeNames = map[Shape]string{
	ShapeGaussian: "gaussian",
	ShapeMaxwell:  "maxwell",
}

// String returns the lower-case shape name.
func (s Shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}

	return fmt.Sprintf("Shape(%d)", int(s))
}

// Valid reports whether s is a known shape.
func (s Shape) Valid() bool {
	_, ok := shapeNames[s]
	return ok
}

// ParseShape resolves a shape name. Matching is case-insensitive and
// accepts "gauss" and "maxwell-boltzmann" as aliases.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "gaussian", "gauss":
		return ShapeGaussian, nil
	case "maxwell", "maxwell-boltzmann", "mb":
		return ShapeMaxwell, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownShape, name)
	}
}

// At evaluates the peak of shape s at x. Unknown shapes yield NaN.
func (s Shape) At(x float64, p Peak) float64 {
	switch s {
	case ShapeGaussian:
		return Gaussian(x, p)
	case ShapeMaxwell:
		return Maxwell(x, p)
	default:
		return math.NaN()
	}
}

// Eval writes the peak of shape s evaluated at every x into dst.
// dst and x must have the same length.
func (s Shape) Eval(dst, x []float64, p Peak) {
	if len(dst) != len(x) {
		panic("model: dst and x length mismatch")
	}

	switch s {
	case ShapeGaussian:
		for i, xi := range x {
			z := (xi - p.X0) / p.S
			dst[i] = p.Mu * math.Exp(-0.5*z*z)
		}
	case ShapeMaxwell:
		if len(x) == 0 {
			return
		}

		scratch, buf := getScratch(len(x), 1)
		defer putScratch(buf)

		xsq := scratch[0]
		vecmath.MulBlock(xsq, x, x)

		norm := p.Mu / (p.S * p.S * p.S)
		for i, xi := range x {
			z := (xi - p.X0) / p.S
			dst[i] = norm * math.Exp(-0.5*z*z)
		}

		vecmath.MulBlockInPlace(dst, xsq)
	default:
		for i := range dst {
			dst[i] = math.NaN()
		}
	}
}
