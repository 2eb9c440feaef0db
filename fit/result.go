package fit

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-haloscope/model"
)

// Result holds the outcome of a fit. It is created by a fit operation and
// must be treated as read-only.
type Result struct {
	// Model names the fitted model, e.g. "bkg" or "signal_maxwell".
	Model string

	// Init holds the starting parameters, Params the best-fit parameters.
	Init   Params
	Params Params
	// Stderr holds one-sigma uncertainties per parameter; NaN for fixed
	// parameters or when the covariance could not be estimated.
	Stderr map[ParamName]float64

	// Best is the best-fit curve over the input frequencies and InitFit the
	// curve at the starting parameters.
	Best    []float64
	InitFit []float64
	// Residual is (y − Best)/sigma.
	Residual []float64

	NData  int
	NVarys int
	NFree  int
	NFev   int
	ChiSqr float64
	RedChi float64
	AIC    float64
	BIC    float64

	// Covar is the covariance of the free parameters in VarNames order.
	// It is nil when it could not be estimated.
	Covar    *mat.SymDense
	VarNames []ParamName
	// Correl lists pairwise correlations of the free parameters, strongest
	// first.
	Correl []Correlation

	Success bool
	Message string

	model Model
}

// Correlation is the correlation coefficient between two free parameters.
type Correlation struct {
	A, B  ParamName
	Value float64
}

// Value returns the best-fit value of name, NaN when absent.
func (r *Result) Value(name ParamName) float64 { return r.Params.Value(name) }

// Uncertainty returns the standard error of name, NaN when unknown.
func (r *Result) Uncertainty(name ParamName) float64 {
	if v, ok := r.Stderr[name]; ok {
		return v
	}

	return math.NaN()
}

// Background returns the best-fit background parameters.
func (r *Result) Background() model.Background { return r.Params.Background() }

// Peak returns the best-fit peak parameters. Fields are NaN for a
// background-only fit.
func (r *Result) Peak() model.Peak { return r.Params.Peak() }

// Eval evaluates the best-fit model at x.
func (r *Result) Eval(x []float64) []float64 {
	if r.model == nil {
		return nil
	}

	return evalModel(r.model, x, r.Params)
}

// Correlation returns the correlation between free parameters a and b.
func (r *Result) Correlation(a, b ParamName) (float64, bool) {
	for _, c := range r.Correl {
		if (c.A == a && c.B == b) || (c.A == b && c.B == a) {
			return c.Value, true
		}
	}

	return 0, false
}

func correlations(names []ParamName, cov *mat.SymDense) []Correlation {
	k := len(names)

	var out []Correlation
	for i := range k {
		for j := i + 1; j < k; j++ {
			den := math.Sqrt(cov.At(i, i) * cov.At(j, j))
			if den == 0 || math.IsNaN(den) {
				continue
			}

			out = append(out, Correlation{A: names[i], B: names[j], Value: cov.At(i, j) / den})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return math.Abs(out[i].Value) > math.Abs(out[j].Value)
	})

	return out
}
