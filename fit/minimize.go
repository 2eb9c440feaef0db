package fit

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/cwbudde/algo-vecmath"
	"github.com/maorshutman/lm"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-haloscope/model"
)

const msgSucceeded = "Fit succeeded."

// Minimize fits m to the spectrum by weighted least squares, minimizing
// Σ((model − y)/sigma)² over the free parameters of params.
//
// An error is returned only for structural problems: invalid spectrum,
// duplicate or missing parameters, inverted bounds. Numerical failures and
// non-convergence are reported through Result.Success and Result.Message.
func Minimize(m Model, params Params, s model.Spectrum, opts ...Option) (*Result, error) {
	cfg := ApplyOptions(opts...)

	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("fit: %w", err)
	}

	if err := params.validate(); err != nil {
		return nil, err
	}

	if err := params.Require(m.ParamNames()...); err != nil {
		return nil, err
	}

	init := make(Params, len(params))
	for i, p := range params {
		init[i] = p.clip()
	}

	prob := newProblem(m, init, s)
	n, k := s.Len(), len(prob.free)

	log := cfg.Logger.With().Str("model", m.Name()).Logger()
	log.Debug().Int("points", n).Int("free", k).Msg("fit started")

	z0 := prob.internal(init)
	z, success, message := z0, true, msgSucceeded

	switch {
	case k == 0:
		message = "No free parameters; model evaluated at initial values."
	case n < k:
		success = false
		message = fmt.Sprintf("Fewer data points (%d) than free parameters (%d).", n, k)
	default:
		z, success, message = prob.solve(z0, cfg)
	}

	nfev := int(prob.nfev.Load())
	best := prob.expand(z)

	res := &Result{
		Model:    m.Name(),
		Init:     init,
		Params:   best,
		Stderr:   make(map[ParamName]float64, len(best)),
		Best:     evalModel(m, s.Freq, best),
		InitFit:  evalModel(m, s.Freq, init),
		NData:    n,
		NVarys:   k,
		NFree:    n - k,
		NFev:     nfev,
		VarNames: prob.varNames(),
		model:    m,
	}

	res.Residual = make([]float64, n)
	for i := range res.Residual {
		res.Residual[i] = s.Power[i] - res.Best[i]
	}

	vecmath.MulBlockInPlace(res.Residual, prob.weights)

	res.ChiSqr = sumSquares(res.Residual)
	res.RedChi = res.ChiSqr / float64(max(1, res.NFree))

	neg2LogLikel := float64(n) * math.Log(math.Max(res.ChiSqr, 1e-250*float64(n))/float64(n))
	res.AIC = neg2LogLikel + 2*float64(k)
	res.BIC = neg2LogLikel + math.Log(float64(n))*float64(k)

	if success && (math.IsNaN(res.ChiSqr) || math.IsInf(res.ChiSqr, 0)) {
		success = false
		message = "Non-finite residuals at the solution."
	}

	for _, p := range best {
		res.Stderr[p.Name] = math.NaN()
	}

	if k > 0 && n > k {
		scale := 1.0
		if cfg.ScaleCovar {
			scale = res.RedChi
		}

		if cov, ok := prob.covariance(z, scale); ok {
			res.Covar = cov
			for j, i := range prob.free {
				res.Stderr[best[i].Name] = math.Sqrt(cov.At(j, j))
			}

			res.Correl = correlations(res.VarNames, cov)
		} else {
			log.Debug().Msg("covariance is singular; uncertainties not estimated")
		}
	}

	res.Success = success
	res.Message = message

	ev := log.Debug()
	if !success {
		ev = log.Warn()
	}

	ev.Bool("success", success).
		Int("nfev", nfev).
		Float64("chisqr", res.ChiSqr).
		Float64("redchi", res.RedChi).
		Str("status", message).
		Msg("fit finished")

	return res, nil
}

// problem binds a model, its parameter layout and the weighted data.
type problem struct {
	model   Model
	base    Params
	free    []int
	tr      []transform
	x, y    []float64
	weights []float64
	nfev    atomic.Int64

	mu      sync.Mutex
	bestZ   []float64
	bestChi float64
}

func newProblem(m Model, init Params, s model.Spectrum) *problem {
	p := &problem{
		model:   m,
		base:    init,
		x:       s.Freq,
		y:       s.Power,
		weights: s.Weights(),
		bestChi: math.Inf(1),
	}

	for i, par := range init {
		if par.Free {
			p.free = append(p.free, i)
			p.tr = append(p.tr, newTransform(par))
		}
	}

	return p
}

func (p *problem) internal(ps Params) []float64 {
	z := make([]float64, len(p.free))
	for j, i := range p.free {
		z[j] = p.tr[j].internal(ps[i].Value)
	}

	return z
}

func (p *problem) expand(z []float64) Params {
	ps := p.base.Clone()
	for j, i := range p.free {
		ps[i].Value = p.tr[j].external(z[j])
	}

	return ps
}

func (p *problem) varNames() []ParamName {
	names := make([]ParamName, len(p.free))
	for j, i := range p.free {
		names[j] = p.base[i].Name
	}

	return names
}

// residual writes (model − y)·weight for internal coordinates z into dst.
// It is safe for concurrent use.
func (p *problem) residual(dst, z []float64) {
	p.nfev.Add(1)
	p.model.Eval(dst, p.x, p.expand(z))

	for i := range dst {
		dst[i] -= p.y[i]
	}

	vecmath.MulBlockInPlace(dst, p.weights)

	chi := sumSquares(dst)
	if math.IsNaN(chi) {
		return
	}

	p.mu.Lock()
	if chi < p.bestChi {
		p.bestChi = chi
		p.bestZ = append(p.bestZ[:0], z...)
	}
	p.mu.Unlock()
}

// solve runs Levenberg-Marquardt from z0. When the solver fails, the
// lowest-chi-square point it visited is reported.
func (p *problem) solve(z0 []float64, cfg Config) ([]float64, bool, string) {
	jac := lm.NumJac{Func: p.residual}

	prob := lm.LMProblem{
		Dim:        len(z0),
		Size:       len(p.x),
		Func:       p.residual,
		Jac:        jac.Jac,
		InitParams: append([]float64(nil), z0...),
		Tau:        cfg.Tau,
		Eps1:       cfg.Eps1,
		Eps2:       cfg.Eps2,
	}

	out, err := lm.LM(prob, &lm.Settings{Iterations: cfg.MaxIter, ObjectiveTol: cfg.ObjectiveTol})
	if err != nil {
		return p.visitedBest(z0), false, fmt.Sprintf("Solver failed: %v.", err)
	}

	if len(out.X) != len(z0) {
		return p.visitedBest(z0), false, "Solver returned a malformed parameter vector."
	}

	return append([]float64(nil), out.X...), true, msgSucceeded
}

func (p *problem) visitedBest(fallback []float64) []float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.bestZ == nil {
		return fallback
	}

	return append([]float64(nil), p.bestZ...)
}

// covariance estimates the covariance of the free external parameters from
// the Jacobian at z, scaled by scale.
func (p *problem) covariance(z []float64, scale float64) (*mat.SymDense, bool) {
	n, k := len(p.x), len(z)

	jac := mat.NewDense(n, k, nil)
	fd.Jacobian(jac, p.residual, z, &fd.JacobianSettings{Formula: fd.Central})

	jtj := mat.NewSymDense(k, nil)
	jtj.SymOuterK(1, jac.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(jtj); !ok {
		return nil, false
	}

	inv := mat.NewSymDense(k, nil)
	if err := chol.InverseTo(inv); err != nil {
		return nil, false
	}

	deriv := make([]float64, k)
	for j := range z {
		deriv[j] = p.tr[j].deriv(z[j])
	}

	cov := mat.NewSymDense(k, nil)
	for i := range k {
		for j := i; j < k; j++ {
			cov.SetSym(i, j, inv.At(i, j)*deriv[i]*deriv[j]*scale)
		}
	}

	return cov, true
}

func evalModel(m Model, x []float64, p Params) []float64 {
	out := make([]float64, len(x))
	m.Eval(out, x, p)

	return out
}

func sumSquares(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}

	return sum
}
