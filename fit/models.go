package fit

import "github.com/cwbudde/algo-haloscope/model"

// Model is a curve that can be evaluated from a parameter set.
type Model interface {
	// Name identifies the model in reports.
	Name() string
	// ParamNames lists the parameters Eval reads.
	ParamNames() []ParamName
	// Eval writes the model evaluated at x into dst.
	Eval(dst, x []float64, p Params)
}

// BackgroundModel is the six-parameter cavity background.
type BackgroundModel struct{}

// Name implements Model.
func (BackgroundModel) Name() string { return "bkg" }

// ParamNames implements Model.
func (BackgroundModel) ParamNames() []ParamName { return BackgroundNames }

// Eval implements Model.
func (BackgroundModel) Eval(dst, x []float64, p Params) {
	p.Background().Eval(dst, x)
}

// SignalModel is the background plus a peak of the given shape.
type SignalModel struct {
	Shape model.Shape
}

// Name implements Model.
func (m SignalModel) Name() string {
	switch m.Shape {
	case model.ShapeGaussian:
		return "signal_gauss"
	case model.ShapeMaxwell:
		return "signal_maxwell"
	default:
		return "signal_" + m.Shape.String()
	}
}

// ParamNames implements Model.
func (SignalModel) ParamNames() []ParamName {
	return append(append([]ParamName(nil), BackgroundNames...), PeakNames...)
}

// Eval implements Model.
func (m SignalModel) Eval(dst, x []float64, p Params) {
	model.Signal{Background: p.Background(), Peak: p.Peak(), Shape: m.Shape}.Eval(dst, x)
}
