package fit_test

import (
	"fmt"

	"github.com/cwbudde/algo-haloscope/fit"
	"github.com/cwbudde/algo-haloscope/internal/synth"
	"github.com/cwbudde/algo-haloscope/model"
)

func ExampleFitSignal() {
	bkg := model.Background{A: 1.05e9, B: 2e4, C: 1.05e9, D: 2.2e4, E: 1e-2, F: 1e-12}
	x0 := 1.05e9 + 20*model.BinWidth

	spec := synth.Scenario{
		Start:      1.0498e9,
		Stop:       1.0502e9,
		Points:     401,
		Background: bkg,
		Shape:      model.ShapeGaussian,
		Peak:       model.Peak{X0: x0, S: model.DefaultWidth, Mu: 2e-5},
		Sigma:      1e-7,
	}.Spectrum()

	res, err := fit.FitSignal(spec, x0, bkg, model.ShapeGaussian, fit.WithMuInit(1e-5))
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("%s: mu = %.3g, free = %d\n", res.Model, res.Value(fit.Mu), res.NVarys)
	// Output:
	// signal_gauss: mu = 2e-05, free = 1
}
