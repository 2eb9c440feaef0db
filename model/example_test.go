package model_test

import (
	"fmt"

	"github.com/cwbudde/algo-haloscope/model"
)

func ExampleBkg() {
	p := model.Background{A: 1.05e9, B: 2e4, C: 1.05e9, D: 2.2e4, E: 1e-2, F: 1e-12}
	fmt.Printf("on resonance: %.4e\n", model.Bkg(1.05e9, p))
	// Output:
	// on resonance: 8.2645e-05
}

func ExampleShape_At() {
	p := model.Peak{X0: 100, S: 10, Mu: 2}
	for _, s := range []model.Shape{model.ShapeGaussian, model.ShapeMaxwell} {
		fmt.Printf("%s: %.1f\n", s, s.At(100, p))
	}
	// Output:
	// gaussian: 2.0
	// maxwell: 20.0
}
