package model_test

import (
	"testing"

	"github.com/cwbudde/algo-haloscope/internal/synth"
	"github.com/cwbudde/algo-haloscope/model"
)

func BenchmarkBackgroundEval(b *testing.B) {
	x := synth.Linspace(1e9, 1.1e9, 4096)
	dst := make([]float64, len(x))

	b.ResetTimer()
	for range b.N {
		cavity.Eval(dst, x)
	}
}

func BenchmarkSignalEvalMaxwell(b *testing.B) {
	x := synth.Linspace(1e9, 1.1e9, 4096)
	dst := make([]float64, len(x))
	sig := model.Signal{
		Background: cavity,
		Peak:       model.Peak{X0: 1.05e9, S: model.DefaultWidth, Mu: 1e-10},
		Shape:      model.ShapeMaxwell,
	}

	b.ResetTimer()
	for range b.N {
		sig.Eval(dst, x)
	}
}
