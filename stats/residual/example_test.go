package residual_test

import (
	"fmt"

	"github.com/cwbudde/algo-haloscope/stats/residual"
)

func ExampleSymmetricRange() {
	lo, hi, _ := residual.SymmetricRange([]float64{-4.2, 0.3, 1.7})
	fmt.Println(lo, hi)

	// Output:
	// -2 2
}

func ExampleSummary() {
	s := residual.Summary([]float64{1, -1, 1, -1})
	fmt.Printf("rms=%.1f changes=%d\n", s.RMS, s.SignChanges)

	// Output:
	// rms=1.0 changes=3
}
