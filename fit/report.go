package fit

import (
	"fmt"
	"math"
	"strings"
)

// minCorrel is the smallest correlation magnitude listed by Report.
const minCorrel = 0.1

// Report formats the fit statistics, parameter estimates and the strongest
// correlations as text.
func (r *Result) Report() string {
	var b strings.Builder

	fmt.Fprintf(&b, "[[Model]]\n    %s\n", r.Model)
	fmt.Fprintf(&b, "[[Fit Statistics]]\n")
	fmt.Fprintf(&b, "    # fitting method   = leastsq\n")
	fmt.Fprintf(&b, "    # function evals   = %d\n", r.NFev)
	fmt.Fprintf(&b, "    # data points      = %d\n", r.NData)
	fmt.Fprintf(&b, "    # variables        = %d\n", r.NVarys)
	fmt.Fprintf(&b, "    chi-square         = %.7g\n", r.ChiSqr)
	fmt.Fprintf(&b, "    reduced chi-square = %.7g\n", r.RedChi)
	fmt.Fprintf(&b, "    Akaike info crit   = %.7g\n", r.AIC)
	fmt.Fprintf(&b, "    Bayesian info crit = %.7g\n", r.BIC)

	if !r.Success {
		fmt.Fprintf(&b, "##  Warning: %s\n", r.Message)
	}

	width := 0
	for _, p := range r.Params {
		width = max(width, len(p.Name))
	}

	fmt.Fprintf(&b, "[[Variables]]\n")

	for _, p := range r.Params {
		label := fmt.Sprintf("%s:", p.Name)
		fmt.Fprintf(&b, "    %-*s  %.8g", width+1, label, p.Value)

		if !p.Free {
			fmt.Fprintf(&b, " (fixed)\n")
			continue
		}

		if se := r.Uncertainty(p.Name); !math.IsNaN(se) {
			fmt.Fprintf(&b, " +/- %.8g", se)
			if p.Value != 0 {
				fmt.Fprintf(&b, " (%.2f%%)", math.Abs(100*se/p.Value))
			}
		}

		init, _ := r.Init.Get(p.Name)
		fmt.Fprintf(&b, " (init = %.8g)\n", init.Value)
	}

	var strong []Correlation
	for _, c := range r.Correl {
		if math.Abs(c.Value) >= minCorrel {
			strong = append(strong, c)
		}
	}

	if len(strong) > 0 {
		fmt.Fprintf(&b, "[[Correlations]] (unreported correlations are < %.3f)\n", minCorrel)

		for _, c := range strong {
			fmt.Fprintf(&b, "    C(%s, %s) = %+.4f\n", c.A, c.B, c.Value)
		}
	}

	return b.String()
}
