// Package stats implements the two-sample tests used by table-level checks.
package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

var (
	// ErrInsufficientData is returned when a sample has fewer than two observations.
	ErrInsufficientData = errors.New("insufficient data")

)

// Alternative selects the alternative hypothesis of a test.
type Alternative int

const (
	TwoSided Alternative = iota
	Greater              // mean(a) > mean(b)
	Less                 // mean(a) < mean(b)
)

func (a Alternative) String() string {
	switch a {
	case Greater:
		return "greater"
	case Less:
		return "less"
	default:
		return "two-sided"
	}
}

// TestResult holds the outcome of a two-sample t-test.
type TestResult struct {
	Statistic float64
	DF        float64
	PValue    float64
	NA, NB    int
}

// WelchTTest runs Welch's unequal-variance t-test on samples a and b.
func WelchTTest(a, b []float64, alt Alternative) (TestResult, error) {
	if len(a) < 2 || len(b) < 2 {
		return TestResult{NA: len(a), NB: len(b)}, fmt.Errorf("welch t-test with sample sizes %d and %d: %w", len(a), len(b), ErrInsufficientData)
	}

	na, nb := float64(len(a)), float64(len(b))
	meanA, varA := stat.MeanVariance(a, nil)
	meanB, varB := stat.MeanVariance(b, nil)

	sa, sb := varA/na, varB/nb
	if sa+sb == 0 {
		return constantSamples(meanA-meanB, alt, len(a), len(b)), nil
	}

	t := (meanA - meanB) / math.Sqrt(sa+sb)
	df := (sa + sb) * (sa + sb) / (sa*sa/(na-1) + sb*sb/(nb-1))

	dist := distuv.StudentsT{Mu: 0, Sigma: 1, Nu: df}
	var p float64
	switch alt {
	case Greater:
		p = dist.Survival(t)
	case Less:
		p = dist.CDF(t)
	default:
		p = 2 * dist.Survival(math.Abs(t))
	}

	return TestResult{Statistic: t, DF: df, PValue: p, NA: len(a), NB: len(b)}, nil
}

// constantSamples handles two samples with no spread. The statistic is
// diff/0: ±Inf when the means differ, NaN when they are equal. The p-value
// is then 0 or 1 for one-sided tests (0 for two-sided) and NaN on a tie, so
// a threshold like p < alpha never passes on equal means. DF is set to 1.
func constantSamples(diff float64, alt Alternative, na, nb int) TestResult {
	res := TestResult{DF: 1, NA: na, NB: nb}
	if diff == 0 {
		res.Statistic, res.PValue = math.NaN(), math.NaN()
		return res
	}

	res.Statistic = math.Inf(1)
	if diff < 0 {
		res.Statistic = math.Inf(-1)
	}
	switch {
	case alt == TwoSided:
		res.PValue = 0
	case (alt == Greater) == (diff > 0):
		res.PValue = 0
	default:
		res.PValue = 1
	}
	return res
}
