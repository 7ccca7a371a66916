package factor

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/pable/lck-metrics/internal/model"
)

// Failures of the first two reduction tiers. Reduce falls through to the
// next tier on any of them.
var (
	ErrSingular      = errors.New("factor: correlation matrix is singular")
	ErrNotConverged  = errors.New("factor: communalities did not converge")
	ErrDecomposition = errors.New("factor: eigendecomposition failed")
	ErrZeroVariance  = errors.New("factor: no variance to project")
)

const (
	maxIterations   = 1000
	convergenceTol  = 1e-6
	maxCondition    = 1e12
	minCommunality  = 0.005
	zeroVarianceTol = 1e-12
)

// Reduction is the composite for each row and how it was obtained.
type Reduction struct {
	Composite []float64
	Method    model.Method
	Failures  []error
}

// Reduce collapses the standardized columns of z into one value per row.
// One column is used as is. Otherwise a one-factor model is tried first,
// then the first principal component, then the row mean.
func Reduce(z *mat.Dense) Reduction {
	_, p := z.Dims()
	if p == 1 {
		return Reduction{Composite: mat.Col(nil, 0, z), Method: model.MethodDirect}
	}

	var red Reduction
	scores, err := OneFactor(z)
	if err == nil {
		red.Composite, red.Method = scores, model.MethodFactor
		return red
	}
	red.Failures = append(red.Failures, err)

	scores, err = FirstComponent(z)
	if err == nil {
		red.Composite, red.Method = scores, model.MethodPCA
		return red
	}
	red.Failures = append(red.Failures, err)

	red.Composite, red.Method = RowMean(z), model.MethodMean
	return red
}

// OneFactor fits a single common factor by iterated principal-axis
// factoring, starting from squared multiple correlations, and returns
// regression-method factor scores.
func OneFactor(z *mat.Dense) ([]float64, error) {
	n, p := z.Dims()
	if n < 2 {
		return nil, ErrSingular
	}

	corr := mat.NewSymDense(p, nil)
	stat.CorrelationMatrix(corr, z, nil)
	for i := 0; i < p; i++ {
		for j := i; j < p; j++ {
			if v := corr.At(i, j); math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, ErrSingular
			}
		}
	}

	var chol mat.Cholesky
	if ok := chol.Factorize(corr); !ok || chol.Cond() > maxCondition {
		return nil, ErrSingular
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSingular, err)
	}

	h := make([]float64, p)
	for i := range h {
		h[i] = clampCommunality(1 - 1/inv.At(i, i))
	}

	reduced := mat.NewSymDense(p, nil)
	loadings := make([]float64, p)
	converged := false
	for iter := 0; iter < maxIterations; iter++ {
		reduced.CopySym(corr)
		for i := range h {
			reduced.SetSym(i, i, h[i])
		}

		var es mat.EigenSym
		if ok := es.Factorize(reduced, true); !ok {
			return nil, ErrNotConverged
		}
		lambda := es.Values(nil)[p-1]
		if !(lambda > 0) {
			return nil, ErrNotConverged
		}
		var vecs mat.Dense
		es.VectorsTo(&vecs)

		delta := 0.0
		for i := range loadings {
			loadings[i] = vecs.At(i, p-1) * math.Sqrt(lambda)
			next := clampCommunality(loadings[i] * loadings[i])
			delta = math.Max(delta, math.Abs(next-h[i]))
			h[i] = next
		}
		if delta < convergenceTol {
			converged = true
			break
		}
	}
	if !converged {
		return nil, ErrNotConverged
	}

	var w mat.VecDense
	w.MulVec(&inv, mat.NewVecDense(p, loadings))
	var s mat.VecDense
	s.MulVec(z, &w)

	out := make([]float64, n)
	for i := range out {
		out[i] = s.AtVec(i)
		if math.IsNaN(out[i]) || math.IsInf(out[i], 0) {
			return nil, ErrNotConverged
		}
	}
	return out, nil
}

func clampCommunality(h float64) float64 {
	return math.Min(1, math.Max(minCommunality, h))
}

// FirstComponent projects the centered rows of z onto the eigenvector of the
// largest covariance eigenvalue.
func FirstComponent(z *mat.Dense) ([]float64, error) {
	n, p := z.Dims()
	if n < 2 {
		return nil, ErrZeroVariance
	}

	cov := mat.NewSymDense(p, nil)
	stat.CovarianceMatrix(cov, z, nil)
	trace := 0.0
	for i := 0; i < p; i++ {
		trace += cov.At(i, i)
	}
	if math.IsNaN(trace) || math.IsInf(trace, 0) {
		return nil, ErrDecomposition
	}
	if trace < zeroVarianceTol {
		return nil, ErrZeroVariance
	}

	var es mat.EigenSym
	if ok := es.Factorize(cov, true); !ok {
		return nil, ErrDecomposition
	}
	var vecs mat.Dense
	es.VectorsTo(&vecs)
	v := mat.Col(nil, p-1, &vecs)

	means := make([]float64, p)
	for j := range means {
		means[j] = stat.Mean(mat.Col(nil, j, z), nil)
	}
	out := make([]float64, n)
	for i := range out {
		var sum float64
		for j := 0; j < p; j++ {
			sum += (z.At(i, j) - means[j]) * v[j]
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			return nil, ErrDecomposition
		}
		out[i] = sum
	}
	return out, nil
}

// RowMean averages each row of z.
func RowMean(z *mat.Dense) []float64 {
	n, _ := z.Dims()
	out := make([]float64, n)
	for i := range out {
		out[i] = stat.Mean(mat.Row(nil, i, z), nil)
	}
	return out
}
