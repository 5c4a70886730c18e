package utils

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// ConditionNumber uses the LU factorization estimate, Inf when the matrix is exactly singular
func (m Matrix) ConditionNumber() float64 {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc || nr == 0 {
		return math.Inf(1)
	}
	var lu mat.LU
	lu.Factorize(m.M)
	cond := lu.Cond()
	if math.IsNaN(cond) {
		return math.Inf(1)
	}
	return cond
}

// SingularValues is useful for debugging badly scaled influence matrices
func (m Matrix) SingularValues() (min, max float64) {
	var svd mat.SVD
	if !svd.Factorize(m.M, mat.SVDNone) {
		return 0, 1e16
	}
	values := svd.Values(nil)
	if len(values) == 0 {
		return 0, 1e16
	}
	return values[len(values)-1], values[0]
}
