//go:build cgo && netlib
// +build cgo,netlib

package utils

/*
#cgo CFLAGS: -march=native -mavx -mavx2
#cgo LDFLAGS: -lopenblas -llapacke -lgfortran -lm -lpthread
#include <cblas.h>
#include <lapacke.h>
*/
import "C"

import (
	log "github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/blas/blas64"
	netblas "gonum.org/v1/netlib/blas/netlib"
)

// Influence matrices are dense and grow with the square of the node count,
// the OpenBLAS backend is opt-in with: go build -tags netlib
func init() {
	blas64.Use(netblas.Implementation{})
	log.Debug("Using netlib to accelerate BLAS")
}
