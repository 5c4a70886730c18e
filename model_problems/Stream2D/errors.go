package Stream2D

import "errors"

var (
	ErrDegenerateFoil        = errors.New("stream2d: foil is nil or has fewer than 3 nodes")
	ErrNoModel               = errors.New("stream2d: no panel model, call SetFoil first")
	ErrSingularSystem        = errors.New("stream2d: influence matrix is singular or ill conditioned")
	ErrNoLinearSolution      = errors.New("stream2d: no linear solution, call Solve first")
	ErrDegenerateLeadingEdge = errors.New("stream2d: no stagnation point found on the surface")
	ErrInputSize             = errors.New("stream2d: input array size does not match the panel model")
)
