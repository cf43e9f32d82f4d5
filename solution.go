package gompc

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// AffineFunction is u(x) = K x + g.
type AffineFunction struct {
	K *mat.Dense
	G *mat.VecDense
}

// Eval returns K x + g.
func (f AffineFunction) Eval(x mat.Vector) *mat.VecDense {
	m, _ := f.K.Dims()
	u := mat.NewVecDense(m, nil)
	u.MulVec(f.K, x)
	u.AddVec(u, f.G)
	return u
}

// QuadraticFunction is v(x) = x'P x + q'x + c.
type QuadraticFunction struct {
	P *mat.Dense
	Q *mat.VecDense
	C float64
}

// Eval returns x'P x + q'x + c.
func (f QuadraticFunction) Eval(x mat.Vector) float64 {
	n := x.Len()
	v := f.C
	for i := 0; i < n; i++ {
		v += f.Q.AtVec(i) * x.AtVec(i)
		for j := 0; j < n; j++ {
			v += x.AtVec(i) * f.P.At(i, j) * x.AtVec(j)
		}
	}
	return v
}

// CriticalRegion is one piece of an explicit MPC law: a polyhedron of the
// state space on which the optimal input is affine and the optimal value is
// quadratic. ActiveSet lists the constraints at their bound inside the
// region.
type CriticalRegion struct {
	Region    *Polyhedron
	ActiveSet []int
	Input     AffineFunction
	Value     QuadraticFunction
}

// ExplicitSolution is the precomputed solution of a multiparametric
// quadratic program: the polyhedral partition together with the affine input
// and quadratic value piece of every critical region.
type ExplicitSolution struct {
	Regions []CriticalRegion
}

// Dim returns the dimension of the partitioned state space.
func (s *ExplicitSolution) Dim() int {
	if len(s.Regions) == 0 {
		return 0
	}
	return s.Regions[0].Region.Dim()
}

// FindRegion returns the first critical region containing x.
func (s *ExplicitSolution) FindRegion(x mat.Vector) (*CriticalRegion, bool) {
	for i := range s.Regions {
		if s.Regions[i].Region.Contains(x) {
			return &s.Regions[i], true
		}
	}
	return nil, false
}

// U evaluates the piecewise-affine optimal input at x. The second return is
// false outside the partition.
func (s *ExplicitSolution) U(x mat.Vector) (*mat.VecDense, bool) {
	cr, ok := s.FindRegion(x)
	if !ok {
		return nil, false
	}
	return cr.Input.Eval(x), true
}

// V evaluates the piecewise-quadratic optimal value function at x. The
// second return is false outside the partition.
func (s *ExplicitSolution) V(x mat.Vector) (float64, bool) {
	cr, ok := s.FindRegion(x)
	if !ok {
		return 0, false
	}
	return cr.Value.Eval(x), true
}

// MultiParametricQuadraticProgram carries the offline solver's description
// of the program the explicit solution was computed for. Only the feasible
// set matters to plotting; the program matrices stay with the solver.
type MultiParametricQuadraticProgram struct {
	FeasibleSet *Polyhedron
}

// GetFeasibleSet returns the set of parameters for which the program is
// feasible.
func (p *MultiParametricQuadraticProgram) GetFeasibleSet() (*Polyhedron, error) {
	if p.FeasibleSet == nil {
		return nil, fmt.Errorf("multiparametric program has no feasible set attached")
	}
	return p.FeasibleSet, nil
}
