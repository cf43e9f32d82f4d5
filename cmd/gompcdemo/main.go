package main

import (
	"log"
	"math"
	"path/filepath"

	"github.com/jcui65/gompc"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Double integrator sampled at period h, driven by a saturated gain-matrix
// controller. The hand-built explicit solution below is the shape the
// offline mpQP machinery produces for this plant: an unconstrained band
// where the law is -K x, flanked by the two saturated regions.

const (
	h     = 0.1
	steps = 40
	uMax  = 1.0
	xLim  = 2.0
)

var (
	gainK = []float64{0.8, 1.4}
	x0    = []float64{1.8, 0.0}
)

func main() {
	outDir := "out"

	// Closed-loop simulation.
	a := mat.NewDense(2, 2, []float64{1, h, 0, 1})
	b := mat.NewVecDense(2, []float64{h * h / 2, h})
	cMat := mat.NewDense(1, 2, []float64{1, 0})

	x := []mat.Vector{mat.NewVecDense(2, x0)}
	var u []mat.Vector
	for k := 0; k < steps; k++ {
		xk := x[len(x)-1]
		uk := -(gainK[0]*xk.AtVec(0) + gainK[1]*xk.AtVec(1))
		uk = math.Max(-uMax, math.Min(uMax, uk))
		next := mat.NewVecDense(2, nil)
		next.MulVec(a, xk)
		next.AddScaledVec(next, uk, b)
		x = append(x, next)
		u = append(u, mat.NewVecDense(1, []float64{uk}))
	}

	// Trajectory in the state plane.
	p := plot.New()
	if err := gompc.PlotStateSpaceTrajectory(p, x, gompc.TrajectoryOptions{Name: "closed loop"}); err != nil {
		log.Fatal(err)
	}
	if err := gompc.SavePNG(p, 15*vg.Centimeter, 12*vg.Centimeter, filepath.Join(outDir, "trajectory.png")); err != nil {
		log.Fatal(err)
	}

	// Time series with bound overlays.
	uBounds := &gompc.Bounds{
		Lower: mat.NewVecDense(1, []float64{-uMax}),
		Upper: mat.NewVecDense(1, []float64{uMax}),
	}
	plots, err := gompc.PlotInputSequence(u, h, uBounds)
	if err != nil {
		log.Fatal(err)
	}
	if err := gompc.SaveColumn(plots, 15*vg.Centimeter, 8*vg.Centimeter, filepath.Join(outDir, "inputs.png")); err != nil {
		log.Fatal(err)
	}

	xBounds := &gompc.Bounds{
		Lower: mat.NewVecDense(2, []float64{-xLim, -xLim}),
		Upper: mat.NewVecDense(2, []float64{xLim, xLim}),
	}
	plots, err = gompc.PlotStateTrajectory(x, h, xBounds)
	if err != nil {
		log.Fatal(err)
	}
	if err := gompc.SaveColumn(plots, 15*vg.Centimeter, 15*vg.Centimeter, filepath.Join(outDir, "states.png")); err != nil {
		log.Fatal(err)
	}

	yBounds := &gompc.Bounds{
		Lower: mat.NewVecDense(1, []float64{-xLim}),
		Upper: mat.NewVecDense(1, []float64{xLim}),
	}
	plots, err = gompc.PlotOutputTrajectory(cMat, x, h, yBounds)
	if err != nil {
		log.Fatal(err)
	}
	if err := gompc.SaveColumn(plots, 15*vg.Centimeter, 8*vg.Centimeter, filepath.Join(outDir, "outputs.png")); err != nil {
		log.Fatal(err)
	}

	// Explicit solution: partition and value function.
	sol := explicitSolution()
	pp := plot.New()
	if err := gompc.PlotPartition(pp, sol, gompc.PartitionOptions{ShowActiveSets: true, Seed: 7, Alpha: 0.6}); err != nil {
		log.Fatal(err)
	}
	if err := gompc.SavePNG(pp, 15*vg.Centimeter, 12*vg.Centimeter, filepath.Join(outDir, "partition.png")); err != nil {
		log.Fatal(err)
	}

	prog := &gompc.MultiParametricQuadraticProgram{
		FeasibleSet: gompc.NewBox(r2.Vec{X: -xLim, Y: -xLim}, r2.Vec{X: xLim, Y: xLim}),
	}
	pv := plot.New()
	cm, err := gompc.PlotValueFunction(pv, prog, sol, gompc.ValueFunctionOptions{Resolution: 120, CacheDir: ".cache"})
	if err != nil {
		log.Fatal(err)
	}
	if err := gompc.SaveWithColorBar(pv, cm, 18*vg.Centimeter, 13*vg.Centimeter, filepath.Join(outDir, "value_function.png")); err != nil {
		log.Fatal(err)
	}

	// Log the plotted series next to the images.
	ts := make([]float64, steps)
	x1s := make([]float64, steps)
	x2s := make([]float64, steps)
	us := make([]float64, steps)
	for k := 0; k < steps; k++ {
		ts[k] = float64(k) * h
		x1s[k] = x[k].AtVec(0)
		x2s[k] = x[k].AtVec(1)
		us[k] = u[k].AtVec(0)
	}
	if err := gompc.WriteSeriesCSV(filepath.Join(outDir, "closed_loop.csv"), []string{"t", "x1", "x2", "u"}, ts, x1s, x2s, us); err != nil {
		log.Fatal(err)
	}
}

func mkRegion(aData, bData []float64) *gompc.Polyhedron {
	ph, err := gompc.NewPolyhedron(mat.NewDense(len(bData), 2, aData), mat.NewVecDense(len(bData), bData))
	if err != nil {
		log.Fatal(err)
	}
	return ph
}

func explicitSolution() *gompc.ExplicitSolution {
	k1, k2 := gainK[0], gainK[1]

	// Unconstrained band |K x| <= uMax inside the state box.
	central := mkRegion([]float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
		k1, k2,
		-k1, -k2,
	}, []float64{xLim, xLim, xLim, xLim, uMax, uMax})

	// K x >= uMax: the input saturates at -uMax.
	upper := mkRegion([]float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
		-k1, -k2,
	}, []float64{xLim, xLim, xLim, xLim, -uMax})

	// K x <= -uMax: the input saturates at +uMax.
	lower := mkRegion([]float64{
		1, 0,
		-1, 0,
		0, 1,
		0, -1,
		k1, k2,
	}, []float64{xLim, xLim, xLim, xLim, -uMax})

	return &gompc.ExplicitSolution{Regions: []gompc.CriticalRegion{
		{
			Region: central,
			Input: gompc.AffineFunction{
				K: mat.NewDense(1, 2, []float64{-k1, -k2}),
				G: mat.NewVecDense(1, []float64{0}),
			},
			Value: gompc.QuadraticFunction{
				P: mat.NewDense(2, 2, []float64{1.9, 0.7, 0.7, 1.2}),
				Q: mat.NewVecDense(2, []float64{0, 0}),
			},
		},
		{
			Region:    upper,
			ActiveSet: []int{0},
			Input: gompc.AffineFunction{
				K: mat.NewDense(1, 2, []float64{0, 0}),
				G: mat.NewVecDense(1, []float64{-uMax}),
			},
			Value: gompc.QuadraticFunction{
				P: mat.NewDense(2, 2, []float64{1.4, 0.35, 0.35, 0.9}),
				Q: mat.NewVecDense(2, []float64{1.1, 0.8}),
				C: 0.45,
			},
		},
		{
			Region:    lower,
			ActiveSet: []int{1},
			Input: gompc.AffineFunction{
				K: mat.NewDense(1, 2, []float64{0, 0}),
				G: mat.NewVecDense(1, []float64{uMax}),
			},
			Value: gompc.QuadraticFunction{
				P: mat.NewDense(2, 2, []float64{1.4, 0.35, 0.35, 0.9}),
				Q: mat.NewVecDense(2, []float64{-1.1, -0.8}),
				C: 0.45,
			},
		},
	}}
}
