// Package gompc provides plotting helpers for model-predictive-control
// results: state-space trajectories, input/state/output time series with
// bound overlays, and 2D views of explicit-MPC polyhedral partitions and
// value functions.
//
// The package does not solve anything. It consumes the numeric output of an
// MPC pipeline (sequences of state and input vectors, critical regions of a
// multiparametric program) and turns it into gonum/plot figures.
package gompc
