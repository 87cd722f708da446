// Package model implements the per-crop yield regression pipeline: a
// standard feature scaler, a bagged ensemble of regression trees, and a
// store that holds the fitted state for the process lifetime.
package model

import (
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// Scaler standardizes features to zero mean and unit variance, using the
// statistics of the data it was fitted on.
type Scaler struct {
	Mean []float64
	Std  []float64
}

// FitScaler computes per-column mean and standard deviation from the
// training matrix. Constant columns get a unit deviation so Transform is
// always well defined.
func FitScaler(x [][]float64) (Scaler, error) {
	if len(x) == 0 {
		return Scaler{}, fmt.Errorf("fit scaler: empty training matrix")
	}

	cols := len(x[0])
	s := Scaler{Mean: make([]float64, cols), Std: make([]float64, cols)}

	col := make([]float64, len(x))
	for j := 0; j < cols; j++ {
		for i := range x {
			col[i] = x[i][j]
		}
		mean, std := stat.MeanStdDev(col, nil)
		if std == 0 {
			std = 1
		}
		s.Mean[j] = mean
		s.Std[j] = std
	}
	return s, nil
}

// Transform standardizes a single feature vector.
func (s Scaler) Transform(x []float64) []float64 {
	out := make([]float64, len(x))
	for j, v := range x {
		out[j] = (v - s.Mean[j]) / s.Std[j]
	}
	return out
}

// TransformAll standardizes a full matrix.
func (s Scaler) TransformAll(x [][]float64) [][]float64 {
	out := make([][]float64, len(x))
	for i := range x {
		out[i] = s.Transform(x[i])
	}
	return out
}
