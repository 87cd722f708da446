package model

import (
	"fmt"
	"math/rand/v2"
	"sort"
)

// ForestConfig holds the ensemble hyperparameters.
type ForestConfig struct {
	Trees           int
	MaxDepth        int
	MinSamplesSplit int
	MinSamplesLeaf  int
	Seed            uint64
}

// DefaultForestConfig mirrors the hyperparameters the yield models were
// tuned with: 100 trees, depth 10, min split 5, min leaf 2.
func DefaultForestConfig() ForestConfig {
	return ForestConfig{
		Trees:           100,
		MaxDepth:        10,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  2,
		Seed:            42,
	}
}

// Forest is a bagged ensemble of variance-reduction regression trees.
// Immutable once trained; safe for concurrent Predict calls.
type Forest struct {
	trees      []*treeNode
	importance []float64
	features   int
}

type treeNode struct {
	feature   int
	threshold float64
	left      *treeNode
	right     *treeNode
	value     float64
	leaf      bool
}

// TrainForest fits the ensemble on a scaled feature matrix. Each tree is
// grown on a bootstrap resample; per-feature importances are the
// sample-weighted impurity decreases, normalized over the whole forest.
func TrainForest(x [][]float64, y []float64, cfg ForestConfig) (*Forest, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("train forest: need matching non-empty features and labels, got %d/%d", len(x), len(y))
	}
	if cfg.Trees <= 0 {
		return nil, fmt.Errorf("train forest: tree count must be positive, got %d", cfg.Trees)
	}

	f := &Forest{
		trees:      make([]*treeNode, 0, cfg.Trees),
		importance: make([]float64, len(x[0])),
		features:   len(x[0]),
	}

	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed))
	n := len(x)

	for t := 0; t < cfg.Trees; t++ {
		idx := make([]int, n)
		for i := range idx {
			idx[i] = rng.IntN(n)
		}
		b := &treeBuilder{x: x, y: y, cfg: cfg, importance: f.importance, total: float64(n)}
		f.trees = append(f.trees, b.grow(idx, 0))
	}

	// Normalize accumulated impurity decreases to weights summing to 1.
	var sum float64
	for _, v := range f.importance {
		sum += v
	}
	if sum > 0 {
		for i := range f.importance {
			f.importance[i] /= sum
		}
	}
	return f, nil
}

// Predict returns the mean of the per-tree predictions.
func (f *Forest) Predict(x []float64) float64 {
	var sum float64
	for _, t := range f.trees {
		sum += t.predict(x)
	}
	return sum / float64(len(f.trees))
}

// Importances returns the normalized per-feature importance weights in
// feature order.
func (f *Forest) Importances() []float64 {
	out := make([]float64, len(f.importance))
	copy(out, f.importance)
	return out
}

func (n *treeNode) predict(x []float64) float64 {
	for !n.leaf {
		if x[n.feature] <= n.threshold {
			n = n.left
		} else {
			n = n.right
		}
	}
	return n.value
}

type treeBuilder struct {
	x          [][]float64
	y          []float64
	cfg        ForestConfig
	importance []float64
	total      float64
}

func (b *treeBuilder) grow(idx []int, depth int) *treeNode {
	if depth >= b.cfg.MaxDepth || len(idx) < b.cfg.MinSamplesSplit {
		return b.leaf(idx)
	}

	feature, threshold, gain, ok := b.bestSplit(idx)
	if !ok {
		return b.leaf(idx)
	}

	var left, right []int
	for _, i := range idx {
		if b.x[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}

	b.importance[feature] += gain * float64(len(idx)) / b.total

	return &treeNode{
		feature:   feature,
		threshold: threshold,
		left:      b.grow(left, depth+1),
		right:     b.grow(right, depth+1),
	}
}

func (b *treeBuilder) leaf(idx []int) *treeNode {
	var sum float64
	for _, i := range idx {
		sum += b.y[i]
	}
	return &treeNode{leaf: true, value: sum / float64(len(idx))}
}

// bestSplit scans every feature with an incremental sum sweep over the
// sorted column, maximizing variance reduction. Splits leaving fewer than
// MinSamplesLeaf on either side are skipped.
func (b *treeBuilder) bestSplit(idx []int) (feature int, threshold, gain float64, ok bool) {
	n := len(idx)

	var total, totalSq float64
	for _, i := range idx {
		total += b.y[i]
		totalSq += b.y[i] * b.y[i]
	}
	parentImpurity := totalSq/float64(n) - (total/float64(n))*(total/float64(n))
	if parentImpurity <= 0 {
		return 0, 0, 0, false
	}

	order := make([]int, n)
	bestGain := 0.0

	for j := 0; j < len(b.x[0]); j++ {
		copy(order, idx)
		sort.Slice(order, func(a, c int) bool { return b.x[order[a]][j] < b.x[order[c]][j] })

		var leftSum, leftSq float64
		for k := 0; k < n-1; k++ {
			i := order[k]
			leftSum += b.y[i]
			leftSq += b.y[i] * b.y[i]

			nl := k + 1
			nr := n - nl
			if nl < b.cfg.MinSamplesLeaf || nr < b.cfg.MinSamplesLeaf {
				continue
			}
			// Can't split between identical feature values.
			if b.x[order[k]][j] == b.x[order[k+1]][j] {
				continue
			}

			rightSum := total - leftSum
			rightSq := totalSq - leftSq
			leftImp := leftSq/float64(nl) - (leftSum/float64(nl))*(leftSum/float64(nl))
			rightImp := rightSq/float64(nr) - (rightSum/float64(nr))*(rightSum/float64(nr))

			g := parentImpurity - (float64(nl)*leftImp+float64(nr)*rightImp)/float64(n)
			if g > bestGain {
				bestGain = g
				feature = j
				threshold = (b.x[order[k]][j] + b.x[order[k+1]][j]) / 2
				ok = true
			}
		}
	}
	return feature, threshold, bestGain, ok
}
