package ml

import (
	"math/rand"
)

// ForestParams mirror the production classifier configuration: 200 trees of
// depth 12 with sqrt feature sampling and bootstrap bagging.
type ForestParams struct {
	NumTrees        int   `json:"n_estimators"`
	MaxDepth        int   `json:"max_depth"`
	MinSamplesSplit int   `json:"min_samples_split"`
	MinSamplesLeaf  int   `json:"min_samples_leaf"`
	Seed            int64 `json:"random_state"`
}

func DefaultForestParams() ForestParams {
	return ForestParams{
		NumTrees:        200,
		MaxDepth:        12,
		MinSamplesSplit: 5,
		MinSamplesLeaf:  2,
		Seed:            42,
	}
}

// Forest is a bagged ensemble of CART trees. It is immutable once fitted and
// safe to share across concurrent predictions.
type Forest struct {
	Trees       []*treeNode  `json:"trees"`
	NClasses    int          `json:"n_classes"`
	NFeatures   int          `json:"n_features"`
	Importances []float64    `json:"importances"`
	Params      ForestParams `json:"params"`
}

func FitForest(X [][]float64, y []int, nClasses int, params ForestParams, rng *rand.Rand) *Forest {
	if params.NumTrees <= 0 {
		params = DefaultForestParams()
	}

	nFeatures := 0
	if len(X) > 0 {
		nFeatures = len(X[0])
	}

	f := &Forest{
		Trees:       make([]*treeNode, 0, params.NumTrees),
		NClasses:    nClasses,
		NFeatures:   nFeatures,
		Importances: make([]float64, nFeatures),
		Params:      params,
	}

	tp := treeParams{
		maxDepth:        params.MaxDepth,
		minSamplesSplit: params.MinSamplesSplit,
		minSamplesLeaf:  params.MinSamplesLeaf,
		maxFeatures:     sqrtFeatures(nFeatures),
	}

	for t := 0; t < params.NumTrees; t++ {
		indices := bootstrapSample(len(X), rng)
		builder := &treeBuilder{
			X:          X,
			y:          y,
			nClasses:   nClasses,
			params:     tp,
			rng:        rng,
			importance: make([]float64, nFeatures),
		}
		f.Trees = append(f.Trees, builder.build(indices, 0))

		normalizeInPlace(builder.importance)
		for i, v := range builder.importance {
			f.Importances[i] += v
		}
	}

	normalizeInPlace(f.Importances)
	return f
}

func (f *Forest) PredictProba(x []float64) []float64 {
	probs := make([]float64, f.NClasses)
	if len(f.Trees) == 0 {
		return probs
	}
	for _, tree := range f.Trees {
		for i, p := range tree.predictProba(x) {
			probs[i] += p
		}
	}
	for i := range probs {
		probs[i] /= float64(len(f.Trees))
	}
	return probs
}

func (f *Forest) Predict(x []float64) int {
	probs := f.PredictProba(x)
	best := 0
	for i, p := range probs {
		if p > probs[best] {
			best = i
		}
	}
	return best
}

func (f *Forest) NumClasses() int {
	return f.NClasses
}

func bootstrapSample(n int, rng *rand.Rand) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = rng.Intn(n)
	}
	return out
}

func normalizeInPlace(v []float64) {
	total := 0.0
	for _, x := range v {
		total += x
	}
	if total <= 0 {
		return
	}
	for i := range v {
		v[i] /= total
	}
}
