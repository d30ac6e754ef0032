package ml

import (
	"math"
	"math/rand"
	"sort"
)

type treeParams struct {
	maxDepth        int
	minSamplesSplit int
	minSamplesLeaf  int
	maxFeatures     int
}

// treeNode is a CART classification node. Leaves carry the class distribution
// of their training samples; internal nodes route on feature <= threshold.
type treeNode struct {
	Feature   int       `json:"feature"`
	Threshold float64   `json:"threshold"`
	Left      *treeNode `json:"left,omitempty"`
	Right     *treeNode `json:"right,omitempty"`
	Probs     []float64 `json:"probs,omitempty"`
}

func (n *treeNode) isLeaf() bool {
	return n.Left == nil && n.Right == nil
}

func (n *treeNode) predictProba(x []float64) []float64 {
	node := n
	for !node.isLeaf() {
		if x[node.Feature] <= node.Threshold {
			node = node.Left
		} else {
			node = node.Right
		}
	}
	return node.Probs
}

type treeBuilder struct {
	X          [][]float64
	y          []int
	nClasses   int
	params     treeParams
	rng        *rand.Rand
	importance []float64
}

func (b *treeBuilder) build(indices []int, depth int) *treeNode {
	counts := make([]float64, b.nClasses)
	for _, i := range indices {
		counts[b.y[i]]++
	}

	if depth >= b.params.maxDepth ||
		len(indices) < b.params.minSamplesSplit ||
		isPure(counts) {
		return leaf(counts)
	}

	feature, threshold, gain := b.bestSplit(indices, counts)
	if gain <= 0 {
		return leaf(counts)
	}

	left := make([]int, 0, len(indices))
	right := make([]int, 0, len(indices))
	for _, i := range indices {
		if b.X[i][feature] <= threshold {
			left = append(left, i)
		} else {
			right = append(right, i)
		}
	}
	if len(left) < b.params.minSamplesLeaf || len(right) < b.params.minSamplesLeaf {
		return leaf(counts)
	}

	b.importance[feature] += gain * float64(len(indices))

	return &treeNode{
		Feature:   feature,
		Threshold: threshold,
		Left:      b.build(left, depth+1),
		Right:     b.build(right, depth+1),
	}
}

// bestSplit searches a random feature subset for the threshold with the
// largest gini impurity decrease.
func (b *treeBuilder) bestSplit(indices []int, counts []float64) (feature int, threshold, gain float64) {
	total := float64(len(indices))
	parentImpurity := gini(counts, total)

	feature = -1
	bestGain := 0.0

	for _, f := range b.sampleFeatures() {
		values := make([]float64, len(indices))
		for pos, i := range indices {
			values[pos] = b.X[i][f]
		}
		order := make([]int, len(indices))
		for pos := range order {
			order[pos] = pos
		}
		sort.Slice(order, func(a, c int) bool { return values[order[a]] < values[order[c]] })

		leftCounts := make([]float64, b.nClasses)
		rightCounts := append([]float64(nil), counts...)

		for pos := 0; pos < len(order)-1; pos++ {
			i := indices[order[pos]]
			leftCounts[b.y[i]]++
			rightCounts[b.y[i]]--

			v := values[order[pos]]
			next := values[order[pos+1]]
			if v == next {
				continue
			}

			nLeft := float64(pos + 1)
			nRight := total - nLeft
			impurity := (nLeft*gini(leftCounts, nLeft) + nRight*gini(rightCounts, nRight)) / total

			if g := parentImpurity - impurity; g > bestGain {
				bestGain = g
				feature = f
				threshold = (v + next) / 2
			}
		}
	}

	if feature < 0 {
		return -1, 0, 0
	}
	return feature, threshold, bestGain
}

func (b *treeBuilder) sampleFeatures() []int {
	nFeatures := len(b.X[0])
	k := b.params.maxFeatures
	if k <= 0 || k > nFeatures {
		k = nFeatures
	}
	perm := b.rng.Perm(nFeatures)
	return perm[:k]
}

func leaf(counts []float64) *treeNode {
	total := 0.0
	for _, c := range counts {
		total += c
	}
	probs := make([]float64, len(counts))
	if total > 0 {
		for i, c := range counts {
			probs[i] = c / total
		}
	}
	return &treeNode{Probs: probs}
}

func gini(counts []float64, total float64) float64 {
	if total <= 0 {
		return 0
	}
	impurity := 1.0
	for _, c := range counts {
		p := c / total
		impurity -= p * p
	}
	return impurity
}

func isPure(counts []float64) bool {
	seen := false
	for _, c := range counts {
		if c > 0 {
			if seen {
				return false
			}
			seen = true
		}
	}
	return true
}

func sqrtFeatures(nFeatures int) int {
	k := int(math.Sqrt(float64(nFeatures)))
	if k < 1 {
		k = 1
	}
	return k
}
