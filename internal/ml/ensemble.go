package ml

import "sort"

type EnsembleWeights struct {
	Primary   float64 `json:"primary"`
	Secondary float64 `json:"secondary"`
}

func DefaultEnsembleWeights() EnsembleWeights {
	return EnsembleWeights{Primary: 0.6, Secondary: 0.4}
}

// DefaultClassCount sizes the uniform fallback distribution when no model is
// loaded at all.
const DefaultClassCount = 10

type Prediction struct {
	CourseIndex int     `json:"course_index"`
	Confidence  float64 `json:"confidence_score"`
	Rank        int     `json:"rank"`
}

type Info struct {
	PrimaryLoaded   bool            `json:"primary_loaded"`
	SecondaryLoaded bool            `json:"secondary_loaded"`
	Weights         EnsembleWeights `json:"weights"`
	EnsembleActive  bool            `json:"ensemble_active"`
	NumClasses      int             `json:"num_classes"`
}

// Ensemble fuses one or two probabilistic classifiers by weighted averaging.
// It is immutable after construction; reloads publish a whole new instance.
type Ensemble struct {
	primary        Classifier
	secondary      Classifier
	weights        EnsembleWeights
	defaultClasses int
}

func NewEnsemble(primary, secondary Classifier, weights EnsembleWeights, defaultClasses int) *Ensemble {
	if weights.Primary <= 0 && weights.Secondary <= 0 {
		weights = DefaultEnsembleWeights()
	}
	if defaultClasses <= 0 {
		defaultClasses = DefaultClassCount
	}
	if primary != nil && secondary != nil && primary.NumClasses() != secondary.NumClasses() {
		// Mismatched class spaces cannot be averaged index-wise.
		secondary = nil
	}
	return &Ensemble{
		primary:        primary,
		secondary:      secondary,
		weights:        weights,
		defaultClasses: defaultClasses,
	}
}

func (e *Ensemble) Loaded() bool {
	return e != nil && e.primary != nil
}

func (e *Ensemble) Info() Info {
	if e == nil {
		return Info{Weights: DefaultEnsembleWeights(), NumClasses: DefaultClassCount}
	}
	return Info{
		PrimaryLoaded:   e.primary != nil,
		SecondaryLoaded: e.secondary != nil,
		Weights:         e.weights,
		EnsembleActive:  e.primary != nil && e.secondary != nil,
		NumClasses:      e.numClasses(),
	}
}

func (e *Ensemble) numClasses() int {
	if e.primary != nil {
		return e.primary.NumClasses()
	}
	return e.defaultClasses
}

// PredictProba returns the fused class-probability vector. With no loaded
// model it degrades to a uniform distribution rather than failing.
func (e *Ensemble) PredictProba(x []float64) []float64 {
	if !e.Loaded() {
		n := DefaultClassCount
		if e != nil && e.defaultClasses > 0 {
			n = e.defaultClasses
		}
		uniform := make([]float64, n)
		for i := range uniform {
			uniform[i] = 1.0 / float64(n)
		}
		return uniform
	}

	primary := e.primary.PredictProba(x)
	if e.secondary == nil {
		return primary
	}

	secondary := e.secondary.PredictProba(x)
	fused := make([]float64, len(primary))
	for i := range primary {
		fused[i] = primary[i]*e.weights.Primary + secondary[i]*e.weights.Secondary
	}
	return fused
}

// Predict selects up to k class indices whose confidence meets threshold,
// then backfills with the next-highest candidates so the result always has
// min(k, classes) entries, ranked 1-based.
func (e *Ensemble) Predict(x []float64, k int, threshold float64) []Prediction {
	probs := e.PredictProba(x)
	if k <= 0 || len(probs) == 0 {
		return []Prediction{}
	}
	if k > len(probs) {
		k = len(probs)
	}

	order := make([]int, len(probs))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return probs[order[a]] > probs[order[b]]
	})

	selected := make([]int, 0, k)
	taken := make(map[int]bool, k)
	for _, idx := range order {
		if len(selected) == k {
			break
		}
		if probs[idx] >= threshold {
			selected = append(selected, idx)
			taken[idx] = true
		}
	}
	for _, idx := range order {
		if len(selected) == k {
			break
		}
		if !taken[idx] {
			selected = append(selected, idx)
			taken[idx] = true
		}
	}

	out := make([]Prediction, 0, len(selected))
	for rank, idx := range selected {
		out = append(out, Prediction{
			CourseIndex: idx,
			Confidence:  probs[idx],
			Rank:        rank + 1,
		})
	}
	return out
}
