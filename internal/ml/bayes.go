package ml

import "math"

// NaiveBayes is a gaussian naive bayes classifier used as the ensemble's
// secondary model. It trains fast and fails independently of the forest.
type NaiveBayes struct {
	NClasses  int         `json:"n_classes"`
	NFeatures int         `json:"n_features"`
	LogPriors []float64   `json:"log_priors"`
	Means     [][]float64 `json:"means"`
	Variances [][]float64 `json:"variances"`
}

const varianceSmoothing = 1e-9

func FitNaiveBayes(X [][]float64, y []int, nClasses int) *NaiveBayes {
	nFeatures := 0
	if len(X) > 0 {
		nFeatures = len(X[0])
	}

	nb := &NaiveBayes{
		NClasses:  nClasses,
		NFeatures: nFeatures,
		LogPriors: make([]float64, nClasses),
		Means:     make([][]float64, nClasses),
		Variances: make([][]float64, nClasses),
	}

	counts := make([]float64, nClasses)
	for c := 0; c < nClasses; c++ {
		nb.Means[c] = make([]float64, nFeatures)
		nb.Variances[c] = make([]float64, nFeatures)
	}

	for i, row := range X {
		c := y[i]
		counts[c]++
		for j, v := range row {
			nb.Means[c][j] += v
		}
	}
	for c := 0; c < nClasses; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := range nb.Means[c] {
			nb.Means[c][j] /= counts[c]
		}
	}

	// Largest overall feature variance scales the smoothing floor.
	maxVar := 0.0
	for i, row := range X {
		c := y[i]
		for j, v := range row {
			d := v - nb.Means[c][j]
			nb.Variances[c][j] += d * d
		}
	}
	for c := 0; c < nClasses; c++ {
		if counts[c] == 0 {
			continue
		}
		for j := range nb.Variances[c] {
			nb.Variances[c][j] /= counts[c]
			if nb.Variances[c][j] > maxVar {
				maxVar = nb.Variances[c][j]
			}
		}
	}

	floor := varianceSmoothing * math.Max(maxVar, 1)
	total := float64(len(X))
	for c := 0; c < nClasses; c++ {
		if counts[c] > 0 {
			nb.LogPriors[c] = math.Log(counts[c] / total)
		} else {
			nb.LogPriors[c] = math.Inf(-1)
		}
		for j := range nb.Variances[c] {
			if nb.Variances[c][j] < floor {
				nb.Variances[c][j] = floor
			}
		}
	}

	return nb
}

func (nb *NaiveBayes) PredictProba(x []float64) []float64 {
	logProbs := make([]float64, nb.NClasses)
	maxLog := math.Inf(-1)
	for c := 0; c < nb.NClasses; c++ {
		lp := nb.LogPriors[c]
		for j, v := range x {
			if j >= nb.NFeatures {
				break
			}
			variance := nb.Variances[c][j]
			d := v - nb.Means[c][j]
			lp += -0.5*math.Log(2*math.Pi*variance) - d*d/(2*variance)
		}
		logProbs[c] = lp
		if lp > maxLog {
			maxLog = lp
		}
	}

	// Softmax in log space for numeric stability.
	probs := make([]float64, nb.NClasses)
	total := 0.0
	for c, lp := range logProbs {
		if math.IsInf(lp, -1) {
			continue
		}
		probs[c] = math.Exp(lp - maxLog)
		total += probs[c]
	}
	if total > 0 {
		for c := range probs {
			probs[c] /= total
		}
	}
	return probs
}

func (nb *NaiveBayes) NumClasses() int {
	return nb.NClasses
}
