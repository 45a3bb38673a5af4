package plagiarism

import "math"

// returns dot(a, b) / (|a| |b|). mismatched lengths, empty or zero vectors
// yield 0 rather than NaN.
func CosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// converts a similarity in [-1, 1] to a percentage with two decimals
func toPercent(similarity float64) float64 {
	return math.Round(similarity*10000) / 100
}
