// internal/metrics/types.go
package metrics

import "math"

// Snapshot summarizes the answers recorded during a session.
type Snapshot struct {
	Queries        int64       `json:"queries"`
	UrgentQueries  int64       `json:"urgent_queries"`
	FailedAnswers  int64       `json:"failed_answers"`
	ResponseTime   RunningStat `json:"response_seconds"`
	SourcesPerHit  RunningStat `json:"sources"`
	GenerationTime RunningStat `json:"generation_seconds"`
}

// RunningStat holds the necessary values for online calculation of mean, variance, and stddev.
type RunningStat struct {
	Count int64   `json:"count"`
	Mean  float64 `json:"mean"`
	M2    float64 `json:"-"` // Sum of squares of differences from the current mean
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

// StdDev returns the sample standard deviation, or zero with fewer than two values.
func (rs RunningStat) StdDev() float64 {
	if rs.Count < 2 {
		return 0
	}
	return math.Sqrt(rs.M2 / float64(rs.Count-1))
}

// updateRunningStat updates a single running statistic using Welford's online algorithm.
func updateRunningStat(rs *RunningStat, value float64) {
	rs.Count++
	if rs.Count == 1 {
		rs.Min = value
		rs.Max = value
	} else {
		if value < rs.Min {
			rs.Min = value
		}
		if value > rs.Max {
			rs.Max = value
		}
	}

	delta := value - rs.Mean
	rs.Mean += delta / float64(rs.Count)
	delta2 := value - rs.Mean
	rs.M2 += delta * delta2
}
