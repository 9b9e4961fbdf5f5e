package statistics

import (
	"fmt"
	"math"
	"sort"
)

// MatchResult is the outcome of one match from player one's seat.
type MatchResult struct {
	Seed     int64 // RNG seed for this match (for replay)
	Rounds   int   // Rounds played
	P1Points int
	P2Points int
	Winner   int  // 1 or 2, 0 when nobody reached the target
	Forfeit  bool // Loser overspent dynamite
	P1Dyn    int  // Dynamite thrown by player one
	P2Dyn    int  // Dynamite thrown by player two
}

// Margin is player one's points minus player two's.
func (r MatchResult) Margin() float64 {
	return float64(r.P1Points - r.P2Points)
}

// Statistics aggregates match results for player one.
type Statistics struct {
	Matches int
	SumPts  float64
	SumPts2 float64   // Sum of squares for variance calculation
	Values  []float64 // Store all margins for median/percentile calculation

	P1Wins     int
	P2Wins     int
	Unfinished int // Hit the round cap without a winner
	Forfeits   int

	Rounds       int
	DynamiteUsed [2]int
}

// Mean returns the average point margin per match
func (s *Statistics) Mean() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.SumPts / float64(s.Matches)
}

// Variance returns the sample variance of the margins
func (s *Statistics) Variance() float64 {
	if s.Matches < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumPts2 - float64(s.Matches)*mean*mean) / float64(s.Matches-1)
}

// StdDev returns the sample standard deviation of the margins
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Matches == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Matches))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean margin
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// WinRate returns player one's share of decided matches.
func (s *Statistics) WinRate() float64 {
	decided := s.P1Wins + s.P2Wins
	if decided == 0 {
		return 0
	}
	return float64(s.P1Wins) / float64(decided)
}

// Add incorporates a new match result
func (s *Statistics) Add(result MatchResult) {
	margin := result.Margin()
	s.Matches++
	s.SumPts += margin
	s.SumPts2 += margin * margin
	s.Values = append(s.Values, margin)

	switch result.Winner {
	case 1:
		s.P1Wins++
	case 2:
		s.P2Wins++
	default:
		s.Unfinished++
	}
	if result.Forfeit {
		s.Forfeits++
	}

	s.Rounds += result.Rounds
	s.DynamiteUsed[0] += result.P1Dyn
	s.DynamiteUsed[1] += result.P2Dyn
}

// Median returns the median margin
func (s *Statistics) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile returns the margin at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

// Validate checks that the counters agree with each other
func (s *Statistics) Validate() error {
	if s.Matches <= 0 {
		return fmt.Errorf("invalid match count: %d", s.Matches)
	}
	if len(s.Values) != s.Matches {
		return fmt.Errorf("values array length (%d) does not match match count (%d)",
			len(s.Values), s.Matches)
	}
	if total := s.P1Wins + s.P2Wins + s.Unfinished; total != s.Matches {
		return fmt.Errorf("outcomes (%d) do not add up to matches (%d)", total, s.Matches)
	}
	if s.Forfeits > s.P1Wins+s.P2Wins {
		return fmt.Errorf("forfeits (%d) exceed decided matches (%d)", s.Forfeits, s.P1Wins+s.P2Wins)
	}
	return nil
}
