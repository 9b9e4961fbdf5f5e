package statistics

import (
	"math"
	"testing"
)

func TestStatistics_Empty(t *testing.T) {
	stats := &Statistics{}

	if stats.Mean() != 0 {
		t.Errorf("Expected mean of 0 for empty stats, got %f", stats.Mean())
	}
	if stats.Variance() != 0 {
		t.Errorf("Expected variance of 0 for empty stats, got %f", stats.Variance())
	}
	if stats.StdError() != 0 {
		t.Errorf("Expected stderr of 0 for empty stats, got %f", stats.StdError())
	}
	if stats.Median() != 0 {
		t.Errorf("Expected median of 0 for empty stats, got %f", stats.Median())
	}
	if stats.WinRate() != 0 {
		t.Errorf("Expected win rate of 0 for empty stats, got %f", stats.WinRate())
	}
	if err := stats.Validate(); err == nil {
		t.Error("Expected validation error for empty stats")
	}
}

func TestStatistics_MultipleMatches(t *testing.T) {
	stats := &Statistics{}
	results := []MatchResult{
		{Rounds: 1500, P1Points: 1000, P2Points: 800, Winner: 1, P1Dyn: 100, P2Dyn: 40},
		{Rounds: 1700, P1Points: 900, P2Points: 1000, Winner: 2, P1Dyn: 100, P2Dyn: 100},
		{Rounds: 2500, P1Points: 950, P2Points: 950, Winner: 0},
		{Rounds: 400, P1Points: 300, P2Points: 200, Winner: 1, Forfeit: true, P2Dyn: 101},
	}
	for _, r := range results {
		stats.Add(r)
	}

	if stats.Matches != 4 {
		t.Fatalf("Expected 4 matches, got %d", stats.Matches)
	}
	// Margins: 200, -100, 0, 100
	if math.Abs(stats.Mean()-50) > 1e-9 {
		t.Errorf("Expected mean 50, got %f", stats.Mean())
	}
	if math.Abs(stats.Median()-50) > 1e-9 {
		t.Errorf("Expected median 50, got %f", stats.Median())
	}
	if stats.P1Wins != 2 || stats.P2Wins != 1 || stats.Unfinished != 1 {
		t.Errorf("Unexpected outcome counts: %+v", stats)
	}
	if math.Abs(stats.WinRate()-2.0/3.0) > 1e-9 {
		t.Errorf("Expected win rate 2/3, got %f", stats.WinRate())
	}
	if stats.Forfeits != 1 {
		t.Errorf("Expected 1 forfeit, got %d", stats.Forfeits)
	}
	if stats.Rounds != 6100 {
		t.Errorf("Expected 6100 rounds, got %d", stats.Rounds)
	}
	if stats.DynamiteUsed != [2]int{200, 241} {
		t.Errorf("Unexpected dynamite totals %v", stats.DynamiteUsed)
	}

	low, high := stats.ConfidenceInterval95()
	if low > stats.Mean() || high < stats.Mean() {
		t.Errorf("CI [%f, %f] doesn't contain mean %f", low, high, stats.Mean())
	}
	if err := stats.Validate(); err != nil {
		t.Errorf("Unexpected validation error: %v", err)
	}
}

func TestStatistics_Percentile(t *testing.T) {
	stats := &Statistics{}
	for _, pts := range []int{10, 20, 30, 40, 50} {
		stats.Add(MatchResult{P1Points: pts, Winner: 1})
	}
	if got := stats.Percentile(0); got != 10 {
		t.Errorf("Expected p0 of 10, got %f", got)
	}
	if got := stats.Percentile(1); got != 50 {
		t.Errorf("Expected p100 of 50, got %f", got)
	}
	if got := stats.Percentile(0.25); got != 20 {
		t.Errorf("Expected p25 of 20, got %f", got)
	}
}
