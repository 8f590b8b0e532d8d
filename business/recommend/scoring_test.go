package recommend

import (
	"math"
	"testing"

	"myTerpMarket/domain"
)

func TestTerpeneSimilarityBounds(t *testing.T) {
	pairs := []struct {
		name      string
		target    domain.TerpeneProfile
		candidate domain.TerpeneProfile
	}{
		{"identical", domain.TerpeneProfile{"myrcene": 0.8, "limonene": 0.3}, domain.TerpeneProfile{"myrcene": 0.8, "limonene": 0.3}},
		{"divergent", domain.TerpeneProfile{"myrcene": 1.0}, domain.TerpeneProfile{"myrcene": 0.01}},
		{"partial overlap", domain.TerpeneProfile{"myrcene": 0.5, "pinene": 0.7}, domain.TerpeneProfile{"myrcene": 0.2, "linalool": 0.9}},
		{"no overlap", domain.TerpeneProfile{"myrcene": 0.5}, domain.TerpeneProfile{"limonene": 0.5}},
		{"unclamped values", domain.TerpeneProfile{"myrcene": 3.0}, domain.TerpeneProfile{"myrcene": 0.1}},
	}

	for _, p := range pairs {
		got := TerpeneSimilarity(p.target, p.candidate)
		if got < 0 || got > 1 || math.IsNaN(got) {
			t.Errorf("%s: similarity %v out of [0,1]", p.name, got)
		}
	}
}

func TestTerpeneSimilarityIdentity(t *testing.T) {
	a := domain.TerpeneProfile{"myrcene": 0.8, "limonene": 0.4, "pinene": 0.2}
	if got := TerpeneSimilarity(a, a); got != 1 {
		t.Errorf("similarity(a,a) = %v, want 1", got)
	}
}

func TestTerpeneSimilarityEmpty(t *testing.T) {
	nonEmpty := domain.TerpeneProfile{"myrcene": 0.5}

	if got := TerpeneSimilarity(domain.TerpeneProfile{}, nonEmpty); got != 0 {
		t.Errorf("similarity({}, x) = %v, want 0", got)
	}
	if got := TerpeneSimilarity(nonEmpty, domain.TerpeneProfile{}); got != 0 {
		t.Errorf("similarity(x, {}) = %v, want 0", got)
	}
	if got := TerpeneSimilarity(nil, nil); got != 0 {
		t.Errorf("similarity(nil, nil) = %v, want 0", got)
	}
}

func TestTerpeneSimilarityNoOverlap(t *testing.T) {
	a := domain.TerpeneProfile{"myrcene": 0.8}
	b := domain.TerpeneProfile{"limonene": 0.8}

	if got := TerpeneSimilarity(a, b); got != 0 {
		t.Errorf("similarity with no shared terpenes = %v, want 0", got)
	}
}

func TestTerpeneSimilaritySharedZero(t *testing.T) {
	// Shared zero-intensity terpenes carry no signal and must not divide by
	// zero or count toward the average.
	a := domain.TerpeneProfile{"myrcene": 0.0, "limonene": 0.5}
	b := domain.TerpeneProfile{"myrcene": 0.0, "limonene": 0.5}

	got := TerpeneSimilarity(a, b)
	if math.IsNaN(got) {
		t.Fatal("similarity is NaN on shared-zero terpene")
	}
	if got != 1 {
		t.Errorf("similarity = %v, want 1 (only the limonene pair counts)", got)
	}

	// All shared keys zero: nothing to average, so no claimed similarity.
	z := domain.TerpeneProfile{"myrcene": 0.0}
	if got := TerpeneSimilarity(z, z); got != 0 {
		t.Errorf("all-zero shared profile similarity = %v, want 0", got)
	}
}

func TestTerpeneSimilarityOrdering(t *testing.T) {
	target := domain.TerpeneProfile{"myrcene": 0.8, "linalool": 0.7}
	close := domain.TerpeneProfile{"myrcene": 0.75}
	far := domain.TerpeneProfile{"myrcene": 0.1}

	if TerpeneSimilarity(target, close) <= TerpeneSimilarity(target, far) {
		t.Error("closer profile should score higher")
	}
}

func TestInventoryScoreBreakpoints(t *testing.T) {
	cases := []struct {
		level int
		want  float64
	}{
		{-5, 0}, {0, 0},
		{1, 0.3}, {2, 0.3},
		{3, 0.7}, {9, 0.7},
		{10, 1.0}, {1000, 1.0},
	}

	for _, c := range cases {
		if got := InventoryScore(c.level); got != c.want {
			t.Errorf("InventoryScore(%d) = %v, want %v", c.level, got, c.want)
		}
	}
}

func TestInventoryScoreMonotonic(t *testing.T) {
	prev := InventoryScore(0)
	for level := 1; level <= 50; level++ {
		got := InventoryScore(level)
		if got < prev {
			t.Fatalf("InventoryScore not non-decreasing at level %d: %v < %v", level, got, prev)
		}
		prev = got
	}
}
