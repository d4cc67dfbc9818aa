// Package species turns per-class species percentages into a selection
// distribution and draws species from it.
package species

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"

	"gonum.org/v1/gonum/floats"
)

// ErrNoSpecies is returned when a distribution is built from an empty map.
var ErrNoSpecies = errors.New("species: empty species set")

// Policy decides how zero percentages are treated.
type Policy int

const (
	// SplitRemainder keeps every positive percentage and splits
	// 100 minus their sum evenly among the species set to 0.
	SplitRemainder Policy = iota
	// ExplicitOnly drops species set to 0 and normalizes the rest. It falls
	// back to a uniform distribution only when every percentage is 0.
	ExplicitOnly
)

// ParsePolicy maps a config name to a Policy.
func ParsePolicy(name string) (Policy, error) {
	switch name {
	case "", "split_remainder":
		return SplitRemainder, nil
	case "explicit_only":
		return ExplicitOnly, nil
	}
	return 0, fmt.Errorf("species: unknown policy %q", name)
}

func (p Policy) String() string {
	if p == ExplicitOnly {
		return "explicit_only"
	}
	return "split_remainder"
}

// Distribution is a selection probability per species name.
// Names and Probs are parallel; Probs are non-negative and sum to 1.
type Distribution struct {
	Names []string
	Probs []float64
	cum   []float64
}

// NewDistribution builds a distribution from a species percentage map.
// Names are ordered alphabetically so that draws are reproducible for a
// given random source.
func NewDistribution(percent map[string]int, policy Policy) (*Distribution, error) {
	if len(percent) == 0 {
		return nil, ErrNoSpecies
	}
	names := make([]string, 0, len(percent))
	for name := range percent {
		names = append(names, name)
	}
	sort.Strings(names)

	weights := make([]float64, len(names))
	switch policy {
	case ExplicitOnly:
		explicitWeights(names, percent, weights)
	default:
		splitWeights(names, percent, weights)
	}

	total := floats.Sum(weights)
	if total <= 0 {
		for i := range weights {
			weights[i] = 1
		}
		total = float64(len(weights))
	}
	floats.Scale(1/total, weights)

	d := &Distribution{Names: names, Probs: weights}
	d.cum = floats.CumSum(make([]float64, len(weights)), weights)
	return d, nil
}

func splitWeights(names []string, percent map[string]int, weights []float64) {
	explicit := 0
	implicit := 0
	for i, name := range names {
		p := percent[name]
		if p > 0 {
			weights[i] = float64(p)
			explicit += p
		} else {
			implicit++
		}
	}
	if implicit == 0 {
		return
	}
	remainder := max(100-explicit, 0)
	share := float64(remainder) / float64(implicit)
	for i, name := range names {
		if percent[name] <= 0 {
			weights[i] = share
		}
	}
}

func explicitWeights(names []string, percent map[string]int, weights []float64) {
	for i, name := range names {
		if p := percent[name]; p > 0 {
			weights[i] = float64(p)
		}
	}
}

// Prob returns the selection probability of name, 0 if unknown.
func (d *Distribution) Prob(name string) float64 {
	for i, n := range d.Names {
		if n == name {
			return d.Probs[i]
		}
	}
	return 0
}

// Pick draws one species name using a single uniform variate from rng.
// Zero-probability species are never returned.
func (d *Distribution) Pick(rng *rand.Rand) string {
	n := len(d.cum)
	u := rng.Float64() * d.cum[n-1]
	i := sort.Search(n, func(i int) bool { return d.cum[i] > u })
	if i == n {
		i = n - 1
	}
	return d.Names[i]
}
