// Package objective implements the four objective-function variants
// (additive, normalized additive, multiplicative, tuple-based) and the
// deterministic forward-propagation density approximation they all rest
// on.
package objective

import "github.com/nokia/fast/objective/rdfa"

// dfaDensity approximates the probability that a uniformly random
// sequence of the given length, over an alphabet where every symbol has
// probability charProba, is accepted by d. It is a deterministic forward
// mass-propagation pass, run for exactly `length` steps regardless of
// cycles in d — an approximation, not exact string counting.
func dfaDensity(d *rdfa.DFA, length int, charProba float64) float64 {
	mass := make([]float64, d.NumStates())
	mass[0] = 1.0
	for step := 0; step < length; step++ {
		next := make([]float64, d.NumStates())
		for si, m := range mass {
			if m == 0 {
				continue
			}
			for _, ti := range d.Trans[si] {
				next[ti] += m * charProba
			}
		}
		mass = next
	}
	density := 0.0
	for si := 0; si < d.NumStates(); si++ {
		if d.IsFinal(rdfa.StateID(si)) {
			density += mass[si]
		}
	}
	return density
}

// astDensity computes the weighted density of a compiled DFA across every
// length in lenProba, the per-length probability distribution.
func astDensity(d *rdfa.DFA, lenProba map[int]float64, charProba float64) float64 {
	total := 0.0
	for length, p := range lenProba {
		total += dfaDensity(d, length, charProba) * p
	}
	return total
}
