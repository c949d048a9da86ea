// Package sampling centralizes every random draw behind a seeded source so that a
// generation run is reproducible from its seed alone.
package sampling

import (
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws from the distributions used by the generators.
// A Sampler is not safe for concurrent use; each run owns one.
type Sampler struct {
	src  rand.Source
	rng  *rand.Rand
	seed uint64
}

// New returns a sampler seeded deterministically from seed
func New(seed uint64) *Sampler {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &Sampler{
		src:  src,
		rng:  rand.New(src),
		seed: seed,
	}
}

// Seed returns the seed the sampler was created with
func (s *Sampler) Seed() uint64 {
	return s.seed
}

// Normal draws from N(mu, sigma²)
func (s *Sampler) Normal(mu, sigma float64) float64 {
	return distuv.Normal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}

// LogNormal draws exp(X) with X ~ N(mu, sigma²)
func (s *Sampler) LogNormal(mu, sigma float64) float64 {
	return distuv.LogNormal{Mu: mu, Sigma: sigma, Src: s.src}.Rand()
}

// Uniform draws from [min, max)
func (s *Sampler) Uniform(min, max float64) float64 {
	return distuv.Uniform{Min: min, Max: max, Src: s.src}.Rand()
}

// Beta draws from Beta(alpha, beta)
func (s *Sampler) Beta(alpha, beta float64) float64 {
	return distuv.Beta{Alpha: alpha, Beta: beta, Src: s.src}.Rand()
}

// Exponential draws from an exponential distribution with the given mean
func (s *Sampler) Exponential(mean float64) float64 {
	return distuv.Exponential{Rate: 1 / mean, Src: s.src}.Rand()
}

// Bernoulli returns true with probability p
func (s *Sampler) Bernoulli(p float64) bool {
	return distuv.Bernoulli{P: p, Src: s.src}.Rand() == 1
}

// IntRange draws an integer uniformly from [lo, hi] inclusive
func (s *Sampler) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.IntN(hi-lo+1)
}

// Index draws an index uniformly from [0, n). n must be positive.
func (s *Sampler) Index(n int) int {
	return s.rng.IntN(n)
}

// Choice picks one element of items uniformly
func Choice[T any](s *Sampler, items []T) T {
	return items[s.Index(len(items))]
}
