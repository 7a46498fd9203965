// Copyright 2024 rumboost Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package base

import (
	"math/rand"

	mapset "github.com/deckarep/golang-set/v2"
)

// RandomGenerator is the random generator for rumboost. A generator is owned
// by a single logical task: two tasks sharing one generator lose
// reproducibility.
type RandomGenerator struct {
	*rand.Rand
}

// NewRandomGenerator creates a RandomGenerator.
func NewRandomGenerator(seed int64) RandomGenerator {
	return RandomGenerator{rand.New(rand.NewSource(seed))}
}

// Choice draws n identifiers from ids uniformly with replacement.
func (rng RandomGenerator) Choice(ids []int, n int) []int {
	sampled := make([]int, n)
	for i := range sampled {
		sampled[i] = ids[rng.Intn(len(ids))]
	}
	return sampled
}

// Complement returns the identifiers of ids never drawn in sampled,
// preserving the order of ids.
func Complement(ids, sampled []int) []int {
	drawn := mapset.NewThreadUnsafeSet(sampled...)
	rest := make([]int, 0, len(ids))
	for _, id := range ids {
		if !drawn.Contains(id) {
			rest = append(rest, id)
		}
	}
	return rest
}

// NormalVector makes a vec filled with normal random floats.
func (rng RandomGenerator) NormalVector(size int, mean, stdDev float32) []float32 {
	ret := make([]float32, size)
	for i := 0; i < len(ret); i++ {
		ret[i] = float32(rng.NormFloat64())*stdDev + mean
	}
	return ret
}

// UniformVector makes a vec filled with uniform random floats.
func (rng RandomGenerator) UniformVector(size int, low, high float32) []float32 {
	ret := make([]float32, size)
	for i := 0; i < len(ret); i++ {
		ret[i] = rng.Float32()*(high-low) + low
	}
	return ret
}
