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

package rum

import (
	"sort"
)

// StepFunction is the piecewise-constant weight curve a booster has learned
// for one variable. LeafValues holds one value per interval, so
// len(LeafValues) == len(SplitPoints)+1. SplitPoints are ascending.
type StepFunction struct {
	SplitPoints []float32
	LeafValues  []float32
}

// Eval returns the leaf value of the interval containing x. A value equal to
// a split point falls into the right interval.
func (f StepFunction) Eval(x float32) float32 {
	i := sort.Search(len(f.SplitPoints), func(i int) bool { return x < f.SplitPoints[i] })
	return f.LeafValues[i]
}

// Booster is one trained gradient-boosting ensemble corresponding to one
// structural component, collapsed to its per-variable weight curves. The
// training routine producing boosters lives behind the Trainer interface.
type Booster struct {
	Steps map[string]StepFunction
}

// Eval sums the weight curves over the given variable values. Variables the
// booster has no curve for are ignored.
func (b *Booster) Eval(features map[string]float32) float32 {
	var sum float32
	for name, step := range b.Steps {
		if x, exist := features[name]; exist {
			sum += step.Eval(x)
		}
	}
	return sum
}
