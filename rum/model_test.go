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
	"bytes"
	"testing"

	"github.com/rumboost-io/rumboost/model"
	"github.com/stretchr/testify/assert"
)

// newFEModel builds a functional effect model with two alternatives: for each
// alternative an attribute component followed by a socio-economic component.
func newFEModel() *RUMBoost {
	return &RUMBoost{
		Boosters: []*Booster{
			{Steps: map[string]StepFunction{
				"cost_car": {SplitPoints: []float32{10, 20}, LeafValues: []float32{0, -0.5, -1}},
			}},
			{Steps: map[string]StepFunction{
				"age": {SplitPoints: []float32{40}, LeafValues: []float32{0.2, -0.2}},
			}},
			{Steps: map[string]StepFunction{
				"cost_rail": {SplitPoints: []float32{5}, LeafValues: []float32{0, -0.8}},
			}},
			{Steps: map[string]StepFunction{
				"income": {SplitPoints: []float32{3000}, LeafValues: []float32{-0.1, 0.3}},
			}},
		},
		RumStructure: []Structure{
			{Variables: []string{"cost_car"}, Utility: []int{0}, Params: model.Params{model.MaxDepth: 1}},
			{Variables: []string{"age"}, Utility: []int{0}, Shared: true},
			{Variables: []string{"cost_rail"}, Utility: []int{1}},
			{Variables: []string{"income"}, Utility: []int{1}, Shared: true},
		},
		NumClasses: 2,
		Device:     "cpu",
		Nests:      [][]int{{0}, {1}},
		Alphas:     [][]float32{{1, 0}, {0, 1}},
	}
}

func TestStepFunctionEval(t *testing.T) {
	f := StepFunction{SplitPoints: []float32{10, 20}, LeafValues: []float32{0, -0.5, -1}}
	assert.Equal(t, float32(0), f.Eval(5))
	// a value on a split point falls into the right interval
	assert.Equal(t, float32(-0.5), f.Eval(10))
	assert.Equal(t, float32(-0.5), f.Eval(15))
	assert.Equal(t, float32(-1), f.Eval(20))
	assert.Equal(t, float32(-1), f.Eval(100))
}

func TestUtilities(t *testing.T) {
	m := newFEModel()
	utilities := m.Utilities(map[string]float32{
		"cost_car":  15,
		"age":       30,
		"cost_rail": 4,
		"income":    3500,
	})
	assert.InDeltaSlice(t, []float32{-0.3, 0.3}, utilities, 1e-6)
}

func TestProbabilities(t *testing.T) {
	m := newFEModel()
	features := map[string]float32{
		"cost_car":  15,
		"age":       30,
		"cost_rail": 4,
		"income":    3500,
	}
	probabilities := m.Probabilities(features)
	// softmax over utilities (-0.3, 0.3)
	assert.InDeltaSlice(t, []float32{0.35434368, 0.64565631}, probabilities, 1e-6)
	var sum float32
	for _, p := range probabilities {
		sum += p
	}
	assert.InDelta(t, 1, sum, 1e-6)
}

func TestFeatureMap(t *testing.T) {
	features := FeatureMap([]string{"cost", "time"}, []float32{1.5, 20})
	assert.Equal(t, map[string]float32{"cost": 1.5, "time": 20}, features)
}

func TestNumComponents(t *testing.T) {
	m := newFEModel()
	assert.Equal(t, 4, m.NumComponents())
	m.Boosters = m.Boosters[:3]
	assert.Panics(t, func() { m.NumComponents() })
}

func TestMarshal(t *testing.T) {
	m := newFEModel()
	m.BoostFromParameterSpace = []bool{false, true}
	buf := bytes.NewBuffer(nil)
	assert.NoError(t, m.Marshal(buf))
	read := new(RUMBoost)
	assert.NoError(t, read.Unmarshal(buf))
	assert.Equal(t, m, read)
}

func TestClone(t *testing.T) {
	m := newFEModel()
	copied, err := Clone(m)
	assert.NoError(t, err)
	assert.Equal(t, m, copied)
	// deep copy: mutating the clone leaves the source untouched
	copied.Nests[0][0] = 9
	assert.Equal(t, 0, m.Nests[0][0])
}
