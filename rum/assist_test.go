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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssistModelSpec(t *testing.T) {
	m := newFEModel()
	m.NumClasses = 3
	ascs := AssistModelSpec(m)
	// one placeholder per alternative except the reference alternative
	assert.Len(t, ascs, 2)
	for i := 0; i < 2; i++ {
		name := fmt.Sprintf("asc_%d", i)
		beta := ascs[name]
		assert.NotNil(t, beta)
		assert.Equal(t, name, beta.Name)
		assert.Equal(t, float32(0), beta.Value)
		assert.Nil(t, beta.LowerBound)
		assert.Nil(t, beta.UpperBound)
		assert.Equal(t, BetaEstimated, beta.Status)
	}
}

func TestAssistModelSpecParameterSpace(t *testing.T) {
	m := newFEModel()
	m.BoostFromParameterSpace = []bool{true, false}
	// the weight walk is a stub in both branches: only placeholders come back
	ascs := AssistModelSpec(m)
	assert.Len(t, ascs, m.NumClasses-1)
}

func TestWeightsToPlot(t *testing.T) {
	m := newFEModel()
	weights := WeightsToPlot(m)
	assert.Len(t, weights, 2)
	assert.Equal(t, map[string]TreeInfo{
		"cost_car": {SplitPoints: []float32{10, 20}, LeafValues: []float32{0, -0.5, -1}},
		"age":      {SplitPoints: []float32{40}, LeafValues: []float32{0.2, -0.2}},
	}, weights[0])
	assert.Equal(t, map[string]TreeInfo{
		"cost_rail": {SplitPoints: []float32{5}, LeafValues: []float32{0, -0.8}},
		"income":    {SplitPoints: []float32{3000}, LeafValues: []float32{-0.1, 0.3}},
	}, weights[1])
}

func TestNewBeta(t *testing.T) {
	lower, upper := float32(-1), float32(1)
	beta := NewBeta("b_cost", 0.5, &lower, &upper, BetaFixed)
	assert.Equal(t, "b_cost", beta.Name)
	assert.Equal(t, float32(0.5), beta.Value)
	assert.Equal(t, float32(-1), *beta.LowerBound)
	assert.Equal(t, float32(1), *beta.UpperBound)
	assert.Equal(t, BetaFixed, beta.Status)
}
