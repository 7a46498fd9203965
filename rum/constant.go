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
	"github.com/samber/lo"
)

// Constant is a constant utility parameter, like an alternative-specific
// constant. Constants are not split on: they are boosted directly with a
// Newton step on the aggregated gradient and hessian.
type Constant struct {
	Name         string
	Value        float32
	LearningRate float32
}

// NewConstant creates a constant parameter with learning rate 1.
func NewConstant(name string, value float32) *Constant {
	return &Constant{
		Name:         name,
		Value:        value,
		LearningRate: 1,
	}
}

// Boost updates the value with one Newton step from the per-row gradients and
// hessians of the loss.
func (c *Constant) Boost(grad, hess []float32) {
	c.Value -= c.LearningRate * lo.Sum(grad) / lo.Sum(hess)
}
