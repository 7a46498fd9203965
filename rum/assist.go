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
)

// Beta status values, matching the convention of parametric estimation
// toolkits: a fixed parameter keeps its initial value during estimation.
const (
	BetaEstimated = 0
	BetaFixed     = 1
)

// Beta is a named scalar parameter placeholder for a parametric
// choice-modeling toolkit: an initial value, optional bounds and an
// estimation status.
type Beta struct {
	Name       string
	Value      float32
	LowerBound *float32
	UpperBound *float32
	Status     int
}

// NewBeta declares a named parameter. Nil bounds leave the parameter
// unbounded on that side.
func NewBeta(name string, value float32, lowerBound, upperBound *float32, status int) *Beta {
	return &Beta{
		Name:       name,
		Value:      value,
		LowerBound: lowerBound,
		UpperBound: upperBound,
		Status:     status,
	}
}

// TreeInfo is the learned weight curve of one variable in one alternative's
// utility: the split points of the boosted trees and the accumulated leaf
// value of each interval.
type TreeInfo struct {
	SplitPoints []float32
	LeafValues  []float32
}

// WeightsToPlot collects the learned weight curves of a trained model as a
// mapping from alternative index to variable name to curve. Each variable is
// expected to be boosted by a single component per alternative.
func WeightsToPlot(m *RUMBoost) map[int]map[string]TreeInfo {
	weights := make(map[int]map[string]TreeInfo)
	for i := 0; i < m.NumComponents(); i++ {
		for _, alt := range m.RumStructure[i].Utility {
			if _, exist := weights[alt]; !exist {
				weights[alt] = make(map[string]TreeInfo)
			}
			for name, step := range m.Boosters[i].Steps {
				weights[alt][name] = TreeInfo{
					SplitPoints: step.SplitPoints,
					LeafValues:  step.LeafValues,
				}
			}
		}
	}
	return weights
}

// AssistModelSpec derives an initial parametric model specification from a
// trained model: one alternative-specific constant placeholder per
// alternative except the last, which stays fixed for identifiability.
//
// The walk over the learned weight curves is a structural stub: deriving
// piecewise-linear terms from the curves is not implemented yet, so no
// committed result is produced beyond the placeholder mapping.
func AssistModelSpec(m *RUMBoost) map[string]*Beta {
	ascs := make(map[string]*Beta, m.NumClasses-1)
	for i := 0; i < m.NumClasses-1; i++ {
		name := fmt.Sprintf("asc_%d", i)
		ascs[name] = NewBeta(name, 0, nil, nil, BetaEstimated)
	}
	weights := WeightsToPlot(m)
	for alt, curves := range weights {
		for range curves {
			if alt < len(m.BoostFromParameterSpace) && m.BoostFromParameterSpace[alt] {
				// piecewise-linear terms for parameter-space boosters
				// are not derived yet
			} else {
				// piecewise-linear terms for utility-space boosters
				// are not derived yet
			}
		}
	}
	return ascs
}
