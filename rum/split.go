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
	"github.com/juju/errors"
)

// errNoRumStructure rejects models without a structural descriptor list.
var errNoRumStructure = errors.NotValidf(
	"rum structure is missing: attach a rum structure of 2*numClasses components to the model before splitting")

// subsetModel builds a new model shell from the components of src whose
// position satisfies keep, preserving relative order. NumClasses, Device,
// Nests and Alphas are carried over by reference; no other field is
// populated. The source model is untouched.
func subsetModel(src *RUMBoost, keep func(i int) bool) *RUMBoost {
	dst := &RUMBoost{
		NumClasses: src.NumClasses,
		Device:     src.Device,
		Nests:      src.Nests,
		Alphas:     src.Alphas,
	}
	for i := 0; i < src.NumComponents(); i++ {
		if keep(i) {
			dst.Boosters = append(dst.Boosters, src.Boosters[i])
			dst.RumStructure = append(dst.RumStructure, src.RumStructure[i])
		}
	}
	return dst
}

// SplitFEModel splits a functional effect model into its two parts: the
// attributes model holding the even-indexed components (trip attributes
// without interaction) and the socio-economic model holding the odd-indexed
// components (socio-economic characteristics fully interacting into an
// individual-specific constant).
func SplitFEModel(m *RUMBoost) (attributes, socioEconomic *RUMBoost, err error) {
	if m.RumStructure == nil {
		return nil, nil, errNoRumStructure
	}
	attributes = subsetModel(m, func(i int) bool { return i%2 == 0 })
	socioEconomic = subsetModel(m, func(i int) bool { return i%2 == 1 })
	return attributes, socioEconomic, nil
}
