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
	"encoding/binary"
	"io"

	"github.com/chewxy/math32"
	"github.com/juju/errors"
	"github.com/rumboost-io/rumboost/base/encoding"
	"github.com/rumboost-io/rumboost/config"
	"github.com/rumboost-io/rumboost/dataset"
	"github.com/rumboost-io/rumboost/model"
)

// Structure describes one utility component of a RUMBoost model: the
// variables its booster splits on, the alternatives whose utility it feeds,
// whether it is a shared (socio-economic interaction) component, and its
// boosting parameters.
type Structure struct {
	Variables []string
	Utility   []int
	Shared    bool
	Params    model.Params
}

// RUMBoost is a trained gradient-boosted random utility model: one booster
// per structural component, plus the scalar configuration shared by all
// components. Boosters and RumStructure are ordered consistently.
//
// In a functional effect model the component list interleaves two roles:
// attribute components at even positions and socio-economic components at odd
// positions, two per alternative.
type RUMBoost struct {
	Boosters     []*Booster
	RumStructure []Structure
	NumClasses   int
	Device       string
	Nests        [][]int
	Alphas       [][]float32

	// BoostFromParameterSpace flags, per alternative, whether boosting
	// happened in parameter space instead of utility space.
	BoostFromParameterSpace []bool
}

// NumComponents returns the number of utility components.
func (m *RUMBoost) NumComponents() int {
	if len(m.Boosters) != len(m.RumStructure) {
		panic("len(m.Boosters) != len(m.RumStructure)")
	}
	return len(m.Boosters)
}

// Utilities evaluates the utility of every alternative at the given variable
// values. Each component's booster output is added to the alternatives listed
// in its structure.
func (m *RUMBoost) Utilities(features map[string]float32) []float32 {
	utilities := make([]float32, m.NumClasses)
	for i := 0; i < m.NumComponents(); i++ {
		value := m.Boosters[i].Eval(features)
		for _, alt := range m.RumStructure[i].Utility {
			utilities[alt] += value
		}
	}
	return utilities
}

// Probabilities evaluates the multinomial logit choice probabilities of every
// alternative at the given variable values. The maximum utility is subtracted
// before exponentiation to keep the softmax numerically stable.
func (m *RUMBoost) Probabilities(features map[string]float32) []float32 {
	utilities := m.Utilities(features)
	maxUtility := utilities[0]
	for _, u := range utilities[1:] {
		maxUtility = math32.Max(maxUtility, u)
	}
	probabilities := make([]float32, len(utilities))
	var sum float32
	for i, u := range utilities {
		probabilities[i] = math32.Exp(u - maxUtility)
		sum += probabilities[i]
	}
	for i := range probabilities {
		probabilities[i] /= sum
	}
	return probabilities
}

// FeatureMap pairs the columns of a dataset row with their values, in the
// form Utilities consumes.
func FeatureMap(columns []string, row []float32) map[string]float32 {
	features := make(map[string]float32, len(columns))
	for i, column := range columns {
		features[column] = row[i]
	}
	return features
}

// Trainer trains one RUMBoost instance from a training set, validation sets
// for monitoring and a model specification. Implementations wrap the
// underlying boosting library; errors propagate to the caller untouched.
type Trainer interface {
	Train(trainSet *dataset.Dataset, validSets []*dataset.Dataset, spec *config.Specification) (*RUMBoost, error)
}

// Marshal writes the model to a byte stream.
func (m *RUMBoost) Marshal(w io.Writer) error {
	if err := encoding.WriteGob(w, m.Boosters); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.WriteGob(w, m.RumStructure); err != nil {
		return errors.Trace(err)
	}
	if err := binary.Write(w, binary.LittleEndian, int32(m.NumClasses)); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.WriteString(w, m.Device); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.WriteGob(w, m.Nests); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.WriteMatrix(w, m.Alphas); err != nil {
		return errors.Trace(err)
	}
	return encoding.WriteGob(w, m.BoostFromParameterSpace)
}

// Unmarshal reads the model from a byte stream.
func (m *RUMBoost) Unmarshal(r io.Reader) error {
	if err := encoding.ReadGob(r, &m.Boosters); err != nil {
		return errors.Trace(err)
	}
	if err := encoding.ReadGob(r, &m.RumStructure); err != nil {
		return errors.Trace(err)
	}
	var numClasses int32
	if err := binary.Read(r, binary.LittleEndian, &numClasses); err != nil {
		return errors.Trace(err)
	}
	m.NumClasses = int(numClasses)
	var err error
	if m.Device, err = encoding.ReadString(r); err != nil {
		return errors.Trace(err)
	}
	if err = encoding.ReadGob(r, &m.Nests); err != nil {
		return errors.Trace(err)
	}
	if m.Alphas, err = encoding.ReadMatrix(r); err != nil {
		return errors.Trace(err)
	}
	return encoding.ReadGob(r, &m.BoostFromParameterSpace)
}

// Clone returns a deep copy of the model via a marshal round trip.
func Clone(m *RUMBoost) (*RUMBoost, error) {
	buf := bytes.NewBuffer(nil)
	if err := m.Marshal(buf); err != nil {
		return nil, errors.Trace(err)
	}
	copied := new(RUMBoost)
	if err := copied.Unmarshal(buf); err != nil {
		return nil, errors.Trace(err)
	}
	return copied, nil
}
