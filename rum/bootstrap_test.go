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
	"testing"

	"github.com/juju/errors"
	"github.com/rumboost-io/rumboost/config"
	"github.com/rumboost-io/rumboost/dataset"
	"github.com/stretchr/testify/assert"
)

// mockTrainer records the resamples it is trained on and returns fresh model
// shells, failing at a chosen iteration if asked to.
type mockTrainer struct {
	trainIndexes [][]int
	validIndexes [][]int
	failAt       int
}

func newMockTrainer() *mockTrainer {
	return &mockTrainer{failAt: -1}
}

func (t *mockTrainer) Train(trainSet *dataset.Dataset, validSets []*dataset.Dataset, spec *config.Specification) (*RUMBoost, error) {
	if t.failAt == len(t.trainIndexes) {
		return nil, errors.New("training diverged")
	}
	t.trainIndexes = append(t.trainIndexes, trainSet.Index())
	if len(validSets) != 1 {
		panic("expect one validation set")
	}
	t.validIndexes = append(t.validIndexes, validSets[0].Index())
	return &RUMBoost{NumClasses: spec.General.NumClasses}, nil
}

func newBootstrapDataset() *dataset.Dataset {
	rows := make([][]float32, 10)
	choices := make([]int, 10)
	for i := range rows {
		rows[i] = []float32{float32(i), float32(10 * i)}
		choices[i] = i % 2
	}
	return dataset.NewDataset([]string{"cost", "time"}, rows, choices)
}

func TestBootstrap(t *testing.T) {
	data := newBootstrapDataset()
	spec := config.GetDefaultSpecification()
	trainer := newMockTrainer()
	models, err := Bootstrap(trainer, data, spec, NewBootstrapConfig().SetNumIterations(3))
	assert.NoError(t, err)
	assert.Len(t, models, 3)
	assert.Len(t, trainer.trainIndexes, 3)

	for it := 0; it < 3; it++ {
		train := trainer.trainIndexes[it]
		valid := trainer.validIndexes[it]
		// resample size equals the dataset size
		assert.Len(t, train, data.Count())
		// the held-out set contains exactly the identifiers never drawn,
		// distinct and in increasing order
		drawn := make(map[int]bool)
		for _, id := range train {
			drawn[id] = true
		}
		assert.True(t, sort.IntsAreSorted(valid))
		seen := make(map[int]bool)
		for _, id := range valid {
			assert.False(t, drawn[id])
			assert.False(t, seen[id])
			seen[id] = true
		}
		for _, id := range data.Index() {
			if !drawn[id] {
				assert.True(t, seen[id])
			}
		}
	}
}

func TestBootstrapDeterminism(t *testing.T) {
	data := newBootstrapDataset()
	spec := config.GetDefaultSpecification()
	first := newMockTrainer()
	_, err := Bootstrap(first, data, spec, NewBootstrapConfig().SetNumIterations(5).SetSeed(42))
	assert.NoError(t, err)
	second := newMockTrainer()
	_, err = Bootstrap(second, data, spec, NewBootstrapConfig().SetNumIterations(5).SetSeed(42))
	assert.NoError(t, err)
	assert.Equal(t, first.trainIndexes, second.trainIndexes)
	assert.Equal(t, first.validIndexes, second.validIndexes)

	other := newMockTrainer()
	_, err = Bootstrap(other, data, spec, NewBootstrapConfig().SetNumIterations(5).SetSeed(7))
	assert.NoError(t, err)
	assert.NotEqual(t, first.trainIndexes, other.trainIndexes)
}

func TestBootstrapDefaultConfig(t *testing.T) {
	config := NewBootstrapConfig()
	assert.Equal(t, 100, config.NumIterations)
	assert.Equal(t, int64(42), config.Seed)
	assert.False(t, config.Verbose)
	assert.Equal(t, config, (*BootstrapConfig)(nil).LoadDefaultIfNil())
}

func TestBootstrapNilConfig(t *testing.T) {
	data := newBootstrapDataset()
	trainer := newMockTrainer()
	models, err := Bootstrap(trainer, data, config.GetDefaultSpecification(), nil)
	assert.NoError(t, err)
	assert.Len(t, models, 100)
}

func TestBootstrapTrainingError(t *testing.T) {
	data := newBootstrapDataset()
	trainer := newMockTrainer()
	trainer.failAt = 2
	models, err := Bootstrap(trainer, data, config.GetDefaultSpecification(), NewBootstrapConfig().SetNumIterations(5))
	assert.ErrorContains(t, err, "training diverged")
	// accumulated models are discarded
	assert.Nil(t, models)
}
