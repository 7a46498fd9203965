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

	"github.com/juju/errors"
	"github.com/rumboost-io/rumboost/base"
	"github.com/rumboost-io/rumboost/base/log"
	"github.com/rumboost-io/rumboost/config"
	"github.com/rumboost-io/rumboost/dataset"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
)

// BootstrapConfig holds the options of a bootstrap session.
type BootstrapConfig struct {
	NumIterations int
	Seed          int64
	Verbose       bool
}

// NewBootstrapConfig creates a config with default options.
func NewBootstrapConfig() *BootstrapConfig {
	return &BootstrapConfig{
		NumIterations: 100,
		Seed:          42,
	}
}

func (config *BootstrapConfig) SetNumIterations(numIterations int) *BootstrapConfig {
	config.NumIterations = numIterations
	return config
}

func (config *BootstrapConfig) SetSeed(seed int64) *BootstrapConfig {
	config.Seed = seed
	return config
}

func (config *BootstrapConfig) SetVerbose(verbose bool) *BootstrapConfig {
	config.Verbose = verbose
	return config
}

func (config *BootstrapConfig) LoadDefaultIfNil() *BootstrapConfig {
	if config == nil {
		return NewBootstrapConfig()
	}
	return config
}

// Bootstrap estimates the sampling variability of trained models by repeated
// resampling: each iteration draws a resample of row identifiers with
// replacement (size equal to the dataset), trains a fresh model on it with
// the given specification, and validates on the rows never drawn. The trained
// models are returned in iteration order.
//
// A single generator seeded from cfg.Seed drives all iterations, so the full
// sequence of resamples is deterministic given the seed, while individual
// iterations are not independently reproducible. The generator is owned by
// this call: concurrent bootstrap sessions need separate configs.
//
// The first training error aborts the session and discards the models
// accumulated so far.
func Bootstrap(trainer Trainer, data *dataset.Dataset, spec *config.Specification, cfg *BootstrapConfig) ([]*RUMBoost, error) {
	cfg = cfg.LoadDefaultIfNil()
	rng := base.NewRandomGenerator(cfg.Seed)
	n := data.Count()
	log.Logger().Info("bootstrap",
		zap.Int("num_rows", n),
		zap.Int("num_iterations", cfg.NumIterations),
		zap.Int64("seed", cfg.Seed))
	var bar *progressbar.ProgressBar
	if cfg.Verbose {
		bar = progressbar.Default(int64(cfg.NumIterations), "bootstrap")
	}
	models := make([]*RUMBoost, 0, cfg.NumIterations)
	for it := 0; it < cfg.NumIterations; it++ {
		ids := rng.Choice(data.Index(), n)
		rest := base.Complement(data.Index(), ids)
		sort.Ints(rest)
		trainSet := data.SubSet(ids)
		validSet := data.SubSet(rest)
		m, err := trainer.Train(trainSet, []*dataset.Dataset{validSet}, spec)
		if err != nil {
			return nil, errors.Trace(err)
		}
		models = append(models, m)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return models, nil
}
