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

package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/juju/errors"
	"github.com/rumboost-io/rumboost/model"
	"github.com/spf13/viper"
)

// Specification describes how to train one RUMBoost instance. It is reused
// unmodified across all bootstrap iterations.
type Specification struct {
	General      GeneralParams   `mapstructure:"general"`
	RumStructure []ComponentSpec `mapstructure:"rum_structure" validate:"min=1,dive"`
	Nests        [][]int         `mapstructure:"nests"`
	Alphas       [][]float32     `mapstructure:"alphas"`
}

// GeneralParams are the parameters shared by all utility components.
type GeneralParams struct {
	NumClasses          int    `mapstructure:"num_classes" validate:"gt=1"`
	Device              string `mapstructure:"device" validate:"oneof=cpu cuda"`
	NumBoostRound       int    `mapstructure:"num_boost_round" validate:"gt=0"`
	EarlyStoppingRounds int    `mapstructure:"early_stopping_rounds" validate:"gte=0"`
}

// ComponentSpec describes one utility component: the variables it boosts on,
// the alternatives whose utility it feeds and its boosting parameters.
type ComponentSpec struct {
	Variables      []string               `mapstructure:"variables" validate:"min=1"`
	Utility        []int                  `mapstructure:"utility" validate:"min=1"`
	Shared         bool                   `mapstructure:"shared"`
	BoostingParams map[string]interface{} `mapstructure:"boosting_params"`
}

// lightGBM-style keys accepted in boosting_params.
var paramNames = map[string]model.ParamName{
	"learning_rate":       model.LearningRate,
	"num_boost_round":     model.NumBoostRound,
	"max_depth":           model.MaxDepth,
	"num_leaves":          model.NumLeaves,
	"min_data_in_leaf":    model.MinDataInLeaf,
	"lambda_l2":           model.LambdaL2,
	"bagging_fraction":    model.BaggingFraction,
	"monotone_constraint": model.MonotoneConstraint,
	"random_state":        model.RandomState,
}

// Params converts the component's boosting parameters to model.Params.
// Unknown keys are dropped.
func (c *ComponentSpec) Params() model.Params {
	params := make(model.Params)
	for key, value := range c.BoostingParams {
		if name, exist := paramNames[key]; exist {
			params[name] = value
		}
	}
	return params
}

// GetDefaultSpecification returns a specification with default general
// parameters and an empty structure.
func GetDefaultSpecification() *Specification {
	return &Specification{
		General: GeneralParams{
			NumClasses:          2,
			Device:              "cpu",
			NumBoostRound:       100,
			EarlyStoppingRounds: 0,
		},
	}
}

func setDefault(v *viper.Viper) {
	v.SetDefault("general.num_classes", 2)
	v.SetDefault("general.device", "cpu")
	v.SetDefault("general.num_boost_round", 100)
	v.SetDefault("general.early_stopping_rounds", 0)
}

// LoadSpecification loads a model specification from a TOML file.
func LoadSpecification(path string) (*Specification, error) {
	v := viper.New()
	setDefault(v)
	v.SetConfigType("toml")
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Trace(err)
	}
	var spec Specification
	if err := v.Unmarshal(&spec); err != nil {
		return nil, errors.Trace(err)
	}
	if err := spec.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	return &spec, nil
}

// Validate checks the specification for structural errors.
func (s *Specification) Validate() error {
	validate := validator.New()
	if err := validate.Struct(s); err != nil {
		return errors.Trace(err)
	}
	for i, component := range s.RumStructure {
		for _, alt := range component.Utility {
			if alt < 0 || alt >= s.General.NumClasses {
				return errors.NotValidf("utility index %d of component %d: must be in [0, %d)",
					alt, i, s.General.NumClasses)
			}
		}
	}
	for _, nest := range s.Nests {
		for _, alt := range nest {
			if alt < 0 || alt >= s.General.NumClasses {
				return errors.NotValidf("nested alternative %d: must be in [0, %d)",
					alt, s.General.NumClasses)
			}
		}
	}
	return nil
}
