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

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/juju/errors"
	"github.com/rumboost-io/rumboost/base/log"
	"github.com/rumboost-io/rumboost/cmd/version"
	"github.com/rumboost-io/rumboost/rum"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCommand = &cobra.Command{
	Use:   "rumboost",
	Short: "Post-processing toolkit for gradient-boosted random utility models.",
	Run: func(cmd *cobra.Command, args []string) {
		if showVersion, _ := cmd.PersistentFlags().GetBool("version"); showVersion {
			fmt.Println(version.BuildInfo())
			return
		}
		_ = cmd.Help()
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Root().PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.Root().PersistentFlags(), debug)
	},
}

var splitCommand = &cobra.Command{
	Use:   "split MODEL_FILE ATTRIBUTES_FILE SOCIO_ECONOMIC_FILE",
	Short: "Split a functional effect model into its two parts.",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return errors.Trace(err)
		}
		attributes, socioEconomic, err := rum.SplitFEModel(m)
		if err != nil {
			return errors.Trace(err)
		}
		if err = saveModel(args[1], attributes); err != nil {
			return errors.Trace(err)
		}
		if err = saveModel(args[2], socioEconomic); err != nil {
			return errors.Trace(err)
		}
		log.Logger().Info("split functional effect model",
			zap.String("model", args[0]),
			zap.Int("num_components", m.NumComponents()))
		return nil
	},
}

var assistCommand = &cobra.Command{
	Use:   "assist MODEL_FILE",
	Short: "Derive initial parameter placeholders from a trained model.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadModel(args[0])
		if err != nil {
			return errors.Trace(err)
		}
		ascs := rum.AssistModelSpec(m)
		encoded, err := json.MarshalIndent(ascs, "", "  ")
		if err != nil {
			return errors.Trace(err)
		}
		fmt.Println(string(encoded))
		return nil
	},
}

func loadModel(path string) (*rum.RUMBoost, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	m := new(rum.RUMBoost)
	if err = m.Unmarshal(file); err != nil {
		return nil, errors.Trace(err)
	}
	return m, nil
}

func saveModel(path string, m *rum.RUMBoost) error {
	file, err := os.Create(path)
	if err != nil {
		return errors.Trace(err)
	}
	defer file.Close()
	return errors.Trace(m.Marshal(file))
}

func init() {
	rootCommand.PersistentFlags().Bool("debug", false, "use debug log mode")
	rootCommand.PersistentFlags().BoolP("version", "v", false, "rumboost version")
	log.AddFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(splitCommand)
	rootCommand.AddCommand(assistCommand)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
