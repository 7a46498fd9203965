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

package dataset

import (
	"bufio"
	"os"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/samber/lo"
)

// ChoiceColumn is the label column of a choice dataset.
const ChoiceColumn = "choice"

// Dataset is a labeled tabular dataset for training RUM boosters. Each row
// holds the feature values of one choice scenario and the index of the chosen
// alternative. Rows are identified by integer identifiers used for
// resampling.
type Dataset struct {
	columns []string
	rows    [][]float32
	choices []int
	index   []int
}

// NewDataset creates a dataset from feature columns, row values and chosen
// alternatives. Row identifiers are assigned 0..n-1.
func NewDataset(columns []string, rows [][]float32, choices []int) *Dataset {
	return &Dataset{
		columns: columns,
		rows:    rows,
		choices: choices,
		index:   lo.RangeFrom(0, len(rows)),
	}
}

// Count returns the number of rows.
func (d *Dataset) Count() int {
	if len(d.rows) != len(d.choices) {
		panic("len(d.rows) != len(d.choices)")
	}
	if len(d.rows) != len(d.index) {
		panic("len(d.rows) != len(d.index)")
	}
	return len(d.rows)
}

// Columns returns the feature column names, without the choice column.
func (d *Dataset) Columns() []string {
	return d.columns
}

// Index returns the row identifiers.
func (d *Dataset) Index() []int {
	return d.index
}

// Get returns the feature values and the chosen alternative of the i-th row.
func (d *Dataset) Get(i int) ([]float32, int) {
	return d.rows[i], d.choices[i]
}

// Column returns the values of a feature column. The second return value is
// false if the column does not exist.
func (d *Dataset) Column(name string) ([]float32, bool) {
	j := lo.IndexOf(d.columns, name)
	if j < 0 {
		return nil, false
	}
	values := make([]float32, len(d.rows))
	for i, row := range d.rows {
		values[i] = row[j]
	}
	return values, true
}

// Choices returns the chosen alternative of every row.
func (d *Dataset) Choices() []int {
	return d.choices
}

// SubSet returns a new dataset holding the rows with the given identifiers,
// in the given order. Repeated identifiers yield repeated rows. The returned
// dataset keeps the identifiers passed in, so resampled rows stay traceable
// to the source rows.
func (d *Dataset) SubSet(ids []int) *Dataset {
	position := make(map[int]int, len(d.index))
	for i, id := range d.index {
		position[id] = i
	}
	rows := make([][]float32, 0, len(ids))
	choices := make([]int, 0, len(ids))
	for _, id := range ids {
		i, exist := position[id]
		if !exist {
			panic("unknown row identifier")
		}
		rows = append(rows, d.rows[i])
		choices = append(choices, d.choices[i])
	}
	return &Dataset{
		columns: d.columns,
		rows:    rows,
		choices: choices,
		index:   append([]int(nil), ids...),
	}
}

// LoadCSV loads a choice dataset from a headed CSV file. The column named by
// ChoiceColumn becomes the label, every other column becomes a feature.
func LoadCSV(path string) (*Dataset, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer file.Close()
	scanner := bufio.NewScanner(file)
	// read header
	if !scanner.Scan() {
		return nil, errors.NotValidf("empty file %s", path)
	}
	header := strings.Split(strings.TrimSpace(scanner.Text()), ",")
	choiceCol := lo.IndexOf(header, ChoiceColumn)
	if choiceCol < 0 {
		return nil, errors.NotFoundf("column %q in %s", ChoiceColumn, path)
	}
	columns := lo.Filter(header, func(name string, i int) bool {
		return i != choiceCol
	})
	// read rows
	var rows [][]float32
	var choices []int
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(header) {
			return nil, errors.NotValidf("row %d of %s: expect %d fields", len(rows)+1, path, len(header))
		}
		row := make([]float32, 0, len(columns))
		var choice int
		for i, field := range fields {
			if i == choiceCol {
				choice, err = strconv.Atoi(strings.TrimSpace(field))
				if err != nil {
					return nil, errors.Trace(err)
				}
			} else {
				value, err := strconv.ParseFloat(strings.TrimSpace(field), 32)
				if err != nil {
					return nil, errors.Trace(err)
				}
				row = append(row, float32(value))
			}
		}
		rows = append(rows, row)
		choices = append(choices, choice)
	}
	if err = scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	return NewDataset(columns, rows, choices), nil
}
