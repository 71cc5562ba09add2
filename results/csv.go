// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Package results persists benchmark trials and
// summaries as CSV files and reads them back.
//
// A run directory holds:
//
//	trials.csv   one row per bench.TrialRecord
//	summary.csv  one row per bench.SummaryRecord
//	run.yaml     the Manifest
//
// The CSV files may be compressed, in which case their
// names end in .zst (zstd) or .s2 (s2).
package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/SnellerInc/sortbench/bench"
	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"
)

var trialColumns = []string{
	"algorithm", "version", "dataset_size", "dataset_type", "num_threads",
	"execution_time", "is_sorted", "timestamp", "error",
}

var summaryColumns = []string{
	"algorithm", "version", "dataset_size", "dataset_type", "num_threads",
	"time_mean", "time_std", "time_min", "time_max", "all_sorted",
}

func formatFloat(f float64) string {
	if math.IsInf(f, 1) {
		return "inf"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// WriteTrials writes trials as CSV with a header row.
// Failed execution times are written as "inf".
func WriteTrials(dst io.Writer, trials []bench.TrialRecord) error {
	w := csv.NewWriter(dst)
	if err := w.Write(trialColumns); err != nil {
		return err
	}
	row := make([]string, len(trialColumns))
	for i := range trials {
		t := &trials[i]
		row[0] = t.Algorithm.String()
		row[1] = t.Version.String()
		row[2] = strconv.Itoa(t.DatasetSize)
		row[3] = t.DatasetType.String()
		row[4] = strconv.Itoa(t.NumThreads)
		row[5] = formatFloat(t.ExecutionTime)
		row[6] = strconv.FormatBool(t.IsSorted)
		row[7] = strconv.FormatFloat(t.Timestamp, 'f', 6, 64)
		row[8] = t.Error
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// WriteSummaries writes summaries as CSV with a header row.
func WriteSummaries(dst io.Writer, summaries []bench.SummaryRecord) error {
	w := csv.NewWriter(dst)
	if err := w.Write(summaryColumns); err != nil {
		return err
	}
	row := make([]string, len(summaryColumns))
	for i := range summaries {
		s := &summaries[i]
		row[0] = s.Algorithm.String()
		row[1] = s.Version.String()
		row[2] = strconv.Itoa(s.DatasetSize)
		row[3] = s.DatasetType.String()
		row[4] = strconv.Itoa(s.NumThreads)
		row[5] = formatFloat(s.TimeMean)
		row[6] = formatFloat(s.TimeStd)
		row[7] = formatFloat(s.TimeMin)
		row[8] = formatFloat(s.TimeMax)
		row[9] = strconv.FormatBool(s.AllSorted)
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

// rowReader reads CSV rows by column name.
type rowReader struct {
	r     *csv.Reader
	index map[string]int
	row   []string
	line  int
	err   error
}

func newRowReader(src io.Reader, required []string) (*rowReader, error) {
	r := csv.NewReader(src)
	r.ReuseRecord = true
	header, err := r.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("results: missing header")
	}
	if err != nil {
		return nil, err
	}
	rr := &rowReader{r: r, index: make(map[string]int), line: 1}
	for i, name := range header {
		rr.index[name] = i
	}
	for _, name := range required {
		if _, ok := rr.index[name]; !ok {
			return nil, fmt.Errorf("results: missing column %q", name)
		}
	}
	r.FieldsPerRecord = len(header)
	return rr, nil
}

func (rr *rowReader) next() bool {
	row, err := rr.r.Read()
	if err == io.EOF {
		return false
	}
	rr.line++
	if err != nil {
		rr.err = err
		return false
	}
	rr.row = row
	return true
}

func (rr *rowReader) str(name string) string {
	i, ok := rr.index[name]
	if !ok {
		return ""
	}
	return rr.row[i]
}

func (rr *rowReader) fail(name string, err error) {
	if rr.err == nil {
		rr.err = fmt.Errorf("results: line %d, column %s: %w", rr.line, name, err)
	}
}

func (rr *rowReader) integer(name string) int {
	v, err := strconv.Atoi(rr.str(name))
	if err != nil {
		rr.fail(name, err)
	}
	return v
}

func (rr *rowReader) number(name string) float64 {
	str := rr.str(name)
	if str == "" {
		// pandas leaves the std of single-trial groups empty
		return 0
	}
	v, err := strconv.ParseFloat(str, 64)
	if err != nil {
		rr.fail(name, err)
	}
	return v
}

func (rr *rowReader) boolean(name string) bool {
	v, err := strconv.ParseBool(rr.str(name))
	if err != nil {
		rr.fail(name, err)
	}
	return v
}

func (rr *rowReader) algorithm() sorting.Algorithm {
	a, err := sorting.ParseAlgorithm(rr.str("algorithm"))
	if err != nil {
		rr.fail("algorithm", err)
	}
	return a
}

func (rr *rowReader) version() sorting.Version {
	v, err := sorting.ParseVersion(rr.str("version"))
	if err != nil {
		rr.fail("version", err)
	}
	return v
}

func (rr *rowReader) shape() dataset.Shape {
	s, err := dataset.ParseShape(rr.str("dataset_type"))
	if err != nil {
		rr.fail("dataset_type", err)
	}
	return s
}

// ReadTrials parses CSV written by WriteTrials.
// The error column may be absent.
func ReadTrials(src io.Reader) ([]bench.TrialRecord, error) {
	rr, err := newRowReader(src, trialColumns[:len(trialColumns)-1])
	if err != nil {
		return nil, err
	}
	var out []bench.TrialRecord
	for rr.next() {
		out = append(out, bench.TrialRecord{
			Algorithm:     rr.algorithm(),
			Version:       rr.version(),
			DatasetSize:   rr.integer("dataset_size"),
			DatasetType:   rr.shape(),
			NumThreads:    rr.integer("num_threads"),
			ExecutionTime: rr.number("execution_time"),
			IsSorted:      rr.boolean("is_sorted"),
			Timestamp:     rr.number("timestamp"),
			Error:         rr.str("error"),
		})
		if rr.err != nil {
			break
		}
	}
	if rr.err != nil {
		return nil, rr.err
	}
	return out, nil
}

// ReadSummaries parses CSV written by WriteSummaries.
func ReadSummaries(src io.Reader) ([]bench.SummaryRecord, error) {
	rr, err := newRowReader(src, summaryColumns)
	if err != nil {
		return nil, err
	}
	var out []bench.SummaryRecord
	for rr.next() {
		out = append(out, bench.SummaryRecord{
			Algorithm:   rr.algorithm(),
			Version:     rr.version(),
			DatasetSize: rr.integer("dataset_size"),
			DatasetType: rr.shape(),
			NumThreads:  rr.integer("num_threads"),
			TimeMean:    rr.number("time_mean"),
			TimeStd:     rr.number("time_std"),
			TimeMin:     rr.number("time_min"),
			TimeMax:     rr.number("time_max"),
			AllSorted:   rr.boolean("all_sorted"),
		})
		if rr.err != nil {
			break
		}
	}
	if rr.err != nil {
		return nil, rr.err
	}
	return out, nil
}
