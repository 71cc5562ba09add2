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

package bench

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/sorting"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// ErrInputMutated is recorded for a trial whose
// sort routine modified the dataset it was given.
var ErrInputMutated = errors.New("bench: sort modified its input")

// State is the phase a Harness is in.
type State int32

const (
	Idle        State = iota // not running
	Configuring              // validating the configuration
	Iterating                // running a sort invocation
	Recording                // turning an invocation into a TrialRecord
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Configuring:
		return "configuring"
	case Iterating:
		return "iterating"
	case Recording:
		return "recording"
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Progress describes the trial that is about to run.
type Progress struct {
	Step, Total int
	Size        int
	Shape       dataset.Shape
	Sample      int
	Algorithm   sorting.Algorithm
	Version     sorting.Version
	Threads     int
}

// SortFunc is the signature of sorting.Sort.
type SortFunc func(a sorting.Algorithm, v sorting.Version, in []int, threads int) ([]int, error)

// Harness runs the experiment matrix described by Config.
//
// A Harness runs one experiment at a time; State
// may be called concurrently with Run.
type Harness struct {
	Config Config

	// Sort, if non-nil, replaces sorting.Sort.
	Sort SortFunc

	// Logf, if non-nil, is used to log
	// the course of a run and trial failures.
	Logf func(f string, args ...interface{})

	// Progress, if non-nil, is called
	// before every sort invocation.
	Progress func(p *Progress)

	state int32
}

// Run is the result of Harness.Run.
type Run struct {
	ID       uuid.UUID
	Config   Config
	Host     HostInfo
	Started  time.Time
	Finished time.Time
	// Planned is the number of trials
	// computed before the run started.
	Planned int
	// Trials holds one record per invocation, in
	// the order the invocations were made.
	Trials []TrialRecord
}

// Counts returns the number of valid and failed trials.
func (r *Run) Counts() (valid, failed int) {
	for i := range r.Trials {
		if r.Trials[i].Failed() {
			failed++
		} else {
			valid++
		}
	}
	return valid, failed
}

func (h *Harness) logf(f string, args ...interface{}) {
	// let `go vet` know this is printf-like
	if false {
		_ = fmt.Sprintf(f, args...)
	}
	if h.Logf != nil {
		h.Logf(f, args...)
	}
}

// State returns the current phase of the harness.
func (h *Harness) State() State {
	return State(atomic.LoadInt32(&h.state))
}

func (h *Harness) setState(s State) {
	atomic.StoreInt32(&h.state, int32(s))
}

// Run executes every trial of the configured experiment.
//
// Failing sort invocations are recorded as failed trials and do
// not stop the run; an invalid configuration or a dataset that
// cannot be generated does.
func (h *Harness) Run() (*Run, error) {
	if !atomic.CompareAndSwapInt32(&h.state, int32(Idle), int32(Configuring)) {
		return nil, fmt.Errorf("bench: harness is %s", h.State())
	}
	defer h.setState(Idle)

	conf := h.Config
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	algs := conf.algorithms()
	threads := conf.Threads()

	run := &Run{
		ID:      uuid.New(),
		Config:  conf,
		Host:    Host(),
		Started: time.Now(),
		Planned: conf.PlannedTrials(),
	}
	run.Trials = make([]TrialRecord, 0, run.Planned)
	h.logf("run %s: sizes %v, types %v, %d samples, threads %v (max %d): %d trials",
		run.ID, conf.Sizes, conf.Types, conf.Samples, threads, conf.MaxThreads, run.Planned)

	gen := dataset.Generator{Seed: conf.Seed}
	p := Progress{Total: run.Planned}
	for _, size := range conf.Sizes {
		p.Size = size
		for _, shape := range conf.Types {
			p.Shape = shape
			h.logf("size %d, type %s", size, shape)
			for sample := 0; sample < conf.Samples; sample++ {
				p.Sample = sample
				data, err := gen.Generate(size, shape)
				if err != nil {
					return nil, fmt.Errorf("bench: generating dataset: %w", err)
				}
				sum := dataset.Fingerprint(data)

				invoke := func(v sorting.Version, n int) {
					p.Step++
					p.Version = v
					p.Threads = n
					rec, mutated := h.trial(&p, data, sum)
					run.Trials = append(run.Trials, rec)
					if mutated {
						// the remaining trials of this
						// sample get a pristine copy
						data, _ = gen.Generate(size, shape)
					}
				}
				for _, alg := range algs {
					p.Algorithm = alg
					invoke(sorting.Serial, 1)
					for _, n := range threads {
						invoke(sorting.Parallel, n)
					}
				}
			}
		}
	}

	run.Finished = time.Now()
	valid, failed := run.Counts()
	h.logf("run %s: %d valid, %d failed trials in %s",
		run.ID, valid, failed, run.Finished.Sub(run.Started).Round(time.Millisecond))
	return run, nil
}

// trial runs and records a single invocation described by p.
// It reports whether the invocation modified data.
func (h *Harness) trial(p *Progress, data []int, sum uint64) (TrialRecord, bool) {
	h.setState(Iterating)
	if h.Progress != nil {
		h.Progress(p)
	}
	out := h.invoke(p.Algorithm, p.Version, data, p.Threads)

	h.setState(Recording)
	rec := TrialRecord{
		Algorithm:   p.Algorithm,
		Version:     p.Version,
		DatasetSize: len(data),
		DatasetType: p.Shape,
		NumThreads:  p.Threads,
		Timestamp:   unixSeconds(time.Now()),
	}
	mutated := dataset.Fingerprint(data) != sum
	if mutated && out.Err == nil {
		out.Err = ErrInputMutated
	}
	if out.Err != nil {
		rec.ExecutionTime = FailedTime
		rec.Error = out.Err.Error()
		h.logf("%s %s (%d threads), %d %s values: %s",
			p.Algorithm, p.Version, p.Threads, len(data), p.Shape, out.Err)
		return rec, mutated
	}
	rec.ExecutionTime = out.Elapsed.Seconds()
	rec.IsSorted = slices.IsSorted(out.Output)
	return rec, mutated
}

// invoke times a single sort invocation.
// Panics are turned into errors.
func (h *Harness) invoke(a sorting.Algorithm, v sorting.Version, data []int, threads int) (o Outcome) {
	sort := h.Sort
	if sort == nil {
		sort = sorting.Sort
	}
	defer func() {
		if r := recover(); r != nil {
			o = Outcome{Err: fmt.Errorf("%s %s panicked: %v", a, v, r)}
		}
	}()

	start := time.Now()
	out, err := sort(a, v, data, threads)
	elapsed := time.Since(start)
	if err != nil {
		return Outcome{Err: err}
	}
	return Outcome{Output: out, Elapsed: elapsed}
}
