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

package main

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/SnellerInc/sortbench/bench"
	"github.com/SnellerInc/sortbench/dataset"
	"github.com/SnellerInc/sortbench/report"
	"github.com/SnellerInc/sortbench/results"
	"github.com/SnellerInc/sortbench/sorting"
)

var (
	dashv       bool
	dashh       bool
	dashr       bool
	dashc       string
	dashz       string
	dasho       string
	dashsamples int
	dashthreads int
	dashseed    int64
	dashsizes   intList
	dashtypes   shapeList
	dashalgs    algorithmList
)

func init() {
	flag.BoolVar(&dashv, "v", false, "verbose")
	flag.BoolVar(&dashh, "h", false, "show usage help")
	flag.StringVar(&dashz, "z", "", "compress CSV files ("+strings.Join(results.Compressions(), ", ")+")")
	flag.BoolVar(&dashr, "r", false, "print the console report after a run")
	flag.StringVar(&dashc, "c", "", "configuration file (.yaml or .json)")
	flag.StringVar(&dasho, "o", "", "output directory for run (default: results/<run id>), output file for summarize (default: stdout)")
	flag.IntVar(&dashsamples, "samples", 0, "samples per dataset size and type (overrides config)")
	flag.IntVar(&dashthreads, "max-threads", 0, "maximum thread count (overrides config)")
	flag.Int64Var(&dashseed, "seed", 0, "dataset generator seed (overrides config)")
	flag.Var(&dashsizes, "sizes", "comma-separated dataset sizes (overrides config)")
	flag.Var(&dashtypes, "types", "comma-separated dataset types (overrides config)")
	flag.Var(&dashalgs, "algorithms", "comma-separated algorithms (overrides config)")
}

type intList []int

func (l *intList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i, n := range *l {
		s[i] = strconv.Itoa(n)
	}
	return strings.Join(s, ",")
}

func (l *intList) Set(v string) error {
	*l = (*l)[:0]
	for _, f := range strings.Split(v, ",") {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, n)
	}
	return nil
}

type shapeList []dataset.Shape

func (l *shapeList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i := range *l {
		s[i] = (*l)[i].String()
	}
	return strings.Join(s, ",")
}

func (l *shapeList) Set(v string) error {
	*l = (*l)[:0]
	for _, f := range strings.Split(v, ",") {
		s, err := dataset.ParseShape(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, s)
	}
	return nil
}

type algorithmList []sorting.Algorithm

func (l *algorithmList) String() string {
	if l == nil {
		return ""
	}
	s := make([]string, len(*l))
	for i := range *l {
		s[i] = (*l)[i].String()
	}
	return strings.Join(s, ",")
}

func (l *algorithmList) Set(v string) error {
	*l = (*l)[:0]
	for _, f := range strings.Split(v, ",") {
		a, err := sorting.ParseAlgorithm(strings.TrimSpace(f))
		if err != nil {
			return err
		}
		*l = append(*l, a)
	}
	return nil
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func logf(f string, args ...interface{}) {
	if f[len(f)-1] != '\n' {
		f += "\n"
	}
	fmt.Fprintf(os.Stderr, f, args...)
}

// config returns the configuration from -c,
// or the default one, with flag overrides applied.
func config() *bench.Config {
	conf := bench.DefaultConfig()
	if dashc != "" {
		f, err := os.Open(dashc)
		if err != nil {
			exitf("%s\n", err)
		}
		c, err := bench.DecodeConfig(f)
		f.Close()
		if err != nil {
			exitf("%s: %s\n", dashc, err)
		}
		conf = *c
	}
	if len(dashsizes) > 0 {
		conf.Sizes = dashsizes
	}
	if len(dashtypes) > 0 {
		conf.Types = dashtypes
	}
	if len(dashalgs) > 0 {
		conf.Algorithms = dashalgs
	}
	if dashsamples != 0 {
		conf.Samples = dashsamples
	}
	if dashthreads != 0 {
		conf.MaxThreads = dashthreads
	}
	if dashseed != 0 {
		conf.Seed = dashseed
	}
	return &conf
}

func progress(p *bench.Progress) {
	if p.Version == sorting.Serial {
		fmt.Printf("[%d/%d] %s %s...\n", p.Step, p.Total, p.Algorithm, p.Version)
		return
	}
	fmt.Printf("[%d/%d] %s %s (%d threads)...\n", p.Step, p.Total, p.Algorithm, p.Version, p.Threads)
}

// entry point for 'sortbench run'
func run() {
	h := bench.Harness{
		Config:   *config(),
		Progress: progress,
	}
	if dashv {
		h.Logf = logf
	}
	r, err := h.Run()
	if err != nil {
		exitf("run: %s\n", err)
	}
	dir := dasho
	if dir == "" {
		dir = filepath.Join("results", r.ID.String())
	}
	s := results.Store{Dir: dir, Compression: dashz}
	if dashv {
		s.Logf = logf
	}
	m, err := s.Save(r, bench.Summarize(r.Trials))
	if err != nil {
		exitf("saving results: %s\n", err)
	}
	fmt.Printf("%d valid trials, %d failed; results in %s\n", m.Valid, m.Failed, dir)
	if dashr {
		if err := report.All(os.Stdout, r.Trials); err != nil {
			exitf("report: %s\n", err)
		}
	}
}

// verify checks dir against its manifest, if it has one.
func verify(dir string) {
	m, err := results.ReadManifest(dir)
	if errors.Is(err, fs.ErrNotExist) {
		if dashv {
			logf("%s has no manifest", dir)
		}
		return
	}
	if err != nil {
		exitf("%s\n", err)
	}
	if err := m.Verify(dir); err != nil {
		exitf("verifying %s: %s\n", dir, err)
	}
	if dashv {
		logf("run %s: %d files verified", m.ID, len(m.Files))
	}
}

func loadTrials(dir string) []bench.TrialRecord {
	trials, err := results.LoadTrials(dir)
	if err != nil {
		exitf("loading trials: %s\n", err)
	}
	return trials
}

// entry point for 'sortbench summarize <dir>'
func summarize(dir string) {
	verify(dir)
	sums := bench.Summarize(loadTrials(dir))
	out := os.Stdout
	if dasho != "" {
		f, err := os.Create(dasho)
		if err != nil {
			exitf("%s\n", err)
		}
		defer f.Close()
		out = f
	}
	if err := results.WriteSummaries(out, sums); err != nil {
		exitf("writing summary: %s\n", err)
	}
}

// entry point for 'sortbench report <dir>'
func printReport(dir string) {
	verify(dir)
	if err := report.All(os.Stdout, loadTrials(dir)); err != nil {
		exitf("report: %s\n", err)
	}
}

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) == 0 || dashh {
		fmt.Fprintf(os.Stderr, "usage:\n")
		fmt.Fprintf(os.Stderr, "    %s [-c <config>] [-o <dir>] [-z <codec>] [-r] run\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        run the benchmark and store the results\n")
		fmt.Fprintf(os.Stderr, "    %s [-o <file>] summarize <dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        recompute the summary of a stored run\n")
		fmt.Fprintf(os.Stderr, "    %s report <dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        print the analyses of a stored run\n")
		fmt.Fprintf(os.Stderr, "    %s verify <dir>\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "        check a stored run against its manifest\n")
		fmt.Fprintf(os.Stderr, "    %s version\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "flag usage:\n")
		flag.Usage()
		os.Exit(1)
	}

	switch args[0] {
	case "run":
		if len(args) != 1 {
			exitf("usage: run\n")
		}
		run()
	case "summarize":
		if len(args) != 2 {
			exitf("usage: summarize <dir>\n")
		}
		summarize(args[1])
	case "report":
		if len(args) != 2 {
			exitf("usage: report <dir>\n")
		}
		printReport(args[1])
	case "verify":
		if len(args) != 2 {
			exitf("usage: verify <dir>\n")
		}
		dashv = true
		verify(args[1])
	case "version":
		v, ok := version()
		if !ok {
			v = "unknown"
		}
		fmt.Println(v)
	default:
		exitf("commands: run, summarize, report, verify, version\n")
	}
}
