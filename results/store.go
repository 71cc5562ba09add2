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

package results

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/SnellerInc/sortbench/bench"

	"golang.org/x/crypto/blake2b"
	"sigs.k8s.io/yaml"
)

const (
	TrialsFile   = "trials.csv"
	SummaryFile  = "summary.csv"
	ManifestFile = "run.yaml"
)

// ErrDigest is returned by Manifest.Verify when a
// file does not match the digest recorded for it.
var ErrDigest = errors.New("results: digest mismatch")

// FileDigest identifies the exact contents of a stored file.
type FileDigest struct {
	Name    string `json:"name"`
	Size    int64  `json:"size"`
	BLAKE2b string `json:"blake2b"`
}

// Manifest describes a stored run.
type Manifest struct {
	ID       string         `json:"id"`
	Started  time.Time      `json:"started"`
	Finished time.Time      `json:"finished"`
	Host     bench.HostInfo `json:"host"`
	Config   bench.Config   `json:"config"`
	Planned  int            `json:"planned_trials"`
	Valid    int            `json:"valid_trials"`
	Failed   int            `json:"failed_trials"`
	Files    []FileDigest   `json:"files"`
}

func newManifest(run *bench.Run) *Manifest {
	valid, failed := run.Counts()
	return &Manifest{
		ID:       run.ID.String(),
		Started:  run.Started,
		Finished: run.Finished,
		Host:     run.Host,
		Config:   run.Config,
		Planned:  run.Planned,
		Valid:    valid,
		Failed:   failed,
	}
}

// Verify checks every file listed in m against
// its digest. dir is the directory holding the files.
func (m *Manifest) Verify(dir string) error {
	for i := range m.Files {
		want := &m.Files[i]
		got, err := digestFile(filepath.Join(dir, want.Name))
		if err != nil {
			return err
		}
		if got.Size != want.Size || got.BLAKE2b != want.BLAKE2b {
			return fmt.Errorf("%w: %s", ErrDigest, want.Name)
		}
	}
	return nil
}

func digestFile(path string) (FileDigest, error) {
	f, err := os.Open(path)
	if err != nil {
		return FileDigest{}, err
	}
	defer f.Close()
	h, _ := blake2b.New256(nil)
	n, err := io.Copy(h, f)
	if err != nil {
		return FileDigest{}, err
	}
	return FileDigest{
		Name:    filepath.Base(path),
		Size:    n,
		BLAKE2b: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// ReadManifest reads the manifest stored in dir.
func ReadManifest(dir string) (*Manifest, error) {
	buf, err := os.ReadFile(filepath.Join(dir, ManifestFile))
	if err != nil {
		return nil, err
	}
	m := new(Manifest)
	if err := yaml.Unmarshal(buf, m); err != nil {
		return nil, fmt.Errorf("results: reading manifest: %w", err)
	}
	return m, nil
}

// Store writes runs into a directory.
type Store struct {
	// Dir is the directory the files are written to.
	// It is created if it does not exist.
	Dir string
	// Compression names the codec the CSV files
	// are compressed with; see Compressions.
	// The empty string selects plain files.
	Compression string
	// Logf, if non-nil, is used to
	// log every file that is written.
	Logf func(f string, args ...interface{})
}

func (s *Store) logf(f string, args ...interface{}) {
	if false {
		_ = fmt.Sprintf(f, args...)
	}
	if s.Logf != nil {
		s.Logf(f, args...)
	}
}

// Save writes the trials of run, the given summaries
// and a manifest describing both.
func (s *Store) Save(run *bench.Run, summaries []bench.SummaryRecord) (*Manifest, error) {
	var c *codec
	if s.Compression != "" {
		var err error
		c, err = codecByName(s.Compression)
		if err != nil {
			return nil, err
		}
	}
	name := func(base string) string {
		if c == nil {
			return base
		}
		return base + c.suffix
	}
	if err := os.MkdirAll(s.Dir, 0750); err != nil {
		return nil, err
	}
	m := newManifest(run)

	d, err := s.write(name(TrialsFile), func(w io.Writer) error {
		return WriteTrials(w, run.Trials)
	})
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, d)

	d, err = s.write(name(SummaryFile), func(w io.Writer) error {
		return WriteSummaries(w, summaries)
	})
	if err != nil {
		return nil, err
	}
	m.Files = append(m.Files, d)

	buf, err := yaml.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("results: encoding manifest: %w", err)
	}
	_, err = s.write(ManifestFile, func(w io.Writer) error {
		_, err := w.Write(buf)
		return err
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// write creates the file name in s.Dir with the contents
// produced by fn and returns the digest of the stored bytes.
// The file only appears under its final name once complete.
func (s *Store) write(name string, fn func(w io.Writer) error) (FileDigest, error) {
	final := filepath.Join(s.Dir, name)
	tmp := final + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return FileDigest{}, err
	}
	h, _ := blake2b.New256(nil)
	cw := &countingWriter{w: io.MultiWriter(f, h)}
	err = encode(cw, codecFor(name), fn)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil {
		err = os.Rename(tmp, final)
	}
	if err != nil {
		os.Remove(tmp)
		return FileDigest{}, fmt.Errorf("results: writing %s: %w", final, err)
	}
	s.logf("wrote %s (%d bytes)", final, cw.n)
	return FileDigest{
		Name:    name,
		Size:    cw.n,
		BLAKE2b: hex.EncodeToString(h.Sum(nil)),
	}, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// open opens base in dir, or the first
// compressed variant of it that exists.
func open(dir, base string) (*os.File, error) {
	path := filepath.Join(dir, base)
	f, err := os.Open(path)
	for i := 0; errors.Is(err, fs.ErrNotExist) && i < len(codecs); i++ {
		f, err = os.Open(path + codecs[i].suffix)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("results: no %s in %s: %w", base, dir, fs.ErrNotExist)
	}
	return f, err
}

// load opens base or a compressed variant in dir and parses it.
func load(dir, base string, parse func(r io.Reader) error) error {
	f, err := open(dir, base)
	if err != nil {
		return err
	}
	defer f.Close()
	path := f.Name()
	r, err := decoder(f, codecFor(path))
	if err != nil {
		return err
	}
	defer r.Close()
	if err := parse(r); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadTrials reads the trials stored in dir.
func LoadTrials(dir string) ([]bench.TrialRecord, error) {
	var out []bench.TrialRecord
	err := load(dir, TrialsFile, func(r io.Reader) (err error) {
		out, err = ReadTrials(r)
		return err
	})
	return out, err
}

// LoadSummaries reads the summaries stored in dir.
func LoadSummaries(dir string) ([]bench.SummaryRecord, error) {
	var out []bench.SummaryRecord
	err := load(dir, SummaryFile, func(r io.Reader) (err error) {
		out, err = ReadSummaries(r)
		return err
	})
	return out, err
}
