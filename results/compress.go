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
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/s2"
	"github.com/klauspost/compress/zstd"
)

// codec is a streaming compression format.
// Compressed files carry the codec suffix.
type codec struct {
	name   string
	suffix string
	writer func(w io.Writer) (io.WriteCloser, error)
	reader func(r io.Reader) (io.ReadCloser, error)
}

type nopReadCloser struct {
	io.Reader
}

func (nopReadCloser) Close() error { return nil }

var codecs = []codec{
	{
		name:   "zstd",
		suffix: ".zst",
		writer: func(w io.Writer) (io.WriteCloser, error) {
			return zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		},
		reader: func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r, zstd.WithDecoderConcurrency(1))
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		},
	},
	{
		name:   "s2",
		suffix: ".s2",
		writer: func(w io.Writer) (io.WriteCloser, error) {
			return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
		},
		reader: func(r io.Reader) (io.ReadCloser, error) {
			return nopReadCloser{s2.NewReader(r)}, nil
		},
	},
}

// Compressions lists the accepted values of Store.Compression
// apart from the empty string.
func Compressions() []string {
	out := make([]string, len(codecs))
	for i := range codecs {
		out[i] = codecs[i].name
	}
	return out
}

func codecByName(name string) (*codec, error) {
	for i := range codecs {
		if codecs[i].name == name {
			return &codecs[i], nil
		}
	}
	return nil, fmt.Errorf("results: unknown compression %q", name)
}

// codecFor returns the codec of the file
// at path, or nil if it is not compressed.
func codecFor(path string) *codec {
	for i := range codecs {
		if strings.HasSuffix(path, codecs[i].suffix) {
			return &codecs[i]
		}
	}
	return nil
}

// encode runs fn on w, through the encoder of c if it is not nil.
func encode(w io.Writer, c *codec, fn func(w io.Writer) error) error {
	if c == nil {
		return fn(w)
	}
	enc, err := c.writer(w)
	if err != nil {
		return err
	}
	if err := fn(enc); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// decoder returns a reader of the decompressed contents of r.
func decoder(r io.Reader, c *codec) (io.ReadCloser, error) {
	if c == nil {
		return nopReadCloser{r}, nil
	}
	return c.reader(r)
}
