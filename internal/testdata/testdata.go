// Copyright 2025 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package testdata is the corpus of schemas and encoded messages used to test
// on-the-fly decoding.
//
// Every file under cases/ is a [TestCase] naming a schema under schemas/,
// one or more specimens, and the value they must decode to.
package testdata

import (
	"bytes"
	"embed"
	"encoding/hex"
	"io/fs"
	"path"
	runtimedebug "runtime/debug"
	"strings"
	"testing"

	"github.com/protocolbuffers/protoscope"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
	"gopkg.in/yaml.v3"

	"buf.build/go/sbe/internal/debug"
	"buf.build/go/sbe/internal/prototest"
	"buf.build/go/sbe/internal/xsync"
	"buf.build/go/sbe/ir"
	"buf.build/go/sbe/otf"
)

//go:embed schemas cases
var testdata embed.FS

var schemas xsync.Map[string, *ir.Schema]

// Harness is a generalization of [testing.TB] that also includes the
// [testing.T.Run] method. It must be generic because the signature of this
// function varies across [testing.T] and [testing.B].
type Harness[T any] interface {
	testing.TB
	Run(string, func(T)) bool
}

// TestCase is a test case from the corpus.
type TestCase struct {
	Name string `yaml:"-"`

	SchemaName string     `yaml:"schema"`
	Schema     *ir.Schema `yaml:"-"`
	// If set, decode with the schema as of this version.
	Version *uint16 `yaml:"version"`

	// Two ways to write a specimen: hex, and protoscope.
	Hex        []string `yaml:"hex"`
	Protoscope []string `yaml:"protoscope"`

	// The expected decoding, as JSON; or, a substring of the expected error.
	JSON  string `yaml:"json"`
	Error string `yaml:"error"`
	// The expected number of bytes consumed, if not the whole specimen.
	Size int `yaml:"size"`

	Specimens [][]byte       `yaml:"-"`
	Expect    *structpb.Struct `yaml:"-"`
}

// SchemaBytes returns the text of schemas/<name>.yaml.
func SchemaBytes(name string) ([]byte, error) {
	return fs.ReadFile(testdata, path.Join("schemas", name+".yaml"))
}

// Schema returns the schema in schemas/<name>.yaml.
func Schema(name string) (*ir.Schema, error) {
	if s, ok := schemas.Load(name); ok {
		return s, nil
	}

	data, err := SchemaBytes(name)
	if err != nil {
		return nil, err
	}
	s, err := ir.Parse(data)
	if err != nil {
		return nil, err
	}
	actual, _ := schemas.LoadOrStore(name, func() *ir.Schema { return s })
	return actual, nil
}

// RunAll runs all of the test cases against the given harness.
func RunAll[T Harness[T]](t T, f func(T, *TestCase)) {
	t.Helper()

	err := fs.WalkDir(testdata, "cases", func(file string, d fs.DirEntry, err error) error {
		require.NoError(t, err, "loading test %q", file)

		if d.IsDir() || path.Ext(file) != ".yaml" {
			return nil
		}

		t.Run(strings.TrimPrefix(file, "cases/"), func(t T) {
			if t, ok := any(t).(*testing.T); ok {
				t.Parallel()
			}

			data, err := fs.ReadFile(testdata, file)
			require.NoError(t, err, "loading test %q", file)

			f(t, parseTestCase(t, file, data))
		})

		return nil
	})
	require.NoError(t, err)
}

// Case loads the test case in cases/<name>.yaml.
func Case(t testing.TB, name string) *TestCase {
	t.Helper()

	file := path.Join("cases", name+".yaml")
	data, err := fs.ReadFile(testdata, file)
	require.NoError(t, err, "loading test %q", file)
	return parseTestCase(t, file, data)
}

// Run decodes every specimen of a test case and checks the result.
func (test *TestCase) Run(t *testing.T, verbose bool, opts ...otf.Option) {
	t.Helper()

	run := func(t *testing.T, specimen []byte) {
		t.Helper()

		runtimedebug.SetPanicOnFault(true)
		defer debug.WithTesting(t)()

		res, err := otf.Decode(test.Schema, specimen, opts...)
		if test.Error != "" {
			require.ErrorContains(t, err, test.Error)
			return
		}
		require.NoError(t, err)

		if verbose {
			b, _ := otf.MarshalJSON(res.Value, true)
			t.Logf("%s: %s", res.Message.Name, b)
		}

		prototest.Equal(t, test.Expect, res.Value)
		size := test.Size
		if size == 0 {
			size = len(specimen)
		}
		require.Equal(t, size, res.Size, "bytes consumed")
	}

	if len(test.Specimens) == 1 {
		run(t, test.Specimens[0])
		return
	}

	for _, specimen := range test.Specimens {
		t.Run("", func(t *testing.T) {
			t.Parallel()
			run(t, specimen)
		})
	}
}

// parseTestCase parses a single test case from the given data.
//
// This will call t.FailNow() if loading fails.
func parseTestCase(t testing.TB, file string, data []byte) *TestCase {
	t.Helper()
	defer debug.WithTesting(t)()

	require.True(t, bytes.HasSuffix(data, []byte("\n")), "missing trailing newline in %q", file)

	test := new(TestCase)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	err := dec.Decode(&test)
	require.NoError(t, err, "loading test %q", file)

	test.Name = strings.TrimPrefix(file, "cases/")
	test.Schema, err = Schema(test.SchemaName)
	require.NoError(t, err, "loading schema %q", test.SchemaName)
	if test.Version != nil {
		test.Schema, err = test.Schema.AsOfVersion(*test.Version)
		require.NoError(t, err, "loading schema %q at version %d", test.SchemaName, *test.Version)
	}

	require.True(t, (test.JSON == "") != (test.Error == ""), "%q needs exactly one of json or error", file)
	if test.JSON != "" {
		test.Expect = new(structpb.Struct)
		err = protojson.Unmarshal([]byte(test.JSON), test.Expect)
		require.NoError(t, err, "loading test %q", file)
	}

	for _, raw := range test.Hex {
		r := strings.NewReplacer(" ", "", "\t", "", "\n", "", "\r", "")
		b, err := hex.DecodeString(r.Replace(raw))
		require.NoError(t, err, "loading test %q", file)

		test.Specimens = append(test.Specimens, b)
	}

	for _, raw := range test.Protoscope {
		s := protoscope.NewScanner(raw)
		b, err := s.Exec()
		require.NoError(t, err, "loading test %q", file)

		test.Specimens = append(test.Specimens, b)
	}

	require.NotEmpty(t, test.Specimens, "%q has no specimens", file)
	return test
}
