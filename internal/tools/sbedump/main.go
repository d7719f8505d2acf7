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

// sbedump decodes files of SBE messages using a YAML schema, and prints each
// message as JSON.
//
// A file may hold any number of messages back to back. Settings may also be
// read from a TOML file passed with -config; flags given on the command line
// take precedence over it.
//
//	sbedump -schema car.yaml car.bin
package main

import (
	"bytes"
	"encoding/hex"
	"flag"
	"io"
	"os"
	"runtime"

	"github.com/BurntSushi/toml"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"buf.build/go/sbe"
	"buf.build/go/sbe/internal/sync2"
	"buf.build/go/sbe/ir"
	"buf.build/go/sbe/otf"
)

var logger = level.NewFilter(
	log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr)),
	level.AllowInfo(),
)

var buffers = sync2.Pool[bytes.Buffer]{
	Reset: func(b *bytes.Buffer) { b.Reset() },
}

// Config is the contents of a -config file.
type Config struct {
	Schema  string `toml:"schema"`
	Version int    `toml:"version"` // Negative for the schema's own version.
	Hex     bool   `toml:"hex"`
	// One of "auto", "always" or "never".
	Indent        string `toml:"indent"`
	EnumNumbers   bool   `toml:"enum_numbers"`
	Constants     bool   `toml:"constants"`
	RawTimestamps bool   `toml:"raw_timestamps"`
	Jobs          int    `toml:"jobs"`
}

func defaults() Config {
	return Config{
		Version:   -1,
		Indent:    "auto",
		Constants: true,
		Jobs:      runtime.GOMAXPROCS(0),
	}
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		level.Error(logger).Log("err", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg := defaults()

	fs := flag.NewFlagSet("sbedump", flag.ContinueOnError)
	config := fs.String("config", "", "TOML file to read settings from")
	fs.StringVar(&cfg.Schema, "schema", cfg.Schema, "YAML schema to decode with")
	fs.IntVar(&cfg.Version, "version", cfg.Version, "decode with the schema as of this version")
	fs.BoolVar(&cfg.Hex, "hex", cfg.Hex, "inputs are hex text rather than binary")
	fs.StringVar(&cfg.Indent, "indent", cfg.Indent, "indent output: auto, always or never")
	fs.BoolVar(&cfg.EnumNumbers, "enum-numbers", cfg.EnumNumbers, "print enums as numbers")
	fs.BoolVar(&cfg.Constants, "constants", cfg.Constants, "print constant fields")
	fs.BoolVar(&cfg.RawTimestamps, "raw-timestamps", cfg.RawTimestamps, "print timestamps as numbers")
	fs.IntVar(&cfg.Jobs, "j", cfg.Jobs, "number of files to decode at once")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *config != "" {
		meta, err := toml.DecodeFile(*config, &cfg)
		if err != nil {
			return errors.Wrap(err, "loading config")
		}
		for _, key := range meta.Undecoded() {
			level.Warn(logger).Log("msg", "unknown config key", "file", *config, "key", key.String())
		}
		// Flags given explicitly win over the file.
		if err := fs.Parse(args); err != nil {
			return err
		}
		level.Info(logger).Log("msg", "loaded config", "file", *config, "schema", cfg.Schema)
	}
	if cfg.Schema == "" {
		return errors.New("no -schema given")
	}

	schema, err := ir.LoadFile(cfg.Schema)
	if err != nil {
		return err
	}
	if cfg.Version >= 0 {
		if schema, err = schema.AsOfVersion(uint16(cfg.Version)); err != nil {
			return err
		}
	}

	var indent bool
	switch cfg.Indent {
	case "always":
		indent = true
	case "auto":
		f, ok := stdout.(*os.File)
		indent = ok && term.IsTerminal(int(f.Fd()))
	case "never":
	default:
		return errors.Errorf("invalid -indent %q", cfg.Indent)
	}

	dec := otf.NewDecoder(schema,
		otf.WithEnumNumbers(cfg.EnumNumbers),
		otf.WithConstants(cfg.Constants),
		otf.WithRawTimestamps(cfg.RawTimestamps),
	)

	files := fs.Args()
	out := make([][]byte, len(files))

	var eg errgroup.Group
	eg.SetLimit(max(cfg.Jobs, 1))
	for i, file := range files {
		eg.Go(func() error {
			var err error
			out[i], err = dump(dec, file, cfg.Hex, indent)
			return errors.Wrap(err, file)
		})
	}
	err = eg.Wait()

	// Print whatever succeeded, in order, even if something failed.
	for _, b := range out {
		if _, err := stdout.Write(b); err != nil {
			return err
		}
	}
	return err
}

// dump decodes every message in a file, and returns their JSON renderings,
// one per line.
func dump(dec *otf.Decoder, file string, isHex, indent bool) ([]byte, error) {
	raw, drop := buffers.Get()
	defer drop()

	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if _, err := raw.ReadFrom(f); err != nil {
		return nil, err
	}

	data := raw.Bytes()
	if isHex {
		data = bytes.Join(bytes.Fields(data), nil)
		n, err := hex.Decode(data, data)
		if err != nil {
			return nil, err
		}
		data = data[:n]
	}

	var out []byte
	buf := sbe.NewBuffer(data)
	for offset := 0; offset < len(data); {
		res, err := dec.Decode(buf, offset)
		if err != nil {
			return out, errors.Wrapf(err, "message at offset %d", offset)
		}
		b, err := otf.MarshalJSON(res.Value, indent)
		if err != nil {
			return out, err
		}
		out = append(out, b...)
		out = append(out, '\n')

		level.Debug(logger).Log("msg", "decoded", "file", file, "offset", offset,
			"message", res.Message.Name, "size", res.Size)
		offset += res.Size
	}

	level.Info(logger).Log("msg", "decoded file", "file", file, "bytes", len(data))
	return out, nil
}
