// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Program jrdump parses JSON documents and prints their structure.
//
// Usage:
//
//	jrdump [flags] [file ...]
//
// With no files, jrdump reads standard input. By default it prints one line
// for each parser event. With -format json or -format yaml it prints the
// value tree instead, and with -path it prints the values selected by a
// JSONPath expression.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/creachadair/jreader"
	"github.com/creachadair/jreader/tree"
	"github.com/goccy/go-yaml"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/tailscale/hujson"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("jrdump: ")
	if err := run(os.Args[1:], os.Stdin, os.Stdout); errors.Is(err, flag.ErrHelp) {
		os.Exit(2)
	} else if err != nil {
		log.Fatal(err)
	}
}

// settings are the options that control how jrdump parses and prints.
// Each may be set by a flag or by the configuration file.
type settings struct {
	Format            string `yaml:"format"`
	Path              string `yaml:"path"`
	JWCC              bool   `yaml:"jwcc"`
	TrailingCommas    bool   `yaml:"trailing-commas"`
	Strict            bool   `yaml:"strict"`
	MaxDepth          int    `yaml:"max-depth"`
	CombineSurrogates bool   `yaml:"combine-surrogates"`
}

// loadConfig reads settings from the YAML file at path into s.
func loadConfig(path string, s *settings) error {
	f, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	defer f.Close()
	if err := yaml.NewDecoder(f, yaml.DisallowUnknownField()).Decode(s); err != nil {
		return errors.Wrapf(err, "config %q", path)
	}
	return nil
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	var flags settings
	var configPath string
	fs := flag.NewFlagSet("jrdump", flag.ContinueOnError)
	fs.StringVar(&flags.Format, "format", "events", "Output format (events, json, yaml)")
	fs.StringVar(&flags.Path, "path", "", "Print values selected by this JSONPath expression")
	fs.BoolVar(&flags.JWCC, "jwcc", false, "Accept JSON with commas and comments")
	fs.BoolVar(&flags.TrailingCommas, "trailing-commas", false, "Allow trailing commas in arrays")
	fs.BoolVar(&flags.Strict, "strict", false, "Reject trailing commas in objects and arrays")
	fs.IntVar(&flags.MaxDepth, "max-depth", 0, "Maximum nesting depth (0 is unlimited)")
	fs.BoolVar(&flags.CombineSurrogates, "combine-surrogates", false, "Decode escaped surrogate pairs as one code point")
	fs.StringVar(&configPath, "config", "", "Read default settings from this YAML file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// Flags given explicitly on the command line override the config file.
	s := flags
	if configPath != "" {
		if err := loadConfig(configPath, &s); err != nil {
			return err
		}
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "format":
				s.Format = flags.Format
			case "path":
				s.Path = flags.Path
			case "jwcc":
				s.JWCC = flags.JWCC
			case "trailing-commas":
				s.TrailingCommas = flags.TrailingCommas
			case "strict":
				s.Strict = flags.Strict
			case "max-depth":
				s.MaxDepth = flags.MaxDepth
			case "combine-surrogates":
				s.CombineSurrogates = flags.CombineSurrogates
			}
		})
	}
	switch s.Format {
	case "events", "json", "yaml":
	default:
		return errors.Errorf("unknown output format %q", s.Format)
	}

	if fs.NArg() == 0 {
		return s.dump(stdin, stdout)
	}
	for _, path := range fs.Args() {
		if err := s.dumpFile(path, stdout); err != nil {
			return err
		}
	}
	return nil
}

func (s settings) dumpFile(path string, w io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := s.dump(f, w); err != nil {
		return errors.Wrap(err, path)
	}
	return nil
}

// dump parses a single document from r and writes its rendering to w.
func (s settings) dump(r io.Reader, w io.Writer) error {
	if s.JWCC {
		data, err := io.ReadAll(r)
		if err != nil {
			return errors.Wrap(err, "read input")
		}
		std, err := hujson.Standardize(data)
		if err != nil {
			return errors.Wrap(err, "standardize input")
		}
		r = bytes.NewReader(std)
	}

	if s.Format == "events" && s.Path == "" {
		return s.dumpEvents(r, w)
	}
	v, err := tree.Parse(r, s.options()...)
	if errors.Is(err, tree.ErrEmpty) {
		return nil
	} else if err != nil {
		return err
	}
	if s.Path != "" {
		sel, err := tree.Select(v, s.Path)
		if err != nil {
			return err
		}
		v = sel
	}
	if s.Format == "yaml" {
		out, err := yaml.Marshal(yamlValue(v))
		if err != nil {
			return errors.Wrap(err, "encode YAML")
		}
		_, err = w.Write(out)
		return err
	}
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.Marshal(v)
	if err != nil {
		return errors.Wrap(err, "encode JSON")
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, out, "", "  "); err != nil {
		return errors.Wrap(err, "indent JSON")
	}
	buf.WriteByte('\n')
	_, err = buf.WriteTo(w)
	return err
}

func (s settings) dumpEvents(r io.Reader, w io.Writer) error {
	p := jreader.NewParser(r)
	s.configure(p)
	for ev, err := range p.Events() {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, ev); err != nil {
			return err
		}
	}
	return nil
}

func (s settings) configure(p *jreader.Parser) {
	for _, opt := range s.options() {
		opt(p)
	}
}

func (s settings) options() []tree.Option {
	return []tree.Option{
		tree.AllowTrailingCommas(s.TrailingCommas),
		tree.Strict(s.Strict),
		tree.MaxDepth(s.MaxDepth),
		tree.CombineSurrogates(s.CombineSurrogates),
	}
}

// yamlValue converts numbers in v to Go numeric types so that the YAML
// encoder renders them as numbers rather than strings.
func yamlValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n
		} else if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = yamlValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = yamlValue(e)
		}
		return out
	default:
		return v
	}
}
