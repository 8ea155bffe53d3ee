// Package config loads the optional classver YAML configuration file.
//
// A config file only supplies defaults: any flag set on the command line wins
// over the corresponding file value. log_level is one of warn (the default),
// debug or trace, matching zero, one or two -v flags.
//
//	# .classver.yaml
//	max: 11
//	log_level: debug
//	keep_going: true
//	unpack: false
//	temp_dir: /var/tmp
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dendrascience/classver/internal/logging"
)

// DefaultFile is looked up in the working directory when no --config flag is
// given. A missing default file is not an error.
const DefaultFile = ".classver.yaml"

// File is the on-disk layout.
type File struct {
	Max       *int   `yaml:"max"`
	LogLevel  string `yaml:"log_level"`
	KeepGoing *bool  `yaml:"keep_going"`
	Unpack    *bool  `yaml:"unpack"`
	TempDir   string `yaml:"temp_dir"`
}

// Config is the resolved configuration for a check run.
type Config struct {
	// Max is the highest allowed Java release; nil means no ceiling.
	Max       *int
	Verbosity int
	KeepGoing bool
	Unpack    bool
	TempDir   string
}

// Parse decodes a config file. Unknown keys are rejected.
func Parse(r io.Reader) (File, error) {
	var f File
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return File{}, err
	}
	if f.Max != nil && *f.Max < 0 {
		return File{}, fmt.Errorf("max: must not be negative, got %d", *f.Max)
	}
	if _, ok := logging.ParseLevel(f.LogLevel); !ok {
		return File{}, fmt.Errorf("log_level: unknown level %q", f.LogLevel)
	}
	return f, nil
}

// Load reads the config file at path. When path is empty DefaultFile is
// tried and silently skipped if it does not exist.
func Load(path string) (File, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}
	b, err := os.ReadFile(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		return File{}, nil
	default:
		return File{}, err
	}
	f, err := Parse(bytes.NewReader(b))
	if err != nil {
		return File{}, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Resolve turns the file into a Config. Verbosity from the file is a floor.
func (f File) Resolve() Config {
	v, _ := logging.ParseLevel(f.LogLevel)
	c := Config{
		Max:       f.Max,
		Verbosity: v,
		TempDir:   f.TempDir,
	}
	if f.KeepGoing != nil {
		c.KeepGoing = *f.KeepGoing
	}
	if f.Unpack != nil {
		c.Unpack = *f.Unpack
	}
	return c
}
