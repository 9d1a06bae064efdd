package main

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"

	"github.com/signadot/reserde/compress"
	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/rewrite"
)

// ConfigEnv names the environment variable holding the path of a yaml
// file with option defaults.
const ConfigEnv = "RESERDE_CONFIG"

// Defaults are option values read from the file named by $RESERDE_CONFIG.
// Command line options override them.
type Defaults struct {
	In        string   `yaml:"in"`
	Out       string   `yaml:"out"`
	Pretty    bool     `yaml:"pretty"`
	EnumBools bool     `yaml:"enum-bools"`
	Stringify []string `yaml:"stringify"`
	Compress  string   `yaml:"compress"`
	Color     bool     `yaml:"color"`
	XMLRoot   string   `yaml:"xml-root"`
	MaxDepth  int      `yaml:"max-depth"`
}

func readDefaults(path string) (*Defaults, error) {
	d, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res := &Defaults{}
	if err := yaml.UnmarshalWithOptions(d, res, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return res, nil
}

// apply sets the options of cfg from d. It is called before the command
// line is parsed.
func (d *Defaults) apply(cfg *MainConfig) error {
	if d.In != "" {
		f, err := format.ParseFormat(d.In)
		if err != nil {
			return err
		}
		cfg.InFormat = &f
	}
	if d.Out != "" {
		f, err := format.ParseFormat(d.Out)
		if err != nil {
			return err
		}
		cfg.OutFormat = &f
	}
	if d.Compress != "" {
		c, err := compress.ParseCodec(d.Compress)
		if err != nil {
			return err
		}
		cfg.Compress = &c
	}
	for _, s := range d.Stringify {
		e, err := rewrite.ParseEncoding(s)
		if err != nil {
			return err
		}
		cfg.Encodings = append(cfg.Encodings, e)
	}
	cfg.Pretty = d.Pretty
	cfg.EnumBools = d.EnumBools
	cfg.Color = d.Color
	cfg.XMLRoot = d.XMLRoot
	cfg.MaxDepth = d.MaxDepth
	return nil
}
