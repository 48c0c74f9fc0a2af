package main

import (
	"io/ioutil"

	"github.com/kiteco/jsparse/kite-go/lang/javascript/parser"
	"github.com/kiteco/jsparse/kite-golib/errors"
	yaml "gopkg.in/yaml.v2"
)

// config is the optional options file, e.g.
//
//   harmony: true
//   max_depth: 512
//   cache_size: 100
//   sample_rate: 0.1
type config struct {
	ECMA3Only bool `yaml:"ecma3_only"`
	ParenFree bool `yaml:"paren_free"`
	Harmony   bool `yaml:"harmony"`
	MaxDepth  int  `yaml:"max_depth"`
	CacheSize int  `yaml:"cache_size"`
	Trace     bool `yaml:"trace"`

	// SampleRate is the fraction of parse durations kept for --status.
	SampleRate float64 `yaml:"sample_rate"`
}

func defaultConfig() config {
	return config{
		MaxDepth:   parser.DefaultMaxDepth,
		CacheSize:  parser.DefaultCacheSize,
		SampleRate: 1,
	}
}

// loadConfig reads the options file at path. An empty path gives the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	buf, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrapf(err, "error reading config %s", path)
	}
	if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "error decoding config %s", path)
	}
	var invalid error
	if cfg.MaxDepth < 0 {
		invalid = errors.Combine(invalid, errors.Errorf("%s: max_depth must not be negative", path))
	}
	if cfg.CacheSize <= 0 {
		invalid = errors.Combine(invalid, errors.Errorf("%s: cache_size must be positive", path))
	}
	if cfg.SampleRate <= 0 || cfg.SampleRate > 1 {
		invalid = errors.Combine(invalid, errors.Errorf("%s: sample_rate must be in (0, 1]", path))
	}
	if invalid != nil {
		return cfg, invalid
	}
	return cfg, nil
}

// DialectFlags are the command line settings that override the file.
// Unset flags are nil.
type DialectFlags struct {
	ECMA3     *bool `arg:"--ecma3,help:reject every extension to ECMAScript 3"`
	ParenFree *bool `arg:"--paren-free,help:allow statement heads without parentheses"`
	Harmony   *bool `arg:"help:enable the harmony extensions"`
	MaxDepth  *int  `arg:"--max-depth,help:nesting limit"`
	CacheSize *int  `arg:"--cache-size,help:number of parses to keep"`
	Trace     *bool `arg:"help:print the recursive descent"`
}

func (c *config) override(f DialectFlags) {
	if f.ECMA3 != nil {
		c.ECMA3Only = *f.ECMA3
	}
	if f.ParenFree != nil {
		c.ParenFree = *f.ParenFree
	}
	if f.Harmony != nil {
		c.Harmony = *f.Harmony
	}
	if f.MaxDepth != nil {
		c.MaxDepth = *f.MaxDepth
	}
	if f.CacheSize != nil {
		c.CacheSize = *f.CacheSize
	}
	if f.Trace != nil {
		c.Trace = *f.Trace
	}
}

func (c config) options() parser.Options {
	return parser.Options{
		ECMA3Only: c.ECMA3Only,
		ParenFree: c.ParenFree,
		Harmony:   c.Harmony,
		MaxDepth:  c.MaxDepth,
		Trace:     c.Trace,
	}
}
