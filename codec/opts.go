package codec

import "github.com/signadot/reserde/object"

type config struct {
	pretty   bool
	maxDepth int
	xmlRoot  string
	color    func(object.Type, ColorAttr, string) string
}

func newConfig(opts []Option) *config {
	cfg := &config{
		maxDepth: object.DefaultMaxDepth,
		xmlRoot:  "root",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.maxDepth <= 0 {
		cfg.maxDepth = object.DefaultMaxDepth
	}
	return cfg
}

// Option configures a decoder or encoder. Options that do not apply to a
// format are ignored by it.
type Option func(*config)

// Pretty requests indented output from formats that support it.
func Pretty(v bool) Option {
	return func(c *config) { c.pretty = v }
}

// MaxDepth bounds the nesting decoders accept. Zero or less means
// object.DefaultMaxDepth.
func MaxDepth(n int) Option {
	return func(c *config) { c.maxDepth = n }
}

// XMLRoot names the document element when the encoded tree carries no
// type name of its own.
func XMLRoot(name string) Option {
	return func(c *config) {
		if name != "" {
			c.xmlRoot = name
		}
	}
}

// WithColors highlights text output. A nil c disables colors.
func WithColors(c *Colors) Option {
	return func(cfg *config) {
		if c == nil {
			cfg.color = nil
			return
		}
		cfg.color = c.Color
	}
}

func (c *config) paint(t object.Type, a ColorAttr, s string) string {
	if c.color == nil {
		return s
	}
	return c.color(t, a, s)
}
