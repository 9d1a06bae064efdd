package transcode

import (
	"log/slog"

	"github.com/signadot/reserde/codec"
	"github.com/signadot/reserde/compress"
	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/object"
	"github.com/signadot/reserde/rewrite"
)

// Options configures Run. The zero value reads and writes JSON.
type Options struct {
	In, Out   format.Format
	Pretty    bool
	EnumBools bool
	// Encodings are applied in order by the stringify pass.
	Encodings []rewrite.Encoding
	Compress  compress.Codec
	MaxDepth  int
	XMLRoot   string
	Colors    *codec.Colors
	Logger    *slog.Logger
}

type Option func(*Options)

func NewOptions(opts ...Option) *Options {
	o := &Options{
		In:       format.JSONFormat,
		Out:      format.JSONFormat,
		MaxDepth: object.DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

func InFormat(f format.Format) Option {
	return func(o *Options) { o.In = f }
}

func OutFormat(f format.Format) Option {
	return func(o *Options) { o.Out = f }
}

func Pretty(v bool) Option {
	return func(o *Options) { o.Pretty = v }
}

func EnumBools(v bool) Option {
	return func(o *Options) { o.EnumBools = v }
}

// Stringify appends encodings to the stringify pass.
func Stringify(encs ...rewrite.Encoding) Option {
	return func(o *Options) { o.Encodings = append(o.Encodings, encs...) }
}

func Compress(c compress.Codec) Option {
	return func(o *Options) { o.Compress = c }
}

func MaxDepth(n int) Option {
	return func(o *Options) { o.MaxDepth = n }
}

func XMLRoot(name string) Option {
	return func(o *Options) { o.XMLRoot = name }
}

func Colors(c *codec.Colors) Option {
	return func(o *Options) { o.Colors = c }
}

func Logger(l *slog.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func (o *Options) codecOpts() []codec.Option {
	return []codec.Option{
		codec.Pretty(o.Pretty),
		codec.MaxDepth(o.MaxDepth),
		codec.XMLRoot(o.XMLRoot),
		codec.WithColors(o.Colors),
	}
}
