package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/signadot/reserde/codec"
	"github.com/signadot/reserde/compress"
	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/rewrite"
	"github.com/signadot/reserde/transcode"
)

type MainConfig struct {
	In        string `cli:"name=if desc='input file (default stdin)'"`
	Pretty    bool   `cli:"name=p aliases=pretty desc='pretty print output'"`
	EnumBools bool   `cli:"name=enum-bools desc='turn unit tags named true or false into booleans'"`
	Color     bool   `cli:"name=color desc='color json output'"`
	XMLRoot   string `cli:"name=xml-root desc='xml root element name when the value has none'"`
	MaxDepth  int    `cli:"name=max-depth desc='maximum nesting depth of the input'"`
	Verbose   bool   `cli:"name=v desc='log pipeline stages'"`
	Gops      bool   `cli:"name=gops desc='start a gops diagnostics agent'"`

	InFormat, OutFormat *format.Format
	Encodings           []rewrite.Encoding
	Compress            *compress.Codec

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) fmtFunc(fp **format.Format) cli.FuncOpt {
	return cli.FuncOpt(func(_ *cli.Context, v string) (any, error) {
		f, err := format.ParseFormat(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		*fp = &f
		return f, nil
	})
}

func (cfg *MainConfig) encOpt(_ *cli.Context, v string) (any, error) {
	e, err := rewrite.ParseEncoding(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Encodings = append(cfg.Encodings, e)
	return e, nil
}

func (cfg *MainConfig) compressOpt(_ *cli.Context, v string) (any, error) {
	c, err := compress.ParseCodec(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	cfg.Compress = &c
	return c, nil
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// formats returns the input and output formats, falling back to the file
// extensions of the input and output paths and then to json. A compression
// extension such as .gz is looked through.
func (cfg *MainConfig) formats() (in, out format.Format, err error) {
	in, out = format.JSONFormat, format.JSONFormat
	if f, ok := fromPath(cfg.In); ok {
		in = f
	}
	if f, ok := fromPath(cfg.Out); ok {
		out = f
	}
	if cfg.InFormat != nil {
		in = *cfg.InFormat
	}
	if cfg.OutFormat != nil {
		out = *cfg.OutFormat
	}
	if !in.CanDecode() {
		return in, out, fmt.Errorf("%w: cannot read %s", cli.ErrUsage, in)
	}
	if !out.CanEncode() {
		return in, out, fmt.Errorf("%w: cannot write %s", cli.ErrUsage, out)
	}
	return in, out, nil
}

func fromPath(p string) (format.Format, bool) {
	if p == "" || p == "-" {
		return 0, false
	}
	p, _ = stripCompression(p)
	return format.FromSuffix(p)
}

func stripCompression(p string) (string, compress.Codec) {
	for _, c := range compress.Codecs() {
		if s := c.Suffix(); s != "" && strings.HasSuffix(p, s) {
			return strings.TrimSuffix(p, s), c
		}
	}
	return p, compress.None
}

func (cfg *MainConfig) compression() compress.Codec {
	if cfg.Compress != nil {
		return *cfg.Compress
	}
	_, c := stripCompression(cfg.Out)
	return c
}

func (cfg *MainConfig) transcodeOpts(w io.Writer) ([]transcode.Option, error) {
	in, out, err := cfg.formats()
	if err != nil {
		return nil, err
	}
	res := []transcode.Option{
		transcode.InFormat(in),
		transcode.OutFormat(out),
		transcode.Pretty(cfg.Pretty),
		transcode.EnumBools(cfg.EnumBools),
		transcode.Stringify(cfg.Encodings...),
		transcode.Compress(cfg.compression()),
		transcode.MaxDepth(cfg.MaxDepth),
		transcode.XMLRoot(cfg.XMLRoot),
		transcode.Logger(theLog),
	}
	if cfg.colors(w, out) {
		res = append(res, transcode.Colors(codec.NewColors()))
	}
	return res, nil
}

// colors reports whether to color the output. Without -color it is on
// for uncompressed json written to a terminal.
func (cfg *MainConfig) colors(w io.Writer, out format.Format) bool {
	if out != format.JSONFormat || cfg.compression() != compress.None {
		return false
	}
	if cfg.Color {
		return true
	}
	colorsSet := false
	if cfg.Main != nil {
		for _, opt := range cfg.Main.Opts {
			if opt.Name != "color" {
				continue
			}
			colorsSet = opt.Value != nil
			break
		}
	}
	if colorsSet {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}
