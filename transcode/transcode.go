// Package transcode runs the conversion pipeline: read, decode, detach,
// rewrite, encode.
package transcode

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/signadot/reserde/codec"
	"github.com/signadot/reserde/compress"
	"github.com/signadot/reserde/debug"
	"github.com/signadot/reserde/object"
	"github.com/signadot/reserde/rewrite"
)

// Run reads one value from r and writes it to w as configured by opts.
// Compressed input is detected and decompressed. The decoded tree is
// detached from the input buffer and the buffer released before the
// rewrite passes run, so nothing the encoder sees refers to the input.
func Run(ctx context.Context, r io.Reader, w io.Writer, opts ...Option) error {
	o := NewOptions(opts...)
	log := o.Logger.With("in", o.In.String(), "out", o.Out.String())

	dec, err := codec.NewDecoder(o.In, o.codecOpts()...)
	if err != nil {
		return err
	}
	enc, err := codec.NewEncoder(o.Out, o.codecOpts()...)
	if err != nil {
		return err
	}

	zr, zc, err := compress.NewReader(r)
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	data, err := io.ReadAll(zr)
	zr.Close()
	if err != nil {
		return fmt.Errorf("reading input: %w", err)
	}
	log.DebugContext(ctx, "read", "bytes", len(data), "compression", zc.String())
	if err := ctx.Err(); err != nil {
		return err
	}

	tree, err := decode(ctx, log, dec, data, o.MaxDepth)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if o.EnumBools {
		rewrite.EnumBools(tree)
		log.DebugContext(ctx, "pass", "stage", "enum-bools")
		if debug.Passes() {
			debug.Logf("enum-bools: %s\n", tree)
		}
	}
	for _, e := range o.Encodings {
		rewrite.Stringify(tree, e)
		log.DebugContext(ctx, "pass", "stage", "stringify", "encoding", e.String())
		if debug.Passes() {
			debug.Logf("stringify %s: %s\n", e, tree)
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	return encode(ctx, log, enc, w, tree, o.Compress)
}

// decode parses data and returns a tree that owns all of its leaves.
func decode(ctx context.Context, log *slog.Logger, dec codec.Decoder, data []byte, maxDepth int) (*object.Object, error) {
	buf := object.NewBuffer(data)
	defer buf.Release()
	tree, err := dec.Decode(buf)
	if err != nil {
		return nil, err
	}
	if err := object.CheckDepth(tree, maxDepth); err != nil {
		return nil, fmt.Errorf("%w: %w", codec.ErrDecode, err)
	}
	log.DebugContext(ctx, "decoded", "stage", "decode", "nodes", object.Count(tree))
	if debug.Decode() {
		debug.Logf("decoded: %s\n", tree)
	}
	tree = object.Detach(tree)
	log.DebugContext(ctx, "detached", "stage", "detach")
	return tree, nil
}

func encode(ctx context.Context, log *slog.Logger, enc codec.Encoder, w io.Writer, tree *object.Object, c compress.Codec) error {
	if debug.Encode() {
		debug.Logf("encoding: %s\n", tree)
	}
	zw, err := compress.NewWriter(w, c)
	if err != nil {
		return err
	}
	cw := &countWriter{w: zw}
	if err := enc.Encode(cw, tree); err != nil {
		zw.Close()
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	log.DebugContext(ctx, "encoded", "stage", "encode", "bytes", cw.n, "compression", c.String())
	return nil
}

type countWriter struct {
	w io.Writer
	n int
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += n
	return n, err
}
