package main

import (
	"strings"

	"github.com/scott-cotton/cli"

	"github.com/signadot/reserde/compress"
	"github.com/signadot/reserde/format"
	"github.com/signadot/reserde/rewrite"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, []*cli.Opt{
		&cli.Opt{
			Name:        "i",
			Aliases:     []string{"in"},
			Description: "input format: " + names(format.InputFormats()),
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.InFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "o",
			Aliases:     []string{"out"},
			Description: "output format: " + names(format.OutputFormats()),
			Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
		},
		&cli.Opt{
			Name:        "of",
			Description: "output file (default stdout)",
			Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
		},
		&cli.Opt{
			Name:        "s",
			Aliases:     []string{"stringify"},
			Description: "convert keys and byte strings to text, trying each encoding in order: " + names(rewrite.Encodings()),
			Type:        cli.NamedFuncOpt(cfg.encOpt, "(encoding)"),
		},
		&cli.Opt{
			Name:        "z",
			Description: "compress output: " + names(compress.Codecs()),
			Type:        cli.NamedFuncOpt(cfg.compressOpt, "(codec)"),
		}}...)

	cmd := cli.NewCommandAt(&cfg.Main, "reserde").
		WithSynopsis("reserde [opts]").
		WithDescription("reserde converts structured data between formats without loss where the formats allow it.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return reserdeMain(cfg, cc, args)
		})
	return cmd
}

func names[T interface{ String() string }](vs []T) string {
	res := make([]string, len(vs))
	for i, v := range vs {
		res[i] = v.String()
	}
	return strings.Join(res, ", ")
}
