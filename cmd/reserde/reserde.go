package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"

	"github.com/signadot/reserde/transcode"
)

func reserdeMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	if p := os.Getenv(ConfigEnv); p != "" {
		d, err := readDefaults(p)
		if err != nil {
			return err
		}
		if err := d.apply(cfg); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	// -s on the command line replaces the encodings of the defaults file
	fileEncs := cfg.Encodings
	cfg.Encodings = nil
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(cfg.Encodings) == 0 {
		cfg.Encodings = fileEncs
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: unexpected arguments %q", cli.ErrUsage, args)
	}
	if cfg.Verbose {
		logLevel.Set(slog.LevelDebug)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			theLog.Warn("gops agent failed", "error", err)
		} else {
			defer agent.Close()
		}
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	var r io.Reader = cc.In
	if cfg.In != "" && cfg.In != "-" {
		f, err := os.Open(cfg.In)
		if err != nil {
			return fmt.Errorf("could not open %q: %w", cfg.In, err)
		}
		defer f.Close()
		r = f
	}
	return convert(ctx, cfg, r, cc.Out)
}

func convert(ctx context.Context, cfg *MainConfig, r io.Reader, w io.Writer) error {
	opts, err := cfg.transcodeOpts(w)
	if err != nil {
		return err
	}
	if err := transcode.Run(ctx, r, w, opts...); err != nil {
		name := cfg.In
		if name == "" {
			name = "-"
		}
		return fmt.Errorf("error processing %s: %w", name, err)
	}
	return nil
}
