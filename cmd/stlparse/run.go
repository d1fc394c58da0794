package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/philipparndt/stlparse/internal/output"
	"github.com/philipparndt/stlparse/pkg/stl"
	"github.com/philipparndt/stlparse/pkg/watcher"
	"github.com/pkg/profile"
	"github.com/spf13/cobra"
)

const (
	readChunkSize = 64 * 1024
	watchDebounce = 200 * time.Millisecond
)

var errTerminalInput = errors.New("STL-parser must be used by piping into it.")

func runParse(cmd *cobra.Command, args []string, cfg *config) error {
	if cfg.Profile != "" {
		defer profile.Start(profile.ProfilePath(cfg.Profile), profile.Quiet, profile.NoShutdownHook).Stop()
	}

	diag := output.NewDiagnostics(cmd.ErrOrStderr(), cfg.NoColor)
	enc, err := output.NewEncoder(cfg.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	sink := output.NewSink(enc, diag, cfg.Progress)

	if len(args) == 0 {
		if cfg.Watch {
			return errors.New("--watch requires a file argument")
		}
		in := cmd.InOrStdin()
		if f, ok := in.(*os.File); ok && output.IsTerminal(f) {
			return errTerminalInput
		}
		return parseStream(cmd.Context(), in, inputSize(in), cfg, sink)
	}

	filename := args[0]
	err = parseFile(cmd.Context(), filename, cfg, sink)
	if !cfg.Watch {
		return err
	}
	if err != nil {
		diag.Error(err)
	}
	return watch(cmd.Context(), filename, diag, func() {
		if err := parseFile(cmd.Context(), filename, cfg, sink); err != nil {
			diag.Error(err)
		}
	})
}

func parseFile(ctx context.Context, filename string, cfg *config, sink *output.Sink) error {
	file, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	return parseStream(ctx, file, inputSize(file), cfg, sink)
}

// inputSize returns the size of a regular file, or 0 when unknown.
func inputSize(r io.Reader) int64 {
	f, ok := r.(*os.File)
	if !ok {
		return 0
	}
	info, err := f.Stat()
	if err != nil || !info.Mode().IsRegular() {
		return 0
	}
	return info.Size()
}

func parseStream(ctx context.Context, r io.Reader, size int64, cfg *config, sink *output.Sink) error {
	opts := cfg.options(size)
	var err error
	if cfg.Yield {
		err = consumeYielding(ctx, r, sink, opts)
	} else {
		err = stl.ParseReader(ctx, r, sink, opts...)
	}
	if err != nil {
		return err
	}
	return sink.Err()
}

// consumeYielding reads the next chunk only after the parser signalled
// that it is ready for it.
func consumeYielding(ctx context.Context, r io.Reader, handler stl.Handler, opts []stl.Option) error {
	p := stl.NewParser(handler, opts...)
	buf := make([]byte, readChunkSize)
	ready := make(chan struct{}, 1)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if cerr := p.Consume(buf[:n], func() { ready <- struct{}{} }); cerr != nil {
				return cerr
			}
			select {
			case <-ready:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read STL data: %w", err)
		}
	}
	return p.Close()
}

func watch(ctx context.Context, filename string, diag *output.Diagnostics, reparse func()) error {
	fw, err := watcher.NewFileWatcher(watchDebounce)
	if err != nil {
		return err
	}
	if err := fw.Add(filename); err != nil {
		fw.Close()
		return err
	}
	fw.OnError(diag.Error)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	diag.Info("Watching file for changes: %s", filename)
	err = fw.Run(ctx, func(string) {
		diag.Info("File changed, parsing again: %s", filename)
		reparse()
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
