package stl

import "fmt"

// Format names an STL encoding.
type Format string

const (
	FormatAuto   Format = ""
	FormatASCII  Format = "ascii"
	FormatBinary Format = "binary"
)

// ParseFormat accepts "ascii", "binary" and "" or "auto".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "", "auto":
		return FormatAuto, nil
	case "ascii":
		return FormatASCII, nil
	case "binary":
		return FormatBinary, nil
	}
	return FormatAuto, fmt.Errorf("unknown STL format %q (expected ascii, binary or auto)", s)
}

// Options configures a Parser.
type Options struct {
	// Format forces a parser; FormatAuto detects it from the first bytes.
	Format Format
	// Aggregate buffers all faces of a solid and emits one EventModel
	// instead of streaming header and face events.
	Aggregate bool
	// DiscardExcessVertices truncates faces with more than 3 vertices
	// to their first 3. When false such faces are dropped.
	DiscardExcessVertices bool
	// Blocking signals chunk completion immediately. When false the
	// ready callback of Consume fires after YieldDelay.
	Blocking bool
	// Size is the expected input size in bytes, used for progress.
	Size int64
}

// DefaultOptions returns the options a Parser uses when none are given.
func DefaultOptions() Options {
	return Options{
		Format:                FormatAuto,
		DiscardExcessVertices: true,
		Blocking:              true,
	}
}

// Option configures Parser behavior.
type Option func(*Options)

// WithFormat skips detection and uses the given format.
func WithFormat(f Format) Option {
	return func(o *Options) {
		o.Format = f
	}
}

// WithAggregate switches between streaming and single-model output.
func WithAggregate(aggregate bool) Option {
	return func(o *Options) {
		o.Aggregate = aggregate
	}
}

// WithDiscardExcessVertices controls truncation of faces with more than
// 3 vertices.
func WithDiscardExcessVertices(discard bool) Option {
	return func(o *Options) {
		o.DiscardExcessVertices = discard
	}
}

// WithBlocking selects between immediate and deferred chunk completion.
func WithBlocking(blocking bool) Option {
	return func(o *Options) {
		o.Blocking = blocking
	}
}

// WithSize sets the expected input size for progress events.
func WithSize(size int64) Option {
	return func(o *Options) {
		o.Size = size
	}
}

func buildOptions(opts []Option) Options {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
