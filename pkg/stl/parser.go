package stl

import (
	"bytes"
	"errors"
	"time"
)

// chunkParser is the shared shape of the ascii and binary parsers: accept
// chunks, emit events as records complete, and run end-of-input checks.
type chunkParser interface {
	consume(chunk []byte)
	finish() error
}

// YieldDelay is how long Consume defers the ready signal when the parser
// is not blocking.
const YieldDelay = 4 * time.Millisecond

var asciiPrefix = []byte("solid")

var errClosed = errors.New("stl: parser is closed")

// Parser detects the STL format from the first bytes and streams the
// input through the matching parser. It implements io.WriteCloser: write
// chunks of any size, then Close to flush and run the end-of-input
// checks. A Parser is not safe for concurrent use.
type Parser struct {
	opts    Options
	handler Handler

	parser   chunkParser
	format   Format
	pending  []byte // held back until the format is known
	received bool
	closed   bool
	err      error
}

// NewParser creates a parser delivering events to handler.
func NewParser(handler Handler, opts ...Option) *Parser {
	return &Parser{
		opts:    buildOptions(opts),
		handler: handler,
	}
}

// Options returns the effective options.
func (p *Parser) Options() Options {
	return p.opts
}

// Format returns the detected or forced format, or FormatAuto while it
// is not yet known.
func (p *Parser) Format() Format {
	return p.format
}

// Write processes one chunk. It returns the fatal error, if any, that
// already terminated the stream.
func (p *Parser) Write(chunk []byte) (int, error) {
	if err := p.write(chunk); err != nil {
		return 0, err
	}
	return len(chunk), nil
}

// Consume processes one chunk and then calls ready, either immediately or,
// when the parser is not blocking, after YieldDelay so a host loop gets
// control back between chunks. Results do not depend on the mode.
func (p *Parser) Consume(chunk []byte, ready func()) error {
	err := p.write(chunk)
	if ready != nil {
		if p.opts.Blocking {
			ready()
		} else {
			time.AfterFunc(YieldDelay, ready)
		}
	}
	return err
}

func (p *Parser) write(chunk []byte) error {
	if p.err != nil {
		return p.err
	}
	if p.closed {
		return errClosed
	}
	if len(chunk) == 0 {
		return nil
	}
	p.received = true

	if p.parser == nil {
		p.pending = append(p.pending, chunk...)
		if p.opts.Format == FormatAuto && len(p.pending) < len(asciiPrefix) {
			return nil
		}
		chunk = p.start()
	}
	p.parser.consume(chunk)
	return nil
}

// start selects the parser and returns the held-back bytes.
func (p *Parser) start() []byte {
	format := p.opts.Format
	if format == FormatAuto {
		format = detectFormat(p.pending)
	}
	p.format = format

	if !p.opts.Aggregate {
		p.handler.HandleEvent(Event{Type: EventHeader, Format: format})
	}

	emit := emitter(p.forward)
	if format == FormatASCII {
		p.parser = newASCIIParser(p.opts, emit)
	} else {
		p.parser = newBinaryParser(p.opts, emit)
	}

	pending := p.pending
	p.pending = nil
	return pending
}

func (p *Parser) forward(e Event) {
	if p.err == nil {
		p.handler.HandleEvent(e)
	}
}

// Close signals the end of input. It returns the fatal error of the
// stream, which has also been delivered as EventError.
func (p *Parser) Close() error {
	if p.err != nil {
		return p.err
	}
	if p.closed {
		return nil
	}
	p.closed = true

	if !p.received {
		return p.fail(ErrEmptyInput)
	}
	if p.parser == nil {
		// input ended before enough bytes arrived for detection
		pending := p.start()
		p.parser.consume(pending)
	}
	if err := p.parser.finish(); err != nil {
		return p.fail(err)
	}
	return nil
}

func (p *Parser) fail(err error) error {
	p.handler.HandleEvent(Event{Type: EventError, Err: err})
	p.err = err
	return err
}

func detectFormat(prefix []byte) Format {
	if bytes.HasPrefix(prefix, asciiPrefix) {
		return FormatASCII
	}
	return FormatBinary
}
