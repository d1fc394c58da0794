package stl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
)

// readChunkSize is the read size used when parsing from an io.Reader.
const readChunkSize = 64 * 1024

// ParseReader streams r through a new Parser. It stops between chunks
// when ctx is cancelled and returns the fatal parse error, if any.
func ParseReader(ctx context.Context, r io.Reader, handler Handler, opts ...Option) error {
	p := NewParser(handler, opts...)
	buf := make([]byte, readChunkSize)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if _, werr := p.Write(buf[:n]); werr != nil {
				return werr
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

// ParseContent parses a complete STL held in memory. content may be a
// string, a []byte or an io.Reader. Unlike the streaming detection, a
// whole buffer is only treated as ascii when it also contains the facet
// and vertex keywords.
func ParseContent(content any, handler Handler, opts ...Option) error {
	var data []byte
	switch c := content.(type) {
	case string:
		data = []byte(c)
	case []byte:
		data = c
	case io.Reader:
		return ParseReader(context.Background(), c, handler, opts...)
	default:
		err := &Error{Kind: KindUnsupportedInput, Msg: fmt.Sprintf("%v has an unsupported format!", content)}
		handler.HandleEvent(Event{Type: EventError, Err: err})
		return err
	}

	if len(data) == 0 {
		handler.HandleEvent(Event{Type: EventError, Err: ErrEmptyInput})
		return ErrEmptyInput
	}

	switch buildOptions(opts).Format {
	case FormatASCII:
		if !containsKeywords(data) {
			handler.HandleEvent(Event{Type: EventError, Err: ErrMissingKeywords})
			return ErrMissingKeywords
		}
	case FormatAuto:
		format := FormatBinary
		if containsKeywords(data) {
			format = FormatASCII
		}
		opts = append(opts, WithFormat(format))
	}

	p := NewParser(handler, opts...)
	if _, err := p.Write(data); err != nil {
		return err
	}
	return p.Close()
}

func containsKeywords(data []byte) bool {
	return bytes.HasPrefix(data, asciiPrefix) &&
		bytes.Contains(data, []byte("facet")) &&
		bytes.Contains(data, []byte("vertex"))
}

// Result collects the outcome of an aggregate parse.
type Result struct {
	Format   Format
	Models   []*Model
	Warnings []string
}

// Model returns the last parsed solid, or nil if there is none.
func (r *Result) Model() *Model {
	if len(r.Models) == 0 {
		return nil
	}
	return r.Models[len(r.Models)-1]
}

// HandleEvent collects models, warnings and the detected format.
func (r *Result) HandleEvent(e Event) {
	switch e.Type {
	case EventModel:
		r.Models = append(r.Models, e.Model)
		if r.Format == FormatAuto {
			r.Format = e.Model.Type
		}
	case EventWarning:
		r.Warnings = append(r.Warnings, e.Message)
	}
}

// ParseFile parses an STL file in aggregate mode. The file size is used
// for progress unless opts override it.
func ParseFile(ctx context.Context, filename string, opts ...Option) (*Result, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	var base []Option
	if info, err := file.Stat(); err == nil {
		base = append(base, WithSize(info.Size()))
	}
	opts = append(append(base, opts...), WithAggregate(true))

	result := &Result{}
	if err := ParseReader(ctx, file, result, opts...); err != nil {
		return result, err
	}
	return result, nil
}

// Parse reads an STL file and returns its model.
// It automatically detects whether the file is ASCII or binary format.
func Parse(filename string) (*Model, error) {
	result, err := ParseFile(context.Background(), filename)
	if err != nil {
		return nil, err
	}
	if m := result.Model(); m != nil {
		return m, nil
	}
	return nil, fmt.Errorf("no solid found in %s", filename)
}
