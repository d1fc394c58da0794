package output

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ghodss/yaml"
)

// Encoding names a record serialization.
type Encoding string

const (
	JSONL Encoding = "jsonl"
	YAML  Encoding = "yaml"
)

// Encoder writes one record at a time.
type Encoder interface {
	Encode(record any) error
}

// NewEncoder returns the encoder for the named encoding.
func NewEncoder(encoding Encoding, w io.Writer) (Encoder, error) {
	switch encoding {
	case JSONL, "":
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		return enc, nil
	case YAML:
		return &yamlEncoder{w: w}, nil
	}
	return nil, fmt.Errorf("unknown output format %q (expected jsonl or yaml)", encoding)
}

// yamlEncoder writes a YAML document stream, one document per record.
// Records go through their JSON form, so field names and the vector
// encoding match the jsonl output.
type yamlEncoder struct {
	w       io.Writer
	started bool
}

func (e *yamlEncoder) Encode(record any) error {
	data, err := yaml.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	if e.started {
		if _, err := io.WriteString(e.w, "---\n"); err != nil {
			return err
		}
	}
	e.started = true
	_, err = e.w.Write(data)
	return err
}
