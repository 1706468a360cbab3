package message

import (
	"bufio"
	"bytes"
	"io"

	"github.com/pkg/errors"
)

// MaxLineSize bounds the length of a single wire record. Replies carrying a
// whole replicated set can get large.
const MaxLineSize = 64 << 20

// Decoder reads Envelopes, one per line, from an input stream.
type Decoder struct {
	scanner *bufio.Scanner
	line    int
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	return &Decoder{scanner: scanner}
}

// Decode reads the next non-blank line and decodes it with vocabulary. It
// returns io.EOF once the input is exhausted.
func (d *Decoder) Decode(vocabulary Vocabulary) (*Envelope, error) {
	for d.scanner.Scan() {
		d.line++
		line := bytes.TrimSpace(d.scanner.Bytes())
		if len(line) == 0 {
			continue
		}
		return d.decode(line, vocabulary)
	}
	return nil, d.end()
}

// DecodeLine reads exactly one line and decodes it with vocabulary. A blank
// line is an error.
func (d *Decoder) DecodeLine(vocabulary Vocabulary) (*Envelope, error) {
	if !d.scanner.Scan() {
		return nil, d.end()
	}
	d.line++
	line := bytes.TrimSpace(d.scanner.Bytes())
	if len(line) == 0 {
		return nil, errors.Errorf("line %d: blank line", d.line)
	}
	return d.decode(line, vocabulary)
}

func (d *Decoder) decode(line []byte, vocabulary Vocabulary) (*Envelope, error) {
	e, err := Unmarshal(line, vocabulary)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d: %q", d.line, line)
	}
	return e, nil
}

func (d *Decoder) end() error {
	if err := d.scanner.Err(); err != nil {
		return errors.Wrapf(err, "reading line %d", d.line+1)
	}
	return io.EOF
}

// Encoder writes Envelopes, one per line, to an output stream. Each Envelope
// is written with a single call to the underlying Write. Encoder is not safe
// for concurrent use.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Send implements the Sender interface.
func (enc *Encoder) Send(e *Envelope) error {
	b, err := Marshal(e)
	if err != nil {
		return err
	}
	if _, err := enc.w.Write(b); err != nil {
		return errors.Wrapf(err, "writing %s", e)
	}
	return nil
}
