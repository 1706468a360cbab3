package message

import (
	"bytes"
	"fmt"
	"reflect"

	"github.com/pkg/errors"
	"github.com/ugorji/go/codec"
)

// jsonHandle is shared by every encoder and decoder of the package. Handles
// are safe for concurrent use once configured.
var jsonHandle = newJSONHandle()

func newJSONHandle() *codec.JsonHandle {
	jh := new(codec.JsonHandle)
	jh.Canonical = true
	jh.MapType = reflect.TypeOf(map[string]interface{}(nil))
	return jh
}

type wireEnvelope struct {
	Src  string                 `codec:"src"`
	Dest string                 `codec:"dest"`
	Body map[string]interface{} `codec:"body"`
}

type wireHeader struct {
	Type      string `codec:"type"`
	MsgID     *int   `codec:"msg_id"`
	InReplyTo *int   `codec:"in_reply_to"`
}

// UnknownTypeError is returned when a body carries a type tag that is not part
// of the vocabulary used to decode it.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown message type %q", e.Type)
}

// Unmarshal decodes one wire record into an Envelope whose payload is built
// from vocabulary.
func Unmarshal(line []byte, vocabulary Vocabulary) (*Envelope, error) {
	var w wireEnvelope
	if err := unmarshalRecord(line, &w); err != nil {
		return nil, errors.Wrap(err, "malformed envelope")
	}
	if w.Body == nil {
		return nil, errors.New("envelope has no body")
	}

	// The body is re-encoded so that the header and the payload can each be
	// decoded from it into their own typed structs.
	raw, err := marshal(w.Body)
	if err != nil {
		return nil, errors.Wrap(err, "re-encoding body")
	}

	var h wireHeader
	if err := unmarshal(raw, &h); err != nil {
		return nil, errors.Wrap(err, "malformed body header")
	}
	if h.Type == "" {
		return nil, errors.New("body has no type")
	}

	newPayload, ok := vocabulary[h.Type]
	if !ok {
		return nil, &UnknownTypeError{Type: h.Type}
	}
	payload := newPayload()
	if err := unmarshal(raw, payload); err != nil {
		return nil, errors.Wrapf(err, "malformed %s payload", h.Type)
	}

	return &Envelope{
		Source:      w.Src,
		Destination: w.Dest,
		Body: Body{
			MessageID: h.MsgID,
			InReplyTo: h.InReplyTo,
			Payload:   payload,
		},
	}, nil
}

// Marshal encodes e as a single wire record terminated by a newline.
func Marshal(e *Envelope) ([]byte, error) {
	if e.Body.Payload == nil {
		return nil, errors.Errorf("envelope %s->%s has no payload", e.Source, e.Destination)
	}

	raw, err := marshal(e.Body.Payload)
	if err != nil {
		return nil, errors.Wrapf(err, "encoding %s payload", e.Type())
	}
	body := map[string]interface{}{}
	if err := unmarshal(raw, &body); err != nil {
		return nil, errors.Wrapf(err, "flattening %s payload", e.Type())
	}

	body["type"] = e.Body.Payload.Type()
	if e.Body.MessageID != nil {
		body["msg_id"] = *e.Body.MessageID
	}
	if e.Body.InReplyTo != nil {
		body["in_reply_to"] = *e.Body.InReplyTo
	}

	out, err := marshal(&wireEnvelope{
		Src:  e.Source,
		Dest: e.Destination,
		Body: body,
	})
	if err != nil {
		return nil, errors.Wrap(err, "encoding envelope")
	}

	return append(bytes.TrimRight(out, " \t\r\n"), '\n'), nil
}

func marshal(v interface{}) ([]byte, error) {
	var b []byte
	if err := codec.NewEncoderBytes(&b, jsonHandle).Encode(v); err != nil {
		return nil, err
	}
	return b, nil
}

func unmarshal(data []byte, v interface{}) error {
	return codec.NewDecoderBytes(data, jsonHandle).Decode(v)
}

// unmarshalRecord is unmarshal for a whole wire record: anything but
// whitespace after the first value is an error.
func unmarshalRecord(data []byte, v interface{}) error {
	dec := codec.NewDecoderBytes(data, jsonHandle)
	if err := dec.Decode(v); err != nil {
		return err
	}
	n := dec.NumBytesRead()
	if n > len(data) {
		n = len(data)
	}
	if rest := bytes.TrimSpace(data[n:]); len(rest) > 0 {
		return errors.Errorf("unexpected data after record at offset %d", n)
	}
	return nil
}
